package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/voidarchive/archive/core"
)

func (c *Controller) discarded(ctx context.Context, key string) error {
	slog.DebugContext(ctx, "discarding superseded response", slog.String("key", key))
	return core.NewErrorSuperseded()
}

// SaveCharacter creates a character with a temporary id or updates an existing one
func (c *Controller) SaveCharacter(ctx context.Context, character core.Character, asDraft bool) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Controller.SaveCharacter")
	defer span.End()

	character.IsDraft = asDraft
	isNew := strings.HasPrefix(character.ID, core.TempCharacterPrefix)
	t := c.begin("character:" + character.ID)

	var saved core.Character
	var err error
	if isNew {
		draft := character
		draft.ID = ""
		saved, err = c.characters.Create(ctx, draft)
	} else {
		saved, err = c.characters.Update(ctx, character.ID, core.PatchFromCharacter(character))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		c.failLocked(ctx, "failed to save character", err)
		return core.Character{}, err
	}
	if !c.currentLocked(t) {
		return saved, c.discarded(ctx, t.key)
	}

	if isNew {
		c.state.characters = append([]core.Character{saved}, c.state.characters...)
		c.state.myCharacters = append([]core.Character{saved}, c.state.myCharacters...)
	} else {
		c.state.characters = replaceCharacter(c.state.characters, saved)
		c.state.myCharacters = replaceCharacter(c.state.myCharacters, saved)
	}
	if c.state.selectedCharacter != nil && c.state.selectedCharacter.ID == character.ID {
		selected := copyCharacter(saved)
		c.state.selectedCharacter = &selected
	}

	switch {
	case c.state.source == core.ViewDrafts, asDraft:
		c.navigateLocked(core.ViewDrafts)
	default:
		c.navigateLocked(core.ViewCharacterList)
	}
	c.publishLocked()

	return saved, nil
}

// DeleteCharacter removes a character from both collections once the gateway confirms
func (c *Controller) DeleteCharacter(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Controller.DeleteCharacter")
	defer span.End()

	t := c.begin("character:" + id)
	err := c.characters.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		c.failLocked(ctx, "failed to delete character", err)
		return err
	}
	if !c.currentLocked(t) {
		return c.discarded(ctx, t.key)
	}

	c.state.characters = removeCharacter(c.state.characters, id)
	c.state.myCharacters = removeCharacter(c.state.myCharacters, id)
	if c.state.selectedCharacter != nil && c.state.selectedCharacter.ID == id {
		c.state.selectedCharacter = nil
	}
	c.publishLocked()

	return nil
}

// SaveLog recomputes the word count and participants and creates or updates the log
func (c *Controller) SaveLog(ctx context.Context, log core.ArchiveLog) (core.ArchiveLog, error) {
	ctx, span := tracer.Start(ctx, "Controller.SaveLog")
	defer span.End()

	if log.Entries == nil {
		log.Entries = []core.LogEntry{}
	}
	log.WordCount = core.CountWords(log.Entries)
	log.Participants = core.MergeParticipants(log.Participants, log.Entries)
	isNew := log.ID == core.NewLogID
	t := c.begin("log:" + log.ID)

	var saved core.ArchiveLog
	var err error
	if isNew {
		draft := log
		draft.ID = ""
		saved, err = c.logs.Create(ctx, draft)
	} else {
		saved, err = c.logs.Update(ctx, log.ID, core.PatchFromLog(log))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		c.failLocked(ctx, "failed to save log", err)
		return core.ArchiveLog{}, err
	}
	if !c.currentLocked(t) {
		return saved, c.discarded(ctx, t.key)
	}

	if isNew {
		if saved.Comments == nil {
			saved.Comments = []core.Comment{}
		}
		c.state.logs = append([]core.ArchiveLog{saved}, c.state.logs...)
	} else {
		if existing := findLog(c.state.logs, saved.ID); existing != nil {
			saved.Comments = existing.Comments
		}
		c.state.logs = replaceLog(c.state.logs, saved)
	}

	selected := copyLog(saved)
	c.state.selectedLog = &selected

	if c.state.source == core.ViewDrafts {
		c.navigateLocked(core.ViewDrafts)
	} else {
		c.navigateLocked(core.ViewDashboard)
	}
	c.publishLocked()

	return saved, nil
}

// DeleteLog removes a log once the gateway confirms
func (c *Controller) DeleteLog(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Controller.DeleteLog")
	defer span.End()

	t := c.begin("log:" + id)
	err := c.logs.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		c.failLocked(ctx, "failed to delete log", err)
		return err
	}
	if !c.currentLocked(t) {
		return c.discarded(ctx, t.key)
	}

	filtered := make([]core.ArchiveLog, 0, len(c.state.logs))
	for _, l := range c.state.logs {
		if l.ID != id {
			filtered = append(filtered, l)
		}
	}
	c.state.logs = filtered
	if c.state.selectedLog != nil && c.state.selectedLog.ID == id {
		c.state.selectedLog = nil
	}
	c.publishLocked()

	return nil
}

// ToggleFavorite flips a log's favorite flag using the value seen at dispatch
func (c *Controller) ToggleFavorite(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Controller.ToggleFavorite")
	defer span.End()

	c.mu.Lock()
	log := findLog(c.state.logs, id)
	if log == nil {
		c.mu.Unlock()
		return core.NewErrorNotFound()
	}
	captured := log.IsFavorite
	t := c.beginLocked("favorite:" + id)
	c.mu.Unlock()

	err := c.logs.ToggleFavorite(ctx, id, captured)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		c.failLocked(ctx, "failed to toggle favorite", err)
		return err
	}
	if !c.currentLocked(t) {
		return c.discarded(ctx, t.key)
	}

	c.patchLogLocked(id, func(l *core.ArchiveLog) {
		l.IsFavorite = !captured
	})
	c.publishLocked()

	return nil
}

// AddComment posts a comment and appends it to the target log
func (c *Controller) AddComment(ctx context.Context, logID string, comment core.Comment) (core.Comment, error) {
	ctx, span := tracer.Start(ctx, "Controller.AddComment")
	defer span.End()

	t := c.begin("")
	saved, err := c.comments.Create(ctx, logID, comment)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		c.failLocked(ctx, "failed to add comment", err)
		return core.Comment{}, err
	}
	if !c.currentLocked(t) {
		return saved, c.discarded(ctx, "comment:"+logID)
	}

	c.patchLogLocked(logID, func(l *core.ArchiveLog) {
		l.Comments = append(append([]core.Comment{}, l.Comments...), saved)
	})
	c.publishLocked()

	return saved, nil
}

// DeleteComment removes one comment from the target log
func (c *Controller) DeleteComment(ctx context.Context, logID, commentID string) error {
	ctx, span := tracer.Start(ctx, "Controller.DeleteComment")
	defer span.End()

	t := c.begin("comment:" + commentID)
	err := c.comments.Delete(ctx, commentID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		c.failLocked(ctx, "failed to delete comment", err)
		return err
	}
	if !c.currentLocked(t) {
		return c.discarded(ctx, t.key)
	}

	c.patchLogLocked(logID, func(l *core.ArchiveLog) {
		comments := make([]core.Comment, 0, len(l.Comments))
		for _, comment := range l.Comments {
			if comment.ID != commentID {
				comments = append(comments, comment)
			}
		}
		l.Comments = comments
	})
	c.publishLocked()

	return nil
}

// UpdateProfile saves the profile; on failure the edit is kept locally
func (c *Controller) UpdateProfile(ctx context.Context, profile core.UserProfile) (core.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "Controller.UpdateProfile")
	defer span.End()

	t := c.begin("profile")
	updated, err := c.profiles.Update(ctx, core.PatchFromProfile(profile))

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.currentLocked(t) {
		return updated, c.discarded(ctx, t.key)
	}

	if err != nil {
		span.RecordError(err)
		c.state.profile = profile
		c.navigateLocked(core.ViewProfile)
		c.failLocked(ctx, "failed to update profile", err)
		return profile, err
	}

	c.state.profile = updated
	c.navigateLocked(core.ViewProfile)
	c.publishLocked()

	return updated, nil
}

// patchLogLocked applies fn to the list copy of a log and to the selected copy when it is the same log
func (c *Controller) patchLogLocked(id string, fn func(*core.ArchiveLog)) {
	for i := range c.state.logs {
		if c.state.logs[i].ID == id {
			fn(&c.state.logs[i])
		}
	}
	if c.state.selectedLog != nil && c.state.selectedLog.ID == id {
		selected := copyLog(*c.state.selectedLog)
		fn(&selected)
		c.state.selectedLog = &selected
	}
}

// SignIn authenticates and moves to the dashboard; failures become the inline auth error
func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	ctx, span := tracer.Start(ctx, "Controller.SignIn")
	defer span.End()

	c.clearAuthError()

	_, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		span.RecordError(err)
		c.setAuthError(err)
		return err
	}

	return c.Navigate(core.ViewDashboard)
}

// SignUp registers an account and signs it in when possible
func (c *Controller) SignUp(ctx context.Context, email, password, name string) error {
	ctx, span := tracer.Start(ctx, "Controller.SignUp")
	defer span.End()

	c.clearAuthError()

	_, err := c.auth.SignUp(ctx, email, password, name)
	if err != nil {
		span.RecordError(err)
		c.setAuthError(err)
		return err
	}

	return c.Navigate(core.ViewDashboard)
}

// Resume restores a session from a token issued earlier
func (c *Controller) Resume(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "Controller.Resume")
	defer span.End()

	_, err := c.auth.Resume(ctx, token)
	if err != nil {
		span.RecordError(err)
		c.setAuthError(err)
		return err
	}

	return c.Navigate(core.ViewDashboard)
}

// SignOut ends the session; the auth transition clears the state
func (c *Controller) SignOut(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Controller.SignOut")
	defer span.End()

	err := c.auth.SignOut(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		c.failLocked(ctx, "failed to sign out", err)
		return err
	}

	c.state.authenticated = false
	c.navigateLocked(core.ViewWelcome)
	c.publishLocked()
	return nil
}

func (c *Controller) clearAuthError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.authError != "" {
		c.state.authError = ""
		c.publishLocked()
	}
}

func (c *Controller) setAuthError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.authError = err.Error()
	c.publishLocked()
}

// CreateNewCharacter opens the editor on a blank character template
func (c *Controller) CreateNewCharacter(from core.View) core.Character {
	character := core.Character{
		ID:    fmt.Sprintf("%s%d", core.TempCharacterPrefix, time.Now().UnixMilli()),
		Tags:  []string{},
		Stats: core.DefaultStats,
		Attributes: core.CharacterAttributes{
			Alignment: core.AlignmentNone,
		},
		Trivia:   []string{},
		ImageURL: core.PlaceholderImageURL,
		IsDraft:  true,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.navigateLocked(core.ViewCharacterEditor, WithCharacter(&character), From(from))
	c.publishLocked()
	return character
}

// CreateNewLog opens the editor on a blank log template
func (c *Controller) CreateNewLog(from core.View) core.ArchiveLog {
	log := core.ArchiveLog{
		ID:           core.NewLogID,
		Title:        core.NewLogTitle,
		Status:       core.LogStatusOngoing,
		Timestamp:    core.DisplayDate(time.Now()),
		Summary:      core.NewLogSummary,
		ImageURL:     core.PlaceholderImageURL,
		Participants: []string{},
		Entries:      []core.LogEntry{},
		Comments:     []core.Comment{},
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.navigateLocked(core.ViewLogEditor, WithLog(&log), From(from))
	c.publishLocked()
	return log
}

// StartLog opens the log editor on a new log featuring the given character
func (c *Controller) StartLog(characterID string) (core.ArchiveLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	character := c.findCharacterLocked(characterID)
	if character == nil {
		return core.ArchiveLog{}, core.NewErrorNotFound()
	}

	log := core.ArchiveLog{
		ID:           core.NewLogID,
		Title:        fmt.Sprintf(core.StartLogTitle, character.Name),
		Status:       core.LogStatusOngoing,
		Timestamp:    core.DisplayDate(time.Now()),
		Summary:      fmt.Sprintf(core.StartLogSummary, character.Name),
		ImageURL:     character.ImageURL,
		Participants: []string{character.Name},
		Entries:      []core.LogEntry{},
		Comments:     []core.Comment{},
	}

	c.navigateLocked(core.ViewLogEditor, WithLog(&log))
	c.publishLocked()
	return log, nil
}

// CancelEdit leaves an editor without saving
func (c *Controller) CancelEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.view.IsEditor() {
		return core.NewErrorInvalidInput("not editing")
	}

	c.backLocked()
	c.publishLocked()
	return nil
}

// Back moves to the fixed parent of the current view
func (c *Controller) Back() core.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.backLocked()
	c.publishLocked()
	return c.state.view
}

func (c *Controller) backLocked() {
	switch c.state.view {
	case core.ViewCharacterEditor:
		if c.state.source == core.ViewDrafts {
			c.navigateLocked(core.ViewDrafts)
		} else {
			c.navigateLocked(core.ViewCharacterList)
		}
	case core.ViewLogEditor:
		if c.state.source == core.ViewDrafts {
			c.navigateLocked(core.ViewDrafts)
		} else {
			c.navigateLocked(core.ViewDashboard)
		}
	case core.ViewCharacterDetail:
		c.navigateLocked(core.ViewCharacterList)
	case core.ViewComments:
		c.navigateLocked(core.ViewLogDetail, WithLog(c.state.selectedLog))
	case core.ViewDrafts, core.ViewSavedArchive, core.ViewMyCharacters, core.ViewSettings:
		c.navigateLocked(core.ViewProfile)
	case core.ViewWelcome:
		c.navigateLocked(core.ViewWelcome)
	default:
		c.navigateLocked(core.ViewDashboard)
	}
}

// FindCharacter looks a character up in either collection
func (c *Controller) FindCharacter(id string) (core.Character, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	character := c.findCharacterLocked(id)
	if character == nil {
		return core.Character{}, core.NewErrorNotFound()
	}
	return copyCharacter(*character), nil
}

// FindLog looks a log up by id
func (c *Controller) FindLog(id string) (core.ArchiveLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := findLog(c.state.logs, id)
	if log == nil {
		if c.state.selectedLog != nil && c.state.selectedLog.ID == id {
			return copyLog(*c.state.selectedLog), nil
		}
		return core.ArchiveLog{}, core.NewErrorNotFound()
	}
	return copyLog(*log), nil
}

func (c *Controller) findCharacterLocked(id string) *core.Character {
	if c.state.selectedCharacter != nil && c.state.selectedCharacter.ID == id {
		return c.state.selectedCharacter
	}
	for i := range c.state.characters {
		if c.state.characters[i].ID == id {
			return &c.state.characters[i]
		}
	}
	for i := range c.state.myCharacters {
		if c.state.myCharacters[i].ID == id {
			return &c.state.myCharacters[i]
		}
	}
	return nil
}

func findLog(logs []core.ArchiveLog, id string) *core.ArchiveLog {
	for i := range logs {
		if logs[i].ID == id {
			return &logs[i]
		}
	}
	return nil
}

func replaceCharacter(characters []core.Character, saved core.Character) []core.Character {
	out := make([]core.Character, len(characters))
	for i, character := range characters {
		if character.ID == saved.ID {
			out[i] = saved
			continue
		}
		out[i] = character
	}
	return out
}

func removeCharacter(characters []core.Character, id string) []core.Character {
	out := make([]core.Character, 0, len(characters))
	for _, character := range characters {
		if character.ID != id {
			out = append(out, character)
		}
	}
	return out
}

func replaceLog(logs []core.ArchiveLog, saved core.ArchiveLog) []core.ArchiveLog {
	out := make([]core.ArchiveLog, len(logs))
	for i, l := range logs {
		if l.ID == saved.ID {
			out[i] = saved
			continue
		}
		out[i] = l
	}
	return out
}

// IsSuperseded reports whether err marks a response dropped in favour of a newer request
func IsSuperseded(err error) bool {
	return errors.Is(err, core.NewErrorSuperseded())
}
