package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/voidarchive/archive/core"
)

type loaded struct {
	characters   []core.Character
	myCharacters []core.Character
	logs         []core.ArchiveLog
	profile      *core.UserProfile
}

// resolve applies an auth transition: load everything for a user, clear everything for nil
func (c *Controller) resolve(ctx context.Context, user *core.AuthUser) {
	ctx, span := tracer.Start(ctx, "Controller.Resolve")
	defer span.End()

	c.mu.Lock()
	c.authGeneration++
	generation := c.authGeneration

	if user == nil {
		c.state.authenticated = false
		c.state.characters = []core.Character{}
		c.state.myCharacters = []core.Character{}
		c.state.logs = []core.ArchiveLog{}
		c.state.selectedCharacter = nil
		c.state.selectedLog = nil
		c.navigateLocked(core.ViewWelcome)
		c.state.loading = false
		c.firstLoadDone = true
		c.publishLocked()
		c.mu.Unlock()
		return
	}

	c.state.authenticated = true
	c.state.authError = ""
	c.publishLocked()
	c.mu.Unlock()

	data := c.load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.authGeneration {
		slog.DebugContext(ctx, "discarding load of a superseded session")
		return
	}

	c.state.characters = data.characters
	c.state.myCharacters = data.myCharacters
	c.state.logs = data.logs
	if data.profile != nil {
		c.state.profile = *data.profile
	}

	if !c.firstLoadDone && c.state.view == core.ViewWelcome {
		c.navigateLocked(core.ViewDashboard)
	}
	c.firstLoadDone = true
	c.state.loading = false
	c.publishLocked()
}

// load fetches every collection concurrently; failed parts stay empty
func (c *Controller) load(ctx context.Context) loaded {
	ctx, span := tracer.Start(ctx, "Controller.Load")
	defer span.End()

	result := loaded{
		characters:   []core.Character{},
		myCharacters: []core.Character{},
		logs:         []core.ArchiveLog{},
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		characters, err := c.characters.List(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load characters", slog.String("error", err.Error()))
			return
		}
		result.characters = characters
	}()

	go func() {
		defer wg.Done()
		characters, err := c.characters.ListMine(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load my characters", slog.String("error", err.Error()))
			return
		}
		result.myCharacters = characters
	}()

	go func() {
		defer wg.Done()
		logs, err := c.logs.List(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load logs", slog.String("error", err.Error()))
			return
		}
		result.logs = logs
	}()

	go func() {
		defer wg.Done()
		profile, err := c.profiles.Get(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load profile", slog.String("error", err.Error()))
			return
		}
		result.profile = &profile
	}()

	wg.Wait()

	wg.Add(len(result.logs))
	for i := range result.logs {
		go func(i int) {
			defer wg.Done()
			comments, err := c.comments.ListByLog(ctx, result.logs[i].ID)
			if err != nil {
				slog.ErrorContext(
					ctx, "failed to load comments",
					slog.String("log", result.logs[i].ID),
					slog.String("error", err.Error()),
				)
				result.logs[i].Comments = []core.Comment{}
				return
			}
			result.logs[i].Comments = comments
		}(i)
	}
	wg.Wait()

	return result
}
