package controller

import (
	"github.com/voidarchive/archive/core"
)

// Snapshot is an immutable copy of the controller state plus its derived statistics
type Snapshot struct {
	Version           uint64            `json:"version"`
	View              core.View         `json:"view"`
	CurrentView       core.View         `json:"currentView"`
	Source            core.View         `json:"source,omitempty"`
	SelectedCharacter *core.Character   `json:"selectedCharacter"`
	SelectedLog       *core.ArchiveLog  `json:"selectedLog"`
	Characters        []core.Character  `json:"characters"`
	MyCharacters      []core.Character  `json:"myCharacters"`
	Logs              []core.ArchiveLog `json:"logs"`
	Authenticated     bool              `json:"authenticated"`
	Loading           bool              `json:"loading"`
	Profile           core.UserProfile  `json:"profile"`
	Stats             core.Stats        `json:"stats"`
	ScrollPosition    int               `json:"scrollPosition"`
	Notice            string            `json:"notice,omitempty"`
	AuthError         string            `json:"authError,omitempty"`
}

type state struct {
	view              core.View
	source            core.View
	selectedCharacter *core.Character
	selectedLog       *core.ArchiveLog
	characters        []core.Character
	myCharacters      []core.Character
	logs              []core.ArchiveLog
	authenticated     bool
	loading           bool
	profile           core.UserProfile
	scroll            int
	notice            string
	authError         string
}

func initialState() state {
	return state{
		view:         core.ViewWelcome,
		characters:   []core.Character{},
		myCharacters: []core.Character{},
		logs:         []core.ArchiveLog{},
		loading:      true,
		profile: core.UserProfile{
			Name:      core.LoadingProfileName,
			AvatarURL: core.DefaultAvatarURL,
			Theme:     core.ThemeDark,
		},
	}
}

func (s state) snapshot(version uint64) Snapshot {
	view := s.view
	if !s.authenticated {
		view = core.ViewWelcome
	}

	snapshot := Snapshot{
		Version:        version,
		View:           view,
		CurrentView:    s.view,
		Source:         s.source,
		Characters:     copyCharacters(s.characters),
		MyCharacters:   copyCharacters(s.myCharacters),
		Logs:           copyLogs(s.logs),
		Authenticated:  s.authenticated,
		Loading:        s.loading,
		Profile:        s.profile,
		Stats:          core.ComputeStats(s.logs, s.characters),
		ScrollPosition: s.scroll,
		Notice:         s.notice,
		AuthError:      s.authError,
	}
	if s.selectedCharacter != nil {
		character := copyCharacter(*s.selectedCharacter)
		snapshot.SelectedCharacter = &character
	}
	if s.selectedLog != nil {
		log := copyLog(*s.selectedLog)
		snapshot.SelectedLog = &log
	}
	return snapshot
}

func copyStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyCharacter(c core.Character) core.Character {
	c.Tags = copyStrings(c.Tags)
	c.Trivia = copyStrings(c.Trivia)
	return c
}

func copyCharacters(in []core.Character) []core.Character {
	out := make([]core.Character, len(in))
	for i, c := range in {
		out[i] = copyCharacter(c)
	}
	return out
}

func copyLog(l core.ArchiveLog) core.ArchiveLog {
	l.Participants = copyStrings(l.Participants)

	entries := make([]core.LogEntry, len(l.Entries))
	copy(entries, l.Entries)
	l.Entries = entries

	comments := make([]core.Comment, len(l.Comments))
	copy(comments, l.Comments)
	l.Comments = comments
	return l
}

func copyLogs(in []core.ArchiveLog) []core.ArchiveLog {
	out := make([]core.ArchiveLog, len(in))
	for i, l := range in {
		out[i] = copyLog(l)
	}
	return out
}
