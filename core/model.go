package core

// View is one of the named screens of the archive client
type View string

const (
	ViewNone            View = ""
	ViewWelcome         View = "welcome"
	ViewDashboard       View = "dashboard"
	ViewCharacterList   View = "character_list"
	ViewCharacterDetail View = "character_detail"
	ViewCharacterEditor View = "character_editor"
	ViewLogDetail       View = "log_detail"
	ViewLogEditor       View = "log_editor"
	ViewProfile         View = "profile"
	ViewDrafts          View = "drafts"
	ViewSavedArchive    View = "saved_archive"
	ViewMyCharacters    View = "my_characters"
	ViewSettings        View = "settings"
	ViewComments        View = "comments"
	ViewAllLogs         View = "all_logs"
)

// Views lists every navigable view
var Views = []View{
	ViewWelcome,
	ViewDashboard,
	ViewCharacterList,
	ViewCharacterDetail,
	ViewCharacterEditor,
	ViewLogDetail,
	ViewLogEditor,
	ViewProfile,
	ViewDrafts,
	ViewSavedArchive,
	ViewMyCharacters,
	ViewSettings,
	ViewComments,
	ViewAllLogs,
}

// IsValid reports whether v names a navigable view
func (v View) IsValid() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}

// IsEditor reports whether v is one of the two editor views
func (v View) IsEditor() bool {
	return v == ViewCharacterEditor || v == ViewLogEditor
}

// CharacterAttributes is the fixed attribute block of a character
type CharacterAttributes struct {
	Height    string `json:"height"`
	Age       string `json:"age"`
	Alignment string `json:"alignment"`
	Gender    string `json:"gender"`
}

// Character is a user-authored character profile
type Character struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Title        string              `json:"title"`
	Tags         []string            `json:"tags"`
	Attributes   CharacterAttributes `json:"attributes"`
	Ability      string              `json:"ability,omitempty"`
	Stats        string              `json:"stats,omitempty"`
	Trivia       []string            `json:"trivia"`
	Introduction string              `json:"introduction"`
	Quote        string              `json:"quote,omitempty"`
	ImageURL     string              `json:"imageUrl"`
	IsDraft      bool                `json:"isDraft"`
}

// LogStatus is the lifecycle state of an archive log
type LogStatus string

const (
	LogStatusOngoing  LogStatus = "Ongoing"
	LogStatusFinished LogStatus = "Finished"
	LogStatusStandby  LogStatus = "Standby"
)

// IsListed reports whether logs in this status may appear in user-facing listings
func (s LogStatus) IsListed() bool {
	return s != LogStatusStandby
}

// EntryKind discriminates the variants of a log entry
type EntryKind int

const (
	EntryNarration EntryKind = iota
	EntryChapter
	EntrySpeech
)

// LogEntry is one block of a narrative transcript.
// Speaker and ParticipantID are only meaningful for EntrySpeech.
type LogEntry struct {
	Kind          EntryKind `json:"kind"`
	Speaker       string    `json:"speaker,omitempty"`
	ParticipantID string    `json:"participantId,omitempty"`
	Timestamp     string    `json:"timestamp"`
	Content       string    `json:"content"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
}

// Comment is a flat, chronologically ordered remark on a log
type Comment struct {
	ID          string `json:"id"`
	UserName    string `json:"userName"`
	UserAvatar  string `json:"userAvatar"`
	Timestamp   string `json:"timestamp"`
	Content     string `json:"content"`
	ParentID    string `json:"parentId,omitempty"`
	ReplyToName string `json:"replyToName,omitempty"`
}

// ArchiveLog is a narrative record composed of ordered entries
type ArchiveLog struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Status       LogStatus  `json:"status"`
	Timestamp    string     `json:"timestamp"`
	WordCount    int        `json:"wordCount"`
	Summary      string     `json:"summary"`
	ImageURL     string     `json:"imageUrl"`
	Participants []string   `json:"participants"`
	Entries      []LogEntry `json:"entries"`
	IsFavorite   bool       `json:"isFavorite"`
	Comments     []Comment  `json:"comments"`
}

// Theme is the colour scheme preference of a profile
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// UserProfile is the singleton profile of an authenticated identity
type UserProfile struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	AvatarURL string `json:"avatarUrl"`
	Theme     Theme  `json:"theme"`
}

// AuthUser is the resolved identity of the current session
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Stats is the derived profile statistics block
type Stats struct {
	LogsCount       int    `json:"logsCount"`
	WordCount       string `json:"wordCount"`
	CharactersCount int    `json:"charactersCount"`
}

// CharacterDraft is a generated character profile suggestion
type CharacterDraft struct {
	Name         string              `json:"name"`
	Title        string              `json:"title"`
	Introduction string              `json:"introduction"`
	Ability      string              `json:"ability"`
	Stats        string              `json:"stats"`
	Trivia       []string            `json:"trivia"`
	Tags         []string            `json:"tags"`
	Attributes   CharacterAttributes `json:"attributes"`
}

// CharacterPatch is a sparse character update; nil fields are left untouched
type CharacterPatch struct {
	Name         *string
	Title        *string
	Tags         *[]string
	Attributes   *CharacterAttributes
	Ability      *string
	Stats        *string
	Trivia       *[]string
	Introduction *string
	Quote        *string
	ImageURL     *string
	IsDraft      *bool
}

// LogPatch is a sparse log update; nil fields are left untouched
type LogPatch struct {
	Title        *string
	Status       *LogStatus
	Timestamp    *string
	WordCount    *int
	Summary      *string
	ImageURL     *string
	Participants *[]string
	Entries      *[]LogEntry
	IsFavorite   *bool
}

// ProfilePatch is a sparse profile update; nil fields are left untouched
type ProfilePatch struct {
	Name      *string
	Signature *string
	AvatarURL *string
	Theme     *Theme
}

// PatchFromCharacter builds a patch that writes every field of c
func PatchFromCharacter(c Character) CharacterPatch {
	tags := c.Tags
	trivia := c.Trivia
	attributes := c.Attributes
	return CharacterPatch{
		Name:         &c.Name,
		Title:        &c.Title,
		Tags:         &tags,
		Attributes:   &attributes,
		Ability:      &c.Ability,
		Stats:        &c.Stats,
		Trivia:       &trivia,
		Introduction: &c.Introduction,
		Quote:        &c.Quote,
		ImageURL:     &c.ImageURL,
		IsDraft:      &c.IsDraft,
	}
}

// PatchFromLog builds a patch that writes every persisted field of l
func PatchFromLog(l ArchiveLog) LogPatch {
	participants := l.Participants
	entries := l.Entries
	return LogPatch{
		Title:        &l.Title,
		Status:       &l.Status,
		Timestamp:    &l.Timestamp,
		WordCount:    &l.WordCount,
		Summary:      &l.Summary,
		ImageURL:     &l.ImageURL,
		Participants: &participants,
		Entries:      &entries,
		IsFavorite:   &l.IsFavorite,
	}
}

// PatchFromProfile builds a patch that writes every field of p
func PatchFromProfile(p UserProfile) ProfilePatch {
	return ProfilePatch{
		Name:      &p.Name,
		Signature: &p.Signature,
		AvatarURL: &p.AvatarURL,
		Theme:     &p.Theme,
	}
}

// AuthEvent is broadcast on the auth channel whenever a session starts or ends
type AuthEvent struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	JTI     string `json:"jti"`
}
