package core

import (
	"time"

	"github.com/lib/pq"
)

// CharacterRow is the wire form of a character
type CharacterRow struct {
	ID           string         `json:"id" gorm:"primaryKey;type:char(20)"`
	UserID       string         `json:"user_id" gorm:"type:char(20);index"`
	Name         string         `json:"name" gorm:"type:text;not null"`
	Title        *string        `json:"title" gorm:"type:text"`
	Tags         pq.StringArray `json:"tags" gorm:"type:text[]"`
	Attributes   *string        `json:"attributes" gorm:"type:json"`
	Ability      *string        `json:"ability" gorm:"type:text"`
	Stats        *string        `json:"stats" gorm:"type:text"`
	Trivia       pq.StringArray `json:"trivia" gorm:"type:text[]"`
	Introduction *string        `json:"introduction" gorm:"type:text"`
	Quote        *string        `json:"quote" gorm:"type:text"`
	ImageURL     *string        `json:"image_url" gorm:"type:text"`
	IsDraft      bool           `json:"is_draft" gorm:"type:boolean;default:false"`
	CreatedAt    time.Time      `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"type:timestamp with time zone;autoUpdateTime"`
}

func (CharacterRow) TableName() string {
	return "characters"
}

// LogRow is the wire form of an archive log.
// Entries keep the role-string encoding (see EntryRow).
type LogRow struct {
	ID           string         `json:"id" gorm:"primaryKey;type:char(20)"`
	UserID       string         `json:"user_id" gorm:"type:char(20);index"`
	Title        string         `json:"title" gorm:"type:text;not null"`
	Status       string         `json:"status" gorm:"type:text;not null;default:'Ongoing'"`
	Timestamp    *string        `json:"timestamp" gorm:"type:text"`
	WordCount    string         `json:"word_count" gorm:"type:text;default:'0'"`
	Summary      *string        `json:"summary" gorm:"type:text"`
	ImageURL     *string        `json:"image_url" gorm:"type:text"`
	Participants pq.StringArray `json:"participants" gorm:"type:text[]"`
	Entries      *string        `json:"entries" gorm:"type:json"`
	IsFavorite   bool           `json:"is_favorite" gorm:"type:boolean;default:false"`
	CreatedAt    time.Time      `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"type:timestamp with time zone;autoUpdateTime"`
}

func (LogRow) TableName() string {
	return "archive_logs"
}

// EntryRow is the wire form of a log entry inside LogRow.Entries
type EntryRow struct {
	Role          string `json:"role"`
	Timestamp     string `json:"timestamp"`
	Content       string `json:"content"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	ParticipantID string `json:"participantId,omitempty"`
}

// CommentRow is the wire form of a comment
type CommentRow struct {
	ID          string    `json:"id" gorm:"primaryKey;type:char(20)"`
	LogID       string    `json:"log_id" gorm:"type:char(20);index"`
	UserID      string    `json:"user_id" gorm:"type:char(20)"`
	UserName    string    `json:"user_name" gorm:"type:text;not null"`
	UserAvatar  *string   `json:"user_avatar" gorm:"type:text"`
	Timestamp   *string   `json:"timestamp" gorm:"type:text"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	ParentID    *string   `json:"parent_id" gorm:"type:char(20)"`
	ReplyToName *string   `json:"reply_to_name" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

func (CommentRow) TableName() string {
	return "comments"
}

// ProfileRow is the wire form of a user profile; ID is the account id
type ProfileRow struct {
	ID        string    `json:"id" gorm:"primaryKey;type:char(20)"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Signature *string   `json:"signature" gorm:"type:text"`
	AvatarURL *string   `json:"avatar_url" gorm:"type:text"`
	Theme     string    `json:"theme" gorm:"type:text;default:'dark'"`
	CreatedAt time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"type:timestamp with time zone;autoUpdateTime"`
}

func (ProfileRow) TableName() string {
	return "user_profiles"
}

// Account is a credential record of the authentication collaborator
type Account struct {
	ID           string     `json:"id" gorm:"primaryKey;type:char(20)"`
	Email        string     `json:"email" gorm:"type:text;uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"type:text"`
	PasswordHash string     `json:"-" gorm:"type:text;not null"`
	ConfirmedAt  *time.Time `json:"confirmed_at" gorm:"type:timestamp with time zone"`
	CreatedAt    time.Time  `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

func (Account) TableName() string {
	return "accounts"
}

// Tables lists every persisted row type for migration
func Tables() []any {
	return []any{
		&Account{},
		&CharacterRow{},
		&LogRow{},
		&CommentRow{},
		&ProfileRow{},
	}
}
