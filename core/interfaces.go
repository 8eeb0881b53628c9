//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
)

type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*AuthUser, error)
	SignIn(ctx context.Context, email, password string) (*AuthUser, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*AuthUser, error)
	Resume(ctx context.Context, token string) (*AuthUser, error)
	Token(ctx context.Context) (string, error)
	Subscribe(callback func(user *AuthUser)) func()
}

type CharacterService interface {
	List(ctx context.Context) ([]Character, error)
	ListMine(ctx context.Context) ([]Character, error)
	Get(ctx context.Context, id string) (Character, error)
	Create(ctx context.Context, character Character) (Character, error)
	Update(ctx context.Context, id string, patch CharacterPatch) (Character, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type LogService interface {
	List(ctx context.Context) ([]ArchiveLog, error)
	Get(ctx context.Context, id string) (ArchiveLog, error)
	Create(ctx context.Context, log ArchiveLog) (ArchiveLog, error)
	Update(ctx context.Context, id string, patch LogPatch) (ArchiveLog, error)
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string, current bool) error
	Count(ctx context.Context) (int64, error)
}

type CommentService interface {
	ListByLog(ctx context.Context, logID string) ([]Comment, error)
	Create(ctx context.Context, logID string, comment Comment) (Comment, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ProfileService interface {
	Get(ctx context.Context) (UserProfile, error)
	Update(ctx context.Context, patch ProfilePatch) (UserProfile, error)
	Create(ctx context.Context, profile UserProfile) (UserProfile, error)
	Count(ctx context.Context) (int64, error)
}

type ImageService interface {
	Upload(ctx context.Context, data []byte, filename, contentType, folder string) (string, error)
	Delete(ctx context.Context, url string) error
	Open(ctx context.Context, key string) ([]byte, error)
	Count(ctx context.Context) (int64, error)
}

type AssistService interface {
	GenerateCharacter(ctx context.Context, prompt string) (CharacterDraft, error)
	ContinueLog(ctx context.Context, background, lastMessage string) (string, error)
}
