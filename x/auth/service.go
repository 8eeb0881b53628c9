package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/jwt"
	"github.com/voidarchive/archive/x/util"
)

// Service is the session holder of one daemon
type Service interface {
	core.AuthService
	Confirm(ctx context.Context, email string) error
	Watch(ctx context.Context)
}

type session struct {
	user   core.AuthUser
	token  string
	claims jwt.Claims
}

type service struct {
	repository Repository
	tokens     jwt.Service
	config     util.Config

	mu        sync.Mutex
	current   *session
	listeners map[int]func(*core.AuthUser)
	nextID    int
}

// NewService creates a new auth service
func NewService(repository Repository, tokens jwt.Service, config util.Config) Service {
	return &service{
		repository: repository,
		tokens:     tokens,
		config:     config,
		listeners:  map[int]func(*core.AuthUser){},
	}
}

// Subscribe registers a callback for session changes; the returned func unregisters it
func (s *service) Subscribe(callback func(user *core.AuthUser)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = callback

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// notify runs the callbacks outside the lock so they may call back into the service
func (s *service) notify(user *core.AuthUser) {
	s.mu.Lock()
	callbacks := make([]func(*core.AuthUser), 0, len(s.listeners))
	for _, callback := range s.listeners {
		callbacks = append(callbacks, callback)
	}
	s.mu.Unlock()

	for _, callback := range callbacks {
		if user == nil {
			callback(nil)
			continue
		}
		copied := *user
		callback(&copied)
	}
}

func (s *service) setSession(next *session) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if next == nil {
		s.notify(nil)
		return
	}
	s.notify(&next.user)
}

// SignUp registers an account and signs it in when no confirmation is pending
func (s *service) SignUp(ctx context.Context, email, password, name string) (*core.AuthUser, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.SignUp")
	defer span.End()

	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return nil, core.NewErrorInvalidInput("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, core.NewErrorInvalidInput("password should be at least 6 characters")
	}

	_, err := s.repository.GetAccountByEmail(ctx, email)
	if err == nil {
		return nil, core.NewErrorInvalidInput("user already registered")
	}
	if !errors.Is(err, core.NewErrorNotFound()) {
		span.RecordError(err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	account := core.Account{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if !s.config.Auth.RequireEmailConfirmation {
		now := time.Now()
		account.ConfirmedAt = &now
	}

	_, err = s.repository.CreateAccount(ctx, account)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return s.SignIn(ctx, email, password)
}

// SignIn checks the credentials and starts a session
func (s *service) SignIn(ctx context.Context, email, password string) (*core.AuthUser, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.SignIn")
	defer span.End()

	account, err := s.repository.GetAccountByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, core.NewErrorNotFound()) {
			return nil, core.NewErrorInvalidCredentials()
		}
		span.RecordError(err)
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	if err != nil {
		return nil, core.NewErrorInvalidCredentials()
	}

	if account.ConfirmedAt == nil {
		return nil, core.NewErrorConfirmationRequired()
	}

	token, claims, err := s.tokens.Issue(ctx, account.ID, account.Email, account.Name)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	user := core.AuthUser{ID: account.ID, Email: account.Email, Name: account.Name}
	s.setSession(&session{user: user, token: token, claims: claims})

	err = s.repository.PublishEvent(ctx, core.AuthEvent{Type: core.AuthEventSignedIn, Subject: account.ID, JTI: claims.ID})
	if err != nil {
		slog.WarnContext(
			ctx, "failed to publish sign-in event",
			slog.String("error", err.Error()),
		)
	}

	return &user, nil
}

// SignOut revokes the session token and ends the session
func (s *service) SignOut(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.SignOut")
	defer span.End()

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return nil
	}

	err := s.tokens.Revoke(ctx, current.claims)
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.setSession(nil)

	err = s.repository.PublishEvent(ctx, core.AuthEvent{Type: core.AuthEventSignedOut, Subject: current.user.ID, JTI: current.claims.ID})
	if err != nil {
		slog.WarnContext(
			ctx, "failed to publish sign-out event",
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// CurrentUser returns the session identity, or nil when signed out
func (s *service) CurrentUser(ctx context.Context) (*core.AuthUser, error) {
	_, span := tracer.Start(ctx, "Auth.Service.CurrentUser")
	defer span.End()

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return nil, nil
	}

	if current.claims.ExpiresAt != nil && current.claims.ExpiresAt.Before(time.Now()) {
		s.setSession(nil)
		return nil, nil
	}

	user := current.user
	return &user, nil
}

// Token returns the session token, or an empty string when signed out
func (s *service) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return "", nil
	}
	return s.current.token, nil
}

// Resume restores a session from a previously issued token
func (s *service) Resume(ctx context.Context, token string) (*core.AuthUser, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Resume")
	defer span.End()

	claims, err := s.tokens.Verify(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, core.NewErrorInvalidCredentials()
	}

	account, err := s.repository.GetAccount(ctx, claims.Subject)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, core.NewErrorNotFound()) {
			return nil, core.NewErrorInvalidCredentials()
		}
		return nil, err
	}

	user := core.AuthUser{ID: account.ID, Email: account.Email, Name: account.Name}
	s.setSession(&session{user: user, token: token, claims: claims})

	return &user, nil
}

// Confirm marks an account's email as confirmed
func (s *service) Confirm(ctx context.Context, email string) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Confirm")
	defer span.End()

	err := s.repository.ConfirmAccount(ctx, strings.TrimSpace(email))
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Watch ends the local session when another daemon signs the same token out
func (s *service) Watch(ctx context.Context) {
	for event := range s.repository.SubscribeEvents(ctx) {
		if event.Type != core.AuthEventSignedOut {
			continue
		}

		s.mu.Lock()
		current := s.current
		s.mu.Unlock()

		if current == nil || current.claims.ID != event.JTI {
			continue
		}

		slog.InfoContext(
			ctx, "session revoked remotely",
			slog.String("user", event.Subject),
		)
		s.setSession(nil)
	}
}
