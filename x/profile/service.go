package profile

import (
	"context"
	"errors"
	"log/slog"

	"github.com/voidarchive/archive/core"
)

type service struct {
	repo Repository
	auth core.AuthService
}

// NewService creates a new profile service
func NewService(repo Repository, auth core.AuthService) core.ProfileService {
	return &service{repo, auth}
}

func (s *service) currentUser(ctx context.Context) (*core.AuthUser, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, core.NewErrorPermissionDenied()
	}
	return user, nil
}

// Get returns the current user's profile, or a default one when none is stored
func (s *service) Get(ctx context.Context) (core.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "Profile.Service.Get")
	defer span.End()

	user, err := s.currentUser(ctx)
	if err != nil {
		span.RecordError(err)
		return core.UserProfile{}, err
	}

	row, err := s.repo.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, core.NewErrorNotFound()) {
			return defaultProfile(user), nil
		}
		span.RecordError(err)
		return core.UserProfile{}, err
	}

	return rowToProfile(row), nil
}

// Update applies a sparse patch; a missing profile is created from the defaults first
func (s *service) Update(ctx context.Context, patch core.ProfilePatch) (core.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "Profile.Service.Update")
	defer span.End()

	user, err := s.currentUser(ctx)
	if err != nil {
		span.RecordError(err)
		return core.UserProfile{}, err
	}

	if patch.Theme != nil && *patch.Theme != core.ThemeLight && *patch.Theme != core.ThemeDark {
		return core.UserProfile{}, core.NewErrorInvalidInput("unknown theme " + string(*patch.Theme))
	}

	row, err := s.repo.Update(ctx, user.ID, patchToFields(patch))
	if err == nil {
		return rowToProfile(row), nil
	}
	if !errors.Is(err, core.NewErrorNotFound()) {
		span.RecordError(err)
		return core.UserProfile{}, err
	}

	slog.DebugContext(
		ctx, "creating profile on first update",
		slog.String("user", user.ID),
	)

	row, err = s.repo.Create(ctx, profileToRow(user.ID, applyPatch(defaultProfile(user), patch)))
	if err != nil {
		span.RecordError(err)
		return core.UserProfile{}, err
	}

	return rowToProfile(row), nil
}

// Create stores the current user's profile
func (s *service) Create(ctx context.Context, profile core.UserProfile) (core.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "Profile.Service.Create")
	defer span.End()

	user, err := s.currentUser(ctx)
	if err != nil {
		span.RecordError(err)
		return core.UserProfile{}, err
	}

	row, err := s.repo.Create(ctx, profileToRow(user.ID, profile))
	if err != nil {
		span.RecordError(err)
		return core.UserProfile{}, err
	}

	return rowToProfile(row), nil
}

// Count returns the total number of stored profiles
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Profile.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}
