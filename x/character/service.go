package character

import (
	"context"

	"github.com/voidarchive/archive/core"
)

type service struct {
	repo Repository
	auth core.AuthService
}

// NewService creates a new character service
func NewService(repo Repository, auth core.AuthService) core.CharacterService {
	return &service{repo, auth}
}

// Count returns the total number of characters
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// List returns every user's characters
func (s *service) List(ctx context.Context) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.List")
	defer span.End()

	rows, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return []core.Character{}, err
	}

	characters := make([]core.Character, len(rows))
	for i, row := range rows {
		characters[i] = rowToCharacter(row)
	}
	return characters, nil
}

// ListMine returns the current user's characters; empty when signed out
func (s *service) ListMine(ctx context.Context) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.ListMine")
	defer span.End()

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		span.RecordError(err)
		return []core.Character{}, err
	}
	if user == nil {
		return []core.Character{}, nil
	}

	rows, err := s.repo.ListByOwner(ctx, user.ID)
	if err != nil {
		span.RecordError(err)
		return []core.Character{}, err
	}

	characters := make([]core.Character, len(rows))
	for i, row := range rows {
		characters[i] = rowToCharacter(row)
	}
	return characters, nil
}

func (s *service) Get(ctx context.Context, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Get")
	defer span.End()

	row, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}
	return rowToCharacter(row), nil
}

// Create stores a character owned by the current user
func (s *service) Create(ctx context.Context, character core.Character) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Create")
	defer span.End()

	user, err := s.requireUser(ctx)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	if character.Name == "" {
		return core.Character{}, core.NewErrorInvalidInput("name is required")
	}

	created, err := s.repo.Create(ctx, characterToRow(character, user.ID))
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	return rowToCharacter(created), nil
}

// Update applies a sparse patch to a character owned by the current user
func (s *service) Update(ctx context.Context, id string, patch core.CharacterPatch) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Update")
	defer span.End()

	err := s.checkOwner(ctx, id)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	updated, err := s.repo.Update(ctx, id, patchToFields(patch))
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	return rowToCharacter(updated), nil
}

// Delete removes a character owned by the current user
func (s *service) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Character.Service.Delete")
	defer span.End()

	err := s.checkOwner(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) requireUser(ctx context.Context) (*core.AuthUser, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, core.NewErrorPermissionDenied()
	}
	return user, nil
}

func (s *service) checkOwner(ctx context.Context, id string) error {
	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}

	row, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if row.UserID != user.ID {
		return core.NewErrorPermissionDenied()
	}
	return nil
}
