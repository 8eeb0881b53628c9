package archivelog

import (
	"context"
	"time"

	"github.com/voidarchive/archive/core"
)

type service struct {
	repo Repository
	auth core.AuthService
}

// NewService creates a new archive log service
func NewService(repo Repository, auth core.AuthService) core.LogService {
	return &service{repo, auth}
}

// Count returns the total number of archive logs
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// List returns every archive log without comments
func (s *service) List(ctx context.Context) ([]core.ArchiveLog, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Service.List")
	defer span.End()

	rows, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return []core.ArchiveLog{}, err
	}

	logs := make([]core.ArchiveLog, len(rows))
	for i, row := range rows {
		logs[i] = rowToLog(row)
	}
	return logs, nil
}

func (s *service) Get(ctx context.Context, id string) (core.ArchiveLog, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Service.Get")
	defer span.End()

	row, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return core.ArchiveLog{}, err
	}
	return rowToLog(row), nil
}

// Create stores a log owned by the current user
func (s *service) Create(ctx context.Context, log core.ArchiveLog) (core.ArchiveLog, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Service.Create")
	defer span.End()

	user, err := s.requireUser(ctx)
	if err != nil {
		span.RecordError(err)
		return core.ArchiveLog{}, err
	}

	if log.Status != "" && !validStatus(log.Status) {
		return core.ArchiveLog{}, core.NewErrorInvalidInput("unknown status " + string(log.Status))
	}
	if log.Timestamp == "" {
		log.Timestamp = core.DisplayDate(time.Now())
	}

	created, err := s.repo.Create(ctx, logToRow(log, user.ID))
	if err != nil {
		span.RecordError(err)
		return core.ArchiveLog{}, err
	}

	return rowToLog(created), nil
}

// Update applies a sparse patch to a log owned by the current user
func (s *service) Update(ctx context.Context, id string, patch core.LogPatch) (core.ArchiveLog, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Service.Update")
	defer span.End()

	if patch.Status != nil && !validStatus(*patch.Status) {
		return core.ArchiveLog{}, core.NewErrorInvalidInput("unknown status " + string(*patch.Status))
	}

	err := s.checkOwner(ctx, id)
	if err != nil {
		span.RecordError(err)
		return core.ArchiveLog{}, err
	}

	updated, err := s.repo.Update(ctx, id, patchToFields(patch))
	if err != nil {
		span.RecordError(err)
		return core.ArchiveLog{}, err
	}

	return rowToLog(updated), nil
}

// Delete removes a log owned by the current user
func (s *service) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Service.Delete")
	defer span.End()

	err := s.checkOwner(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return s.repo.Delete(ctx, id)
}

// ToggleFavorite writes the inverse of current
func (s *service) ToggleFavorite(ctx context.Context, id string, current bool) error {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Service.ToggleFavorite")
	defer span.End()

	_, err := s.requireUser(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}

	_, err = s.repo.Update(ctx, id, map[string]any{
		"is_favorite": !current,
		"updated_at":  time.Now(),
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
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
