package comment

import (
	"context"
	"strings"

	"github.com/voidarchive/archive/core"
)

type service struct {
	repo Repository
	auth core.AuthService
}

// NewService creates a new comment service
func NewService(repo Repository, auth core.AuthService) core.CommentService {
	return &service{repo, auth}
}

// Count returns the total number of comments
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Comment.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// ListByLog returns the comments of a log in chronological order
func (s *service) ListByLog(ctx context.Context, logID string) ([]core.Comment, error) {
	ctx, span := tracer.Start(ctx, "Comment.Service.ListByLog")
	defer span.End()

	rows, err := s.repo.ListByLog(ctx, logID)
	if err != nil {
		span.RecordError(err)
		return []core.Comment{}, err
	}

	comments := make([]core.Comment, len(rows))
	for i, row := range rows {
		comments[i] = rowToComment(row)
	}
	return comments, nil
}

// Create posts a comment on a log as the current user
func (s *service) Create(ctx context.Context, logID string, comment core.Comment) (core.Comment, error) {
	ctx, span := tracer.Start(ctx, "Comment.Service.Create")
	defer span.End()

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		span.RecordError(err)
		return core.Comment{}, err
	}
	if user == nil {
		return core.Comment{}, core.NewErrorPermissionDenied()
	}

	if strings.TrimSpace(comment.Content) == "" {
		return core.Comment{}, core.NewErrorInvalidInput("comment is empty")
	}
	if comment.UserName == "" {
		comment.UserName = user.Name
	}

	created, err := s.repo.Create(ctx, commentToRow(logID, user.ID, comment))
	if err != nil {
		span.RecordError(err)
		return core.Comment{}, err
	}

	return rowToComment(created), nil
}

// Delete removes a comment written by the current user
func (s *service) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Comment.Service.Delete")
	defer span.End()

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if user == nil {
		return core.NewErrorPermissionDenied()
	}

	row, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if row.UserID != user.ID {
		return core.NewErrorPermissionDenied()
	}

	return s.repo.Delete(ctx, id)
}
