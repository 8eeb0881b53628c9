//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go

// Package comment is the remote gateway for log comments
package comment

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/voidarchive/archive/core"
)

var tracer = otel.Tracer("comment")

// Repository is the interface for comment repository
type Repository interface {
	ListByLog(ctx context.Context, logID string) ([]core.CommentRow, error)
	Get(ctx context.Context, id string) (core.CommentRow, error)
	Create(ctx context.Context, row core.CommentRow) (core.CommentRow, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new comment repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {

	var count int64
	err := db.Model(&core.CommentRow{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count comments",
			slog.String("error", err.Error()),
		)
	}

	mc.Set(&memcache.Item{Key: "comment_count", Value: []byte(strconv.FormatInt(count, 10))})

	return &repository{db, mc}
}

// Count returns the total number of comments
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Comment.Repository.Count")
	defer span.End()

	item, err := r.mc.Get("comment_count")
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	count, err := strconv.ParseInt(string(item.Value), 10, 64)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return count, nil
}

// ListByLog returns the comments of a log, oldest first
func (r *repository) ListByLog(ctx context.Context, logID string) ([]core.CommentRow, error) {
	ctx, span := tracer.Start(ctx, "Comment.Repository.ListByLog")
	defer span.End()

	var rows []core.CommentRow
	err := r.db.WithContext(ctx).Where("log_id = ?", logID).Order("created_at asc").Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return []core.CommentRow{}, errors.Wrap(err, "failed to list comments")
	}
	if rows == nil {
		return []core.CommentRow{}, nil
	}

	return rows, nil
}

func (r *repository) Get(ctx context.Context, id string) (core.CommentRow, error) {
	ctx, span := tracer.Start(ctx, "Comment.Repository.Get")
	defer span.End()

	var row core.CommentRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.CommentRow{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.CommentRow{}, errors.Wrap(err, "failed to get comment")
	}

	return row, nil
}

// Create inserts a comment and assigns its id
func (r *repository) Create(ctx context.Context, row core.CommentRow) (core.CommentRow, error) {
	ctx, span := tracer.Start(ctx, "Comment.Repository.Create")
	defer span.End()

	row.ID = xid.New().String()

	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		span.RecordError(err)
		return core.CommentRow{}, errors.Wrap(err, "failed to create comment")
	}

	r.mc.Increment("comment_count", 1)

	return r.Get(ctx, row.ID)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Comment.Repository.Delete")
	defer span.End()

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&core.CommentRow{})
	if result.Error != nil {
		span.RecordError(result.Error)
		return errors.Wrap(result.Error, "failed to delete comment")
	}

	if result.RowsAffected > 0 {
		r.mc.Decrement("comment_count", uint64(result.RowsAffected))
	}

	return nil
}
