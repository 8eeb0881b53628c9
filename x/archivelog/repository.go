//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go

// Package archivelog is the remote gateway for archive logs
package archivelog

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

var tracer = otel.Tracer("archivelog")

// Repository is the interface for archive log repository
type Repository interface {
	List(ctx context.Context) ([]core.LogRow, error)
	Get(ctx context.Context, id string) (core.LogRow, error)
	Create(ctx context.Context, row core.LogRow) (core.LogRow, error)
	Update(ctx context.Context, id string, fields map[string]any) (core.LogRow, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new archive log repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {

	var count int64
	err := db.Model(&core.LogRow{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count archive logs",
			slog.String("error", err.Error()),
		)
	}

	mc.Set(&memcache.Item{Key: "archivelog_count", Value: []byte(strconv.FormatInt(count, 10))})

	return &repository{db, mc}
}

// Count returns the total number of archive logs
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Repository.Count")
	defer span.End()

	item, err := r.mc.Get("archivelog_count")
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

func (r *repository) refreshCount(ctx context.Context) {
	var count int64
	err := r.db.WithContext(ctx).Model(&core.LogRow{}).Count(&count).Error
	if err != nil {
		slog.ErrorContext(
			ctx, "failed to count archive logs",
			slog.String("error", err.Error()),
		)
		return
	}

	r.mc.Set(&memcache.Item{Key: "archivelog_count", Value: []byte(strconv.FormatInt(count, 10))})
}

// List returns every archive log, newest first
func (r *repository) List(ctx context.Context) ([]core.LogRow, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Repository.List")
	defer span.End()

	var rows []core.LogRow
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return []core.LogRow{}, errors.Wrap(err, "failed to list archive logs")
	}
	if rows == nil {
		return []core.LogRow{}, nil
	}

	return rows, nil
}

// Get returns an archive log by id
func (r *repository) Get(ctx context.Context, id string) (core.LogRow, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Repository.Get")
	defer span.End()

	var row core.LogRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.LogRow{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.LogRow{}, errors.Wrap(err, "failed to get archive log")
	}

	return row, nil
}

// Create inserts a new archive log and assigns its id
func (r *repository) Create(ctx context.Context, row core.LogRow) (core.LogRow, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Repository.Create")
	defer span.End()

	row.ID = xid.New().String()

	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		span.RecordError(err)
		return core.LogRow{}, errors.Wrap(err, "failed to create archive log")
	}

	r.refreshCount(ctx)

	return r.Get(ctx, row.ID)
}

// Update writes only the given columns and returns the stored row
func (r *repository) Update(ctx context.Context, id string, fields map[string]any) (core.LogRow, error) {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Repository.Update")
	defer span.End()

	result := r.db.WithContext(ctx).Model(&core.LogRow{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		span.RecordError(result.Error)
		return core.LogRow{}, errors.Wrap(result.Error, "failed to update archive log")
	}
	if result.RowsAffected == 0 {
		return core.LogRow{}, core.NewErrorNotFound()
	}

	return r.Get(ctx, id)
}

// Delete removes an archive log together with its comments
func (r *repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "ArchiveLog.Repository.Delete")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("log_id = ?", id).Delete(&core.CommentRow{}).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&core.LogRow{}).Error
	})
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to delete archive log")
	}

	r.refreshCount(ctx)

	return nil
}
