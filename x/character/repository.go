//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go

// Package character is the remote gateway for character profiles
package character

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

var tracer = otel.Tracer("character")

// Repository is the interface for character repository
type Repository interface {
	List(ctx context.Context) ([]core.CharacterRow, error)
	ListByOwner(ctx context.Context, owner string) ([]core.CharacterRow, error)
	Get(ctx context.Context, id string) (core.CharacterRow, error)
	Create(ctx context.Context, row core.CharacterRow) (core.CharacterRow, error)
	Update(ctx context.Context, id string, fields map[string]any) (core.CharacterRow, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new character repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {

	var count int64
	err := db.Model(&core.CharacterRow{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count characters",
			slog.String("error", err.Error()),
		)
	}

	mc.Set(&memcache.Item{Key: "character_count", Value: []byte(strconv.FormatInt(count, 10))})

	return &repository{db, mc}
}

// Count returns the total number of characters
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Count")
	defer span.End()

	item, err := r.mc.Get("character_count")
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
	err := r.db.WithContext(ctx).Model(&core.CharacterRow{}).Count(&count).Error
	if err != nil {
		slog.ErrorContext(
			ctx, "failed to count characters",
			slog.String("error", err.Error()),
		)
		return
	}

	r.mc.Set(&memcache.Item{Key: "character_count", Value: []byte(strconv.FormatInt(count, 10))})
}

// List returns every character, newest first
func (r *repository) List(ctx context.Context) ([]core.CharacterRow, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.List")
	defer span.End()

	var rows []core.CharacterRow
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return []core.CharacterRow{}, errors.Wrap(err, "failed to list characters")
	}
	if rows == nil {
		return []core.CharacterRow{}, nil
	}

	return rows, nil
}

// ListByOwner returns the characters created by owner, newest first
func (r *repository) ListByOwner(ctx context.Context, owner string) ([]core.CharacterRow, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.ListByOwner")
	defer span.End()

	var rows []core.CharacterRow
	err := r.db.WithContext(ctx).Where("user_id = ?", owner).Order("created_at desc").Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return []core.CharacterRow{}, errors.Wrap(err, "failed to list characters by owner")
	}
	if rows == nil {
		return []core.CharacterRow{}, nil
	}

	return rows, nil
}

// Get returns a character by id
func (r *repository) Get(ctx context.Context, id string) (core.CharacterRow, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Get")
	defer span.End()

	var row core.CharacterRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.CharacterRow{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.CharacterRow{}, errors.Wrap(err, "failed to get character")
	}

	return row, nil
}

// Create inserts a new character and assigns its id
func (r *repository) Create(ctx context.Context, row core.CharacterRow) (core.CharacterRow, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Create")
	defer span.End()

	row.ID = xid.New().String()

	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		span.RecordError(err)
		return core.CharacterRow{}, errors.Wrap(err, "failed to create character")
	}

	r.refreshCount(ctx)

	return r.Get(ctx, row.ID)
}

// Update writes only the given columns and returns the stored row
func (r *repository) Update(ctx context.Context, id string, fields map[string]any) (core.CharacterRow, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Update")
	defer span.End()

	result := r.db.WithContext(ctx).Model(&core.CharacterRow{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		span.RecordError(result.Error)
		return core.CharacterRow{}, errors.Wrap(result.Error, "failed to update character")
	}
	if result.RowsAffected == 0 {
		return core.CharacterRow{}, core.NewErrorNotFound()
	}

	return r.Get(ctx, id)
}

// Delete removes a character by id
func (r *repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Character.Repository.Delete")
	defer span.End()

	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&core.CharacterRow{}).Error
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to delete character")
	}

	r.refreshCount(ctx)

	return nil
}
