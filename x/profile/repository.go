//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go

// Package profile is the remote gateway for user profiles
package profile

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/voidarchive/archive/core"
)

var tracer = otel.Tracer("profile")

// Repository is the interface for profile repository
type Repository interface {
	Get(ctx context.Context, id string) (core.ProfileRow, error)
	Create(ctx context.Context, row core.ProfileRow) (core.ProfileRow, error)
	Update(ctx context.Context, id string, fields map[string]any) (core.ProfileRow, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new profile repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {

	var count int64
	err := db.Model(&core.ProfileRow{}).Count(&count).Error
	if err != nil {
		slog.Error(
			"failed to count profiles",
			slog.String("error", err.Error()),
		)
	}

	mc.Set(&memcache.Item{Key: "profile_count", Value: []byte(strconv.FormatInt(count, 10))})

	return &repository{db, mc}
}

// Count returns the total number of profiles
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Profile.Repository.Count")
	defer span.End()

	item, err := r.mc.Get("profile_count")
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

// Get returns the profile of an account
func (r *repository) Get(ctx context.Context, id string) (core.ProfileRow, error) {
	ctx, span := tracer.Start(ctx, "Profile.Repository.Get")
	defer span.End()

	var row core.ProfileRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.ProfileRow{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.ProfileRow{}, errors.Wrap(err, "failed to get profile")
	}

	return row, nil
}

// Create inserts the profile of an account; row.ID must be the account id
func (r *repository) Create(ctx context.Context, row core.ProfileRow) (core.ProfileRow, error) {
	ctx, span := tracer.Start(ctx, "Profile.Repository.Create")
	defer span.End()

	if row.ID == "" {
		return core.ProfileRow{}, errors.New("profile id is required")
	}

	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		span.RecordError(err)
		return core.ProfileRow{}, errors.Wrap(err, "failed to create profile")
	}

	r.mc.Increment("profile_count", 1)

	return r.Get(ctx, row.ID)
}

// Update writes only the given columns and returns the stored row
func (r *repository) Update(ctx context.Context, id string, fields map[string]any) (core.ProfileRow, error) {
	ctx, span := tracer.Start(ctx, "Profile.Repository.Update")
	defer span.End()

	result := r.db.WithContext(ctx).Model(&core.ProfileRow{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		span.RecordError(result.Error)
		return core.ProfileRow{}, errors.Wrap(result.Error, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return core.ProfileRow{}, core.NewErrorNotFound()
	}

	return r.Get(ctx, id)
}
