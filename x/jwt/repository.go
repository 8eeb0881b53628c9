//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package jwt

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("jwt")

type Repository interface {
	CheckJTI(ctx context.Context, jti string) (bool, error)
	InvalidateJTI(ctx context.Context, jti string, exp time.Time) error
}

type repository struct {
	rdb *redis.Client
}

func NewRepository(rdb *redis.Client) Repository {
	return &repository{
		rdb: rdb,
	}
}

// CheckJTI reports whether the token id has been revoked
func (r *repository) CheckJTI(ctx context.Context, jti string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Jwt.Repository.CheckJTI")
	defer span.End()

	exists, err := r.rdb.Exists(ctx, "jti:"+jti).Result()
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	return exists > 0, nil
}

// InvalidateJTI revokes the token id until its natural expiry
func (r *repository) InvalidateJTI(ctx context.Context, jti string, exp time.Time) error {
	ctx, span := tracer.Start(ctx, "Jwt.Repository.InvalidateJTI")
	defer span.End()

	expiration := time.Until(exp)
	if expiration <= 0 {
		return nil
	}

	err := r.rdb.Set(ctx, "jti:"+jti, "1", expiration).Err()
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
