//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go

// Package auth is the authentication collaborator: accounts, sessions and auth events
package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/voidarchive/archive/core"
)

var tracer = otel.Tracer("auth")

type Repository interface {
	GetAccount(ctx context.Context, id string) (core.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (core.Account, error)
	CreateAccount(ctx context.Context, account core.Account) (core.Account, error)
	ConfirmAccount(ctx context.Context, email string) error
	PublishEvent(ctx context.Context, event core.AuthEvent) error
	SubscribeEvents(ctx context.Context) <-chan core.AuthEvent
}

type repository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewRepository(db *gorm.DB, rdb *redis.Client) Repository {
	return &repository{db, rdb}
}

func (r *repository) GetAccount(ctx context.Context, id string) (core.Account, error) {
	ctx, span := tracer.Start(ctx, "Auth.Repository.GetAccount")
	defer span.End()

	var account core.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Account{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Account{}, errors.Wrap(err, "failed to get account")
	}

	return account, nil
}

func (r *repository) GetAccountByEmail(ctx context.Context, email string) (core.Account, error) {
	ctx, span := tracer.Start(ctx, "Auth.Repository.GetAccountByEmail")
	defer span.End()

	var account core.Account
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Account{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Account{}, errors.Wrap(err, "failed to get account")
	}

	return account, nil
}

// CreateAccount inserts an account and assigns its id
func (r *repository) CreateAccount(ctx context.Context, account core.Account) (core.Account, error) {
	ctx, span := tracer.Start(ctx, "Auth.Repository.CreateAccount")
	defer span.End()

	account.ID = xid.New().String()
	account.Email = strings.ToLower(account.Email)

	err := r.db.WithContext(ctx).Create(&account).Error
	if err != nil {
		span.RecordError(err)
		return core.Account{}, errors.Wrap(err, "failed to create account")
	}

	return account, nil
}

func (r *repository) ConfirmAccount(ctx context.Context, email string) error {
	ctx, span := tracer.Start(ctx, "Auth.Repository.ConfirmAccount")
	defer span.End()

	result := r.db.WithContext(ctx).Model(&core.Account{}).
		Where("email = ?", strings.ToLower(email)).
		Update("confirmed_at", time.Now())
	if result.Error != nil {
		span.RecordError(result.Error)
		return errors.Wrap(result.Error, "failed to confirm account")
	}
	if result.RowsAffected == 0 {
		return core.NewErrorNotFound()
	}

	return nil
}

// PublishEvent broadcasts an auth event to every daemon sharing the redis instance
func (r *repository) PublishEvent(ctx context.Context, event core.AuthEvent) error {
	ctx, span := tracer.Start(ctx, "Auth.Repository.PublishEvent")
	defer span.End()

	payload, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = r.rdb.Publish(ctx, core.AuthEventChannel, payload).Err()
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to publish auth event")
	}

	return nil
}

// SubscribeEvents streams auth events until ctx is done
func (r *repository) SubscribeEvents(ctx context.Context) <-chan core.AuthEvent {
	events := make(chan core.AuthEvent)
	pubsub := r.rdb.Subscribe(ctx, core.AuthEventChannel)

	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event core.AuthEvent
				err := json.Unmarshal([]byte(msg.Payload), &event)
				if err != nil {
					slog.Warn(
						"malformed auth event",
						slog.String("error", err.Error()),
					)
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events
}
