package jwt

import (
	"context"
	"fmt"
	"time"
)

// Service issues, verifies and revokes session tokens
type Service interface {
	Issue(ctx context.Context, subject, email, name string) (string, Claims, error)
	Verify(ctx context.Context, token string) (Claims, error)
	Revoke(ctx context.Context, claims Claims) error
}

type service struct {
	repository Repository
	secret     string
	ttl        time.Duration
}

// NewService creates a new session token service
func NewService(repository Repository, secret string, ttl time.Duration) Service {
	return &service{repository, secret, ttl}
}

// Issue signs a new session token
func (s *service) Issue(ctx context.Context, subject, email, name string) (string, Claims, error) {
	_, span := tracer.Start(ctx, "Jwt.Service.Issue")
	defer span.End()

	token, claims, err := Create(subject, email, name, s.ttl, s.secret)
	if err != nil {
		span.RecordError(err)
		return "", Claims{}, err
	}
	return token, claims, nil
}

// Verify validates a token and rejects revoked ones
func (s *service) Verify(ctx context.Context, token string) (Claims, error) {
	ctx, span := tracer.Start(ctx, "Jwt.Service.Verify")
	defer span.End()

	claims, err := Validate(token, s.secret)
	if err != nil {
		span.RecordError(err)
		return Claims{}, err
	}

	revoked, err := s.repository.CheckJTI(ctx, claims.ID)
	if err != nil {
		span.RecordError(err)
		return Claims{}, err
	}
	if revoked {
		return Claims{}, fmt.Errorf("session token has been revoked")
	}

	return claims, nil
}

// Revoke invalidates a token until it would have expired
func (s *service) Revoke(ctx context.Context, claims Claims) error {
	ctx, span := tracer.Start(ctx, "Jwt.Service.Revoke")
	defer span.End()

	if claims.ExpiresAt == nil {
		return nil
	}

	return s.repository.InvalidateJTI(ctx, claims.ID, claims.ExpiresAt.Time)
}
