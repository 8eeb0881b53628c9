package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/voidarchive/archive/x/jwt/mock"
)

const secret = "unit-test-secret"

func TestCreateAndValidate(t *testing.T) {
	token, claims, err := Create("cn0alice000000000000", "alice@example.com", "Alice", time.Hour, secret)
	assert.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	validated, err := Validate(token, secret)
	assert.NoError(t, err)
	assert.Equal(t, "cn0alice000000000000", validated.Subject)
	assert.Equal(t, "alice@example.com", validated.Email)
	assert.Equal(t, claims.ID, validated.ID)

	_, err = Validate(token, "another-secret")
	assert.Error(t, err)

	_, err = Validate("not.a.token", secret)
	assert.Error(t, err)
}

func TestValidateExpired(t *testing.T) {
	token, _, err := Create("cn0alice000000000000", "alice@example.com", "", -time.Minute, secret)
	assert.NoError(t, err)

	_, err = Validate(token, secret)
	assert.Error(t, err)
}

func TestServiceVerifyRejectsRevoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_jwt.NewMockRepository(ctrl)
	s := NewService(mockRepo, secret, time.Hour)

	token, claims, err := s.Issue(context.Background(), "cn0alice000000000000", "alice@example.com", "Alice")
	assert.NoError(t, err)

	mockRepo.EXPECT().CheckJTI(gomock.Any(), claims.ID).Return(false, nil)
	verified, err := s.Verify(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, claims.Subject, verified.Subject)

	mockRepo.EXPECT().InvalidateJTI(gomock.Any(), claims.ID, gomock.Any()).Return(nil)
	err = s.Revoke(context.Background(), claims)
	assert.NoError(t, err)

	mockRepo.EXPECT().CheckJTI(gomock.Any(), claims.ID).Return(true, nil)
	_, err = s.Verify(context.Background(), token)
	assert.Error(t, err)
}
