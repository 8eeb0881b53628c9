package auth

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/auth/mock"
	"github.com/voidarchive/archive/x/jwt"
	"github.com/voidarchive/archive/x/jwt/mock"
	"github.com/voidarchive/archive/x/util"
)

const testAccountID = "cs3k1qk0000000000001"

func testAccount(t *testing.T, confirmed bool) core.Account {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	assert.NoError(t, err)

	account := core.Account{
		ID:           testAccountID,
		Email:        "ada@example.com",
		Name:         "Ada",
		PasswordHash: string(hash),
	}
	if confirmed {
		now := time.Now()
		account.ConfirmedAt = &now
	}
	return account
}

func testTokens(ctrl *gomock.Controller) (jwt.Service, *mock_jwt.MockRepository) {
	jti := mock_jwt.NewMockRepository(ctrl)
	return jwt.NewService(jti, "test-secret", time.Hour), jti
}

func TestSignInAndOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mock_auth.NewMockRepository(ctrl)
	tokens, jti := testTokens(ctrl)

	repo.EXPECT().GetAccountByEmail(gomock.Any(), "ada@example.com").Return(testAccount(t, true), nil)
	repo.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	jti.EXPECT().InvalidateJTI(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	service := NewService(repo, tokens, util.Config{})

	var seen []*core.AuthUser
	unsubscribe := service.Subscribe(func(user *core.AuthUser) {
		seen = append(seen, user)
	})
	defer unsubscribe()

	user, err := service.SignIn(ctx, " ada@example.com ", "secret123")
	if assert.NoError(t, err) {
		assert.Equal(t, testAccountID, user.ID)
	}

	current, err := service.CurrentUser(ctx)
	assert.NoError(t, err)
	assert.Equal(t, user, current)

	token, err := service.Token(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	err = service.SignOut(ctx)
	assert.NoError(t, err)

	current, err = service.CurrentUser(ctx)
	assert.NoError(t, err)
	assert.Nil(t, current)

	if assert.Len(t, seen, 2) {
		assert.Equal(t, "Ada", seen[0].Name)
		assert.Nil(t, seen[1])
	}
}

func TestSignInFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mock_auth.NewMockRepository(ctrl)
	tokens, _ := testTokens(ctrl)
	service := NewService(repo, tokens, util.Config{})

	repo.EXPECT().GetAccountByEmail(gomock.Any(), "nobody@example.com").Return(core.Account{}, core.NewErrorNotFound())
	_, err := service.SignIn(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, core.NewErrorInvalidCredentials())

	repo.EXPECT().GetAccountByEmail(gomock.Any(), "ada@example.com").Return(testAccount(t, true), nil)
	_, err = service.SignIn(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, core.NewErrorInvalidCredentials())

	repo.EXPECT().GetAccountByEmail(gomock.Any(), "ada@example.com").Return(testAccount(t, false), nil)
	_, err = service.SignIn(ctx, "ada@example.com", "secret123")
	assert.ErrorIs(t, err, core.NewErrorConfirmationRequired())

	current, err := service.CurrentUser(ctx)
	assert.NoError(t, err)
	assert.Nil(t, current)
}

func TestSignUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mock_auth.NewMockRepository(ctrl)
	tokens, _ := testTokens(ctrl)

	config := util.Config{}
	config.Auth.RequireEmailConfirmation = true
	service := NewService(repo, tokens, config)

	_, err := service.SignUp(ctx, "not-an-email", "secret123", "Ada")
	assert.IsType(t, core.ErrorInvalidInput{}, err)

	_, err = service.SignUp(ctx, "ada@example.com", "123", "Ada")
	assert.IsType(t, core.ErrorInvalidInput{}, err)

	account := testAccount(t, false)
	gomock.InOrder(
		repo.EXPECT().GetAccountByEmail(gomock.Any(), "ada@example.com").Return(core.Account{}, core.NewErrorNotFound()),
		repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, created core.Account) (core.Account, error) {
				assert.Nil(t, created.ConfirmedAt)
				assert.NotEqual(t, "secret123", created.PasswordHash)
				return account, nil
			},
		),
		repo.EXPECT().GetAccountByEmail(gomock.Any(), "ada@example.com").Return(account, nil),
	)

	_, err = service.SignUp(ctx, "ada@example.com", "secret123", "Ada")
	assert.ErrorIs(t, err, core.NewErrorConfirmationRequired())

	repo.EXPECT().GetAccountByEmail(gomock.Any(), "ada@example.com").Return(account, nil)
	_, err = service.SignUp(ctx, "ada@example.com", "secret123", "Ada")
	assert.IsType(t, core.ErrorInvalidInput{}, err)
}

func TestResume(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mock_auth.NewMockRepository(ctrl)
	tokens, jti := testTokens(ctrl)
	service := NewService(repo, tokens, util.Config{})

	token, _, err := tokens.Issue(ctx, testAccountID, "ada@example.com", "Ada")
	assert.NoError(t, err)

	jti.EXPECT().CheckJTI(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().GetAccount(gomock.Any(), testAccountID).Return(testAccount(t, true), nil)

	user, err := service.Resume(ctx, token)
	if assert.NoError(t, err) {
		assert.Equal(t, "ada@example.com", user.Email)
	}

	_, err = service.Resume(ctx, "garbage")
	assert.ErrorIs(t, err, core.NewErrorInvalidCredentials())
}

func TestExpiredSessionIsCleared(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens, _ := testTokens(ctrl)
	s := NewService(mock_auth.NewMockRepository(ctrl), tokens, util.Config{}).(*service)
	s.current = &session{
		user: core.AuthUser{ID: testAccountID},
		claims: jwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}},
	}

	current, err := s.CurrentUser(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, current)
	assert.Nil(t, s.current)
}

func TestWatchRemoteSignOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_auth.NewMockRepository(ctrl)
	tokens, _ := testTokens(ctrl)
	s := NewService(repo, tokens, util.Config{}).(*service)
	s.current = &session{
		user:   core.AuthUser{ID: testAccountID},
		claims: jwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{ID: "jti-1"}},
	}

	events := make(chan core.AuthEvent, 2)
	events <- core.AuthEvent{Type: core.AuthEventSignedOut, Subject: testAccountID, JTI: "other"}
	events <- core.AuthEvent{Type: core.AuthEventSignedOut, Subject: testAccountID, JTI: "jti-1"}
	close(events)

	repo.EXPECT().SubscribeEvents(gomock.Any()).Return((<-chan core.AuthEvent)(events))

	signedOut := false
	s.Subscribe(func(user *core.AuthUser) {
		signedOut = user == nil
	})

	s.Watch(context.Background())
	assert.True(t, signedOut)
	assert.Nil(t, s.current)
}
