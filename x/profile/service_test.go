package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/core/mock"
	"github.com/voidarchive/archive/x/profile/mock"
)

var alice = &core.AuthUser{ID: "cn0alice000000000000", Email: "alice@example.com", Name: "Alice"}

func TestServiceGetDefaultsWhenMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)

	mockRepo := mock_profile.NewMockRepository(ctrl)
	mockRepo.EXPECT().Get(gomock.Any(), alice.ID).Return(core.ProfileRow{}, core.NewErrorNotFound())

	s := NewService(mockRepo, mockAuth)
	profile, err := s.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "alice", profile.Name)
	assert.Equal(t, core.DefaultSignature, profile.Signature)
	assert.Equal(t, core.DefaultAvatarURL, profile.AvatarURL)
	assert.Equal(t, core.ThemeDark, profile.Theme)
}

func TestServiceGetStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)

	mockRepo := mock_profile.NewMockRepository(ctrl)
	mockRepo.EXPECT().Get(gomock.Any(), alice.ID).Return(core.ProfileRow{ID: alice.ID, Name: "Archivist", Theme: ""}, nil)

	s := NewService(mockRepo, mockAuth)
	profile, err := s.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Archivist", profile.Name)
	assert.Equal(t, "", profile.Signature)
	assert.Equal(t, core.ThemeDark, profile.Theme)
}

func TestServiceGetSignedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)
	mockRepo := mock_profile.NewMockRepository(ctrl)

	s := NewService(mockRepo, mockAuth)
	_, err := s.Get(context.Background())
	assert.ErrorIs(t, err, core.NewErrorPermissionDenied())
}

func TestServiceUpdateCreatesMissingProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)

	mockRepo := mock_profile.NewMockRepository(ctrl)
	mockRepo.EXPECT().Update(gomock.Any(), alice.ID, gomock.Any()).Return(core.ProfileRow{}, core.NewErrorNotFound())
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, row core.ProfileRow) (core.ProfileRow, error) {
			assert.Equal(t, alice.ID, row.ID)
			assert.Equal(t, "alice", row.Name)
			assert.Equal(t, "light", row.Theme)
			return row, nil
		},
	)

	theme := core.ThemeLight
	s := NewService(mockRepo, mockAuth)
	profile, err := s.Update(context.Background(), core.ProfilePatch{Theme: &theme})
	assert.NoError(t, err)
	assert.Equal(t, core.ThemeLight, profile.Theme)
}

func TestServiceUpdateRejectsUnknownTheme(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)
	mockRepo := mock_profile.NewMockRepository(ctrl)

	theme := core.Theme("sepia")
	s := NewService(mockRepo, mockAuth)
	_, err := s.Update(context.Background(), core.ProfilePatch{Theme: &theme})
	assert.IsType(t, core.ErrorInvalidInput{}, err)
}

func TestPatchToFieldsIsSparse(t *testing.T) {
	name := "Archivist"
	fields := patchToFields(core.ProfilePatch{Name: &name})
	assert.Len(t, fields, 2)
	assert.Equal(t, "Archivist", fields["name"])
	assert.Contains(t, fields, "updated_at")
}
