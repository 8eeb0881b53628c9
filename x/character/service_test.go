package character

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/core/mock"
	"github.com/voidarchive/archive/x/character/mock"
)

var alice = &core.AuthUser{ID: "cn0alice000000000000", Email: "alice@example.com", Name: "alice"}

func TestServiceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)

	mockRepo := mock_character.NewMockRepository(ctrl)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, row core.CharacterRow) (core.CharacterRow, error) {
			assert.Equal(t, alice.ID, row.UserID)
			assert.Equal(t, "Ada", row.Name)
			assert.Nil(t, row.Quote)
			row.ID = "cn0character00000000"
			return row, nil
		},
	)

	s := NewService(mockRepo, mockAuth)
	created, err := s.Create(context.Background(), core.Character{
		Name:       "Ada",
		Tags:       []string{"a", "a"},
		Attributes: core.CharacterAttributes{Alignment: "ASF"},
		IsDraft:    true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "cn0character00000000", created.ID)
	assert.Equal(t, []string{"a", "a"}, created.Tags)
	assert.Equal(t, []string{}, created.Trivia)
	assert.Equal(t, "ASF", created.Attributes.Alignment)
	assert.True(t, created.IsDraft)
}

func TestServiceCreateRequiresIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)

	mockRepo := mock_character.NewMockRepository(ctrl)

	s := NewService(mockRepo, mockAuth)
	_, err := s.Create(context.Background(), core.Character{Name: "Ada"})
	assert.ErrorIs(t, err, core.NewErrorPermissionDenied())
}

func TestServiceListMineSignedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)

	mockRepo := mock_character.NewMockRepository(ctrl)

	s := NewService(mockRepo, mockAuth)
	characters, err := s.ListMine(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, characters)
}

func TestServiceListDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockRepo := mock_character.NewMockRepository(ctrl)

	attributes := `{"height":"170cm"}`
	mockRepo.EXPECT().List(gomock.Any()).Return([]core.CharacterRow{
		{ID: "c1", Name: "Ada", Attributes: &attributes},
		{ID: "c2", Name: "Bo"},
	}, nil)

	s := NewService(mockRepo, mockAuth)
	characters, err := s.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, characters, 2)

	assert.Equal(t, "170cm", characters[0].Attributes.Height)
	assert.Equal(t, core.AlignmentNone, characters[0].Attributes.Alignment)
	assert.Equal(t, core.AlignmentNone, characters[1].Attributes.Alignment)
	assert.Equal(t, []string{}, characters[1].Tags)
	assert.Equal(t, "", characters[1].Title)
}

func TestServiceUpdateIsSparse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)

	mockRepo := mock_character.NewMockRepository(ctrl)
	mockRepo.EXPECT().Get(gomock.Any(), "c1").Return(core.CharacterRow{ID: "c1", UserID: alice.ID, Name: "Ada"}, nil)
	mockRepo.EXPECT().Update(gomock.Any(), "c1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string, fields map[string]any) (core.CharacterRow, error) {
			assert.Len(t, fields, 2)
			assert.Equal(t, "Ada Lovelace", fields["name"])
			assert.Contains(t, fields, "updated_at")
			return core.CharacterRow{ID: id, UserID: alice.ID, Name: "Ada Lovelace"}, nil
		},
	)

	name := "Ada Lovelace"
	s := NewService(mockRepo, mockAuth)
	updated, err := s.Update(context.Background(), "c1", core.CharacterPatch{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
}

func TestServiceDeleteForeignCharacter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)

	mockRepo := mock_character.NewMockRepository(ctrl)
	mockRepo.EXPECT().Get(gomock.Any(), "c9").Return(core.CharacterRow{ID: "c9", UserID: "someone-else"}, nil)

	s := NewService(mockRepo, mockAuth)
	err := s.Delete(context.Background(), "c9")
	assert.ErrorIs(t, err, core.NewErrorPermissionDenied())
}

func TestPatchFromCharacterWritesEveryField(t *testing.T) {
	fields := patchToFields(core.PatchFromCharacter(core.Character{Name: "Ada"}))
	for _, column := range []string{"name", "title", "tags", "attributes", "ability", "stats", "trivia", "introduction", "quote", "image_url", "is_draft", "updated_at"} {
		assert.Contains(t, fields, column)
	}
}
