package archivelog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/core/mock"
	"github.com/voidarchive/archive/x/archivelog/mock"
)

var alice = &core.AuthUser{ID: "cn0alice000000000000", Email: "alice@example.com", Name: "alice"}

func TestServiceCreateEncodesWireForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)

	var stored core.LogRow
	mockRepo := mock_archivelog.NewMockRepository(ctrl)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, row core.LogRow) (core.LogRow, error) {
			row.ID = "lg000000000000000001"
			stored = row
			return row, nil
		},
	)

	s := NewService(mockRepo, mockAuth)
	created, err := s.Create(context.Background(), core.ArchiveLog{
		Title:     "First Night",
		Status:    core.LogStatusOngoing,
		Timestamp: "2024/1/2",
		WordCount: 1234,
		Entries: []core.LogEntry{
			{Kind: core.EntryChapter, Content: "I"},
			{Kind: core.EntrySpeech, Speaker: "Ada", ParticipantID: "c1", Content: "hello"},
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, alice.ID, stored.UserID)
	assert.Equal(t, "1,234", stored.WordCount)
	assert.JSONEq(t, `[
		{"role":"CHAPTER","timestamp":"","content":"I"},
		{"role":"Ada","timestamp":"","content":"hello","participantId":"c1"}
	]`, *stored.Entries)

	assert.Equal(t, 1234, created.WordCount)
	assert.Equal(t, core.EntrySpeech, created.Entries[1].Kind)
	assert.Equal(t, "c1", created.Entries[1].ParticipantID)
	assert.Equal(t, []core.Comment{}, created.Comments)
}

func TestServiceCreateRejectsUnknownStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)
	mockRepo := mock_archivelog.NewMockRepository(ctrl)

	s := NewService(mockRepo, mockAuth)
	_, err := s.Create(context.Background(), core.ArchiveLog{Title: "x", Status: "Paused"})
	assert.Error(t, err)
	assert.IsType(t, core.ErrorInvalidInput{}, err)
}

func TestServiceListParsesLegacyRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockRepo := mock_archivelog.NewMockRepository(ctrl)

	broken := "{not json"
	mockRepo.EXPECT().List(gomock.Any()).Return([]core.LogRow{
		{ID: "l1", Title: "a", Status: "Finished", WordCount: "2,000"},
		{ID: "l2", Title: "b", Status: "Standby", WordCount: "many", Entries: &broken},
	}, nil)

	s := NewService(mockRepo, mockAuth)
	logs, err := s.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, logs, 2)

	assert.Equal(t, 2000, logs[0].WordCount)
	assert.Equal(t, []string{}, logs[0].Participants)
	assert.Equal(t, 0, logs[1].WordCount)
	assert.Equal(t, []core.LogEntry{}, logs[1].Entries)
	assert.Equal(t, core.LogStatusStandby, logs[1].Status)
}

func TestServiceToggleFavoriteWritesInverse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil).Times(2)

	mockRepo := mock_archivelog.NewMockRepository(ctrl)
	gomock.InOrder(
		mockRepo.EXPECT().Update(gomock.Any(), "l1", gomock.Any()).DoAndReturn(
			func(ctx context.Context, id string, fields map[string]any) (core.LogRow, error) {
				assert.Equal(t, true, fields["is_favorite"])
				return core.LogRow{ID: id, IsFavorite: true}, nil
			},
		),
		mockRepo.EXPECT().Update(gomock.Any(), "l1", gomock.Any()).DoAndReturn(
			func(ctx context.Context, id string, fields map[string]any) (core.LogRow, error) {
				assert.Equal(t, false, fields["is_favorite"])
				return core.LogRow{ID: id}, nil
			},
		),
	)

	s := NewService(mockRepo, mockAuth)
	assert.NoError(t, s.ToggleFavorite(context.Background(), "l1", false))
	assert.NoError(t, s.ToggleFavorite(context.Background(), "l1", true))
}

func TestServiceUpdateForeignLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock_core.NewMockAuthService(ctrl)
	mockAuth.EXPECT().CurrentUser(gomock.Any()).Return(alice, nil)

	mockRepo := mock_archivelog.NewMockRepository(ctrl)
	mockRepo.EXPECT().Get(gomock.Any(), "l9").Return(core.LogRow{ID: "l9", UserID: "someone-else"}, nil)

	title := "mine now"
	s := NewService(mockRepo, mockAuth)
	_, err := s.Update(context.Background(), "l9", core.LogPatch{Title: &title})
	assert.ErrorIs(t, err, core.NewErrorPermissionDenied())
}
