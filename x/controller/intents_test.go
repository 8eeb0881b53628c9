package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/voidarchive/archive/core"
)

func countCharacter(characters []core.Character, id string) int {
	n := 0
	for _, c := range characters {
		if c.ID == id {
			n++
		}
	}
	return n
}

func TestNavigateSourceRules(t *testing.T) {
	c, _ := startSignedIn(t)
	character := core.Character{ID: "c1", Name: "Ada"}

	c.Scroll(240)
	assert.NoError(t, c.Navigate(core.ViewCharacterEditor, WithCharacter(&character), From(core.ViewDrafts)))
	snapshot := c.Snapshot()
	assert.Equal(t, core.ViewDrafts, snapshot.Source)
	assert.Equal(t, "c1", snapshot.SelectedCharacter.ID)
	assert.Equal(t, 0, snapshot.ScrollPosition)

	// editors keep the source when no From is given
	assert.NoError(t, c.Navigate(core.ViewLogEditor))
	assert.Equal(t, core.ViewDrafts, c.Snapshot().Source)

	// other views clear it
	assert.NoError(t, c.Navigate(core.ViewDashboard))
	assert.Equal(t, core.ViewNone, c.Snapshot().Source)

	// From(none) clears even when entering an editor
	assert.NoError(t, c.Navigate(core.ViewCharacterEditor, From(core.ViewDrafts)))
	assert.NoError(t, c.Navigate(core.ViewCharacterEditor, From(core.ViewNone)))
	assert.Equal(t, core.ViewNone, c.Snapshot().Source)

	// selection is only touched when the key is present
	assert.Equal(t, "c1", c.Snapshot().SelectedCharacter.ID)
	assert.NoError(t, c.Navigate(core.ViewDashboard, WithCharacter(nil)))
	assert.Nil(t, c.Snapshot().SelectedCharacter)

	assert.Error(t, c.Navigate(core.View("lobby")))
}

func TestSaveNewCharacterLandsOnceInBothCollections(t *testing.T) {
	c, m := startSignedIn(t)

	template := c.CreateNewCharacter(core.ViewDrafts)
	assert.True(t, strings.HasPrefix(template.ID, core.TempCharacterPrefix))
	assert.Equal(t, core.AlignmentNone, template.Attributes.Alignment)
	assert.Equal(t, core.DefaultStats, template.Stats)
	assert.Equal(t, core.ViewDrafts, c.Snapshot().Source)

	template.Name = "Vey"
	m.characters.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, character core.Character) (core.Character, error) {
			assert.Empty(t, character.ID)
			assert.True(t, character.IsDraft)
			character.ID = "cs3k1qk00000000000c9"
			return character, nil
		},
	)

	saved, err := c.SaveCharacter(context.Background(), template, true)
	assert.NoError(t, err)

	snapshot := c.Snapshot()
	assert.Equal(t, 1, countCharacter(snapshot.Characters, saved.ID))
	assert.Equal(t, 1, countCharacter(snapshot.MyCharacters, saved.ID))
	assert.Equal(t, 0, countCharacter(snapshot.Characters, template.ID))
	assert.Equal(t, 0, countCharacter(snapshot.MyCharacters, template.ID))
	assert.Equal(t, saved.ID, snapshot.Characters[0].ID)
	assert.Equal(t, saved.ID, snapshot.MyCharacters[0].ID)
	assert.Equal(t, core.ViewDrafts, snapshot.View)
}

func TestSaveCharacterNavigation(t *testing.T) {
	c, m := startSignedIn(t)
	draft := core.Character{ID: "c2", Name: "Bo", IsDraft: true}

	m.characters.EXPECT().Update(gomock.Any(), "c2", gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, patch core.CharacterPatch) (core.Character, error) {
			return core.Character{ID: id, Name: *patch.Name, IsDraft: *patch.IsDraft}, nil
		},
	).Times(3)

	// drafts origin, saved as draft
	assert.NoError(t, c.Navigate(core.ViewCharacterEditor, WithCharacter(&draft), From(core.ViewDrafts)))
	_, err := c.SaveCharacter(context.Background(), draft, true)
	assert.NoError(t, err)
	assert.Equal(t, core.ViewDrafts, c.Snapshot().View)

	// drafts origin wins even when publishing
	assert.NoError(t, c.Navigate(core.ViewCharacterEditor, WithCharacter(&draft), From(core.ViewDrafts)))
	_, err = c.SaveCharacter(context.Background(), draft, false)
	assert.NoError(t, err)
	assert.Equal(t, core.ViewDrafts, c.Snapshot().View)

	// list origin, published
	assert.NoError(t, c.Navigate(core.ViewCharacterList))
	assert.NoError(t, c.Navigate(core.ViewCharacterEditor, WithCharacter(&draft)))
	_, err = c.SaveCharacter(context.Background(), draft, false)
	assert.NoError(t, err)

	snapshot := c.Snapshot()
	assert.Equal(t, core.ViewCharacterList, snapshot.View)
	assert.False(t, snapshot.Characters[1].IsDraft)
	assert.False(t, snapshot.MyCharacters[0].IsDraft)
	assert.False(t, snapshot.SelectedCharacter.IsDraft)
}

func TestSaveCharacterFailureStaysInEditor(t *testing.T) {
	c, m := startSignedIn(t)

	template := c.CreateNewCharacter(core.ViewNone)
	before := c.Snapshot()

	m.characters.EXPECT().Create(gomock.Any(), gomock.Any()).Return(core.Character{}, errors.New("connection reset"))

	_, err := c.SaveCharacter(context.Background(), template, false)
	assert.Error(t, err)

	after := c.Snapshot()
	assert.Equal(t, core.ViewCharacterEditor, after.View)
	assert.Equal(t, before.Characters, after.Characters)
	assert.Equal(t, before.MyCharacters, after.MyCharacters)
	assert.Contains(t, after.Notice, "connection reset")

	c.DismissNotice()
	assert.Empty(t, c.Snapshot().Notice)
}

func TestDeleteCharacter(t *testing.T) {
	c, m := startSignedIn(t)

	m.characters.EXPECT().Delete(gomock.Any(), "c2").Return(errors.New("boom"))
	assert.Error(t, c.DeleteCharacter(context.Background(), "c2"))
	assert.Len(t, c.Snapshot().MyCharacters, 1)

	m.characters.EXPECT().Delete(gomock.Any(), "c2").Return(nil)
	assert.NoError(t, c.DeleteCharacter(context.Background(), "c2"))

	snapshot := c.Snapshot()
	assert.Equal(t, 0, countCharacter(snapshot.Characters, "c2"))
	assert.Empty(t, snapshot.MyCharacters)
}

func TestSaveLogRecomputesWordCount(t *testing.T) {
	c, m := startSignedIn(t)

	log := c.CreateNewLog(core.ViewNone)
	log.WordCount = 123456
	log.Participants = []string{"Bo"}
	log.Entries = []core.LogEntry{
		{Kind: core.EntryNarration, Content: "hello"},
		{Kind: core.EntrySpeech, Speaker: "Ada", Content: "档案"},
		{Kind: core.EntryChapter, Content: "😀"},
		{Kind: core.EntrySpeech, Speaker: "Ada", Content: ""},
	}

	m.logs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, l core.ArchiveLog) (core.ArchiveLog, error) {
			assert.Empty(t, l.ID)
			assert.Equal(t, 9, l.WordCount)
			assert.Equal(t, []string{"Bo", "Ada"}, l.Participants)
			l.ID = "cs3k1qk00000000000l9"
			return l, nil
		},
	)

	saved, err := c.SaveLog(context.Background(), log)
	assert.NoError(t, err)
	assert.Equal(t, 9, saved.WordCount)
	assert.Equal(t, []string{"Bo", "Ada"}, saved.Participants)

	snapshot := c.Snapshot()
	assert.Equal(t, saved.ID, snapshot.Logs[0].ID)
	assert.Equal(t, saved.ID, snapshot.SelectedLog.ID)
	assert.Equal(t, []core.Comment{}, snapshot.Logs[0].Comments)
	assert.Equal(t, core.ViewDashboard, snapshot.View)
}

func TestSaveLogKeepsCommentsAndDraftsOrigin(t *testing.T) {
	c, m := startSignedIn(t)

	log, err := c.FindLog("l1")
	assert.NoError(t, err)
	assert.NoError(t, c.Navigate(core.ViewLogEditor, WithLog(&log), From(core.ViewDrafts)))

	log.Title = "Night, revised"
	m.logs.EXPECT().Update(gomock.Any(), "l1", gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, patch core.LogPatch) (core.ArchiveLog, error) {
			return core.ArchiveLog{ID: id, Title: *patch.Title, Status: *patch.Status, WordCount: *patch.WordCount, Comments: []core.Comment{}}, nil
		},
	)

	saved, err := c.SaveLog(context.Background(), log)
	assert.NoError(t, err)
	assert.Equal(t, 0, saved.WordCount)

	snapshot := c.Snapshot()
	assert.Equal(t, core.ViewDrafts, snapshot.View)
	assert.Equal(t, "Night, revised", snapshot.Logs[0].Title)
	assert.Len(t, snapshot.Logs[0].Comments, 2)
}

func TestDeleteLog(t *testing.T) {
	c, m := startSignedIn(t)

	m.logs.EXPECT().Delete(gomock.Any(), "l2").Return(nil)
	assert.NoError(t, c.DeleteLog(context.Background(), "l2"))

	_, err := c.FindLog("l2")
	assert.ErrorIs(t, err, core.NewErrorNotFound())
	assert.Len(t, c.Snapshot().Logs, 2)
}

func TestToggleFavoriteTwiceRestores(t *testing.T) {
	c, m := startSignedIn(t)

	log, err := c.FindLog("l1")
	assert.NoError(t, err)
	assert.NoError(t, c.Navigate(core.ViewLogDetail, WithLog(&log)))

	gomock.InOrder(
		m.logs.EXPECT().ToggleFavorite(gomock.Any(), "l1", false).Return(nil),
		m.logs.EXPECT().ToggleFavorite(gomock.Any(), "l1", true).Return(nil),
	)

	assert.NoError(t, c.ToggleFavorite(context.Background(), "l1"))
	snapshot := c.Snapshot()
	assert.True(t, snapshot.Logs[0].IsFavorite)
	assert.Equal(t, snapshot.Logs[0], *snapshot.SelectedLog)

	assert.NoError(t, c.ToggleFavorite(context.Background(), "l1"))
	snapshot = c.Snapshot()
	assert.False(t, snapshot.Logs[0].IsFavorite)
	assert.Equal(t, snapshot.Logs[0], *snapshot.SelectedLog)

	assert.ErrorIs(t, c.ToggleFavorite(context.Background(), "missing"), core.NewErrorNotFound())
}

func TestToggleFavoriteFailureKeepsFlag(t *testing.T) {
	c, m := startSignedIn(t)

	m.logs.EXPECT().ToggleFavorite(gomock.Any(), "l2", false).Return(errors.New("boom"))
	assert.Error(t, c.ToggleFavorite(context.Background(), "l2"))
	assert.False(t, c.Snapshot().Logs[1].IsFavorite)
}

func TestCommentsPatchOnlyTheTargetLog(t *testing.T) {
	c, m := startSignedIn(t)

	log, err := c.FindLog("l1")
	assert.NoError(t, err)
	assert.NoError(t, c.Navigate(core.ViewComments, WithLog(&log)))

	m.comments.EXPECT().Delete(gomock.Any(), "m1").Return(nil)
	assert.NoError(t, c.DeleteComment(context.Background(), "l1", "m1"))

	snapshot := c.Snapshot()
	assert.Equal(t, []core.Comment{{ID: "m2", Content: "second"}}, snapshot.Logs[0].Comments)
	assert.Equal(t, []core.Comment{{ID: "m3", Content: "third"}}, snapshot.Logs[1].Comments)
	assert.Equal(t, snapshot.Logs[0].Comments, snapshot.SelectedLog.Comments)

	m.comments.EXPECT().Create(gomock.Any(), "l1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, comment core.Comment) (core.Comment, error) {
			comment.ID = "m4"
			return comment, nil
		},
	)
	_, err = c.AddComment(context.Background(), "l1", core.Comment{Content: "fourth"})
	assert.NoError(t, err)

	snapshot = c.Snapshot()
	assert.Len(t, snapshot.Logs[0].Comments, 2)
	assert.Equal(t, "m4", snapshot.Logs[0].Comments[1].ID)
	assert.Equal(t, snapshot.Logs[0].Comments, snapshot.SelectedLog.Comments)
	assert.Len(t, snapshot.Logs[1].Comments, 1)
}

func TestUpdateProfile(t *testing.T) {
	c, m := startSignedIn(t)
	profile := core.UserProfile{Name: "Ada L.", Signature: "hi", Theme: core.ThemeDark}

	m.profiles.EXPECT().Update(gomock.Any(), gomock.Any()).Return(core.UserProfile{Name: "Ada L.", Signature: "hi", AvatarURL: "a.png", Theme: core.ThemeDark}, nil)
	_, err := c.UpdateProfile(context.Background(), profile)
	assert.NoError(t, err)
	assert.Equal(t, "a.png", c.Snapshot().Profile.AvatarURL)
	assert.Equal(t, core.ViewProfile, c.Snapshot().View)

	// a failed update still applies locally
	profile.Name = "Offline"
	m.profiles.EXPECT().Update(gomock.Any(), gomock.Any()).Return(core.UserProfile{}, errors.New("timeout"))
	_, err = c.UpdateProfile(context.Background(), profile)
	assert.Error(t, err)

	snapshot := c.Snapshot()
	assert.Equal(t, "Offline", snapshot.Profile.Name)
	assert.Equal(t, core.ViewProfile, snapshot.View)
	assert.NotEmpty(t, snapshot.Notice)
}

func TestSupersededSaveIsDiscarded(t *testing.T) {
	c, m := startSignedIn(t)
	character := core.Character{ID: "c1", Name: "Ada"}

	entered := make(chan struct{})
	release := make(chan struct{})

	gomock.InOrder(
		m.characters.EXPECT().Update(gomock.Any(), "c1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, _ core.CharacterPatch) (core.Character, error) {
				close(entered)
				<-release
				return core.Character{ID: id, Name: "stale"}, nil
			},
		),
		m.characters.EXPECT().Update(gomock.Any(), "c1", gomock.Any()).Return(core.Character{ID: "c1", Name: "fresh"}, nil),
	)

	var wg sync.WaitGroup
	var staleErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, staleErr = c.SaveCharacter(context.Background(), character, false)
	}()

	<-entered
	_, err := c.SaveCharacter(context.Background(), character, false)
	assert.NoError(t, err)

	close(release)
	wg.Wait()

	assert.True(t, IsSuperseded(staleErr))
	assert.Equal(t, "fresh", c.Snapshot().Characters[0].Name)
}

func TestEditorTemplatesAndBack(t *testing.T) {
	c, _ := startSignedIn(t)

	log, err := c.StartLog("c1")
	assert.NoError(t, err)
	assert.Equal(t, "Ada 的新篇章", log.Title)
	assert.Equal(t, []string{"Ada"}, log.Participants)
	assert.Equal(t, core.NewLogID, log.ID)

	_, err = c.StartLog("missing")
	assert.ErrorIs(t, err, core.NewErrorNotFound())

	assert.NoError(t, c.CancelEdit())
	assert.Equal(t, core.ViewDashboard, c.Snapshot().View)
	assert.Error(t, c.CancelEdit())

	c.CreateNewCharacter(core.ViewDrafts)
	assert.NoError(t, c.CancelEdit())
	assert.Equal(t, core.ViewDrafts, c.Snapshot().View)

	assert.Equal(t, core.ViewProfile, c.Back())

	selected, err := c.FindLog("l2")
	assert.NoError(t, err)
	assert.NoError(t, c.Navigate(core.ViewComments, WithLog(&selected)))
	assert.Equal(t, core.ViewLogDetail, c.Back())
	assert.Equal(t, "l2", c.Snapshot().SelectedLog.ID)

	assert.Equal(t, core.ViewDashboard, c.Back())
}
