package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/core/mock"
)

var testUser = &core.AuthUser{ID: "cs3k1qk0000000000001", Email: "ada@example.com", Name: "Ada"}

type mocks struct {
	characters *mock_core.MockCharacterService
	logs       *mock_core.MockLogService
	comments   *mock_core.MockCommentService
	profiles   *mock_core.MockProfileService
	auth       *mock_core.MockAuthService
	callback   func(*core.AuthUser)
}

type fixture struct {
	characters   []core.Character
	myCharacters []core.Character
	logs         []core.ArchiveLog
	comments     map[string][]core.Comment
	profile      core.UserProfile
}

func newTestController(t *testing.T) (*Controller, *mocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &mocks{
		characters: mock_core.NewMockCharacterService(ctrl),
		logs:       mock_core.NewMockLogService(ctrl),
		comments:   mock_core.NewMockCommentService(ctrl),
		profiles:   mock_core.NewMockProfileService(ctrl),
		auth:       mock_core.NewMockAuthService(ctrl),
	}

	m.auth.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(callback func(*core.AuthUser)) func() {
		m.callback = callback
		return func() {}
	}).AnyTimes()

	return New(m.characters, m.logs, m.comments, m.profiles, m.auth), m
}

func defaultFixture() fixture {
	return fixture{
		characters: []core.Character{
			{ID: "c1", Name: "Ada", Tags: []string{"quiet"}},
			{ID: "c2", Name: "Bo", IsDraft: true},
		},
		myCharacters: []core.Character{
			{ID: "c2", Name: "Bo", IsDraft: true},
		},
		logs: []core.ArchiveLog{
			{ID: "l1", Title: "Night", Status: core.LogStatusOngoing, WordCount: 500},
			{ID: "l2", Title: "Dawn", Status: core.LogStatusFinished, WordCount: 2000},
			{ID: "l3", Title: "Hidden", Status: core.LogStatusStandby, WordCount: 9000},
		},
		comments: map[string][]core.Comment{
			"l1": {{ID: "m1", Content: "first"}, {ID: "m2", Content: "second"}},
			"l2": {{ID: "m3", Content: "third"}},
		},
		profile: core.UserProfile{Name: "Ada", Theme: core.ThemeLight},
	}
}

func (m *mocks) expectLoad(f fixture) {
	m.characters.EXPECT().List(gomock.Any()).Return(f.characters, nil)
	m.characters.EXPECT().ListMine(gomock.Any()).Return(f.myCharacters, nil)
	m.logs.EXPECT().List(gomock.Any()).Return(f.logs, nil)
	m.profiles.EXPECT().Get(gomock.Any()).Return(f.profile, nil)
	for _, l := range f.logs {
		comments, ok := f.comments[l.ID]
		if !ok {
			comments = []core.Comment{}
		}
		m.comments.EXPECT().ListByLog(gomock.Any(), l.ID).Return(comments, nil)
	}
}

// startSignedIn runs Start against an authenticated session and the default fixture
func startSignedIn(t *testing.T) (*Controller, *mocks) {
	c, m := newTestController(t)
	m.auth.EXPECT().CurrentUser(gomock.Any()).Return(testUser, nil)
	m.expectLoad(defaultFixture())
	c.Start(context.Background())
	return c, m
}

func TestStartAuthenticated(t *testing.T) {
	c, _ := startSignedIn(t)

	snapshot := c.Snapshot()
	assert.True(t, snapshot.Authenticated)
	assert.False(t, snapshot.Loading)
	assert.Equal(t, core.ViewDashboard, snapshot.View)
	assert.Len(t, snapshot.Characters, 2)
	assert.Len(t, snapshot.MyCharacters, 1)
	assert.Len(t, snapshot.Logs, 3)
	assert.Len(t, snapshot.Logs[0].Comments, 2)
	assert.Len(t, snapshot.Logs[2].Comments, 0)
	assert.Equal(t, "Ada", snapshot.Profile.Name)
	assert.Equal(t, core.Stats{LogsCount: 2, WordCount: "2.5k", CharactersCount: 1}, snapshot.Stats)
}

func TestStartUnauthenticated(t *testing.T) {
	c, m := newTestController(t)
	m.auth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)

	c.Start(context.Background())

	snapshot := c.Snapshot()
	assert.False(t, snapshot.Authenticated)
	assert.False(t, snapshot.Loading)
	assert.Equal(t, core.ViewWelcome, snapshot.View)
	assert.Equal(t, core.LoadingProfileName, snapshot.Profile.Name)
	assert.Empty(t, snapshot.Logs)
}

func TestRenderedViewIsWelcomeWhileSignedOut(t *testing.T) {
	c, m := newTestController(t)
	m.auth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)
	c.Start(context.Background())

	assert.NoError(t, c.Navigate(core.ViewProfile))

	snapshot := c.Snapshot()
	assert.Equal(t, core.ViewProfile, snapshot.CurrentView)
	assert.Equal(t, core.ViewWelcome, snapshot.View)
}

func TestInitialLoadToleratesFailures(t *testing.T) {
	c, m := newTestController(t)
	m.auth.EXPECT().CurrentUser(gomock.Any()).Return(testUser, nil)

	m.characters.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))
	m.characters.EXPECT().ListMine(gomock.Any()).Return([]core.Character{{ID: "c2"}}, nil)
	m.logs.EXPECT().List(gomock.Any()).Return([]core.ArchiveLog{{ID: "l1"}, {ID: "l2"}}, nil)
	m.profiles.EXPECT().Get(gomock.Any()).Return(core.UserProfile{}, errors.New("timeout"))
	m.comments.EXPECT().ListByLog(gomock.Any(), "l1").Return(nil, errors.New("timeout"))
	m.comments.EXPECT().ListByLog(gomock.Any(), "l2").Return([]core.Comment{{ID: "m1"}}, nil)

	c.Start(context.Background())

	snapshot := c.Snapshot()
	assert.Equal(t, core.ViewDashboard, snapshot.View)
	assert.Empty(t, snapshot.Characters)
	assert.Len(t, snapshot.MyCharacters, 1)
	assert.Len(t, snapshot.Logs, 2)
	assert.Equal(t, []core.Comment{}, snapshot.Logs[0].Comments)
	assert.Len(t, snapshot.Logs[1].Comments, 1)
	assert.Equal(t, core.LoadingProfileName, snapshot.Profile.Name)
}

func TestReauthenticationKeepsNavigation(t *testing.T) {
	c, m := startSignedIn(t)

	assert.NoError(t, c.Navigate(core.ViewSettings))
	m.expectLoad(defaultFixture())
	m.callback(testUser)
	assert.Equal(t, core.ViewSettings, c.Snapshot().View)

	assert.NoError(t, c.Navigate(core.ViewWelcome))
	m.expectLoad(defaultFixture())
	m.callback(testUser)
	assert.Equal(t, core.ViewWelcome, c.Snapshot().View)
}

func TestFirstLoadFromSubscription(t *testing.T) {
	c, m := newTestController(t)
	m.auth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)
	c.Start(context.Background())

	// the initial nil resolution already completed the first load
	m.expectLoad(defaultFixture())
	m.callback(testUser)
	assert.Equal(t, core.ViewWelcome, c.Snapshot().CurrentView)
	assert.True(t, c.Snapshot().Authenticated)
}

func TestSignOutClearsStateFromEditor(t *testing.T) {
	c, m := startSignedIn(t)

	c.CreateNewLog(core.ViewDrafts)
	assert.Equal(t, core.ViewLogEditor, c.Snapshot().View)

	m.auth.EXPECT().SignOut(gomock.Any()).DoAndReturn(func(context.Context) error {
		m.callback(nil)
		return nil
	})

	assert.NoError(t, c.SignOut(context.Background()))

	snapshot := c.Snapshot()
	assert.False(t, snapshot.Authenticated)
	assert.Equal(t, core.ViewWelcome, snapshot.View)
	assert.Equal(t, core.ViewWelcome, snapshot.CurrentView)
	assert.Equal(t, core.ViewNone, snapshot.Source)
	assert.Empty(t, snapshot.Characters)
	assert.Empty(t, snapshot.MyCharacters)
	assert.Empty(t, snapshot.Logs)
	assert.Nil(t, snapshot.SelectedLog)
}

func TestRemoteSignOutClearsState(t *testing.T) {
	c, m := startSignedIn(t)
	assert.NoError(t, c.Navigate(core.ViewCharacterEditor))

	m.callback(nil)

	snapshot := c.Snapshot()
	assert.Equal(t, core.ViewWelcome, snapshot.View)
	assert.Empty(t, snapshot.Logs)
}

func TestLoadDiscardedAfterSignOut(t *testing.T) {
	c, m := newTestController(t)
	m.auth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)
	c.Start(context.Background())

	entered := make(chan struct{})
	release := make(chan struct{})

	m.characters.EXPECT().List(gomock.Any()).DoAndReturn(func(context.Context) ([]core.Character, error) {
		close(entered)
		<-release
		return []core.Character{{ID: "c1"}}, nil
	})
	m.characters.EXPECT().ListMine(gomock.Any()).Return([]core.Character{}, nil)
	m.logs.EXPECT().List(gomock.Any()).Return([]core.ArchiveLog{}, nil)
	m.profiles.EXPECT().Get(gomock.Any()).Return(core.UserProfile{Name: "Ada"}, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.callback(testUser)
	}()

	<-entered
	m.callback(nil)
	close(release)
	<-done

	snapshot := c.Snapshot()
	assert.False(t, snapshot.Authenticated)
	assert.Empty(t, snapshot.Characters)
	assert.Equal(t, core.ViewWelcome, snapshot.View)
}

func TestSignInFailureSetsAuthError(t *testing.T) {
	c, m := newTestController(t)
	m.auth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)
	c.Start(context.Background())

	m.auth.EXPECT().SignIn(gomock.Any(), "ada@example.com", "bad").Return(nil, core.NewErrorInvalidCredentials())
	err := c.SignIn(context.Background(), "ada@example.com", "bad")
	assert.ErrorIs(t, err, core.NewErrorInvalidCredentials())

	snapshot := c.Snapshot()
	assert.Equal(t, core.NewErrorInvalidCredentials().Error(), snapshot.AuthError)
	assert.Equal(t, core.ViewWelcome, snapshot.View)

	m.auth.EXPECT().SignUp(gomock.Any(), "ada@example.com", "secret123", "Ada").Return(nil, core.NewErrorConfirmationRequired())
	err = c.SignUp(context.Background(), "ada@example.com", "secret123", "Ada")
	assert.ErrorIs(t, err, core.NewErrorConfirmationRequired())
	assert.Equal(t, core.NewErrorConfirmationRequired().Error(), c.Snapshot().AuthError)
}

func TestSignInNavigatesToDashboard(t *testing.T) {
	c, m := newTestController(t)
	m.auth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)
	c.Start(context.Background())

	m.expectLoad(defaultFixture())
	m.auth.EXPECT().SignIn(gomock.Any(), "ada@example.com", "secret123").DoAndReturn(
		func(context.Context, string, string) (*core.AuthUser, error) {
			m.callback(testUser)
			return testUser, nil
		},
	)

	assert.NoError(t, c.SignIn(context.Background(), "ada@example.com", "secret123"))

	snapshot := c.Snapshot()
	assert.Equal(t, core.ViewDashboard, snapshot.View)
	assert.Empty(t, snapshot.AuthError)
	assert.Len(t, snapshot.Logs, 3)
}

func TestSubscribeIsLatestWins(t *testing.T) {
	c, _ := startSignedIn(t)

	snapshots, unsubscribe := c.Subscribe()
	defer unsubscribe()

	assert.NoError(t, c.Navigate(core.ViewProfile))
	assert.NoError(t, c.Navigate(core.ViewSettings))
	assert.NoError(t, c.Navigate(core.ViewDrafts))

	latest := <-snapshots
	assert.Equal(t, core.ViewDrafts, latest.View)
	assert.Equal(t, c.Snapshot().Version, latest.Version)

	select {
	case <-snapshots:
		t.Fatal("expected no buffered snapshot")
	default:
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	c, _ := startSignedIn(t)

	snapshot := c.Snapshot()
	snapshot.Logs[0].Comments[0].Content = "tampered"
	snapshot.Characters[0].Tags[0] = "tampered"

	fresh := c.Snapshot()
	assert.Equal(t, "first", fresh.Logs[0].Comments[0].Content)
	assert.Equal(t, "quiet", fresh.Characters[0].Tags[0])
}

func TestStopClosesSubscriptions(t *testing.T) {
	c, _ := startSignedIn(t)

	snapshots, _ := c.Subscribe()
	<-snapshots
	c.Stop()

	_, ok := <-snapshots
	assert.False(t, ok)
}
