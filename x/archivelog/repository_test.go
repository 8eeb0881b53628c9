package archivelog

import (
	"context"
	"log"
	"testing"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/internal/testutil"
)

var ctx = context.Background()
var repo Repository
var db *gorm.DB
var mc *memcache.Client

func TestMain(m *testing.M) {
	log.Println("Test Start")

	var cleanup_db func()
	db, cleanup_db = testutil.CreateDB()
	defer cleanup_db()

	var cleanup_mc func()
	mc, cleanup_mc = testutil.CreateMC()
	defer cleanup_mc()

	repo = NewRepository(db, mc)

	m.Run()

	log.Println("Test End")
}

func TestRepository(t *testing.T) {
	entries := `[{"role":"NAR","timestamp":"","content":"night"}]`
	created, err := repo.Create(ctx, core.LogRow{
		UserID:       "cn0alice000000000000",
		Title:        "First Night",
		Status:       "Ongoing",
		WordCount:    "5",
		Participants: pq.StringArray{"Ada"},
		Entries:      &entries,
	})
	assert.NoError(t, err)
	assert.Len(t, created.ID, 20)
	assert.JSONEq(t, entries, *created.Entries)

	err = db.WithContext(ctx).Create(&core.CommentRow{
		ID:       "cm000000000000000001",
		LogID:    created.ID,
		UserID:   "cn0alice000000000000",
		UserName: "alice",
		Content:  "nice",
	}).Error
	assert.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, map[string]any{"is_favorite": true})
	assert.NoError(t, err)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, "First Night", updated.Title)

	count, err := repo.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = repo.Delete(ctx, created.ID)
	assert.NoError(t, err)

	var remaining int64
	err = db.WithContext(ctx).Model(&core.CommentRow{}).Where("log_id = ?", created.ID).Count(&remaining).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(0), remaining)

	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, core.NewErrorNotFound())
}
