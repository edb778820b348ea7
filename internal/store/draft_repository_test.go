package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/equiptrack/gateway/internal/models"
)

func setupStoreTestEnv(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func testChecklist() models.Checklist {
	return models.Checklist{
		{ID: "item-1", Text: "Check oil level"},
		{ID: "item-2", Text: "Inspect belt", Completed: true},
	}
}

func TestDraftRepository_PutGetDelete(t *testing.T) {
	repo := NewDraftRepository(setupStoreTestEnv(t))
	key := "equiptrack:checklist:workorder:wo-1"

	_, found, err := repo.Get(key)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, repo.Put(key, testChecklist()))

	draft, found, err := repo.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, draft, 2)
	require.True(t, draft[1].Completed)

	require.NoError(t, repo.Delete(key))
	_, found, err = repo.Get(key)
	require.NoError(t, err)
	require.False(t, found)

	// Deleting a missing key is not an error.
	require.NoError(t, repo.Delete(key))
}

func TestDraftRepository_PutOverwrites(t *testing.T) {
	repo := NewDraftRepository(setupStoreTestEnv(t))
	key := "equiptrack:checklist:workorder:wo-1"

	require.NoError(t, repo.Put(key, testChecklist()))
	require.NoError(t, repo.Put(key, models.Checklist{{ID: "only", Text: "Just one"}}))

	draft, found, err := repo.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, draft, 1)
	require.Equal(t, "only", draft[0].ID)
}

func TestDraftRepository_CorruptPayloadTreatedAsAbsent(t *testing.T) {
	db := setupStoreTestEnv(t)
	repo := NewDraftRepository(db)
	key := "equiptrack:checklist:workorder:wo-1"

	require.NoError(t, db.Create(&DraftEntry{
		Key:       key,
		Payload:   "{not json",
		UpdatedAt: time.Now(),
	}).Error)

	_, found, err := repo.Get(key)
	require.NoError(t, err)
	require.False(t, found)
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	repo := NewSnapshotRepository(setupStoreTestEnv(t))
	key := "equiptrack:sample:mt-1"

	_, _, found, err := repo.Get(key)
	require.NoError(t, err)
	require.False(t, found)

	savedAt := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Put(key, testChecklist(), savedAt))

	snapshot, gotAt, found, err := repo.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, snapshot, 2)
	require.True(t, gotAt.Equal(savedAt))

	// A later save replaces the snapshot and its timestamp.
	laterAt := savedAt.Add(time.Hour)
	require.NoError(t, repo.Put(key, models.Checklist{{ID: "x", Text: "Done", Completed: true}}, laterAt))

	snapshot, gotAt, found, err = repo.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, snapshot, 1)
	require.True(t, gotAt.Equal(laterAt))
}
