package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/equiptrack/gateway/internal/models"
)

func TestMaintenanceTaskRepository_CreateAssignsID(t *testing.T) {
	repo := NewMaintenanceTaskRepository(setupStoreTestEnv(t))

	task := &models.MaintenanceTask{
		Title:     "Oil Level Check",
		Frequency: models.FrequencyDaily,
		Time:      "08:00",
		Priority:  models.PriorityMedium,
		Checklist: testChecklist(),
	}
	require.NoError(t, repo.Create(task))
	require.NotEmpty(t, task.ID)
	require.False(t, task.CreatedAt.IsZero())

	stored, err := repo.Get(task.ID)
	require.NoError(t, err)
	require.Equal(t, "Oil Level Check", stored.Title)
	require.Len(t, stored.Checklist, 2)
	require.True(t, stored.Checklist[1].Completed)
}

func TestMaintenanceTaskRepository_ListOrdering(t *testing.T) {
	repo := NewMaintenanceTaskRepository(setupStoreTestEnv(t))

	mk := func(title, timeOfDay string, freq models.Frequency) {
		require.NoError(t, repo.Create(&models.MaintenanceTask{
			Title:     title,
			Frequency: freq,
			Time:      timeOfDay,
			Priority:  models.PriorityMedium,
		}))
	}
	mk("Late task", "16:00", models.FrequencyDaily)
	mk("Early task", "06:00", models.FrequencyWeekly)
	mk("Mid task", "10:00", models.FrequencyDaily)

	all, err := repo.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Early task", all[0].Title)
	require.Equal(t, "Late task", all[2].Title)

	daily, err := repo.ListByFrequency(models.FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, daily, 2)
	require.Equal(t, "Mid task", daily[0].Title)
}

func TestMaintenanceTaskRepository_UpdateAndDeleteMissing(t *testing.T) {
	repo := NewMaintenanceTaskRepository(setupStoreTestEnv(t))

	err := repo.Update(&models.MaintenanceTask{ID: "missing", Title: "X"})
	require.ErrorIs(t, err, ErrMaintenanceTaskNotFound)

	require.ErrorIs(t, repo.Delete("missing"), ErrMaintenanceTaskNotFound)

	_, err = repo.Get("missing")
	require.ErrorIs(t, err, ErrMaintenanceTaskNotFound)
}

func TestMaintenanceTaskRepository_Seed(t *testing.T) {
	db := setupStoreTestEnv(t)
	require.NoError(t, Seed(db))

	repo := NewMaintenanceTaskRepository(db)
	all, err := repo.List()
	require.NoError(t, err)
	require.Len(t, all, 4)

	// Seeding again must not duplicate the starter tasks.
	require.NoError(t, Seed(db))
	all, err = repo.List()
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestDraftRepository_GetPropagatesQueryErrors(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		mockDB.Close()
	})

	mock.ExpectQuery(`select sqlite_version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.0"))

	db, err := gorm.Open(sqlite.Dialector{Conn: mockDB}, &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT(.*)").WillReturnError(gorm.ErrInvalidDB)

	repo := NewDraftRepository(db)
	_, found, err := repo.Get("equiptrack:checklist:workorder:wo-1")
	require.Error(t, err)
	require.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_SavedAtSurvivesRoundTrip(t *testing.T) {
	repo := NewSnapshotRepository(setupStoreTestEnv(t))

	at := time.Now().Truncate(time.Second)
	require.NoError(t, repo.Put("equiptrack:sample:mt-9", testChecklist(), at))

	_, gotAt, found, err := repo.Get("equiptrack:sample:mt-9")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, gotAt.Equal(at))
}
