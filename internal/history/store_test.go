package history_test

import (
	"testing"
	"time"

	"github.com/mauv0809/pkhk-scout/internal/database"
	"github.com/mauv0809/pkhk-scout/internal/history"
	"github.com/mauv0809/pkhk-scout/internal/report"
	"github.com/mauv0809/pkhk-scout/internal/swimming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (history.Store, func()) {
	t.Helper()

	db, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return history.New(db), func() { db.Close() }
}

func summary(id string, started time.Time, members ...swimming.Person) *report.RunSummary {
	return &report.RunSummary{
		RunID:      id,
		Club:       "PKHK",
		InputPath:  "names_list.txt",
		OutputPath: "pkhk_members.txt",
		Names:      3,
		Lookups:    3,
		Matches:    members,
		Members:    members,
		Written:    len(members),
		StartedAt:  started,
		Duration:   1500 * time.Millisecond,
	}
}

func TestRecordRunAndGetMembers(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	members := []swimming.Person{
		{FirstName: "Jan", LastName: "Novak", UserID: "123", ClubAbbrev: "PKHK"},
		{FirstName: "Eva", LastName: "Dvorakova", UserID: "456", ClubAbbrev: "PKHK"},
	}
	started := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun(summary("run-1", started, members...)))

	run, err := store.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "PKHK", run.Club)
	assert.Equal(t, 2, run.Matches)
	assert.Equal(t, 2, run.Written)
	assert.Equal(t, 1500*time.Millisecond, run.Duration)
	assert.True(t, started.Equal(run.StartedAt))

	got, err := store.GetRunMembers("run-1")
	require.NoError(t, err)
	assert.Equal(t, members, got)
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun(summary("old", base)))
	require.NoError(t, store.RecordRun(summary("new", base.Add(2*time.Hour))))
	require.NoError(t, store.RecordRun(summary("mid", base.Add(time.Hour))))

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
}

func TestRecordRun_DuplicateIDRollsBack(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	member := swimming.Person{FirstName: "Jan", LastName: "Novak", UserID: "1", ClubAbbrev: "PKHK"}
	require.NoError(t, store.RecordRun(summary("dup", time.Now(), member)))
	assert.Error(t, store.RecordRun(summary("dup", time.Now(), member, member)))

	got, err := store.GetRunMembers("dup")
	require.NoError(t, err)
	assert.Len(t, got, 1, "the failed second insert must not leave members behind")
}

func TestGetRun_NotFound(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetRun("missing")
	assert.ErrorIs(t, err, history.ErrRunNotFound)
}
