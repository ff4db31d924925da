package repository

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/prayertrack-backend/internal/model"
)

func seedAttendance(t *testing.T, repo *AttendanceRepository, reqs ...model.UpsertAttendanceRequest) {
	t.Helper()
	for _, req := range reqs {
		_, _, err := repo.Upsert(context.Background(), req)
		require.NoError(t, err)
	}
}

func TestAttendanceUpsertValidation(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, model.UpsertAttendanceRequest{
		ID: "a1", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5",
		Prayer: "fajr", Date: "2024-01-01",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"status"}, ve.Fields)

	records, err := repo.List(ctx, model.AttendanceFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAttendanceListFilters(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	seedAttendance(t, repo,
		model.UpsertAttendanceRequest{ID: "a1", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5", Prayer: "fajr", Date: "2024-01-01", Status: "present"},
		model.UpsertAttendanceRequest{ID: "a2", StudentID: "s2", StudentName: "Bilal", ClassName: "Grade 6", Prayer: "fajr", Date: "2024-01-01", Status: "absent"},
		model.UpsertAttendanceRequest{ID: "a3", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5", Prayer: "dhuhr", Date: "2024-01-02", Status: "present"},
	)
	ctx := context.Background()

	byDate, err := repo.List(ctx, model.AttendanceFilter{Date: "2024-01-01"})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	// Filters AND together.
	combined, err := repo.List(ctx, model.AttendanceFilter{Date: "2024-01-01", ClassName: "Grade 5", Prayer: "fajr", StudentID: "s1"})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "a1", combined[0].ID)

	none, err := repo.List(ctx, model.AttendanceFilter{Prayer: "asr"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAttendanceDeleteHasNoCascade(t *testing.T) {
	st := newTestStore(t)
	repo := NewAttendanceRepository(st)
	studentRepo := NewStudentRepository(st)
	ctx := context.Background()

	_, _, err := studentRepo.Upsert(ctx, model.UpsertStudentRequest{ID: "s1", Name: "Ali", ClassName: "Grade 5"})
	require.NoError(t, err)
	seedAttendance(t, repo, model.UpsertAttendanceRequest{
		ID: "a1", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5",
		Prayer: "fajr", Date: "2024-01-01", Status: "present",
	})

	removed, err := repo.Delete(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "a1", removed.ID)

	students, err := studentRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestSummarizeGroupsByDateThenPrayer(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	seedAttendance(t, repo,
		model.UpsertAttendanceRequest{ID: "a1", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5", Prayer: "fajr", Date: "2024-01-01", Status: "present"},
		model.UpsertAttendanceRequest{ID: "a2", StudentID: "s2", StudentName: "Bilal", ClassName: "Grade 5", Prayer: "fajr", Date: "2024-01-01", Status: "absent"},
		model.UpsertAttendanceRequest{ID: "a3", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5", Prayer: "dhuhr", Date: "2024-01-02", Status: "present"},
	)

	summary, err := repo.Summarize(context.Background(), model.AttendanceFilter{})
	require.NoError(t, err)

	require.Len(t, summary.Dates, 2)
	assert.Equal(t, "2024-01-01", summary.Dates[0].Date)
	assert.Equal(t, "2024-01-02", summary.Dates[1].Date)

	fajr := summary.Dates[0].Prayers
	require.Len(t, fajr, 1)
	assert.Equal(t, "fajr", fajr[0].Prayer)
	require.Len(t, fajr[0].Records, 2)
	// Records keep their original relative order.
	assert.Equal(t, "a1", fajr[0].Records[0].ID)
	assert.Equal(t, "a2", fajr[0].Records[1].ID)

	dhuhr := summary.Dates[1].Prayers
	require.Len(t, dhuhr, 1)
	assert.Equal(t, "dhuhr", dhuhr[0].Prayer)
	require.Len(t, dhuhr[0].Records, 1)
}

func TestSummaryMarshalPreservesGroupOrder(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	seedAttendance(t, repo,
		model.UpsertAttendanceRequest{ID: "a1", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5", Prayer: "isha", Date: "2024-02-02", Status: "present"},
		model.UpsertAttendanceRequest{ID: "a2", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5", Prayer: "fajr", Date: "2024-01-01", Status: "present"},
	)

	summary, err := repo.Summarize(context.Background(), model.AttendanceFilter{})
	require.NoError(t, err)

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	// First-appearance order survives marshaling, even out of
	// lexicographic order.
	out := string(data)
	assert.Less(t, strings.Index(out, "2024-02-02"), strings.Index(out, "2024-01-01"))

	var decoded map[string]map[string][]model.AttendanceRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded["2024-02-02"]["isha"], 1)
	assert.Equal(t, "a1", decoded["2024-02-02"]["isha"][0].ID)
}

func TestAttendancePersistenceFailureLeavesStateUnchanged(t *testing.T) {
	st := newTestStore(t)
	repo := NewAttendanceRepository(st)
	seedAttendance(t, repo, model.UpsertAttendanceRequest{
		ID: "a1", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5",
		Prayer: "fajr", Date: "2024-01-01", Status: "present",
	})

	broken := NewAttendanceRepository(brokenStore{inner: st})
	_, _, err := broken.Upsert(context.Background(), model.UpsertAttendanceRequest{
		ID: "a2", StudentID: "s2", StudentName: "Bilal", ClassName: "Grade 5",
		Prayer: "fajr", Date: "2024-01-01", Status: "present",
	})
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)

	records, err := repo.List(context.Background(), model.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a1", records[0].ID)
}
