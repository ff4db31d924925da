package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/prayertrack-backend/internal/model"
)

func TestClassUpsertCreatesThenReplaces(t *testing.T) {
	repo := NewClassRepository(newTestStore(t))
	ctx := context.Background()

	cls, created, err := repo.Upsert(ctx, model.UpsertClassRequest{ID: "c1", Name: "Grade 5"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Grade 5", cls.Name)
	assert.False(t, cls.CreatedAt.IsZero())

	// Second upsert with the same ID replaces in place.
	replaced, created, err := repo.Upsert(ctx, model.UpsertClassRequest{ID: "c1", Name: "Grade 5 B"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Grade 5 B", replaced.Name)
	assert.Equal(t, cls.CreatedAt, replaced.CreatedAt)

	classes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "c1", classes[0].ID)
	assert.Equal(t, "Grade 5 B", classes[0].Name)
}

func TestClassUpsertValidation(t *testing.T) {
	repo := NewClassRepository(newTestStore(t))
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, model.UpsertClassRequest{ID: "c1"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"name"}, ve.Fields)

	_, _, err = repo.Upsert(ctx, model.UpsertClassRequest{Name: "  "})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"id", "name"}, ve.Fields)

	// Validation failure never touches the document.
	classes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestClassDeleteCascadesStudentsByName(t *testing.T) {
	st := newTestStore(t)
	classRepo := NewClassRepository(st)
	studentRepo := NewStudentRepository(st)
	ctx := context.Background()

	_, _, err := classRepo.Upsert(ctx, model.UpsertClassRequest{ID: "c1", Name: "Grade 5"})
	require.NoError(t, err)
	_, _, err = studentRepo.Upsert(ctx, model.UpsertStudentRequest{ID: "s1", Name: "Ali", ClassName: "Grade 5"})
	require.NoError(t, err)
	_, _, err = studentRepo.Upsert(ctx, model.UpsertStudentRequest{ID: "s2", Name: "Bilal", ClassName: "Grade 5"})
	require.NoError(t, err)
	_, _, err = studentRepo.Upsert(ctx, model.UpsertStudentRequest{ID: "s3", Name: "Zayd", ClassName: "Grade 6"})
	require.NoError(t, err)

	removed, err := classRepo.Delete(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "Grade 5", removed.Name)

	// Only students of the exactly matching class name are gone.
	students, err := studentRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "s3", students[0].ID)
}

func TestClassDeleteAbsentIsNoop(t *testing.T) {
	repo := NewClassRepository(newTestStore(t))

	removed, err := repo.Delete(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, removed)
}

func TestClassDeleteLeavesAttendanceAlone(t *testing.T) {
	// Two-hop cascade only: deleting a class removes its students, but
	// attendance rows are removed only through student deletes.
	st := newTestStore(t)
	classRepo := NewClassRepository(st)
	attendanceRepo := NewAttendanceRepository(st)
	ctx := context.Background()

	_, _, err := classRepo.Upsert(ctx, model.UpsertClassRequest{ID: "c1", Name: "Grade 5"})
	require.NoError(t, err)
	_, _, err = attendanceRepo.Upsert(ctx, model.UpsertAttendanceRequest{
		ID: "a1", StudentID: "s1", StudentName: "Ali", ClassName: "Grade 5",
		Prayer: "fajr", Date: "2024-01-01", Status: "present",
	})
	require.NoError(t, err)

	_, err = classRepo.Delete(ctx, "c1")
	require.NoError(t, err)

	records, err := attendanceRepo.List(ctx, model.AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestClassUpsertPersistenceError(t *testing.T) {
	repo := NewClassRepository(brokenStore{inner: newTestStore(t)})

	_, _, err := repo.Upsert(context.Background(), model.UpsertClassRequest{ID: "c1", Name: "Grade 5"})
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, errDiskGone)
}

func TestConcurrentClassUpsertsSameID(t *testing.T) {
	repo := NewClassRepository(newTestStore(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, name := range []string{"Grade 5", "Grade 5 (renamed)"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, _, err := repo.Upsert(ctx, model.UpsertClassRequest{ID: "c1", Name: name})
			assert.NoError(t, err)
		}(name)
	}
	wg.Wait()

	// Never two entities with the same ID; last committed writer wins.
	classes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Contains(t, []string{"Grade 5", "Grade 5 (renamed)"}, classes[0].Name)
}
