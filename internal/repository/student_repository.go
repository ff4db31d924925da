package repository

import (
	"context"
	"time"

	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/store"
)

// StudentRepository handles student data access over the document store.
type StudentRepository struct {
	store DocumentStore
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(st DocumentStore) *StudentRepository {
	return &StudentRepository{store: st}
}

// List retrieves all students from a fresh snapshot.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	doc, err := r.store.Snapshot(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list students", Err: err}
	}
	return doc.Students, nil
}

// ListByClassName retrieves students whose className matches exactly.
func (r *StudentRepository) ListByClassName(ctx context.Context, className string) ([]model.Student, error) {
	doc, err := r.store.Snapshot(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list students", Err: err}
	}
	students := []model.Student{}
	for _, s := range doc.Students {
		if s.ClassName == className {
			students = append(students, s)
		}
	}
	return students, nil
}

// Upsert creates or replaces a student by ID in one document
// transaction. The second return value reports whether the student was
// created. ClassName is stored as given; it is not checked against the
// classes collection.
func (r *StudentRepository) Upsert(ctx context.Context, req model.UpsertStudentRequest) (model.Student, bool, error) {
	if missing := missingFields(
		field{"id", req.ID},
		field{"name", req.Name},
		field{"className", req.ClassName},
	); len(missing) > 0 {
		return model.Student{}, false, &ValidationError{Fields: missing}
	}

	var (
		out     model.Student
		created bool
	)
	err := r.store.Update(ctx, func(doc *model.Document) error {
		out = model.Student{
			ID:         req.ID,
			Name:       req.Name,
			RollNumber: req.RollNumber,
			ClassName:  req.ClassName,
			UpdatedAt:  time.Now().UTC(),
		}
		for i, existing := range doc.Students {
			if existing.ID == req.ID {
				doc.Students[i] = out
				return nil
			}
		}
		created = true
		doc.Students = append(doc.Students, out)
		return nil
	})
	if err != nil {
		return model.Student{}, false, &PersistenceError{Op: "upsert student", Err: err}
	}
	return out, created, nil
}

// Delete removes the student with the given ID and, in the same
// transaction, every attendance record whose studentId equals that ID.
// Returns nil when no student matched.
func (r *StudentRepository) Delete(ctx context.Context, id string) (*model.Student, error) {
	var removed *model.Student
	err := r.store.Update(ctx, func(doc *model.Document) error {
		idx := -1
		for i, s := range doc.Students {
			if s.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return store.ErrNoChange
		}

		st := doc.Students[idx]
		removed = &st
		doc.Students = append(doc.Students[:idx], doc.Students[idx+1:]...)

		kept := doc.Attendance[:0]
		for _, rec := range doc.Attendance {
			if rec.StudentID != id {
				kept = append(kept, rec)
			}
		}
		doc.Attendance = kept
		return nil
	})
	if err != nil {
		return nil, &PersistenceError{Op: "delete student", Err: err}
	}
	return removed, nil
}
