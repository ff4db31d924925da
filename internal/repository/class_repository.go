package repository

import (
	"context"
	"time"

	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/store"
)

// ClassRepository handles class data access over the document store.
type ClassRepository struct {
	store DocumentStore
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(st DocumentStore) *ClassRepository {
	return &ClassRepository{store: st}
}

// List retrieves all classes from a fresh snapshot.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	doc, err := r.store.Snapshot(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list classes", Err: err}
	}
	return doc.Classes, nil
}

// Upsert creates or replaces a class by ID in one document transaction.
// An existing class keeps its CreatedAt; all other fields are replaced.
// The second return value reports whether the class was created.
func (r *ClassRepository) Upsert(ctx context.Context, req model.UpsertClassRequest) (model.Class, bool, error) {
	if missing := missingFields(
		field{"id", req.ID},
		field{"name", req.Name},
	); len(missing) > 0 {
		return model.Class{}, false, &ValidationError{Fields: missing}
	}

	var (
		out     model.Class
		created bool
	)
	err := r.store.Update(ctx, func(doc *model.Document) error {
		now := time.Now().UTC()
		for i, existing := range doc.Classes {
			if existing.ID == req.ID {
				out = model.Class{
					ID:        req.ID,
					Name:      req.Name,
					CreatedAt: existing.CreatedAt,
					UpdatedAt: now,
				}
				doc.Classes[i] = out
				return nil
			}
		}
		created = true
		out = model.Class{
			ID:        req.ID,
			Name:      req.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		doc.Classes = append(doc.Classes, out)
		return nil
	})
	if err != nil {
		return model.Class{}, false, &PersistenceError{Op: "upsert class", Err: err}
	}
	return out, created, nil
}

// Delete removes the class with the given ID and, in the same
// transaction, every student whose className equals the deleted class's
// name. Returns nil when no class matched; an absent ID is not an error.
func (r *ClassRepository) Delete(ctx context.Context, id string) (*model.Class, error) {
	var removed *model.Class
	err := r.store.Update(ctx, func(doc *model.Document) error {
		idx := -1
		for i, c := range doc.Classes {
			if c.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return store.ErrNoChange
		}

		cls := doc.Classes[idx]
		removed = &cls
		doc.Classes = append(doc.Classes[:idx], doc.Classes[idx+1:]...)

		// Cascade by name match only. Attendance rows are never touched
		// here; the cascade to attendance runs through student deletes.
		kept := doc.Students[:0]
		for _, s := range doc.Students {
			if s.ClassName != cls.Name {
				kept = append(kept, s)
			}
		}
		doc.Students = kept
		return nil
	})
	if err != nil {
		return nil, &PersistenceError{Op: "delete class", Err: err}
	}
	return removed, nil
}
