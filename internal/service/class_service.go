package service

import (
	"context"

	"github.com/alfurqan/prayertrack-backend/internal/metrics"
	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/repository"
	"github.com/alfurqan/prayertrack-backend/internal/ws"
)

// ClassService composes class persistence with change fan-out. Events
// are published only after the repository transaction has committed;
// reads never publish.
type ClassService struct {
	classRepo *repository.ClassRepository
	publisher ChangePublisher
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository, publisher ChangePublisher) *ClassService {
	return &ClassService{classRepo: classRepo, publisher: publisher}
}

// List retrieves all classes.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.classRepo.List(ctx)
}

// Upsert creates or replaces a class, then broadcasts the persisted
// entity. Returns the entity and whether it was created.
func (s *ClassService) Upsert(ctx context.Context, req model.UpsertClassRequest) (model.Class, bool, error) {
	cls, created, err := s.classRepo.Upsert(ctx, req)
	if err != nil {
		return model.Class{}, false, err
	}
	metrics.Mutations.WithLabelValues(string(ws.KindClass), actionLabel(created)).Inc()
	s.publisher.EntityUpdated(ws.KindClass, created, cls)
	return cls, created, nil
}

// Delete removes a class and its students (cascade by class name),
// then broadcasts the class deletion. A nil result means nothing
// matched; no event is published for a no-op.
func (s *ClassService) Delete(ctx context.Context, id string) (*model.Class, error) {
	removed, err := s.classRepo.Delete(ctx, id)
	if err != nil || removed == nil {
		return removed, err
	}
	metrics.Mutations.WithLabelValues(string(ws.KindClass), "deleted").Inc()
	s.publisher.EntityDeleted(ws.KindClass, removed.ID)
	return removed, nil
}
