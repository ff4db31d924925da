package service

import (
	"context"

	"github.com/alfurqan/prayertrack-backend/internal/metrics"
	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/repository"
	"github.com/alfurqan/prayertrack-backend/internal/ws"
)

// StudentService composes student persistence with change fan-out.
type StudentService struct {
	studentRepo *repository.StudentRepository
	publisher   ChangePublisher
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, publisher ChangePublisher) *StudentService {
	return &StudentService{studentRepo: studentRepo, publisher: publisher}
}

// List retrieves all students, or only those in className when it is
// non-empty.
func (s *StudentService) List(ctx context.Context, className string) ([]model.Student, error) {
	if className != "" {
		return s.studentRepo.ListByClassName(ctx, className)
	}
	return s.studentRepo.List(ctx)
}

// Upsert creates or replaces a student, then broadcasts the persisted
// entity.
func (s *StudentService) Upsert(ctx context.Context, req model.UpsertStudentRequest) (model.Student, bool, error) {
	student, created, err := s.studentRepo.Upsert(ctx, req)
	if err != nil {
		return model.Student{}, false, err
	}
	metrics.Mutations.WithLabelValues(string(ws.KindStudent), actionLabel(created)).Inc()
	s.publisher.EntityUpdated(ws.KindStudent, created, student)
	return student, created, nil
}

// Delete removes a student and their attendance records (cascade by
// student ID), then broadcasts the student deletion.
func (s *StudentService) Delete(ctx context.Context, id string) (*model.Student, error) {
	removed, err := s.studentRepo.Delete(ctx, id)
	if err != nil || removed == nil {
		return removed, err
	}
	metrics.Mutations.WithLabelValues(string(ws.KindStudent), "deleted").Inc()
	s.publisher.EntityDeleted(ws.KindStudent, removed.ID)
	return removed, nil
}
