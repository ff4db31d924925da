package service

import (
	"context"

	"github.com/alfurqan/prayertrack-backend/internal/metrics"
	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/repository"
	"github.com/alfurqan/prayertrack-backend/internal/ws"
)

// AttendanceService composes attendance persistence with change
// fan-out.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	publisher      ChangePublisher
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, publisher ChangePublisher) *AttendanceService {
	return &AttendanceService{attendanceRepo: attendanceRepo, publisher: publisher}
}

// List retrieves attendance records matching the filter.
func (s *AttendanceService) List(ctx context.Context, filter model.AttendanceFilter) ([]model.AttendanceRecord, error) {
	return s.attendanceRepo.List(ctx, filter)
}

// Summarize groups the filtered records by date then prayer.
func (s *AttendanceService) Summarize(ctx context.Context, filter model.AttendanceFilter) (model.AttendanceSummary, error) {
	return s.attendanceRepo.Summarize(ctx, filter)
}

// Upsert creates or replaces an attendance record, then broadcasts the
// persisted entity.
func (s *AttendanceService) Upsert(ctx context.Context, req model.UpsertAttendanceRequest) (model.AttendanceRecord, bool, error) {
	rec, created, err := s.attendanceRepo.Upsert(ctx, req)
	if err != nil {
		return model.AttendanceRecord{}, false, err
	}
	metrics.Mutations.WithLabelValues(string(ws.KindAttendance), actionLabel(created)).Inc()
	s.publisher.EntityUpdated(ws.KindAttendance, created, rec)
	return rec, created, nil
}

// Delete removes an attendance record, then broadcasts the deletion.
// No cascade.
func (s *AttendanceService) Delete(ctx context.Context, id string) (*model.AttendanceRecord, error) {
	removed, err := s.attendanceRepo.Delete(ctx, id)
	if err != nil || removed == nil {
		return removed, err
	}
	metrics.Mutations.WithLabelValues(string(ws.KindAttendance), "deleted").Inc()
	s.publisher.EntityDeleted(ws.KindAttendance, removed.ID)
	return removed, nil
}
