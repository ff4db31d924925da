package repository

import (
	"context"
	"time"

	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/store"
)

// AttendanceRepository handles attendance data access over the document
// store.
type AttendanceRepository struct {
	store DocumentStore
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(st DocumentStore) *AttendanceRepository {
	return &AttendanceRepository{store: st}
}

// List retrieves attendance records matching the filter from a fresh
// snapshot. Zero-valued filter fields are ignored.
func (r *AttendanceRepository) List(ctx context.Context, filter model.AttendanceFilter) ([]model.AttendanceRecord, error) {
	doc, err := r.store.Snapshot(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list attendance", Err: err}
	}
	records := []model.AttendanceRecord{}
	for _, rec := range doc.Attendance {
		if filter.Match(rec) {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Summarize groups the filtered attendance list by date, then by
// prayer, both in first-appearance order, keeping each record's
// relative position. Pure read-side projection; nothing is persisted.
func (r *AttendanceRepository) Summarize(ctx context.Context, filter model.AttendanceFilter) (model.AttendanceSummary, error) {
	records, err := r.List(ctx, filter)
	if err != nil {
		return model.AttendanceSummary{}, err
	}

	summary := model.AttendanceSummary{Dates: []model.DateGroup{}}
	dateIdx := map[string]int{}
	prayerIdx := map[string]map[string]int{}

	for _, rec := range records {
		di, ok := dateIdx[rec.Date]
		if !ok {
			di = len(summary.Dates)
			dateIdx[rec.Date] = di
			prayerIdx[rec.Date] = map[string]int{}
			summary.Dates = append(summary.Dates, model.DateGroup{Date: rec.Date})
		}

		pi, ok := prayerIdx[rec.Date][rec.Prayer]
		if !ok {
			pi = len(summary.Dates[di].Prayers)
			prayerIdx[rec.Date][rec.Prayer] = pi
			summary.Dates[di].Prayers = append(summary.Dates[di].Prayers, model.PrayerGroup{Prayer: rec.Prayer})
		}

		summary.Dates[di].Prayers[pi].Records = append(summary.Dates[di].Prayers[pi].Records, rec)
	}
	return summary, nil
}

// Upsert creates or replaces an attendance record by ID in one document
// transaction. The second return value reports whether the record was
// created.
func (r *AttendanceRepository) Upsert(ctx context.Context, req model.UpsertAttendanceRequest) (model.AttendanceRecord, bool, error) {
	if missing := missingFields(
		field{"id", req.ID},
		field{"studentId", req.StudentID},
		field{"studentName", req.StudentName},
		field{"className", req.ClassName},
		field{"prayer", req.Prayer},
		field{"date", req.Date},
		field{"status", req.Status},
	); len(missing) > 0 {
		return model.AttendanceRecord{}, false, &ValidationError{Fields: missing}
	}

	var (
		out     model.AttendanceRecord
		created bool
	)
	err := r.store.Update(ctx, func(doc *model.Document) error {
		out = model.AttendanceRecord{
			ID:          req.ID,
			StudentID:   req.StudentID,
			StudentName: req.StudentName,
			ClassName:   req.ClassName,
			Prayer:      req.Prayer,
			Date:        req.Date,
			Status:      req.Status,
			Reason:      req.Reason,
			Timestamp:   req.Timestamp,
			UpdatedAt:   time.Now().UTC(),
		}
		for i, existing := range doc.Attendance {
			if existing.ID == req.ID {
				doc.Attendance[i] = out
				return nil
			}
		}
		created = true
		doc.Attendance = append(doc.Attendance, out)
		return nil
	})
	if err != nil {
		return model.AttendanceRecord{}, false, &PersistenceError{Op: "upsert attendance", Err: err}
	}
	return out, created, nil
}

// Delete removes the attendance record with the given ID. No cascade.
// Returns nil when no record matched.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) (*model.AttendanceRecord, error) {
	var removed *model.AttendanceRecord
	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i, rec := range doc.Attendance {
			if rec.ID == id {
				removed = &rec
				doc.Attendance = append(doc.Attendance[:i], doc.Attendance[i+1:]...)
				return nil
			}
		}
		return store.ErrNoChange
	})
	if err != nil {
		return nil, &PersistenceError{Op: "delete attendance", Err: err}
	}
	return removed, nil
}
