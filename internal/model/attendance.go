package model

import "time"

// AttendanceRecord marks one student's attendance at one prayer on one
// date. StudentName and ClassName are denormalized snapshots taken at
// write time; they are never re-derived from the other collections.
type AttendanceRecord struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	ClassName   string    `json:"className"`
	Prayer      string    `json:"prayer"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason,omitempty"`
	Timestamp   string    `json:"timestamp"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpsertAttendanceRequest is the payload for creating or replacing an
// attendance record.
type UpsertAttendanceRequest struct {
	ID          string `json:"id" binding:"required"`
	StudentID   string `json:"studentId" binding:"required"`
	StudentName string `json:"studentName" binding:"required"`
	ClassName   string `json:"className" binding:"required"`
	Prayer      string `json:"prayer" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Status      string `json:"status" binding:"required"`
	Reason      string `json:"reason"`
	Timestamp   string `json:"timestamp"`
}

// AttendanceFilter narrows attendance reads. Zero-valued fields are
// ignored; the set fields combine with AND semantics.
type AttendanceFilter struct {
	Date      string `form:"date"`
	ClassName string `form:"className"`
	Prayer    string `form:"prayer"`
	StudentID string `form:"studentId"`
}

// Match reports whether rec passes every filter field that is set.
func (f AttendanceFilter) Match(rec AttendanceRecord) bool {
	if f.Date != "" && rec.Date != f.Date {
		return false
	}
	if f.ClassName != "" && rec.ClassName != f.ClassName {
		return false
	}
	if f.Prayer != "" && rec.Prayer != f.Prayer {
		return false
	}
	if f.StudentID != "" && rec.StudentID != f.StudentID {
		return false
	}
	return true
}
