package model

// Document is the single persisted aggregate holding all three
// collections. Every mutation rewrites the whole document.
type Document struct {
	Classes    []Class            `json:"classes"`
	Students   []Student          `json:"students"`
	Attendance []AttendanceRecord `json:"attendance"`
}

// NewDocument returns an empty document with non-nil collections so the
// persisted form is always {"classes":[],"students":[],"attendance":[]}.
func NewDocument() *Document {
	return &Document{
		Classes:    []Class{},
		Students:   []Student{},
		Attendance: []AttendanceRecord{},
	}
}
