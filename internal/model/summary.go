package model

import (
	"bytes"
	"encoding/json"
)

// AttendanceSummary groups attendance records by date, then by prayer.
// Dates and prayers appear in first-appearance order of the underlying
// records, and records keep their original relative order within each
// prayer group. A plain map cannot hold that order through JSON
// marshaling, so the summary carries slices and marshals itself into
// nested objects.
type AttendanceSummary struct {
	Dates []DateGroup
}

// DateGroup holds every prayer group for one date.
type DateGroup struct {
	Date    string
	Prayers []PrayerGroup
}

// PrayerGroup holds the records for one prayer on one date.
type PrayerGroup struct {
	Prayer  string
	Records []AttendanceRecord
}

// MarshalJSON renders the summary as
// {"<date>":{"<prayer>":[records...],...},...} preserving group order.
func (s AttendanceSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dg := range s.Dates {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, dg.Date); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, pg := range dg.Prayers {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, pg.Prayer); err != nil {
				return nil, err
			}
			recs, err := json.Marshal(pg.Records)
			if err != nil {
				return nil, err
			}
			buf.Write(recs)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	b, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(b)
	buf.WriteByte(':')
	return nil
}
