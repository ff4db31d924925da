package model

import "time"

// Student represents a student enrolled in a class. ClassName is a soft
// reference to Class.Name; it is not validated against the classes
// collection at write time.
type Student struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	RollNumber string    `json:"rollNumber,omitempty"`
	ClassName  string    `json:"className"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpsertStudentRequest is the payload for creating or replacing a student.
type UpsertStudentRequest struct {
	ID         string `json:"id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	RollNumber string `json:"rollNumber"`
	ClassName  string `json:"className" binding:"required"`
}
