package model

import "time"

// Class represents a class group. Students reference it by name, not by
// ID, so renaming a class detaches its students.
type Class struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpsertClassRequest is the payload for creating or replacing a class.
// The caller assigns the ID.
type UpsertClassRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}
