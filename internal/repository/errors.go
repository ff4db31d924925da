package repository

import (
	"fmt"
	"strings"
)

// ValidationError reports required upsert fields that were missing or
// empty. The transaction is never attempted when validation fails.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// PersistenceError wraps a durable-store read or write failure. The
// document on disk is unchanged and no broadcast is emitted.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type field struct {
	name  string
	value string
}

// missingFields returns the names of empty fields in declaration order.
func missingFields(fields ...field) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
