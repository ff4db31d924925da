package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(filepath.Join(t.TempDir(), "attendance.json"), zerolog.Nop())
}

var errDiskGone = errors.New("disk gone")

// brokenStore wraps a working store but fails every transaction,
// simulating a durable-store write failure after prior state exists.
type brokenStore struct {
	inner DocumentStore
}

func (b brokenStore) Snapshot(ctx context.Context) (*model.Document, error) {
	return b.inner.Snapshot(ctx)
}

func (b brokenStore) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	return errDiskGone
}
