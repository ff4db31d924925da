package repository

import (
	"context"

	"github.com/alfurqan/prayertrack-backend/internal/model"
)

// DocumentStore is the persistence dependency shared by all
// repositories: snapshot reads and serialized read-modify-write
// transactions over the single document.
type DocumentStore interface {
	Snapshot(ctx context.Context) (*model.Document, error)
	Update(ctx context.Context, fn func(doc *model.Document) error) error
}
