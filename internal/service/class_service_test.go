package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/prayertrack-backend/internal/model"
	"github.com/alfurqan/prayertrack-backend/internal/repository"
	"github.com/alfurqan/prayertrack-backend/internal/store"
	"github.com/alfurqan/prayertrack-backend/internal/ws"
)

type publishedEvent struct {
	kind    ws.Kind
	created bool
	entity  interface{}
	id      string
	deleted bool
}

// recordingPublisher captures events instead of fanning them out.
type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) EntityUpdated(kind ws.Kind, created bool, entity interface{}) {
	p.events = append(p.events, publishedEvent{kind: kind, created: created, entity: entity})
}

func (p *recordingPublisher) EntityDeleted(kind ws.Kind, id string) {
	p.events = append(p.events, publishedEvent{kind: kind, id: id, deleted: true})
}

func newClassService(t *testing.T) (*ClassService, *recordingPublisher) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "attendance.json"), zerolog.Nop())
	pub := &recordingPublisher{}
	return NewClassService(repository.NewClassRepository(st), pub), pub
}

func TestClassServicePublishesAfterCommit(t *testing.T) {
	svc, pub := newClassService(t)
	ctx := context.Background()

	cls, created, err := svc.Upsert(ctx, model.UpsertClassRequest{ID: "c1", Name: "Grade 5"})
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, pub.events, 1)
	assert.Equal(t, ws.KindClass, pub.events[0].kind)
	assert.True(t, pub.events[0].created)
	assert.Equal(t, cls, pub.events[0].entity)

	// Replace publishes an update, not a create.
	_, _, err = svc.Upsert(ctx, model.UpsertClassRequest{ID: "c1", Name: "Grade 5 B"})
	require.NoError(t, err)
	require.Len(t, pub.events, 2)
	assert.False(t, pub.events[1].created)
}

func TestClassServiceDeletePublishesID(t *testing.T) {
	svc, pub := newClassService(t)
	ctx := context.Background()

	_, _, err := svc.Upsert(ctx, model.UpsertClassRequest{ID: "c1", Name: "Grade 5"})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, removed)

	require.Len(t, pub.events, 2)
	assert.True(t, pub.events[1].deleted)
	assert.Equal(t, "c1", pub.events[1].id)
}

func TestClassServiceNoopDeletePublishesNothing(t *testing.T) {
	svc, pub := newClassService(t)

	removed, err := svc.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, removed)
	assert.Empty(t, pub.events)
}

func TestClassServiceValidationFailurePublishesNothing(t *testing.T) {
	svc, pub := newClassService(t)

	_, _, err := svc.Upsert(context.Background(), model.UpsertClassRequest{ID: "c1"})
	var ve *repository.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, pub.events)
}

func TestClassServicePersistenceFailurePublishesNothing(t *testing.T) {
	// Store path sits under a regular file, so every save fails.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	st := store.New(filepath.Join(blocker, "attendance.json"), zerolog.Nop())
	pub := &recordingPublisher{}
	svc := NewClassService(repository.NewClassRepository(st), pub)

	_, _, err := svc.Upsert(context.Background(), model.UpsertClassRequest{ID: "c1", Name: "Grade 5"})
	var pe *repository.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Empty(t, pub.events)
}
