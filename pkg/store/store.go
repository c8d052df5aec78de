// Package store persists named layout documents.
//
// Documents pair a layout with a human-readable name so authored layouts can
// be saved, listed, and re-rendered later. Two backends are provided:
//   - FileStore: JSON files in a data directory, for CLI use
//   - MongoStore: MongoDB collection, for server deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mlehnert/placard/pkg/layout"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// Document is a saved layout with its metadata.
type Document struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
	Layout    layout.Layout `json:"layout" bson:"layout"`
}

// NewDocument creates a document with a fresh ID and timestamps.
func NewDocument(name string, l layout.Layout) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Layout:    l,
	}
}

// Store is the interface for layout document backends.
type Store interface {
	// Save inserts or replaces a document by ID, refreshing UpdatedAt.
	Save(ctx context.Context, doc *Document) error

	// Get retrieves a document by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]*Document, error)

	// Delete removes a document. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
