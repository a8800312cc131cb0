package ports

import "context"

// Collections held in the record store.
const (
	CollectionPatients = "patients"
	CollectionVideos   = "videos"
)

// Document is the store's native field-name to value mapping.
type Document map[string]any

// RecordStore is a collection-scoped document store keyed by string ids.
type RecordStore interface {
	// FindOne returns the first document whose field equals value, or
	// domain.ErrRecordNotFound.
	FindOne(ctx context.Context, collection, field string, value any) (Document, error)
	// Find returns every matching document. An empty field matches the whole collection.
	Find(ctx context.Context, collection, field string, value any) ([]Document, error)
	Create(ctx context.Context, collection, key string, fields Document) error
	// UpdateFields sets only the given fields on the document with key.
	UpdateFields(ctx context.Context, collection, key string, partial Document) error
}
