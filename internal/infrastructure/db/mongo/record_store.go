package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

// RecordStore implements ports.RecordStore on MongoDB. Documents are keyed by
// _id and also carry the key under uid, matching the shape clients query.
type RecordStore struct {
	db      *mongo.Database
	timeout time.Duration
}

// NewRecordStore wraps db. Every call is bounded by timeout.
func NewRecordStore(db *mongo.Database, timeout time.Duration) *RecordStore {
	return &RecordStore{db: db, timeout: orDefault(timeout)}
}

// FindOne returns the first document whose field equals value.
func (s *RecordStore) FindOne(ctx context.Context, collection, field string, value any) (ports.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{field: value}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	return toDocument(raw), nil
}

// Find returns all documents matching field == value, or the whole collection
// when field is empty.
func (s *RecordStore) Find(ctx context.Context, collection, field string, value any) ([]ports.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{}
	if field != "" {
		filter[field] = value
	}

	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	docs := make([]ports.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, toDocument(raw))
	}
	return docs, nil
}

// Create inserts a new document under key.
func (s *RecordStore) Create(ctx context.Context, collection, key string, fields ports.Document) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	doc["_id"] = key
	doc["uid"] = key

	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}

// UpdateFields sets only the given fields on the document with key.
func (s *RecordStore) UpdateFields(ctx context.Context, collection, key string, partial ports.Document) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	set := bson.M{}
	for k, v := range partial {
		set[k] = v
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update %s: %w", collection, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used by the workflow.
func (s *RecordStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.db.Collection(ports.CollectionPatients).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "uid", Value: 1}},
	})
	return err
}

// toDocument converts driver values into plain Go values.
func toDocument(raw bson.M) ports.Document {
	doc := make(ports.Document, len(raw))
	for k, v := range raw {
		doc[k] = plain(v)
	}
	return doc
}

func plain(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	case bson.M:
		return map[string]any(toDocument(t))
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	}
	return v
}
