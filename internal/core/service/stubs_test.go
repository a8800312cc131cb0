package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
	"github.com/inmovement/patient-portal/internal/core/validation"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Identity gateway stub
// ---------------------------------------------------------------------------

type stubGateway struct {
	createFn  func(ctx context.Context, email, password string) (string, error)
	signInFn  func(ctx context.Context, email, password string) (string, error)
	methodsFn func(ctx context.Context, email string) ([]string, error)

	createCalls  int
	signInCalls  int
	methodsCalls int
}

func (g *stubGateway) CreateAccount(ctx context.Context, email, password string) (string, error) {
	g.createCalls++
	if g.createFn == nil {
		return "acc-" + domain.LocalPart(email), nil
	}
	return g.createFn(ctx, email, password)
}

func (g *stubGateway) SignIn(ctx context.Context, email, password string) (string, error) {
	g.signInCalls++
	if g.signInFn == nil {
		return "acc-" + domain.LocalPart(email), nil
	}
	return g.signInFn(ctx, email, password)
}

func (g *stubGateway) ListSignInMethods(ctx context.Context, email string) ([]string, error) {
	g.methodsCalls++
	if g.methodsFn == nil {
		return nil, nil
	}
	return g.methodsFn(ctx, email)
}

func (g *stubGateway) calls() int { return g.createCalls + g.signInCalls + g.methodsCalls }

// ---------------------------------------------------------------------------
// In-memory record store
// ---------------------------------------------------------------------------

type memStore struct {
	docs  map[string]map[string]ports.Document
	order map[string][]string

	createErr error
	updateErr error
	findErr   error

	createCalls int
	updateCalls int
	lastPartial ports.Document
}

func newMemStore() *memStore {
	return &memStore{
		docs:  make(map[string]map[string]ports.Document),
		order: make(map[string][]string),
	}
}

func cloneDoc(d ports.Document) ports.Document {
	out := make(ports.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (s *memStore) put(collection, key string, doc ports.Document) {
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]ports.Document)
	}
	if _, exists := s.docs[collection][key]; !exists {
		s.order[collection] = append(s.order[collection], key)
	}
	d := cloneDoc(doc)
	d["_id"] = key
	s.docs[collection][key] = d
}

func (s *memStore) get(collection, key string) ports.Document {
	return s.docs[collection][key]
}

func (s *memStore) FindOne(_ context.Context, collection, field string, value any) (ports.Document, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, key := range s.order[collection] {
		doc := s.docs[collection][key]
		if doc[field] == value {
			return cloneDoc(doc), nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (s *memStore) Find(_ context.Context, collection, field string, value any) ([]ports.Document, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []ports.Document
	for _, key := range s.order[collection] {
		doc := s.docs[collection][key]
		if field == "" || doc[field] == value {
			out = append(out, cloneDoc(doc))
		}
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, collection, key string, fields ports.Document) error {
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.docs[collection][key]; exists {
		return errors.New("duplicate key")
	}
	s.put(collection, key, fields)
	return nil
}

func (s *memStore) UpdateFields(_ context.Context, collection, key string, partial ports.Document) error {
	s.updateCalls++
	s.lastPartial = cloneDoc(partial)
	if s.updateErr != nil {
		return s.updateErr
	}
	doc, ok := s.docs[collection][key]
	if !ok {
		return domain.ErrRecordNotFound
	}
	for k, v := range partial {
		doc[k] = v
	}
	return nil
}

// ---------------------------------------------------------------------------
// Submit guard and favorites
// ---------------------------------------------------------------------------

type stubGuard struct {
	mu         sync.Mutex
	held       map[string]bool
	acquireErr error
	released   []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	g.released = append(g.released, key)
	return nil
}

type memFavorites struct {
	sets    map[string]map[string]bool
	listErr error
}

func newMemFavorites() *memFavorites {
	return &memFavorites{sets: make(map[string]map[string]bool)}
}

func (f *memFavorites) Toggle(_ context.Context, accountID, videoID string) (bool, error) {
	if f.sets[accountID] == nil {
		f.sets[accountID] = make(map[string]bool)
	}
	if f.sets[accountID][videoID] {
		delete(f.sets[accountID], videoID)
		return false, nil
	}
	f.sets[accountID][videoID] = true
	return true, nil
}

func (f *memFavorites) List(_ context.Context, accountID string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var ids []string
	for id := range f.sets[accountID] {
		ids = append(ids, id)
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newValidator() *validation.Validator {
	return validation.New()
}
