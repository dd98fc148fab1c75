package collector

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LeadStore persists captured leads.
type LeadStore interface {
	Create(ctx context.Context, site string, req *CreateLeadRequest) (*StoredLead, error)
	GetByID(ctx context.Context, id string) (*StoredLead, error)
	ListBySite(ctx context.Context, site string) ([]*StoredLead, error)
}

// EventStore keeps a bounded window of recent analytics events.
type EventStore interface {
	Append(ctx context.Context, site, eventType string, payload json.RawMessage) (*TrackedEvent, error)
	Recent(ctx context.Context, site string, limit int) ([]*TrackedEvent, error)
}

// InMemoryLeadStore keeps leads in memory. The collector deliberately has no
// persistence layer; leads are forwarded by notification email.
type InMemoryLeadStore struct {
	mu    sync.RWMutex
	leads map[string]*StoredLead
	order []string
}

// NewInMemoryLeadStore creates an empty lead store.
func NewInMemoryLeadStore() *InMemoryLeadStore {
	return &InMemoryLeadStore{
		leads: make(map[string]*StoredLead),
	}
}

// Create validates and stores a new lead.
func (s *InMemoryLeadStore) Create(ctx context.Context, site string, req *CreateLeadRequest) (*StoredLead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lead := &StoredLead{
		ID:        uuid.New().String(),
		Site:      site,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.leads[lead.ID] = lead
	s.order = append(s.order, lead.ID)
	s.mu.Unlock()

	return lead, nil
}

// GetByID retrieves a lead by ID.
func (s *InMemoryLeadStore) GetByID(ctx context.Context, id string) (*StoredLead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// ListBySite returns the leads captured for one site, oldest first.
func (s *InMemoryLeadStore) ListBySite(ctx context.Context, site string) ([]*StoredLead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*StoredLead
	for _, id := range s.order {
		if lead := s.leads[id]; lead != nil && lead.Site == site {
			out = append(out, lead)
		}
	}
	return out, nil
}

// InMemoryEventStore keeps the newest events in a capped ring.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []*TrackedEvent
	cap    int
}

// NewInMemoryEventStore creates an event store holding at most capacity
// events; older events are discarded first.
func NewInMemoryEventStore(capacity int) *InMemoryEventStore {
	if capacity <= 0 {
		capacity = 10000
	}
	return &InMemoryEventStore{cap: capacity}
}

// Append records one event, evicting the oldest when full.
func (s *InMemoryEventStore) Append(ctx context.Context, site, eventType string, payload json.RawMessage) (*TrackedEvent, error) {
	if !ValidEventType(eventType) {
		return nil, ErrInvalidEventType
	}

	evt := &TrackedEvent{
		ID:         uuid.New().String(),
		Site:       site,
		EventType:  eventType,
		Payload:    append(json.RawMessage(nil), payload...),
		ReceivedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.events = append(s.events, evt)
	if len(s.events) > s.cap {
		s.events = s.events[len(s.events)-s.cap:]
	}
	s.mu.Unlock()

	return evt, nil
}

// Recent returns up to limit newest events for a site, newest first.
func (s *InMemoryEventStore) Recent(ctx context.Context, site string, limit int) ([]*TrackedEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*TrackedEvent
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].Site == site {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}
