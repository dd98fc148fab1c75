package collector

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidName is returned when the lead name is missing
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidEmail is returned when the lead email is missing or malformed
	ErrInvalidEmail = errors.New("a valid email is required")

	// ErrInvalidEventType is returned when an event carries an unknown type
	ErrInvalidEventType = errors.New("eventType must be view, click or form_submit")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)

// StoredLead is a captured lead as kept by the collector.
type StoredLead struct {
	ID        string    `json:"id"`
	Site      string    `json:"site"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLeadRequest is the body the lead endpoint accepts.
type CreateLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Validate checks the create lead request
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// TrackedEvent is one analytics event as kept by the collector. Payload holds
// the full envelope the SDK sent, untouched.
type TrackedEvent struct {
	ID         string          `json:"id"`
	Site       string          `json:"site"`
	EventType  string          `json:"event_type"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}

// validEventTypes is the closed vocabulary the SDK normalizes into.
var validEventTypes = map[string]struct{}{
	"view":        {},
	"click":       {},
	"form_submit": {},
}

// ValidEventType reports whether t is one of the collector's event categories.
func ValidEventType(t string) bool {
	_, ok := validEventTypes[t]
	return ok
}
