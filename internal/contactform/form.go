// Package contactform drives the landing-page contact form: it composes the
// analytics and leads clients into one submit cycle and owns the form's
// idle -> submitting -> status state machine.
package contactform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/turbopyme/landing-telemetry/internal/analytics"
	"github.com/turbopyme/landing-telemetry/internal/leads"
	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

// Tracker emits analytics events. Satisfied by *analytics.Client.
type Tracker interface {
	Track(ctx context.Context, eventName string, data analytics.EventData) bool
}

// Submitter submits leads. Satisfied by *leads.Client.
type Submitter interface {
	SubmitLead(ctx context.Context, lead leads.Lead) leads.SubmitResult
}

// Fields holds the editable form state.
type Fields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Message   string
}

// StatusKind classifies the visible form status.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

// Status is the user-visible outcome of the last submit cycle.
type Status struct {
	Kind    StatusKind
	Message string
}

// Localized copy shown under the submit button.
const (
	successCopy = "¡Gracias por contactarnos! Te responderemos pronto."
	errorCopy   = "Hubo un error al enviar el mensaje. Por favor intenta nuevamente."

	planTemplate = "Hola, me interesa el plan %s para mi empresa. Me gustaría obtener más información sobre este plan y el proceso de implementación."
)

// Form orchestrates one contact form instance. All methods are safe for
// concurrent use, though the expected caller is a single UI loop.
type Form struct {
	tracker   Tracker
	submitter Submitter
	logger    *logging.Logger
	nowFunc   func() time.Time

	// planProcessed notifies the parent that a selected plan was consumed so
	// it is not reapplied.
	planProcessed func()

	mu         sync.Mutex
	fields     Fields
	status     Status
	submitting bool
}

// Option customizes a Form.
type Option func(*Form)

// WithPlanProcessed registers the callback fired after ApplyPlan consumes a
// selected plan.
func WithPlanProcessed(fn func()) Option {
	return func(f *Form) { f.planProcessed = fn }
}

// WithLogger overrides the default logger.
func WithLogger(logger *logging.Logger) Option {
	return func(f *Form) { f.logger = logger }
}

// New creates a contact form bound to the given clients.
func New(tracker Tracker, submitter Submitter, opts ...Option) *Form {
	f := &Form{
		tracker:   tracker,
		submitter: submitter,
		logger:    logging.Default(),
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Fields returns a snapshot of the current field values.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Status returns the visible status from the last submit cycle.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submitting reports whether a submission is in flight. The UI disables the
// submit control while this is true.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// SetFields replaces the editable state and clears any lingering status,
// returning the form to idle.
func (f *Form) SetFields(fields Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
	f.status = Status{}
}

// ApplyPlan pre-fills the message with the plan-interest template and
// notifies the parent that the plan was consumed.
func (f *Form) ApplyPlan(plan string) {
	if plan == "" {
		return
	}
	f.mu.Lock()
	f.fields.Message = fmt.Sprintf(planTemplate, plan)
	f.mu.Unlock()
	if f.planProcessed != nil {
		f.planProcessed()
	}
}

// Submit runs one submit cycle: attempt event, lead submission, outcome
// event, status update. While a submission is in flight additional calls are
// no-ops returning the current status (the disabled submit button). The
// analytics calls never influence form state.
func (f *Form) Submit(ctx context.Context) Status {
	f.mu.Lock()
	if f.submitting {
		status := f.status
		f.mu.Unlock()
		return status
	}
	f.submitting = true
	f.status = Status{}
	fields := f.fields
	f.mu.Unlock()

	f.tracker.Track(ctx, "contact_form_submitted", analytics.EventData{
		"hasCompany": fields.Company != "",
		"timestamp":  f.nowFunc().UTC().Format(time.RFC3339),
	})

	result := f.submitter.SubmitLead(ctx, leads.Lead{
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Company:   fields.Company,
		Message:   fields.Message,
	})

	var status Status
	if result.Success {
		status = Status{Kind: StatusSuccess, Message: successCopy}
		f.mu.Lock()
		f.fields = Fields{}
		f.status = status
		f.submitting = false
		f.mu.Unlock()

		f.tracker.Track(ctx, "contact_form_success", analytics.EventData{
			"timestamp": f.nowFunc().UTC().Format(time.RFC3339),
		})
	} else {
		f.logger.Warn("contact form submission failed", "message", result.Message)
		status = Status{Kind: StatusError, Message: errorCopy}
		f.mu.Lock()
		f.status = status
		f.submitting = false
		f.mu.Unlock()

		f.tracker.Track(ctx, "contact_form_error", analytics.EventData{
			"error":     result.Message,
			"timestamp": f.nowFunc().UTC().Format(time.RFC3339),
		})
	}
	return status
}
