package analytics

// EventType is the closed category a semantic event name is normalized into
// before transmission. The collector only understands these three values.
type EventType string

const (
	EventView       EventType = "view"
	EventClick      EventType = "click"
	EventFormSubmit EventType = "form_submit"
)

// eventTypes maps semantic event names to collector enum values. Unlisted
// names fall through to EventView. The conversion->click entry is
// load-bearing for existing dashboards; do not correct it.
var eventTypes = map[string]EventType{
	"page_view":              EventView,
	"click":                  EventClick,
	"button_click":           EventClick,
	"cta_click":              EventClick,
	"form_submit":            EventFormSubmit,
	"contact_form_submitted": EventFormSubmit,
	"contact_form_success":   EventFormSubmit,
	"contact_form_error":     EventFormSubmit,
	"conversion":             EventClick,
	"error":                  EventView,
}

// MapEventType normalizes a semantic event name into its collector category.
// Every input produces exactly one output; unknown names default to EventView.
func MapEventType(name string) EventType {
	if t, ok := eventTypes[name]; ok {
		return t
	}
	return EventView
}
