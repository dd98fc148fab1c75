package analytics

import "testing"

func TestMapEventTypeTable(t *testing.T) {
	tests := []struct {
		name string
		want EventType
	}{
		{"page_view", EventView},
		{"click", EventClick},
		{"button_click", EventClick},
		{"cta_click", EventClick},
		{"form_submit", EventFormSubmit},
		{"contact_form_submitted", EventFormSubmit},
		{"contact_form_success", EventFormSubmit},
		{"contact_form_error", EventFormSubmit},
		{"conversion", EventClick},
		{"error", EventView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapEventType(tt.name); got != tt.want {
				t.Fatalf("MapEventType(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestMapEventTypeDefaultsToView(t *testing.T) {
	for _, name := range []string{"", "signup_completed", "PAGE_VIEW", "scroll_depth", "¯\\_(ツ)_/¯"} {
		if got := MapEventType(name); got != EventView {
			t.Fatalf("MapEventType(%q) = %q, want %q", name, got, EventView)
		}
	}
}
