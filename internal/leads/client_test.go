package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

func countingServer(t *testing.T, calls *atomic.Int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
}

func TestSubmitLeadMissingRequiredFieldsSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	server := countingServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {})
	defer server.Close()

	client := New(Config{SubmitURL: server.URL, Logger: logging.New("error")})

	tests := []struct {
		name string
		lead Lead
		want string
	}{
		{"all missing", Lead{}, "Missing required fields: firstName, lastName, email"},
		{"whitespace only", Lead{FirstName: "  ", LastName: "\t", Email: " "}, "Missing required fields: firstName, lastName, email"},
		{"missing last name", Lead{FirstName: "Ana", Email: "ana@example.com"}, "Missing required fields: lastName"},
		{"missing email", Lead{FirstName: "Ana", LastName: "Lopez"}, "Missing required fields: email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := client.SubmitLead(context.Background(), tt.lead)
			if res.Success {
				t.Fatal("expected failure")
			}
			if res.Message != tt.want {
				t.Fatalf("expected message %q, got %q", tt.want, res.Message)
			}
		})
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no network calls, got %d", calls.Load())
	}
}

func TestSubmitLeadInvalidEmailSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	server := countingServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {})
	defer server.Close()

	client := New(Config{SubmitURL: server.URL, Logger: logging.New("error")})

	for _, email := range []string{"ana.example.com", "ana@examplecom", "ana @example.com", "@example.com"} {
		res := client.SubmitLead(context.Background(), Lead{FirstName: "Ana", LastName: "Lopez", Email: email})
		if res.Success {
			t.Fatalf("expected failure for %q", email)
		}
		if res.Message != "Invalid email format" {
			t.Fatalf("expected validation message for %q, got %q", email, res.Message)
		}
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no network calls, got %d", calls.Load())
	}
}

func TestSubmitLeadSuccess(t *testing.T) {
	var got submitPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok","id":"lead-1"}`))
	}))
	defer server.Close()

	client := New(Config{SubmitURL: server.URL, Logger: logging.New("error")})
	res := client.SubmitLead(context.Background(), Lead{
		FirstName: "  Ana ",
		LastName:  " Lopez ",
		Email:     " Ana@Example.COM ",
		Message:   "Quiero información sobre el plan Pro",
	})

	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if res.Message != "ok" {
		t.Fatalf("expected remote message carried through, got %q", res.Message)
	}
	if res.Data["id"] != "lead-1" {
		t.Fatalf("expected decoded data, got %v", res.Data)
	}

	if got.Name != "Ana Lopez" {
		t.Errorf("expected joined trimmed name, got %q", got.Name)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("expected lowercased email, got %q", got.Email)
	}
	if got.Company != "" || got.Phone != "" {
		t.Errorf("expected empty optional fields, got %+v", got)
	}
	if got.Message != "Quiero información sobre el plan Pro" {
		t.Errorf("unexpected message %q", got.Message)
	}
}

func TestSubmitLeadSuccessDefaultMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(Config{SubmitURL: server.URL, Logger: logging.New("error")})
	res := client.SubmitLead(context.Background(), Lead{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"})
	if !res.Success || res.Message != "Lead submitted successfully" {
		t.Fatalf("expected default success message, got %+v", res)
	}
}

func TestSubmitLeadRemoteRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"server error"}`))
	}))
	defer server.Close()

	client := New(Config{SubmitURL: server.URL, Logger: logging.New("error")})
	res := client.SubmitLead(context.Background(), Lead{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"})
	if res.Success {
		t.Fatal("expected failure on 500")
	}
	if res.Message != "server error" {
		t.Fatalf("expected remote error message, got %q", res.Message)
	}
}

func TestSubmitLeadRemoteRejectionWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(Config{SubmitURL: server.URL, Logger: logging.New("error")})
	res := client.SubmitLead(context.Background(), Lead{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"})
	if res.Success {
		t.Fatal("expected failure on 502")
	}
	if res.Message != "HTTP error! status: 502" {
		t.Fatalf("expected generic status message, got %q", res.Message)
	}
}

func TestSubmitLeadTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := New(Config{SubmitURL: server.URL, Timeout: 50 * time.Millisecond, Logger: logging.New("error")})

	start := time.Now()
	res := client.SubmitLead(context.Background(), Lead{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"})
	elapsed := time.Since(start)

	if res.Success {
		t.Fatal("expected timeout failure")
	}
	if res.Message != timeoutMessage {
		t.Fatalf("expected timeout message, got %q", res.Message)
	}
	if elapsed > time.Second {
		t.Fatalf("expected the request to be aborted promptly, took %s", elapsed)
	}
}

func TestSubmitLeadNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := New(Config{SubmitURL: server.URL, Logger: logging.New("error")})
	res := client.SubmitLead(context.Background(), Lead{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"})
	if res.Success {
		t.Fatal("expected network failure")
	}
	if res.Message != networkMessage {
		t.Fatalf("expected network message, got %q", res.Message)
	}
}

func TestNewDefaults(t *testing.T) {
	client := New(Config{SubmitURL: " http://example.com "})
	if client.timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.timeout)
	}
	if client.submitURL != "http://example.com" {
		t.Fatalf("expected trimmed submit url, got %q", client.submitURL)
	}
	if client.httpClient == nil || client.logger == nil {
		t.Fatal("expected http client and logger defaults")
	}
}
