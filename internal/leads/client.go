package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/turbopyme/landing-telemetry/internal/observability/metrics"
	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

const defaultTimeout = 10 * time.Second

// User-facing failure messages. The contact form renders these directly, so
// the wording is part of the behavior.
const (
	timeoutMessage = "Request timed out. Please check your connection and try again."
	networkMessage = "Network error. Please check your connection and try again."
	successMessage = "Lead submitted successfully"
)

// Config controls how the leads client behaves.
type Config struct {
	SubmitURL string
	// Timeout bounds the whole submission attempt; the in-flight request is
	// aborted when it elapses. Defaults to 10s.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	Metrics    *metrics.ClientMetrics
}

// Client submits qualified leads to the capture endpoint. SubmitLead never
// returns an error past its boundary; every outcome is a SubmitResult.
type Client struct {
	submitURL  string
	timeout    time.Duration
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.ClientMetrics
}

// New creates a leads client with sane defaults.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		submitURL:  strings.TrimSpace(cfg.SubmitURL),
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
		metrics:    cfg.Metrics,
	}
}

// SubmitLead validates, normalizes and posts one lead. A single attempt with
// a bounded timeout; no retries. The result always carries a human-readable
// message.
func (c *Client) SubmitLead(ctx context.Context, lead Lead) SubmitResult {
	if missing := missingRequiredFields(lead); len(missing) > 0 {
		return c.fail("Missing required fields: " + strings.Join(missing, ", "))
	}

	email := strings.TrimSpace(lead.Email)
	if !emailRe.MatchString(email) {
		return c.fail("Invalid email format")
	}

	payload := submitPayload{
		Name:    strings.TrimSpace(lead.FirstName) + " " + strings.TrimSpace(lead.LastName),
		Email:   strings.ToLower(email),
		Company: strings.TrimSpace(lead.Company),
		Phone:   strings.TrimSpace(lead.Phone),
		Message: strings.TrimSpace(lead.Message),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return c.fail(err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.submitURL, bytes.NewReader(body))
	if err != nil {
		return c.fail(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(classify(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(classify(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		var remote struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(data, &remote); jsonErr == nil && remote.Message != "" {
			message = remote.Message
		}
		c.logger.Warn("lead submission rejected", "status", resp.StatusCode, "message", message)
		return c.fail(message)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		decoded = nil
	}
	message := successMessage
	if m, ok := decoded["message"].(string); ok && m != "" {
		message = m
	}

	c.metrics.ObserveLeadSubmission("success")
	return SubmitResult{
		Success: true,
		Message: message,
		Data:    decoded,
	}
}

func (c *Client) fail(message string) SubmitResult {
	c.logger.Error("lead submission failed", "message", message)
	c.metrics.ObserveLeadSubmission("failed")
	return SubmitResult{Success: false, Message: message}
}

// missingRequiredFields reports which of firstName/lastName/email are absent,
// treating whitespace-only values as absent. Names use the wire casing so the
// message matches what API consumers expect.
func missingRequiredFields(lead Lead) []string {
	var missing []string
	if strings.TrimSpace(lead.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(lead.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if strings.TrimSpace(lead.Email) == "" {
		missing = append(missing, "email")
	}
	return missing
}

// classify converts a transport error into one of the user-facing messages:
// timeout, network error, or the raw error text.
func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutMessage
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return timeoutMessage
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return networkMessage
	}
	return err.Error()
}
