package leads

import (
	"regexp"
	"strings"
)

var (
	// emailRe is a conservative local@domain.tld shape, no whitespace.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// phoneRe accepts digits, spaces, parentheses, dashes and a leading plus.
	phoneRe = regexp.MustCompile(`^[+]?[0-9\s\-()]+$`)
)

const minMessageLength = 10

// Validation is the outcome of a pre-submission check. Errors enumerates
// every violated rule, not just the first.
type Validation struct {
	IsValid bool
	Errors  []string
}

// ValidateLead checks a lead without touching the network. It is a pure,
// optional pre-check; SubmitLead performs its own (shallower) validation.
func (c *Client) ValidateLead(lead Lead) Validation {
	var errs []string

	firstName := strings.TrimSpace(lead.FirstName)
	lastName := strings.TrimSpace(lead.LastName)
	email := strings.TrimSpace(lead.Email)
	phone := strings.TrimSpace(lead.Phone)
	message := strings.TrimSpace(lead.Message)

	if firstName == "" {
		errs = append(errs, "First name is required")
	}
	if lastName == "" {
		errs = append(errs, "Last name is required")
	}
	if email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRe.MatchString(email) {
		errs = append(errs, "Please enter a valid email address")
	}

	if phone != "" && !phoneRe.MatchString(phone) {
		errs = append(errs, "Please enter a valid phone number")
	}

	if message != "" && len([]rune(message)) < minMessageLength {
		errs = append(errs, "Message must be at least 10 characters long")
	}

	return Validation{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
