package safefetch

import (
	"errors"
	"fmt"
)

// Reason is a rejection code. Codes are for server-side diagnostics only and
// must not be echoed to untrusted clients.
type Reason string

const (
	ReasonInvalidURL         Reason = "INVALID_URL"
	ReasonInvalidProtocol    Reason = "INVALID_PROTOCOL"
	ReasonInvalidCredentials Reason = "INVALID_CREDENTIALS"
	ReasonBlockedHost        Reason = "BLOCKED_HOST"
	ReasonPrivateIP          Reason = "PRIVATE_IP"
	ReasonDNSNotFound        Reason = "DNS_NOT_FOUND"

	ReasonRedirectLoop    Reason = "REDIRECT_LOOP"
	ReasonRedirectLimit   Reason = "REDIRECT_LIMIT"
	ReasonRedirectMissing Reason = "REDIRECT_MISSING"

	ReasonFetchFailed            Reason = "FETCH_FAILED"
	ReasonTimeout                Reason = "TIMEOUT"
	ReasonBadStatus              Reason = "BAD_STATUS"
	ReasonUnsupportedContentType Reason = "UNSUPPORTED_CONTENT_TYPE"
	ReasonTooLarge               Reason = "TOO_LARGE"
)

// RejectionError is the terminal outcome of a refused validation or fetch.
type RejectionError struct {
	Reason Reason
	URL    string
	Detail string
	Err    error
}

func (e *RejectionError) Error() string {
	msg := fmt.Sprintf("safefetch: %s", e.Reason)
	if e.URL != "" {
		msg += fmt.Sprintf(" for %s", e.URL)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

func reject(reason Reason, rawURL, detail string) *RejectionError {
	return &RejectionError{Reason: reason, URL: rawURL, Detail: detail}
}

func rejectErr(reason Reason, rawURL string, err error) *RejectionError {
	return &RejectionError{Reason: reason, URL: rawURL, Err: err}
}

// ReasonOf returns the rejection code carried by err, or the empty Reason if
// err is not a rejection.
func ReasonOf(err error) Reason {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}
