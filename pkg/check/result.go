package check

import (
	"net/http"
	"strconv"
)

// Kind classifies the outcome of probing one URL.
type Kind int

const (
	// KindStatus means the probe completed and Code holds the HTTP status.
	KindStatus Kind = iota
	// KindIgnored marks schemes that are never probed (mailto). Ignored
	// links do not count as failures.
	KindIgnored
	// KindTimeout means the probe exceeded the check deadline.
	KindTimeout
	// KindInvalidProtocol marks schemes the checker refuses to probe.
	KindInvalidProtocol
	// KindRequestError covers non-timeout transport failures (DNS,
	// connection refused, malformed URL).
	KindRequestError
)

type Result struct {
	Kind Kind
	Code int    // HTTP status, set when Kind == KindStatus
	Err  string // transport error text, set when Kind == KindRequestError
}

// OK reports whether the result counts as a clean link. Only a literal 200
// passes; the client has already followed redirects by the time a status
// lands here.
func (r Result) OK() bool {
	return r.Kind == KindIgnored || (r.Kind == KindStatus && r.Code == http.StatusOK)
}

// Label is the report-line form of the result.
func (r Result) Label() string {
	switch r.Kind {
	case KindStatus:
		return strconv.Itoa(r.Code)
	case KindIgnored:
		return "ignore"
	case KindTimeout:
		return "Timeout Error"
	case KindInvalidProtocol:
		return "Invalid protocol detected"
	case KindRequestError:
		return "Request Error"
	default:
		return "unknown"
	}
}
