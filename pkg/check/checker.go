package check

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Checker probes a single URL and classifies the outcome. Only http and
// https URLs go out on the wire; a schemeless URL is assumed to be https.
type Checker struct {
	client    *http.Client
	userAgent string
}

func NewChecker(userAgent string, timeout time.Duration) *Checker {
	return &Checker{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// NewCheckerWithClient is the test seam: the client carries the spy
// transport and the timeout.
func NewCheckerWithClient(client *http.Client, userAgent string) *Checker {
	return &Checker{client: client, userAgent: userAgent}
}

func (c *Checker) Check(rawURL string) Result {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Result{Kind: KindRequestError, Err: err.Error()}
	}

	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		if u.Scheme == "" {
			u.Scheme = "https"
		}
		return c.get(u.String())
	case "mailto":
		return Result{Kind: KindIgnored}
	default:
		return Result{Kind: KindInvalidProtocol}
	}
}

func (c *Checker) get(target string) Result {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return Result{Kind: KindRequestError, Err: err.Error()}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return Result{Kind: KindTimeout}
		}
		return Result{Kind: KindRequestError, Err: err.Error()}
	}
	defer resp.Body.Close()

	return Result{Kind: KindStatus, Code: resp.StatusCode}
}
