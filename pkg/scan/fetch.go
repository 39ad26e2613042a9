package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/creativecommons/linkchecker/pkg/process"
)

var ErrEmptyListing = errors.New("directory listing contained no documents")

func (s *Scanner) fetchListing(ctx context.Context) ([]string, error) {
	body, err := s.get(ctx, s.cfg.Source.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}

	names, err := process.ExtractListing(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}
	if len(names) == 0 {
		return nil, ErrEmptyListing
	}

	return names, nil
}

func (s *Scanner) fetchDocument(ctx context.Context, name string) ([]byte, error) {
	return s.get(ctx, s.cfg.Source.RawPrefix+name)
}

func (s *Scanner) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.cfg.Checker.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", target, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
