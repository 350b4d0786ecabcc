// Package fetch downloads bulletin PDFs with retry, timeout and size
// enforcement.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"concursos/internal/config"
	"concursos/internal/domain"
	"concursos/internal/port"
)

var pdfMagic = []byte("%PDF-")

// Fetcher is the HTTP implementation of port.BulletinFetcher.
type Fetcher struct {
	client       *http.Client
	maxRetries   int
	retryBackoff time.Duration
	maxBytes     int64
	userAgent    string
}

// New creates a Fetcher from configuration.
func New(cfg *config.FetcherConfig, userAgent string) *Fetcher {
	return &Fetcher{
		client:       &http.Client{Timeout: cfg.Timeout},
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		maxBytes:     cfg.MaxFileSizeMB * 1024 * 1024,
		userAgent:    userAgent,
	}
}

var _ port.BulletinFetcher = (*Fetcher)(nil)

// Fetch downloads url and returns the body bytes. Transient failures are
// retried with linear backoff; a body that does not start with the PDF
// magic bytes fails immediately since the portal serves error pages with
// status 200.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if attempt > 1 {
			log.Printf("fetcher: retrying %s (attempt %d/%d)", url, attempt, f.maxRetries)
			select {
			case <-time.After(f.retryBackoff * time.Duration(attempt-1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		// Size and content type violations will not change on retry.
		if errorsIsFatal(err) {
			break
		}
	}
	return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, url, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > 0 && resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: content length %d", domain.ErrFileTooLarge, resp.ContentLength)
	}

	// Read one byte past the cap to distinguish "exactly at the limit"
	// from "over it".
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrFileTooLarge, f.maxBytes)
	}
	if !bytes.HasPrefix(body, pdfMagic) {
		return nil, domain.ErrNotPDF
	}
	return body, nil
}

func errorsIsFatal(err error) bool {
	return errors.Is(err, domain.ErrFileTooLarge) || errors.Is(err, domain.ErrNotPDF)
}
