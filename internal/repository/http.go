// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jeranaias/vicas-tui/internal/vi"
)

// =============================================================================
// HTTP CONFIGURATION
// =============================================================================

// Defaults for the reference data service client.
const (
	DefaultBaseURL    = "http://127.0.0.1:8787"
	DefaultPath       = "/vi/cas"
	DefaultTimeout    = 15 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = 500 * time.Millisecond

	// maxBodySize caps the reference document download.
	maxBodySize = 32 << 20
)

// HTTPConfig holds options for the HTTP repository.
type HTTPConfig struct {
	// BaseURL of the service, without the resource path.
	BaseURL string

	// Path of the document resource (default: /vi/cas). Single records are
	// requested at Path + "/" + cas.
	Path string

	// Timeout per request.
	Timeout time.Duration

	// MaxRetries for connection failures. Error envelopes are never retried.
	MaxRetries int

	// RetryDelay between retries.
	RetryDelay time.Duration

	// UserAgent sent with every request.
	UserAgent string
}

// DefaultHTTPConfig returns the default client configuration.
func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		BaseURL:    DefaultBaseURL,
		Path:       DefaultPath,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		UserAgent:  "vicas",
	}
}

// =============================================================================
// HTTP REPOSITORY
// =============================================================================

// HTTPRepository fetches the reference document from the data service.
// It is safe for concurrent use.
type HTTPRepository struct {
	config     *HTTPConfig
	httpClient *http.Client
}

// NewHTTPRepository creates a repository, filling zero config fields with
// defaults.
func NewHTTPRepository(config *HTTPConfig) *HTTPRepository {
	if config == nil {
		config = DefaultHTTPConfig()
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Path == "" {
		config.Path = DefaultPath
	}
	if !strings.HasPrefix(config.Path, "/") {
		config.Path = "/" + config.Path
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	if config.UserAgent == "" {
		config.UserAgent = "vicas"
	}

	return &HTTPRepository{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Describe returns the document URL.
func (r *HTTPRepository) Describe() string {
	return r.config.BaseURL + r.config.Path
}

// Load fetches and decodes the whole reference document.
func (r *HTTPRepository) Load(ctx context.Context) (*vi.Document, error) {
	var doc vi.Document
	if err := r.getJSON(ctx, r.config.Path, &doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, &FetchError{Type: ErrTypeInvalidResponse, Message: "invalid reference document", Cause: err}
	}
	return &doc, nil
}

// Record fetches a single CAS record.
func (r *HTTPRepository) Record(ctx context.Context, cas string) (vi.Record, error) {
	var rec vi.Record
	err := r.getJSON(ctx, r.config.Path+"/"+url.PathEscape(cas), &rec)
	return rec, err
}

// getJSON performs a GET with retries on connection failures and decodes a
// 2xx body into out.
func (r *HTTPRepository) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("SOURCE_RETRY | url=%s attempt=%d err=%v", r.config.BaseURL+path, attempt, lastErr)
			select {
			case <-ctx.Done():
				return &FetchError{Type: ErrTypeTimeout, Message: "request cancelled", Cause: ctx.Err()}
			case <-time.After(r.config.RetryDelay):
			}
		}

		err := r.doGet(ctx, path, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var fe *FetchError
		if !errors.As(err, &fe) || fe.Type != ErrTypeUnavailable {
			return err
		}
	}
	return lastErr
}

func (r *HTTPRepository) doGet(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.BaseURL+path, nil)
	if err != nil {
		return &FetchError{Type: ErrTypeUnavailable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", r.config.UserAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return &FetchError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		if errors.Is(err, context.Canceled) {
			return &FetchError{Type: ErrTypeTimeout, Message: "request cancelled", Cause: err}
		}
		return &FetchError{Type: ErrTypeUnavailable, Message: "reference data source is unavailable", Cause: err}
	}
	defer drainAndClose(resp.Body)

	body := io.LimitReader(resp.Body, maxBodySize)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeEnvelope(resp, body, path)
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &FetchError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// decodeEnvelope turns a non-2xx response into a FetchError wrapping the
// service's APIError. Bodies that are not an envelope still yield an
// APIError built from the status line.
func decodeEnvelope(resp *http.Response, body io.Reader, path string) error {
	errType := ErrTypeUpstream
	if resp.StatusCode == http.StatusNotFound {
		errType = ErrTypeNotFound
	}

	var apiErr vi.APIError
	if err := json.NewDecoder(body).Decode(&apiErr); err != nil || (apiErr.StatusCode == 0 && len(apiErr.ErrorMessage) == 0) {
		apiErr = vi.APIError{
			StatusCode: resp.StatusCode,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Path:       path,
		}
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = resp.StatusCode
	}

	return &FetchError{
		Type:    errType,
		Message: fmt.Sprintf("request failed: %s", resp.Status),
		Cause:   &apiErr,
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// drainAndClose lets the transport reuse the connection.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
