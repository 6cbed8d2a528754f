// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/vicas-tui/internal/config"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

func sampleDocument() *vi.Document {
	return &vi.Document{
		LastUpdated: "Atualizado em maio de 2024",
		VI: vi.Dictionary{
			"71-43-2": {VRQ: vi.Float(0.03), VI: vi.Float(5), TapWater: vi.Float(0.46)},
			"50-29-3": {VI: vi.Float(0)},
		},
	}
}

// =============================================================================
// HTTP
// =============================================================================

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPRepository(&HTTPConfig{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		RetryDelay: time.Millisecond,
	})
}

func TestHTTPRepositoryLoad(t *testing.T) {
	repo := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vi/cas" {
			t.Errorf("path = %q, want /vi/cas", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleDocument())
	})

	doc, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Atualizado em maio de 2024", doc.LastUpdated)
	assert.Equal(t, 2, doc.Len())

	rec, ok := doc.Lookup("50-29-3")
	require.True(t, ok)
	v, present := rec.Value(vi.ColumnVI)
	assert.True(t, present)
	assert.Equal(t, 0.0, v)
}

func TestHTTPRepositoryErrorEnvelope(t *testing.T) {
	repo := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"statusCode":503,"errorMessage":"Arquivo VI indisponível","timestamp":"2024-05-01T00:00:00Z","path":"/vi/cas"}`))
	})

	_, err := repo.Load(context.Background())
	require.Error(t, err)

	var apiErr *vi.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.Equal(t, "Arquivo VI indisponível", UserMessage(err))
}

func TestHTTPRepositoryNonEnvelopeError(t *testing.T) {
	repo := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, vi.FallbackErrorMessage, UserMessage(err))

	var apiErr *vi.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestHTTPRepositoryRecord(t *testing.T) {
	repo := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vi/cas/71-43-2":
			json.NewEncoder(w).Encode(vi.Record{VRQ: vi.Float(0.03)})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(vi.NewAPIError(http.StatusNotFound, r.URL.Path, "CAS não encontrado."))
		}
	})

	rec, err := repo.Record(context.Background(), "71-43-2")
	require.NoError(t, err)
	assert.Equal(t, "0,03", vi.Cell("71-43-2", rec, vi.ColumnVRQ))

	_, err = repo.Record(context.Background(), "0-00-0")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "CAS não encontrado.", UserMessage(err))
}

func TestHTTPRepositoryUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo := NewHTTPRepository(&HTTPConfig{BaseURL: url, MaxRetries: 1, RetryDelay: time.Millisecond})
	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, vi.FallbackErrorMessage, UserMessage(err))
}

func TestHTTPRepositoryDoesNotRetryEnvelopes(t *testing.T) {
	var calls atomic.Int32
	repo := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	repo.config.MaxRetries = 3

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewHTTPRepositoryDefaults(t *testing.T) {
	repo := NewHTTPRepository(&HTTPConfig{BaseURL: "http://example.test/", Path: "vi/cas"})
	assert.Equal(t, "http://example.test/vi/cas", repo.Describe())
	assert.Equal(t, DefaultTimeout, repo.config.Timeout)
}

// =============================================================================
// FILE
// =============================================================================

func writeDocument(t *testing.T, doc *vi.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vi.json")
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFileRepository(t *testing.T) {
	repo := NewFileRepository(writeDocument(t, sampleDocument()))

	doc, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())

	_, err = repo.Record(context.Background(), "0-00-0")
	assert.True(t, IsNotFound(err))
}

func TestFileRepositoryErrors(t *testing.T) {
	missing := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))
	_, err := missing.Load(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"lastUpdated": "x"}`), 0o644))
	_, err = NewFileRepository(bad).Load(context.Background())
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ErrTypeInvalidResponse, fe.Type)
}

// =============================================================================
// SQLITE
// =============================================================================

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vi.db")
	doc := sampleDocument()
	require.NoError(t, WriteSQLite(context.Background(), path, doc))

	repo, err := OpenSQLite(path)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, doc.LastUpdated, got.LastUpdated)
	assert.Equal(t, doc.VI, got.VI)

	rec, err := repo.Record(context.Background(), "71-43-2")
	require.NoError(t, err)
	assert.Equal(t, "0,46", vi.Cell("71-43-2", rec, vi.ColumnTapWater))
	assert.Equal(t, "-", vi.Cell("71-43-2", rec, vi.ColumnVP))

	_, err = repo.Record(context.Background(), "0-00-0")
	assert.True(t, IsNotFound(err))
}

func TestOpenSQLiteMissing(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "none.db"))
	assert.True(t, errors.Is(err, ErrUnavailable))
}

// =============================================================================
// FACTORY
// =============================================================================

func TestNew(t *testing.T) {
	repo, err := New(config.SourceConfig{Kind: KindHTTP, Endpoint: "http://localhost:1"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPRepository{}, repo)

	repo, err = New(config.SourceConfig{Kind: KindFile, File: "vi.json"})
	require.NoError(t, err)
	assert.IsType(t, &FileRepository{}, repo)

	_, err = New(config.SourceConfig{Kind: KindFile})
	assert.Error(t, err)

	_, err = New(config.SourceConfig{Kind: "ftp"})
	assert.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, vi.FallbackErrorMessage, UserMessage(errors.New("dial tcp: refused")))
}
