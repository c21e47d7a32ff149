package swissre

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/securian/medsummary/internal/domain/summary"
)

func TestCreateSummarySendsWireContract(t *testing.T) {
	var captured struct {
		method  string
		path    string
		headers http.Header
		body    map[string]any
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.headers = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"ok","references":[],"responseTime":12}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.CreateSummary(context.Background(), "tok-123", "prompt text")
	require.NoError(t, err)
	require.Equal(t, "ok", result.Answer)
	require.Empty(t, result.References)
	require.Equal(t, int64(12), result.ResponseTime)

	require.Equal(t, http.MethodPost, captured.method)
	require.Equal(t, "/summary", captured.path)
	require.Equal(t, "Bearer tok-123", captured.headers.Get("Authorization"))
	require.Equal(t, "application/json", captured.headers.Get("Content-Type"))
	require.Equal(t, "Securian", captured.headers.Get("X-sr-auth-user"))
	require.Equal(t, "123456", captured.headers.Get("Session-Id"))

	require.Equal(t, []any{"life1"}, captured.body["product_type"])
	require.Equal(t, "prompt text", captured.body["summary"])
	require.Equal(t, "info", captured.body["contentType"])
	require.Equal(t, "en-eu", captured.body["language"])
	require.Equal(t, "adult", captured.body["ratingType"])
}

func TestCreateSummaryReturnsResultUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"answer":"summary text","references":[{"referenceNumber":1,"label":"Guide","externalURL":"https://example.com"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.CreateSummary(context.Background(), "tok", "p")
	require.NoError(t, err)
	require.Equal(t, summary.Result{
		Answer: "summary text",
		References: []summary.Reference{
			{ReferenceNumber: 1, Label: "Guide", ExternalURL: "https://example.com"},
		},
	}, result)
}

func TestCreateSummaryErrorsOnServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.CreateSummary(context.Background(), "tok", "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=500")
}

func TestCreateSummaryErrorsOnNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.CreateSummary(context.Background(), "tok", "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode summary response")
}

func TestCreateSummaryRejectsEmptyToken(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")

	_, err := client.CreateSummary(context.Background(), "  ", "p")
	require.Error(t, err)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(baseURL, "", "", 0)
	require.NoError(t, err)
	return client
}
