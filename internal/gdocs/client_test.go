// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gdocs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// newTestClient builds a Client that talks to a local test server
// instead of the real API.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient(context.Background(),
		option.WithEndpoint(ts.URL),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return client
}

// --- document creation ---

func TestCreateDocument(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"documentId": "doc-123"})
	}))

	id, err := client.CreateDocument(context.Background(), "Weekly Notes")
	require.NoError(t, err)

	assert.Equal(t, "doc-123", id)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1/documents", gotPath)
	assert.Equal(t, "Weekly Notes", gotBody["title"])
}

func TestCreateDocumentError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "insufficient permissions"}}`))
	}))

	_, err := client.CreateDocument(context.Background(), "Weekly Notes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating document")

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
}

// --- batch updates ---

func TestApplyBatch(t *testing.T) {
	var gotPath string
	var gotBody docs.BatchUpdateDocumentRequest

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))

	reqs := []*docs.Request{
		{InsertText: &docs.InsertTextRequest{
			Text:     "hello\n",
			Location: &docs.Location{Index: 1},
		}},
		{UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: "NORMAL_TEXT"},
			Range:          &docs.Range{StartIndex: 1, EndIndex: 6},
			Fields:         "namedStyleType",
		}},
	}

	err := client.ApplyBatch(context.Background(), "doc-123", reqs)
	require.NoError(t, err)

	assert.Equal(t, "/v1/documents/doc-123:batchUpdate", gotPath)
	require.Len(t, gotBody.Requests, 2)
	require.NotNil(t, gotBody.Requests[0].InsertText)
	assert.Equal(t, "hello\n", gotBody.Requests[0].InsertText.Text)
	require.NotNil(t, gotBody.Requests[1].UpdateParagraphStyle)
	assert.Equal(t, "namedStyleType", gotBody.Requests[1].UpdateParagraphStyle.Fields)
}

func TestApplyBatchError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "invalid request"}}`))
	}))

	err := client.ApplyBatch(context.Background(), "doc-123", []*docs.Request{
		{InsertText: &docs.InsertTextRequest{
			Text:     "hello\n",
			Location: &docs.Location{Index: 1},
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applying batch update")

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
}

// --- links ---

func TestDocumentURL(t *testing.T) {
	assert.Equal(t,
		"https://docs.google.com/document/d/doc-123/edit",
		DocumentURL("doc-123"))
}
