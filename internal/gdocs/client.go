// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gdocs wraps the two Google Docs API operations the pipeline
// needs: creating a document and applying one batch of update requests.
package gdocs

import (
	"context"
	"fmt"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// Client calls the Docs API on behalf of the pipeline.
type Client struct {
	svc *docs.Service
}

// NewClient builds a Docs API client. Callers supply the authenticated
// HTTP client via option.WithHTTPClient; tests point the service at a
// local server with option.WithEndpoint and option.WithoutAuthentication.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("building docs service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// CreateDocument creates an empty document with the given title and
// returns the identifier the API assigned.
func (c *Client) CreateDocument(ctx context.Context, title string) (string, error) {
	doc, err := c.svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating document: %w", err)
	}
	return doc.DocumentId, nil
}

// ApplyBatch submits one ordered batch of update requests to the
// document. The API applies the batch as a unit; a failed batch leaves
// the document unchanged and is not retried here.
func (c *Client) ApplyBatch(ctx context.Context, documentID string, reqs []*docs.Request) error {
	_, err := c.svc.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("applying batch update: %w", err)
	}
	return nil
}

// DocumentURL returns the canonical edit link for a document.
func DocumentURL(documentID string) string {
	return "https://docs.google.com/document/d/" + documentID + "/edit"
}
