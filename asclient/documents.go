// Package asclient document resources.
//
// Purpose:
//
//	Documents hold text artifacts. The document resource itself is JSON; its
//	value sub-resource is exchanged as plain text. Ownership (organisation and
//	groups) travels as query parameters when a value write creates the
//	document.
package asclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const documentsPath = "documents"

// Document is a text artifact stored by the service.
type Document struct {
	ID             string   `json:"id"`
	OrganisationID string   `json:"organisationid"`
	GroupIDs       []string `json:"groupids"`
	Value          string   `json:"value"`
}

// SetDocumentOptions carries ownership of a document being created by a value
// write. Both fields are ignored when the document already exists.
type SetDocumentOptions struct {
	OrganisationID string
	GroupIDs       []string
}

// GetDocument gets a specific document by ID.
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	if id == "" {
		return nil, errors.New("document id is required")
	}

	var doc Document
	if err := c.getJSON(ctx, nil, &doc, documentsPath, id); err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return &doc, nil
}

// GetDocumentValue gets the raw text value of a document.
func (c *Client) GetDocumentValue(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", errors.New("document id is required")
	}

	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "", documentsPath, id, "value")
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("get document %s value: %w", id, err)
	}
	defer resp.Body.Close()

	value, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read document %s value: %w", id, err)
	}
	return string(value), nil
}

// SetDocumentValue writes the text value of a document, creating the document
// if it does not exist, and returns the updated document.
func (c *Client) SetDocumentValue(ctx context.Context, id, value string, opts SetDocumentOptions) (*Document, error) {
	if id == "" {
		return nil, errors.New("document id is required")
	}

	q := url.Values{}
	if opts.OrganisationID != "" {
		q.Set("organisationid", opts.OrganisationID)
	}
	if len(opts.GroupIDs) > 0 {
		q.Set("groupids", strings.Join(opts.GroupIDs, ","))
	}

	req, err := c.newRequest(ctx, http.MethodPut, q, strings.NewReader(value), "text/plain", documentsPath, id, "value")
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("set document %s value: %w", id, err)
	}

	var doc Document
	if err := decodeJSON(resp, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
