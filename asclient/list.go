// Package asclient pagination support.
//
// Purpose:
//
//	Decode the API's listing envelope (skip/limit/count/totalcount with items
//	under _embedded) and provide transparent page iteration for the ForEach
//	operations.
package asclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ListOptions selects a subset of a resource listing. The zero value requests
// the server's default page.
type ListOptions struct {
	// Skip is the number of resources to skip at the start of the list.
	Skip int

	// Limit is the maximum number of resources to return.
	Limit int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Skip > 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// Page describes the pagination envelope returned with a resource listing.
type Page struct {
	Skip       int `json:"skip"`
	Limit      int `json:"limit"`
	Count      int `json:"count"`
	TotalCount int `json:"totalcount"`
}

// listEnvelope is the wire form of a resource listing: pagination fields at
// the top level, items keyed by collection name under _embedded.
type listEnvelope struct {
	Page
	Embedded map[string]json.RawMessage `json:"_embedded"`
}

// listPage fetches one page of a resource listing and decodes the collection
// items into out (a pointer to a slice).
func (c *Client) listPage(ctx context.Context, path, collection string, query url.Values, out interface{}) (Page, error) {
	var env listEnvelope
	if err := c.getJSON(ctx, query, &env, path); err != nil {
		return Page{}, err
	}

	if raw, ok := env.Embedded[collection]; ok {
		if err := json.Unmarshal(raw, out); err != nil {
			return Page{}, fmt.Errorf("decode %s collection: %w", collection, err)
		}
	}

	return env.Page, nil
}

// forEachItem walks every page of a resource listing, invoking visit for each
// raw item. Iteration stops at the first visit error. A pageSize of 0 leaves
// the page size to the server.
func (c *Client) forEachItem(ctx context.Context, path, collection string, query url.Values, pageSize int, visit func(json.RawMessage) error) error {
	skip := 0
	for {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		if skip > 0 {
			q.Set("skip", strconv.Itoa(skip))
		}
		if pageSize > 0 {
			q.Set("limit", strconv.Itoa(pageSize))
		}

		var items []json.RawMessage
		page, err := c.listPage(ctx, path, collection, q, &items)
		if err != nil {
			return err
		}

		for _, item := range items {
			if err := visit(item); err != nil {
				return err
			}
		}

		if len(items) == 0 {
			return nil
		}

		skip += len(items)
		if page.TotalCount > 0 && skip >= page.TotalCount {
			return nil
		}
	}
}
