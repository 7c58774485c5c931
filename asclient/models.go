// Package asclient model resources.
package asclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	modelsPath       = "models"
	modelsCollection = "models"
)

// Port directions.
const (
	PortDirectionInput  = "input"
	PortDirectionOutput = "output"
)

// Port describes a model or workflow port.
type Port struct {
	Name        string `json:"portname"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Direction   string `json:"direction"`
}

// Model describes an installed model.
type Model struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Version        string   `json:"version"`
	Description    string   `json:"description"`
	OrganisationID string   `json:"organisationid"`
	GroupIDs       []string `json:"groupids"`

	// Ports is populated from the _embedded section of the resource.
	Ports []Port `json:"-"`
}

// UnmarshalJSON decodes a model, lifting ports out of the _embedded section.
func (m *Model) UnmarshalJSON(data []byte) error {
	type alias Model
	aux := struct {
		*alias
		Embedded struct {
			Ports []Port `json:"ports"`
		} `json:"_embedded"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	m.Ports = aux.Embedded.Ports
	return nil
}

// ListModelsOptions selects a subset of the model listing.
type ListModelsOptions struct {
	ListOptions

	// GroupIDs restricts the listing to models in the given groups.
	GroupIDs []string
}

// GetModel gets a specific model by ID.
func (c *Client) GetModel(ctx context.Context, id string) (*Model, error) {
	if id == "" {
		return nil, errors.New("model id is required")
	}

	var model Model
	if err := c.getJSON(ctx, nil, &model, modelsPath, id); err != nil {
		return nil, fmt.Errorf("get model %s: %w", id, err)
	}
	return &model, nil
}

// ListModels gets one page of the existing models.
func (c *Client) ListModels(ctx context.Context, opts ListModelsOptions) ([]Model, Page, error) {
	q := opts.ListOptions.query()
	if len(opts.GroupIDs) > 0 {
		q.Set("groupids", strings.Join(opts.GroupIDs, ","))
	}

	var models []Model
	page, err := c.listPage(ctx, modelsPath, modelsCollection, q, &models)
	if err != nil {
		return nil, Page{}, fmt.Errorf("list models: %w", err)
	}
	return models, page, nil
}

// ForEachModel visits every existing model, paginating transparently. An
// empty groupIDs visits models of all groups. A pageSize of 0 leaves the page
// size to the server. Iteration stops at the first error returned by fn.
func (c *Client) ForEachModel(ctx context.Context, pageSize int, groupIDs []string, fn func(Model) error) error {
	var q map[string][]string
	if len(groupIDs) > 0 {
		q = map[string][]string{"groupids": {strings.Join(groupIDs, ",")}}
	}

	return c.forEachItem(ctx, modelsPath, modelsCollection, q, pageSize, func(raw json.RawMessage) error {
		var model Model
		if err := json.Unmarshal(raw, &model); err != nil {
			return fmt.Errorf("decode model: %w", err)
		}
		return fn(model)
	})
}
