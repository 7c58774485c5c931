// Package asclient base image resources.
package asclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	baseImagesPath       = "base-images"
	baseImagesCollection = "baseImages"
)

// HostEnvironment describes the host a base image runs on.
type HostEnvironment struct {
	Architecture    string `json:"architecture"`
	OperatingSystem string `json:"operatingsystem"`
}

// BaseImage describes a runtime environment that models execute on.
type BaseImage struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	RuntimeType        string           `json:"runtimetype"`
	ModelRoot          string           `json:"modelroot"`
	ModelUser          string           `json:"modeluser"`
	EntrypointTemplate string           `json:"entrypointtemplate"`
	SupportedProviders []string         `json:"supportedproviders"`
	HostEnvironment    *HostEnvironment `json:"hostenvironment"`
	Tags               []string         `json:"tags"`
}

// GetBaseImage gets a specific base image by ID.
func (c *Client) GetBaseImage(ctx context.Context, id string) (*BaseImage, error) {
	if id == "" {
		return nil, errors.New("base image id is required")
	}

	var image BaseImage
	if err := c.getJSON(ctx, nil, &image, baseImagesPath, id); err != nil {
		return nil, fmt.Errorf("get base image %s: %w", id, err)
	}
	return &image, nil
}

// ListBaseImages gets one page of the existing base images.
func (c *Client) ListBaseImages(ctx context.Context, opts ListOptions) ([]BaseImage, Page, error) {
	var images []BaseImage
	page, err := c.listPage(ctx, baseImagesPath, baseImagesCollection, opts.query(), &images)
	if err != nil {
		return nil, Page{}, fmt.Errorf("list base images: %w", err)
	}
	return images, page, nil
}

// ForEachBaseImage visits every existing base image, paginating transparently.
// A pageSize of 0 leaves the page size to the server. Iteration stops at the
// first error returned by fn.
func (c *Client) ForEachBaseImage(ctx context.Context, pageSize int, fn func(BaseImage) error) error {
	return c.forEachItem(ctx, baseImagesPath, baseImagesCollection, nil, pageSize, func(raw json.RawMessage) error {
		var image BaseImage
		if err := json.Unmarshal(raw, &image); err != nil {
			return fmt.Errorf("decode base image: %w", err)
		}
		return fn(image)
	})
}
