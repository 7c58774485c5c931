// Package asclient model installation.
//
// Purpose:
//
//	Install models from a directory, ZIP file or tar/gzip file. Directories
//	are packed into a tar/gzip archive (with optional manifest injection)
//	before upload. Archives upload as the "archive" field of a multipart POST.
//
// Dependencies:
//   - mime/multipart: Archive upload encoding
//   - internal/archive: Directory packing and archive type detection
package asclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"

	"github.com/eratosio/as-client-go/internal/archive"
	"go.uber.org/zap"
)

// InstallOptions configures a model installation.
type InstallOptions struct {
	// Manifest is the raw content of a manifest.json to inject when packing a
	// model directory, replacing any manifest.json in the directory. If nil,
	// the directory (or archive) must already contain a manifest.json.
	Manifest []byte

	// IncludeHidden includes hidden files when packing a model directory.
	// Hidden files are ignored otherwise.
	IncludeHidden bool

	// OnFile, if set, is invoked with the relative path of each file packed
	// from a model directory.
	OnFile func(relPath string)
}

// InstallResult holds the outcome of a model installation.
type InstallResult struct {
	ModelID string `json:"modelid"`
	Status  string `json:"status"`

	// Model is the installed model, populated from the _embedded section of
	// the result.
	Model *Model `json:"-"`
}

// UnmarshalJSON decodes an installation result, lifting the model out of the
// _embedded section.
func (r *InstallResult) UnmarshalJSON(data []byte) error {
	type alias InstallResult
	aux := struct {
		*alias
		Embedded struct {
			Model *Model `json:"model"`
		} `json:"_embedded"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Model = aux.Embedded.Model
	return nil
}

// InstallModel installs a new model from path. The path may point to a
// directory containing the model files, to a ZIP file, or to a tar/gzip file.
func (c *Client) InstallModel(ctx context.Context, path string, opts InstallOptions) (*InstallResult, error) {
	kind, err := archive.Detect(path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}

	switch kind {
	case archive.KindDirectory:
		c.logger.Debug("packing model directory", zap.String("path", path))

		tmp, err := os.CreateTemp("", "as-client-model-*.tar.gz")
		if err != nil {
			return nil, fmt.Errorf("create temporary archive: %w", err)
		}
		defer os.Remove(tmp.Name())
		defer tmp.Close()

		packOpts := archive.PackOptions{
			Manifest:      opts.Manifest,
			IncludeHidden: opts.IncludeHidden,
			OnFile:        opts.OnFile,
		}
		if err := archive.PackDirectory(tmp, path, packOpts); err != nil {
			return nil, fmt.Errorf("pack model directory: %w", err)
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind temporary archive: %w", err)
		}

		return c.InstallModelArchive(ctx, tmp, "model.tar.gz", "application/gzip")

	case archive.KindZip:
		c.logger.Debug("uploading model zip file", zap.String("path", path))

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open model archive: %w", err)
		}
		defer f.Close()

		return c.InstallModelArchive(ctx, f, "model.zip", "application/zip")

	case archive.KindTar:
		c.logger.Debug("uploading model tar/gzip file", zap.String("path", path))

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open model archive: %w", err)
		}
		defer f.Close()

		return c.InstallModelArchive(ctx, f, "model.tar.gz", "application/gzip")

	default:
		return nil, fmt.Errorf("%s does not refer to a directory, zip file or tar/gzip file", path)
	}
}

// InstallModelArchive installs a new model from an archive stream. The
// archive uploads as the "archive" field of a multipart POST with the given
// filename and content type. The archive streams through without buffering,
// so the request is not retried on transient failures.
func (c *Client) InstallModelArchive(ctx context.Context, archiveData io.Reader, filename, contentType string) (*InstallResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="archive"; filename="%s"`, filename))
		hdr.Set("Content-Type", contentType)

		part, err := mw.CreatePart(hdr)
		if err == nil {
			_, err = io.Copy(part, archiveData)
		}
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, nil, pr, mw.FormDataContentType(), modelsPath)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("install model: %w", err)
	}

	var result InstallResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
