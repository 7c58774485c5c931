// Package asclient workflow resources.
//
// Purpose:
//
//	Workflow CRUD plus synchronous execution. Uploads choose PUT or POST on ID
//	presence; the resource ID only travels in the body on PUT. Running a
//	workflow is a GET of its results sub-resource.
package asclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	workflowsPath       = "workflows"
	workflowsCollection = "workflows"
)

// Workflow describes a configuration of a model bound to input and output
// data, ready for execution.
type Workflow struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ModelID        string   `json:"modelid"`
	OrganisationID string   `json:"organisationid"`
	GroupIDs       []string `json:"groupids"`

	// Ports is populated from the _embedded section of the resource. Ports
	// are defined by the workflow's model and are read-only here.
	Ports []Port `json:"-"`
}

// UnmarshalJSON decodes a workflow, lifting ports out of the _embedded
// section.
func (w *Workflow) UnmarshalJSON(data []byte) error {
	type alias Workflow
	aux := struct {
		*alias
		Embedded struct {
			Ports []Port `json:"ports"`
		} `json:"_embedded"`
	}{alias: (*alias)(w)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	w.Ports = aux.Embedded.Ports
	return nil
}

// workflowPayload is the upload form of a workflow. ID is only set on PUT.
type workflowPayload struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	ModelID        string   `json:"modelid"`
	OrganisationID string   `json:"organisationid,omitempty"`
	GroupIDs       []string `json:"groupids,omitempty"`
}

// RunOptions configures workflow execution.
type RunOptions struct {
	// Debug runs the workflow in debug mode, which causes additional log
	// messages and output data to be returned.
	Debug bool
}

// ResultPort is a workflow port with the value it held after execution.
type ResultPort struct {
	Name      string      `json:"portname"`
	Type      string      `json:"type"`
	Direction string      `json:"direction"`
	Value     interface{} `json:"value"`
}

// WorkflowResults holds the outcome of a synchronous workflow execution.
type WorkflowResults struct {
	WorkflowID string `json:"workflowid"`
	Status     string `json:"status"`

	// Ports is populated from the _embedded section of the results.
	Ports []ResultPort `json:"-"`

	// Log carries the raw execution log document returned by debug runs.
	Log json.RawMessage `json:"log"`
}

// UnmarshalJSON decodes workflow results, lifting ports out of the _embedded
// section.
func (r *WorkflowResults) UnmarshalJSON(data []byte) error {
	type alias WorkflowResults
	aux := struct {
		*alias
		Embedded struct {
			Ports []ResultPort `json:"ports"`
		} `json:"_embedded"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Ports = aux.Embedded.Ports
	return nil
}

// GetWorkflow gets a specific workflow by ID.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*Workflow, error) {
	if id == "" {
		return nil, errors.New("workflow id is required")
	}

	var wf Workflow
	if err := c.getJSON(ctx, nil, &wf, workflowsPath, id); err != nil {
		return nil, fmt.Errorf("get workflow %s: %w", id, err)
	}
	return &wf, nil
}

// ListWorkflows gets one page of the existing workflows.
func (c *Client) ListWorkflows(ctx context.Context, opts ListOptions) ([]Workflow, Page, error) {
	var workflows []Workflow
	page, err := c.listPage(ctx, workflowsPath, workflowsCollection, opts.query(), &workflows)
	if err != nil {
		return nil, Page{}, fmt.Errorf("list workflows: %w", err)
	}
	return workflows, page, nil
}

// ForEachWorkflow visits every existing workflow, paginating transparently.
// A pageSize of 0 leaves the page size to the server. Iteration stops at the
// first error returned by fn.
func (c *Client) ForEachWorkflow(ctx context.Context, pageSize int, fn func(Workflow) error) error {
	return c.forEachItem(ctx, workflowsPath, workflowsCollection, nil, pageSize, func(raw json.RawMessage) error {
		var wf Workflow
		if err := json.Unmarshal(raw, &wf); err != nil {
			return fmt.Errorf("decode workflow: %w", err)
		}
		return fn(wf)
	})
}

// UploadWorkflow uploads a workflow. If the workflow specifies an ID matching
// an existing workflow, the existing workflow is overwritten; with no ID a
// new workflow is created with a generated ID. The workflow is updated in
// place with any properties generated by the service.
func (c *Client) UploadWorkflow(ctx context.Context, wf *Workflow) error {
	if wf == nil {
		return errors.New("workflow is required")
	}

	if wf.ID != "" {
		return c.uploadWorkflow(ctx, http.MethodPut, wf, workflowsPath, wf.ID)
	}
	return c.uploadWorkflow(ctx, http.MethodPost, wf, workflowsPath)
}

// CreateWorkflow uploads a workflow as a new resource, regardless of any ID
// it carries. The workflow is updated in place with its generated ID.
func (c *Client) CreateWorkflow(ctx context.Context, wf *Workflow) error {
	if wf == nil {
		return errors.New("workflow is required")
	}
	return c.uploadWorkflow(ctx, http.MethodPost, wf, workflowsPath)
}

func (c *Client) uploadWorkflow(ctx context.Context, method string, wf *Workflow, segments ...string) error {
	payload := workflowPayload{
		Name:           wf.Name,
		Description:    wf.Description,
		ModelID:        wf.ModelID,
		OrganisationID: wf.OrganisationID,
		GroupIDs:       wf.GroupIDs,
	}
	if method == http.MethodPut {
		payload.ID = wf.ID
	}

	if err := c.sendJSON(ctx, method, nil, payload, wf, segments...); err != nil {
		return fmt.Errorf("upload workflow: %w", err)
	}
	return nil
}

// RunWorkflow requests synchronous execution of the workflow with the given
// ID and returns its results.
func (c *Client) RunWorkflow(ctx context.Context, id string, opts RunOptions) (*WorkflowResults, error) {
	if id == "" {
		return nil, errors.New("workflow id is required")
	}

	q := url.Values{}
	q.Set("debug", strconv.FormatBool(opts.Debug))

	var results WorkflowResults
	if err := c.getJSON(ctx, q, &results, workflowsPath, id, "results"); err != nil {
		return nil, fmt.Errorf("run workflow %s: %w", id, err)
	}
	return &results, nil
}

// RunOrCreateWorkflow runs a workflow described by wf. When wf carries an ID
// of an existing workflow, that workflow is executed directly. When the ID is
// missing or no longer exists, the workflow is first created (updating wf
// with its generated ID) and then executed.
func (c *Client) RunOrCreateWorkflow(ctx context.Context, wf *Workflow, opts RunOptions) (*WorkflowResults, error) {
	if wf == nil {
		return nil, errors.New("workflow is required")
	}

	if wf.ID != "" {
		results, err := c.RunWorkflow(ctx, wf.ID, opts)
		if err == nil || !IsNotFound(err) {
			return results, err
		}
	}

	if err := c.CreateWorkflow(ctx, wf); err != nil {
		return nil, err
	}
	return c.RunWorkflow(ctx, wf.ID, opts)
}

// DeleteWorkflow deletes the workflow with the given ID.
func (c *Client) DeleteWorkflow(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("workflow id is required")
	}

	req, err := c.newRequest(ctx, http.MethodDelete, nil, nil, "", workflowsPath, id)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("delete workflow %s: %w", id, err)
	}
	drain(resp)

	return nil
}
