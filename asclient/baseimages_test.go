// Package asclient unit tests for base image operations.
package asclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetBaseImage(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "python-3.9",
			"name": "Python 3.9",
			"description": "Python 3.9 runtime",
			"runtimetype": "python",
			"modelroot": "/opt/model",
			"modeluser": "model",
			"entrypointtemplate": "python {entrypoint}",
			"supportedproviders": ["aws", "azure"],
			"hostenvironment": {"architecture": "x86_64", "operatingsystem": "linux"},
			"tags": ["python", "stable"]
		}`))
	}))

	image, err := client.GetBaseImage(context.Background(), "python-3.9")
	require.NoError(t, err)

	assert.Equal(t, "/base-images/python-3.9", gotPath)
	assert.Equal(t, "python-3.9", image.ID)
	assert.Equal(t, "Python 3.9", image.Name)
	assert.Equal(t, "python", image.RuntimeType)
	assert.Equal(t, "/opt/model", image.ModelRoot)
	assert.Equal(t, "model", image.ModelUser)
	assert.Equal(t, "python {entrypoint}", image.EntrypointTemplate)
	assert.ElementsMatch(t, []string{"aws", "azure"}, image.SupportedProviders)
	require.NotNil(t, image.HostEnvironment)
	assert.Equal(t, "x86_64", image.HostEnvironment.Architecture)
	assert.Equal(t, "linux", image.HostEnvironment.OperatingSystem)
	assert.ElementsMatch(t, []string{"python", "stable"}, image.Tags)
}

func TestClient_GetBaseImage_EmptyID(t *testing.T) {
	client, err := New("https://senaps.io/api/analysis")
	require.NoError(t, err)

	_, err = client.GetBaseImage(context.Background(), "")
	assert.Error(t, err)
}

func TestClient_ListBaseImages(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/base-images", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"skip": 0, "limit": 10, "count": 2, "totalcount": 2,
			"_embedded": {"baseImages": [
				{"id": "python-3.9", "runtimetype": "python"},
				{"id": "r-4.1", "runtimetype": "r"}
			]}
		}`))
	}))

	images, page, err := client.ListBaseImages(context.Background(), ListOptions{})
	require.NoError(t, err)

	require.Len(t, images, 2)
	assert.Equal(t, "python-3.9", images[0].ID)
	assert.Equal(t, "r-4.1", images[1].ID)
	assert.Equal(t, 2, page.TotalCount)
}
