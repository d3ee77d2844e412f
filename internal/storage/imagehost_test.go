package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mk23rd/lawata-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHost 起一个假图床：按上传文件名返回URL，文件名带bad的返回500
func newTestHost(t *testing.T) *ImageHost {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		file.Close()

		if header.Filename == "bad.png" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"url":"https://cdn.example.com/%s"}`, header.Filename)
	}))
	t.Cleanup(server.Close)

	return NewImageHost(config.ImageHostConfig{Endpoint: server.URL, Timeout: 5})
}

func TestUpload(t *testing.T) {
	host := newTestHost(t)

	url, err := host.Upload(context.Background(), "cover.png", []byte("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cover.png", url)
}

func TestUploadServerError(t *testing.T) {
	host := newTestHost(t)

	_, err := host.Upload(context.Background(), "bad.png", []byte("fake image bytes"))
	assert.Error(t, err)
}

func TestUploadUnconfigured(t *testing.T) {
	host := NewImageHost(config.ImageHostConfig{})

	_, err := host.Upload(context.Background(), "cover.png", []byte("fake image bytes"))
	assert.Error(t, err)
}

func TestUploadBatchPreservesOrder(t *testing.T) {
	host := newTestHost(t)

	urls, err := host.UploadBatch(context.Background(), []UploadFile{
		{Filename: "a.png", Data: []byte("a")},
		{Filename: "b.png", Data: []byte("b")},
		{Filename: "c.png", Data: []byte("c")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example.com/a.png",
		"https://cdn.example.com/b.png",
		"https://cdn.example.com/c.png",
	}, urls)
}

func TestUploadBatchOneFailureFailsBatch(t *testing.T) {
	host := newTestHost(t)

	_, err := host.UploadBatch(context.Background(), []UploadFile{
		{Filename: "a.png", Data: []byte("a")},
		{Filename: "bad.png", Data: []byte("b")},
	})
	assert.Error(t, err)
}
