package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"binderbuilder/internal/config"
)

func testClient(serverURL, queryMode string) *Client {
	return NewClient(&config.Config{
		CatalogAPIURL:    serverURL,
		CatalogAPIKey:    "test-key",
		CatalogQueryMode: queryMode,
		CatalogTimeout:   5 * time.Second,
	})
}

func TestSearch_PassesThroughBody(t *testing.T) {
	upstream := `{"data":[{"id":"xy7-54","name":"Pikachu"}],"page":1,"pageSize":20,"count":1,"totalCount":1}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "pikachu", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("pageSize"))
		w.Write([]byte(upstream))
	}))
	defer server.Close()

	client := testClient(server.URL, "raw")
	body, err := client.Search(context.Background(), "pikachu", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, upstream, string(body))
}

func TestSearch_NameQueryMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "name:pika*", r.URL.Query().Get("q"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(server.URL, "name")
	_, err := client.Search(context.Background(), "pika", 1, 20)

	assert.NoError(t, err)
}

func TestSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := testClient(server.URL, "raw")
	body, err := client.Search(context.Background(), "pikachu", 1, 20)

	assert.Nil(t, body)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSearch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens on this address anymore

	client := testClient(server.URL, "raw")
	_, err := client.Search(context.Background(), "pikachu", 1, 20)

	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGetByID_Success(t *testing.T) {
	upstream := `{"data":{"id":"xy7-54","name":"Pikachu"}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/xy7-54", r.URL.Path)
		w.Write([]byte(upstream))
	}))
	defer server.Close()

	client := testClient(server.URL, "raw")
	body, err := client.GetByID(context.Background(), "xy7-54")

	assert.NoError(t, err)
	assert.Equal(t, upstream, string(body))
}

func TestGetByID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(server.URL, "raw")
	body, err := client.GetByID(context.Background(), "nope")

	assert.Nil(t, body)
	assert.ErrorIs(t, err, ErrCardNotFound)
	// the upstream detail is not part of the sentinel
	assert.False(t, errors.Is(err, ErrUpstream))
}
