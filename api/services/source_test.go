package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsers(t *testing.T) {
	mockResponse := `[
		{"id": 1, "name": "Ann", "email": "ann@example.com",
		 "address": {"street": "Kulas Light", "suite": "Apt. 556", "city": "Gwenborough", "zipcode": "92998-3874"},
		 "company": {"name": "Romaguera-Crona", "catchPhrase": "Multi-layered"}},
		{"id": 2, "name": "Bo", "email": "bo@example.com",
		 "address": {"street": "Victor Plains", "suite": "Suite 879", "city": "Wisokyburgh", "zipcode": "90566-7771"},
		 "company": {"name": "Deckow-Crist"}}
	]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	client := NewSourceClient(server.URL, 0)
	users, err := client.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 1, users[0].ID)
	assert.Equal(t, "Ann", users[0].Name)
	assert.Equal(t, "Apt. 556", users[0].Address.Suite)
	assert.Equal(t, "92998-3874", users[0].Address.Zipcode)
	assert.Equal(t, "Romaguera-Crona", users[0].Company.Name)
	assert.Equal(t, "Deckow-Crist", users[1].Company.Name)
}

func TestGetUsers_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewSourceClient(server.URL+"/", 0)
	users, err := client.GetUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestGetUsers_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewSourceClient(server.URL, 0)
	users, err := client.GetUsers(context.Background())
	assert.Nil(t, users)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
}

func TestGetUsers_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"`))
	}))
	defer server.Close()

	client := NewSourceClient(server.URL, 0)
	_, err := client.GetUsers(context.Background())
	assert.ErrorContains(t, err, "failed to decode users response")
}

func TestGetUsers_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewSourceClient(server.URL, 0)
	_, err := client.GetUsers(context.Background())
	assert.ErrorContains(t, err, "failed to make request")
}

func TestGetPosts(t *testing.T) {
	mockResponse := `[{"id": 10, "userId": 1, "title": "T", "body": "B"}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("userId"))
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	client := NewSourceClient(server.URL, 0)
	posts, err := client.GetPosts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 10, posts[0].ID)
	assert.Equal(t, 1, posts[0].UserID)
	assert.Equal(t, "T", posts[0].Title)
	assert.Equal(t, "B", posts[0].Body)
}

func TestGetPosts_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewSourceClient(server.URL, 0)
	_, err := client.GetPosts(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch posts for user 3")

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestGetPosts_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewSourceClient(server.URL, 0)
	_, err := client.GetPosts(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
