package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LatestRepos_PropagatesBody(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"repo-one"},{"name":"repo-two"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "client-id", "client-secret")
	body, err := c.LatestRepos(context.Background(), "octocat")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"repo-one"},{"name":"repo-two"}]`, string(body))
	assert.Equal(t, "/users/octocat/repos", gotPath)
	assert.Contains(t, gotQuery, "per_page=5")
	assert.Contains(t, gotQuery, "client_id=client-id")
}

func TestClient_LatestRepos_CredentialsOptional(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("client_id"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "")
	_, err := c.LatestRepos(context.Background(), "octocat")
	require.NoError(t, err)
}

func TestClient_LatestRepos_UpstreamNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "")
	_, err := c.LatestRepos(context.Background(), "ghost")
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestClient_LatestRepos_TransportFailureIsBadGateway(t *testing.T) {
	// A closed server makes the transport fail outright.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "", "")
	_, err := c.LatestRepos(context.Background(), "octocat")
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BAD_GATEWAY", appErr.Code)
}
