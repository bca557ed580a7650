package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"devlink/internal/models"
	"devlink/internal/observability"
)

// Client proxies public repository lookups to the GitHub REST API.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// NewClient returns a GitHub client. clientID and clientSecret are optional
// and only raise the unauthenticated rate limit when present.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// LatestRepos fetches the user's five most recently created public
// repositories and returns the raw JSON array as GitHub sent it.
func (c *Client) LatestRepos(ctx context.Context, username string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	q := req.URL.Query()
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "devlink-api")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.GithubProxyRequests.WithLabelValues("error").Inc()
		return nil, models.NewBadGatewayError("GitHub is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		observability.GithubProxyRequests.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, models.NewNotFoundError("No Github profile found")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.GithubProxyRequests.WithLabelValues("error").Inc()
		return nil, models.NewBadGatewayError("GitHub response could not be read", err)
	}
	observability.GithubProxyRequests.WithLabelValues("ok").Inc()
	return json.RawMessage(body), nil
}
