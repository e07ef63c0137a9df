package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/EO-DataHub/eodhp-users-dashboard/models"
)

// SourceClient is a client for the remote users and posts REST endpoints.
type SourceClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

type HTTPError struct {
	Message string
	Status  int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewSourceClient creates a new instance of SourceClient. A zero timeout
// leaves requests unbounded.
func NewSourceClient(baseURL string, timeout time.Duration) *SourceClient {
	return &SourceClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// GetUsers retrieves the full users collection.
func (c *SourceClient) GetUsers(ctx context.Context) ([]models.User, error) {
	respBody, err := c.makeRequest(ctx, fmt.Sprintf("%s/users", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(respBody, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users response: %w", err)
	}

	return users, nil
}

// GetPosts retrieves the posts owned by a single user.
func (c *SourceClient) GetPosts(ctx context.Context, userID int) ([]models.Post, error) {
	query := url.Values{}
	query.Set("userId", strconv.Itoa(userID))

	respBody, err := c.makeRequest(ctx, fmt.Sprintf("%s/posts?%s", c.BaseURL, query.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts for user %d: %w", userID, err)
	}

	var posts []models.Post
	if err := json.Unmarshal(respBody, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts response: %w", err)
	}

	return posts, nil
}

// Helper function for making GET requests to the source API.
func (c *SourceClient) makeRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Message: fmt.Sprintf("error response: status %d, body: %s", resp.StatusCode, string(respBody)),
			Status:  resp.StatusCode,
		}
	}

	return respBody, nil
}
