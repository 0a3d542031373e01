package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// WebViewURL is the calendar web UI opened after a successful push.
const WebViewURL = "https://calendar.google.com/calendar/r"

// TokenFunc yields the current API bearer token, or nil when none is
// available. Requests then rely on the session cookie alone.
type TokenFunc func() *oauth2.Token

// Client is the HTTP client for the calendar API.
type Client struct {
	apiRoot    string
	httpClient *http.Client
	tokenFunc  TokenFunc
}

// NewClient creates a calendar API client. The cookie jar keeps the
// backend session cookie across requests; the bearer header is added
// on top whenever tokenFunc yields a token. Both travel on every
// request.
func NewClient(apiRoot string, timeout time.Duration, tokenFunc TokenFunc) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		apiRoot: strings.TrimRight(apiRoot, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		tokenFunc: tokenFunc,
	}
}

// endpoint joins the API root and path, stripping duplicate slashes at
// the seam.
func (c *Client) endpoint(path string) string {
	return c.apiRoot + "/" + strings.TrimLeft(path, "/")
}

// newRequest builds a request with the auth headers applied.
func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenFunc != nil {
		if t := c.tokenFunc(); t != nil {
			req.Header.Set("Authorization", "Bearer "+t.AccessToken)
		}
	}

	return req, nil
}

// Status fetches the calendar connection status. Any failure, network
// or HTTP, degrades to "not connected": a broken status check must
// never block the rest of the flow.
func (c *Client) Status(ctx context.Context) ConnectionStatus {
	req, err := c.newRequest(ctx, http.MethodGet, "/calendar/status", nil)
	if err != nil {
		return ConnectionStatus{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ConnectionStatus{}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ConnectionStatus{}
	}

	var status ConnectionStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return ConnectionStatus{}
	}
	return status
}

// AuthURL fetches the authorization URL to start connecting a calendar
// account.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/calendar/oauth/url", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting authorization url: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeError(resp, "could not get the authorization link")
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding authorization url: %w", err)
	}
	if payload.URL == "" {
		return "", fmt.Errorf("authorization url missing from response")
	}
	return payload.URL, nil
}

// Push submits a push request. Non-2xx responses come back as
// *APIError; callers check NeedsScopes for the step-up case.
func (c *Client) Push(ctx context.Context, pushReq PushRequest) (*PushResult, error) {
	body, err := json.Marshal(pushReq)
	if err != nil {
		return nil, fmt.Errorf("encoding push request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/calendar/push", body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pushing plan: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp, "could not add the plan to your calendar")
	}

	// createdCount defaults to zero when the body is empty or lacks
	// the field.
	var result PushResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &PushResult{}, nil
	}
	return &result, nil
}
