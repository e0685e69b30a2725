package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
)

type userAgentTransport struct {
	agent   string
	wrapped http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	req.Header.Set("Accept", "application/json")
	return t.wrapped.RoundTrip(req)
}

// Client fetches a target URL through an allorigins-style proxy that takes
// the target in the "url" query parameter.
type Client struct {
	base   string
	client *retryablehttp.Client
}

// NewClient returns a client for the proxy endpoint at base. retryMax of
// zero means a single attempt. Non-2xx responses are returned to the caller
// rather than converted to errors.
func NewClient(base string, retryMax int, version string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{
		Transport: &userAgentTransport{
			agent:   fmt.Sprintf("alertfeed/%s (https://github.com/RobBrazier/alertfeed)", version),
			wrapped: http.DefaultTransport,
		},
	}
	retryClient.Logger = slog.Default()
	retryClient.RetryMax = retryMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &Client{
		base:   base,
		client: retryClient,
	}
}

// RequestURL wraps target in the proxy URL, keeping any query parameters
// the proxy URL already carries.
func (c *Client) RequestURL(target string) (string, error) {
	u, err := url.Parse(c.base)
	if err != nil {
		return "", fmt.Errorf("invalid proxy url %q: %w", c.base, err)
	}
	query := u.Query()
	query.Set("url", target)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// Get issues one GET for target through the proxy. The caller owns the
// response body.
func (c *Client) Get(ctx context.Context, target string) (*http.Response, error) {
	requestURL, err := c.RequestURL(target)
	if err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", requestURL, err)
	}
	return c.client.Do(req)
}
