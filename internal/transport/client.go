// Package transport provides the authenticated HTTP client used for all
// care portal traffic.
package transport

import (
	"bytes"
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/caretide/ordersync/pkg/constants"
	"github.com/caretide/ordersync/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http   *http.Client
	auth   Authenticator
	apiKey string
}

// New creates a new transport client with the specified authenticator.
// The API key is applied to every request; an empty key leaves requests
// unauthenticated regardless of the authenticator.
func New(auth Authenticator, apiKey string) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{
		http:   &http.Client{Timeout: DefaultHTTPTimeout},
		auth:   auth,
		apiKey: apiKey,
	}
}

// Do performs an HTTP request with authentication and common headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}

	// Set common headers
	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(req)
}

// Put performs a PUT request with the given value encoded as the JSON body.
func (c *Client) Put(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", "request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapResource("create", "request", "PUT "+url, err)
	}
	return c.Do(req)
}
