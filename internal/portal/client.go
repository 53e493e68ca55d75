// Package portal provides a client for the care portal's order and patient
// API. All calls go through the shared transport layer; endpoints and their
// slightly irregular paths are kept in one place here.
package portal

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caretide/ordersync/internal/transport"
	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/logging"
	"github.com/caretide/ordersync/pkg/orders"
)

// Client talks to the care portal.
type Client struct {
	baseURL   string
	transport *transport.Client
	patients  *patientCache
}

// Option configures a Client.
type Option func(*Client)

// WithTransport overrides the transport client. Used by tests and by
// deployments that need custom HTTP behavior.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithPatientCache enables caching of patient lookups for the given TTL.
// Off by default: without it every order fetches its patient fresh, so a
// record updated mid-run is observed on the next order that references it.
func WithPatientCache(ttl time.Duration) Option {
	return func(c *Client) {
		c.patients = newPatientCache(ttl)
	}
}

// NewClient creates a portal client for the given base URL. A trailing slash
// on the base URL is tolerated.
func NewClient(baseURL string, auth transport.Authenticator, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: transport.New(auth, apiKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// orderURL builds the endpoint for a single order.
func (c *Client) orderURL(orderID string) string {
	return fmt.Sprintf("%s/api/Order/%s", c.baseURL, url.PathEscape(orderID))
}

// patientURL builds the endpoint for a single patient. The extra
// "get-patient" path segment is the portal's route, not a convention of ours.
func (c *Client) patientURL(patientID string) string {
	return fmt.Sprintf("%s/api/Patient/get-patient/%s", c.baseURL, url.PathEscape(patientID))
}

// GetOrder fetches one order document.
func (c *Client) GetOrder(ctx context.Context, orderID string) (orders.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, errors.NewValidationError("orderId", orderID, "cannot be empty")
	}

	endpoint := c.orderURL(orderID)
	logging.FromContext(ctx).Debug().
		Str("order_id", orderID).
		Str("endpoint", endpoint).
		Msg("Fetching order")

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, &errors.APIError{
			Resource: "order",
			Endpoint: endpoint,
			Message:  "request failed",
			Err:      err,
		}
	}

	var order orders.Order
	if err := transport.DecodeResponse(resp, "order", &order); err != nil {
		return nil, annotateEndpoint(err, endpoint)
	}

	return order, nil
}

// GetPatient fetches one patient document, consulting the cache when one is
// configured.
func (c *Client) GetPatient(ctx context.Context, patientID string) (orders.Patient, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, errors.NewValidationError("patientId", patientID, "cannot be empty")
	}

	if c.patients != nil {
		if patient, ok := c.patients.get(patientID); ok {
			logging.FromContext(ctx).Debug().
				Str("patient_id", patientID).
				Msg("Patient cache hit")
			return patient, nil
		}
	}

	endpoint := c.patientURL(patientID)
	logging.FromContext(ctx).Debug().
		Str("patient_id", patientID).
		Str("endpoint", endpoint).
		Msg("Fetching patient")

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, &errors.APIError{
			Resource: "patient",
			Endpoint: endpoint,
			Message:  "request failed",
			Err:      err,
		}
	}

	var patient orders.Patient
	if err := transport.DecodeResponse(resp, "patient", &patient); err != nil {
		return nil, annotateEndpoint(err, endpoint)
	}

	if c.patients != nil {
		c.patients.set(patientID, patient)
	}

	return patient, nil
}

// UpdateOrder writes the full patched order back with a PUT. The portal
// replaces the stored document wholesale, which is why callers must send
// every field they received. The response status and body are always logged
// so a rejected update can be diagnosed from the run log alone.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, payload orders.Order) error {
	if strings.TrimSpace(orderID) == "" {
		return errors.NewValidationError("orderId", orderID, "cannot be empty")
	}

	endpoint := c.orderURL(orderID)
	resp, err := c.transport.Put(ctx, endpoint, payload)
	if err != nil {
		return &errors.APIError{
			Resource: "order",
			Endpoint: endpoint,
			Message:  "update request failed",
			Err:      err,
		}
	}

	status, body, err := transport.ReadResponse(resp)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info().
		Str("order_id", orderID).
		Int("status_code", status).
		Str("response_body", string(body)).
		Msg("Order update response")

	if !transport.IsSuccess(status) {
		return &errors.APIError{
			Resource:   "order",
			StatusCode: status,
			Endpoint:   endpoint,
			Message:    string(body),
		}
	}

	return nil
}

// CachedPatients returns how many patient documents are currently cached.
// Zero when the cache is disabled.
func (c *Client) CachedPatients() int {
	if c.patients == nil {
		return 0
	}
	return c.patients.itemCount()
}

// annotateEndpoint fills the endpoint on API errors that lack one.
func annotateEndpoint(err error, endpoint string) error {
	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) && apiErr.Endpoint == "" {
		apiErr.Endpoint = endpoint
	}
	return err
}
