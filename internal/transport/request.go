package transport

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/caretide/ordersync/pkg/errors"
)

// DecodeResponse decodes a JSON response into the target structure.
// Any non-2xx status is reported as an APIError carrying the response body.
func DecodeResponse(resp *http.Response, resource string, target any) error {
	status, body, err := ReadResponse(resp)
	if err != nil {
		return err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return &errors.APIError{
			Resource:   resource,
			StatusCode: status,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}

// ReadResponse drains and closes the response body, returning the status
// code and raw bytes. Status interpretation is left to the caller, which
// lets write paths log the portal's reply before deciding on failure.
func ReadResponse(resp *http.Response) (int, []byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.WrapIO("read", "response body", err)
	}

	return resp.StatusCode, body, nil
}

// IsSuccess reports whether a status code is in the 2xx range.
func IsSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
