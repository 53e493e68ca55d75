package transport

import (
	"net/http"
	"strings"
)

// Auth style names accepted by ForStyle.
const (
	StyleNone   = "none"
	StyleBearer = "bearer"
	StyleHeader = "header"
	StyleQuery  = "query"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {
	// No authentication applied
}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// QueryAuth implements API key as query parameter authentication.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}

	// Parse existing query parameters
	query := req.URL.Query()
	query.Set(a.Param, apiKey)
	req.URL.RawQuery = query.Encode()
}

// ForStyle returns the authenticator matching a configured auth style.
// Supported styles:
//
//	"bearer"        Authorization: Bearer <key>
//	"header:<Name>" <Name>: <key>
//	"query:<name>"  ?<name>=<key>
//	"none", ""      no authentication
//
// Unknown styles fall back to bearer, the portal's documented scheme.
func ForStyle(style string) Authenticator {
	name := ""
	if i := strings.IndexByte(style, ':'); i >= 0 {
		name = style[i+1:]
		style = style[:i]
	}

	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", StyleNone:
		return &NoAuth{}
	case StyleHeader:
		if name == "" {
			name = "X-Api-Key"
		}
		return &HeaderAuth{Header: name}
	case StyleQuery:
		if name == "" {
			name = "apikey"
		}
		return &QueryAuth{Param: name}
	default:
		return &BearerAuth{}
	}
}
