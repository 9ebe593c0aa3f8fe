package ports

import "context"

// Response is the raw result of an API request.
type Response struct {
	// Status is the HTTP status code.
	Status int
	// Body is the response payload.
	Body []byte
}

// Transport retrieves API responses.
//
//go:generate mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks
type Transport interface {
	// Get issues a GET request for url.
	// A non-nil error means no response was received at all.
	Get(ctx context.Context, url string) (*Response, error)
}
