package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUpstreamHTTP       = errors.New("upstream returned an error status")
	ErrUpstreamTimeout    = errors.New("upstream request timed out")
	ErrParse              = errors.New("malformed upstream payload")
	ErrMissingToken       = errors.New("weather provider token is not configured")
	ErrLocationNotFound   = errors.New("location identifier not found")
	ErrIncompleteForecast = errors.New("forecast is missing min or max temperature")

	ErrInvalidQuery       = errors.New("search query is required")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidLocation    = errors.New("city and state are required")
)

// UpstreamHTTPError reports a non-2xx answer from an external collaborator.
// Body holds at most the first few hundred characters of the response.
type UpstreamHTTPError struct {
	Status int
	URL    string
	Body   string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream %s: HTTP %d", e.URL, e.Status)
}

func (e *UpstreamHTTPError) Unwrap() error {
	return ErrUpstreamHTTP
}
