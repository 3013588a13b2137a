package querier

import (
	"errors"
	"net/url"
)

// ErrNotFound is returned when response can not be interpreted as entries
// or contains no entries at all. API reports unknown words the same way.
var ErrNotFound = errors.New("no definitions found")

// ErrClosed is the cause of *RequestError returned after Close.
var ErrClosed = errors.New("querier is closed")

// RequestError reports that request to the API could not be completed.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return "internal request error: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError strips *url.Error added by http.Client, it only repeats
// method and url.
func NewRequestError(rawURL string, err error) *RequestError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return &RequestError{URL: rawURL, Err: err}
}
