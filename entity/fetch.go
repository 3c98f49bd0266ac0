package entity

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// Image is a fetched and decoded image.
type Image struct {
	URL     string
	Data    []byte
	Format  string
	Width   int
	Height  int
	Decoded image.Image
}

// Result is the outcome of a single fetch, either Image or Err is set.
type Result struct {
	Image *Image
	Err   error
}

// Ok is true for a successful fetch.
func (result Result) Ok() bool {
	return result.Err == nil && result.Image != nil
}

// FetchError is a classified fetch failure.
type FetchError struct {
	Kind   ErrorKind
	URL    string
	Code   int   // transport code, UnexpectedTransportError only
	Status int   // http status, when one was received
	Err    error // underlying cause, if any
}

// Message returns a human readable description of the failure.
func (fe *FetchError) Message() string {

	switch fe.Kind {
	case InvalidURL:
		return fmt.Sprintf("cannot make a url from %q", fe.URL)
	case InvalidImageData:
		return "received data is not an image"
	case UnsupportedURL:
		return fmt.Sprintf("unsupported url: %s", fe.URL)
	case NotConnectedToNetwork:
		return "not connected to the network"
	case InvalidResponse:
		if fe.Status != 0 {
			return fmt.Sprintf("invalid response: status %d", fe.Status)
		}
		return "invalid response"
	case Cancelled:
		return "request was cancelled"
	case UnexpectedTransportError:
		return fmt.Sprintf("unexpected transport error, code: %d", fe.Code)
	}
	return "unknown error"
}

func (fe *FetchError) Error() string {
	if fe.Err == nil {
		return fe.Message()
	}
	return fmt.Sprintf("%s: %s", fe.Message(), fe.Err)
}

func (fe *FetchError) Unwrap() error {
	return fe.Err
}

// KindOf returns the kind of a fetch failure, UnknownError for anything unclassified.
func KindOf(err error) ErrorKind {

	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return UnknownError
}

// MessageOf returns the human readable message for any failure.
func MessageOf(err error) string {

	if err == nil {
		return ""
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Message()
	}
	return fmt.Sprintf("unknown error: %s", err)
}
