package entity

import "fmt"

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	UnknownError ErrorKind = iota
	InvalidURL
	InvalidImageData
	UnsupportedURL
	NotConnectedToNetwork
	InvalidResponse
	Cancelled
	UnexpectedTransportError
)

var kindNames = map[ErrorKind]string{
	UnknownError:             "UnknownError",
	InvalidURL:               "InvalidURL",
	InvalidImageData:         "InvalidImageData",
	UnsupportedURL:           "UnsupportedURL",
	NotConnectedToNetwork:    "NotConnectedToNetwork",
	InvalidResponse:          "InvalidResponse",
	Cancelled:                "Cancelled",
	UnexpectedTransportError: "UnexpectedTransportError",
}

// String returns the name of the kind.
func (kind ErrorKind) String() string {
	name, ok := kindNames[kind]
	if !ok {
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
	return name
}
