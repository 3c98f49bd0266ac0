package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	nt "vignette/entity"
)

// Codes for transport failures that carry no errno.
const (
	CodeUnknownTransport = -1
	CodeHostNotFound     = -1003
	CodeSecureConnection = -1200
)

// classify maps a transport failure onto an error kind.
// Only failures from outside the request itself are InvalidResponse.
func classify(rawUrl string, err error) *nt.FetchError {

	fe := &nt.FetchError{URL: rawUrl, Err: err}

	var errno syscall.Errno
	var netErr net.Error
	var dnsErr *net.DNSError
	var urlErr *url.Error

	switch {
	case errors.Is(err, context.Canceled):
		fe.Kind = nt.Cancelled

	case strings.Contains(err.Error(), "unsupported protocol scheme"):
		fe.Kind = nt.UnsupportedURL

	case errors.As(err, &errno):
		fe.Kind = nt.UnexpectedTransportError
		fe.Code = int(errno)
		if offline(errno) {
			fe.Kind = nt.NotConnectedToNetwork
			fe.Code = 0
		}

	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		fe.Kind = nt.UnexpectedTransportError
		fe.Code = int(syscall.ETIMEDOUT)

	case errors.As(err, &dnsErr):
		fe.Kind = nt.UnexpectedTransportError
		fe.Code = CodeHostNotFound

	case insecure(err):
		fe.Kind = nt.UnexpectedTransportError
		fe.Code = CodeSecureConnection

	case errors.As(err, &urlErr):
		fe.Kind = nt.UnexpectedTransportError
		fe.Code = CodeUnknownTransport

	default:
		fe.Kind = nt.InvalidResponse
	}

	return fe
}

func offline(errno syscall.Errno) bool {
	return errno == syscall.ENETUNREACH || errno == syscall.ENETDOWN
}

// insecure is true for tls handshake and certificate failures
func insecure(err error) bool {

	var verifyErr *tls.CertificateVerificationError
	var alertErr tls.AlertError
	var headerErr tls.RecordHeaderError
	var authorityErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError

	return errors.As(err, &verifyErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &headerErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr)
}
