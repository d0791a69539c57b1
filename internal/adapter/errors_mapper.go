package adapter

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError maps a non-2xx response to a transport error. Any status in
// 400..599 is a server error regardless of the body.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(status)
	}

	if status >= http.StatusBadRequest && status <= 599 {
		return newServerError(status, errors.New(body))
	}

	return newError(KindMalformedResponse, errors.New("unexpected status "+resp.Status()))
}

// mapTransportError classifies an error returned before any response was
// received.
func mapTransportError(err error) error {
	if err == nil {
		return nil
	}

	var transportErr *Error
	if errors.As(err, &transportErr) {
		return transportErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(KindTimeout, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Op == "parse" {
		return newError(KindInvalidEndpoint, err)
	}
	var invalidHost url.InvalidHostError
	if errors.As(err, &invalidHost) {
		return newError(KindInvalidEndpoint, err)
	}

	if isConnectivityError(err) {
		return newError(KindNetworkUnavailable, err)
	}

	return newError(KindUnknown, err)
}

func isConnectivityError(err error) bool {
	var (
		opErr  *net.OpError
		dnsErr *net.DNSError
	)

	switch {
	case errors.As(err, &dnsErr):
		return true
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.ENETUNREACH),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return true
	case errors.As(err, &opErr):
		return true
	default:
		return false
	}
}
