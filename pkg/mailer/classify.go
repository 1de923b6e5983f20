package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/textproto"
	"strings"
)

var failureClasses = []error{ErrAuth, ErrConnection, ErrTimeout, ErrSendFailed}

// Classify wraps err with its failure class. Errors that already carry a
// class are returned unchanged. nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, class := range failureClasses {
		if errors.Is(err, class) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", classOf(err), err)
}

func classOf(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ErrTimeout
	}

	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535:
			return ErrAuth
		case 421:
			return ErrConnection
		}
		return ErrSendFailed
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) || errors.As(err, &netErr) || errors.Is(err, net.ErrClosed) {
		return ErrConnection
	}

	var stErr *StatusError
	if errors.As(err, &stErr) {
		switch {
		case stErr.StatusCode == http.StatusUnauthorized, stErr.StatusCode == http.StatusForbidden:
			return ErrAuth
		case stErr.StatusCode == http.StatusRequestTimeout, stErr.StatusCode == http.StatusGatewayTimeout:
			return ErrTimeout
		case stErr.StatusCode == http.StatusBadGateway, stErr.StatusCode == http.StatusServiceUnavailable:
			return ErrConnection
		}
		return ErrSendFailed
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return ErrConnection
	}

	return ErrSendFailed
}
