package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// ClientIP records the resolved client address under "client_ip".
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// RateLimitKey records a limiter key under "rate_limit_key".
func RateLimitKey(key string) slog.Attr {
	return slog.String("rate_limit_key", key)
}

// Duration records a duration under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Transport records the mail transport name under "transport".
func Transport(name string) slog.Attr {
	return slog.String("transport", name)
}

// Outcome records how a request ended, for example "sent" or "timeout".
func Outcome(name string) slog.Attr {
	return slog.String("outcome", name)
}

// Status records an HTTP status code under "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
