package provider

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const maxLoggedBody = 2048

// LoggingTransport is an http.RoundTripper that logs every model call at debug level,
// including the raw response body. Credentials in the query string are redacted.
type LoggingTransport struct {
	inner  http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport wraps inner. If inner is nil, http.DefaultTransport is used.
func NewLoggingTransport(inner http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if inner == nil {
		inner = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTransport{inner: inner, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		t.logger.DebugContext(ctx, "model request failed",
			"url", redactURL(req.URL),
			"duration", time.Since(start),
			"error", err,
		)
		return nil, err
	}

	if !t.logger.Enabled(ctx, slog.LevelDebug) {
		return resp, nil
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if readErr != nil {
		return nil, readErr
	}

	t.logger.DebugContext(ctx, "model raw response",
		"url", redactURL(req.URL),
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"body", clip(string(body), maxLoggedBody),
	)
	return resp, nil
}

func redactURL(u *url.URL) string {
	redacted := *u
	q := redacted.Query()
	if q.Has("key") {
		q.Set("key", "***")
		redacted.RawQuery = q.Encode()
	}
	return redacted.String()
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
