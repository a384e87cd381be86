package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marketplace-assistant/internal/application/port/output"
)

const redacted = "[REDACTED]"

// Body fields holding credentials, compared case-insensitively.
var secretFields = map[string]struct{}{
	"apikey":        {},
	"api_key":       {},
	"token":         {},
	"access_token":  {},
	"password":      {},
	"secret":        {},
	"client_secret": {},
}

// LoggingTransport logs every outbound request and its status. Headers are
// never logged and credential fields in JSON bodies are redacted.
type LoggingTransport struct {
	Base    http.RoundTripper
	Logger  output.LoggerPort
	Service string
}

func NewHTTPClient(service string, timeout time.Duration, logger output.LoggerPort) *http.Client {
	client := &http.Client{Timeout: timeout}
	if logger != nil {
		client.Transport = &LoggingTransport{
			Base:    http.DefaultTransport,
			Logger:  logger,
			Service: service,
		}
	}
	return client
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	var bodyBytes []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			t.Logger.Error("HTTP request body unreadable",
				"service", t.Service,
				"url", req.URL.String(),
				"error", err,
			)
			return nil, fmt.Errorf("read request body: %w", err)
		}
		bodyBytes = data
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	}

	var requestData any
	if len(bodyBytes) > 0 {
		if json.Unmarshal(bodyBytes, &requestData) == nil {
			requestData = redact(requestData)
		} else {
			requestData = string(bodyBytes)
		}
	}

	t.Logger.Debug("HTTP request",
		"service", t.Service,
		"method", req.Method,
		"url", req.URL.String(),
		"body", requestData,
	)

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if err != nil {
		t.Logger.Error("HTTP request failed",
			"service", t.Service,
			"url", req.URL.String(),
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	t.Logger.Debug("HTTP response",
		"service", t.Service,
		"status", resp.Status,
		"statusCode", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func redact(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			if _, ok := secretFields[strings.ToLower(k)]; ok {
				val[k] = redacted
				continue
			}
			val[k] = redact(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = redact(inner)
		}
		return val
	default:
		return v
	}
}
