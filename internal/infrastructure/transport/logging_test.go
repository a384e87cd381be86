package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"marketplace-assistant/internal/infrastructure/logger"
)

func TestLoggingTransport_PreservesBodyAndLogs(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		received = string(data)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	core, logs := observer.New(zap.DebugLevel)
	client := NewHTTPClient("multion", 5*time.Second, logger.NewFromZap(zap.New(core)))

	req, err := http.NewRequest(http.MethodPost, server.URL+"/browse", strings.NewReader(`{"cmd":"find"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, `{"cmd":"find"}`, received)

	reqLogs := logs.FilterMessage("HTTP request").All()
	require.Len(t, reqLogs, 1)
	assert.Equal(t, "multion", reqLogs[0].ContextMap()["service"])
	assert.Equal(t, map[string]interface{}{"cmd": "find"}, reqLogs[0].ContextMap()["body"])
	assert.NotContains(t, reqLogs[0].ContextMap(), "Authorization")

	respLogs := logs.FilterMessage("HTTP response").All()
	require.Len(t, respLogs, 1)
	assert.EqualValues(t, http.StatusAccepted, respLogs[0].ContextMap()["statusCode"])
}

func TestNewHTTPClient_WithoutLogger(t *testing.T) {
	client := NewHTTPClient("openai", time.Second, nil)

	assert.Nil(t, client.Transport)
	assert.Equal(t, time.Second, client.Timeout)
}

func TestLoggingTransport_RedactsCredentialFields(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		received = string(data)
	}))
	defer server.Close()

	core, logs := observer.New(zap.DebugLevel)
	client := NewHTTPClient("multion", 5*time.Second, logger.NewFromZap(zap.New(core)))

	body := `{"apiKey":"SECRET-KEY-123","nested":{"Token":"t-1"},"items":[{"password":"pw"}],"cmd":"find"}`
	resp, err := client.Post(server.URL+"/login", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, body, received)

	for _, entry := range logs.All() {
		logged := fmt.Sprint(entry.ContextMap())
		assert.NotContains(t, logged, "SECRET-KEY-123")
		assert.NotContains(t, logged, "t-1")
		assert.NotContains(t, logged, "pw]")
	}

	reqLogs := logs.FilterMessage("HTTP request").All()
	require.Len(t, reqLogs, 1)
	logged := reqLogs[0].ContextMap()["body"].(map[string]interface{})
	assert.Equal(t, "[REDACTED]", logged["apiKey"])
	assert.Equal(t, "find", logged["cmd"])
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestLoggingTransport_BodyReadErrorAbortsRequest(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	core, logs := observer.New(zap.DebugLevel)
	client := NewHTTPClient("openai", 5*time.Second, logger.NewFromZap(zap.New(core)))

	req, err := http.NewRequest(http.MethodPost, server.URL, io.NopCloser(failingReader{}))
	require.NoError(t, err)

	_, err = client.Do(req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.Equal(t, 0, hits)
	assert.Len(t, logs.FilterMessage("HTTP request body unreadable").All(), 1)
}
