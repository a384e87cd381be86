package multion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marketplace-assistant/internal/application/port/output"
	"marketplace-assistant/internal/domain/entity"
	"marketplace-assistant/internal/infrastructure/transport"
)

const (
	serviceName  = "multion"
	maxErrorBody = 512
)

var (
	_ output.AutomationPort = (*Client)(nil)
	_ output.BrowseSession  = (*Session)(nil)
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  output.LoggerPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: "https://api.multion.ai/v1",
		// Browsing runs up to maxSteps remote actions, each of which can take
		// several seconds.
		Timeout: 10 * time.Minute,
	}
}

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  output.LoggerPort
}

func NewClient(cfg Config) *Client {
	return &Client{
		http:    transport.NewHTTPClient(serviceName, cfg.Timeout, cfg.Logger),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  cfg.Logger,
	}
}

type loginRequest struct {
	APIKey string `json:"apiKey"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges the API key for a session token. Every failure, including
// transport ones, is reported as *entity.AuthenticationError.
func (c *Client) Login(ctx context.Context) (output.BrowseSession, error) {
	if c.apiKey == "" {
		return nil, &entity.AuthenticationError{Service: serviceName, Err: errors.New("missing API key")}
	}

	status, body, err := c.post(ctx, "/login", "", loginRequest{APIKey: c.apiKey})
	if err != nil {
		return nil, &entity.AuthenticationError{Service: serviceName, Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &entity.AuthenticationError{Service: serviceName, Err: statusError(status, body)}
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &entity.AuthenticationError{Service: serviceName, Err: fmt.Errorf("decode login response: %w", err)}
	}
	if resp.Token == "" {
		return nil, &entity.AuthenticationError{Service: serviceName, Err: errors.New("empty session token")}
	}

	if c.logger != nil {
		c.logger.Info("Automation session established", "service", serviceName)
	}
	return &Session{client: c, token: resp.Token}, nil
}

// Session is read-only after Login and safe for concurrent use.
type Session struct {
	client *Client
	token  string
}

func (s *Session) Browse(ctx context.Context, req entity.BrowseRequest) (*entity.BrowseResponse, error) {
	status, body, err := s.client.post(ctx, "/browse", s.token, req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, statusError(status, body)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	// The body is handed back as is. Fields are filled only when it decodes
	// as an object; otherwise Result stays empty and Raw carries the reply.
	var resp entity.BrowseResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		resp = entity.BrowseResponse{}
		if s.client.logger != nil {
			s.client.logger.Debug("Browse response is not a structured object", "service", serviceName, "error", err)
		}
	}
	resp.Raw = append(json.RawMessage(nil), trimmed...)
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path, token string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &entity.TransportError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &entity.TransportError{Service: serviceName, Err: fmt.Errorf("read response: %w", err)}
	}
	return resp.StatusCode, body, nil
}

func statusError(status int, body []byte) error {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "... (truncated)"
	}
	return &entity.TransportError{Service: serviceName, StatusCode: status, Body: text}
}
