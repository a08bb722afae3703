package shwary

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HTTPClient is the gateway adapter: it signs every request with the
// merchant headers, targets the versioned API root and maps transport and
// HTTP failures onto the SDK error taxonomy.
type HTTPClient struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPClient wraps an *http.Client for gateway calls. A nil httpClient
// gets a default with the configured timeout; a nil logger disables logging.
func NewHTTPClient(cfg *Config, httpClient *http.Client, logger *zap.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Post sends a JSON body to the given API path and decodes the response.
func (c *HTTPClient) Post(ctx context.Context, path string, payload map[string]any) (map[string]any, error) {
	return c.do(ctx, http.MethodPost, path, nil, payload)
}

// Get fetches the given API path, with optional query parameters.
func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, payload map[string]any) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, networkError("encode request body", err)
		}
		body = buf
	}

	target := c.config.APIURL() + normalizePath(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, networkError("build request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Merchant-Id", c.config.MerchantID)
	req.Header.Set("X-Merchant-Key", c.config.MerchantKey)
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("gateway request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("gateway transport failure",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, networkError(err.Error(), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError("read response body", err)
	}

	c.logger.Debug("gateway response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeBody(data), nil
	}

	return nil, errorFromResponse(resp.StatusCode, decodeBody(data))
}

// decodeBody decodes a JSON object body. Empty and non-JSON bodies are
// legitimate for content-less responses and yield an empty map.
func decodeBody(data []byte) map[string]any {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return map[string]any{}
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return map[string]any{}
	}
	return decoded
}

func normalizePath(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}
