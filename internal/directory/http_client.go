package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient implementa Client contra la API REST del directorio de chat.
type HTTPClient struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// NewHTTPClient construye un cliente apuntando al endpoint de usuarios del directorio.
func NewHTTPClient(baseURL, apiKey, apiSecret string) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("directory base url is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("directory api key is required")
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type upsertRequest struct {
	Users []Identity `json:"users"`
}

func (c *HTTPClient) Upsert(ctx context.Context, identity Identity) error {
	if strings.TrimSpace(identity.ID) == "" {
		return fmt.Errorf("%w: identity id is required", ErrSync)
	}

	bodyBytes, err := json.Marshal(upsertRequest{Users: []Identity{identity}})
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrSync, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users", bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrSync, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	if c.apiSecret != "" {
		req.Header.Set("X-Api-Secret", c.apiSecret)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSync, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status=%d body=%s", ErrSync, resp.StatusCode, string(respBody))
	}
	return nil
}
