package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/playto-dev/playto/shared/api"
	internal_errors "github.com/playto-dev/playto/shared/errors"
	mw "github.com/playto-dev/playto/shared/middleware"
	"github.com/playto-dev/playto/shared/utils"
)

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

func New(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HttpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// do is the single helper for making API requests. An empty token sends the
// request anonymously.
func (c *APIClient) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(mw.RequestIdHeader, uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// doJSON sends the request and decodes a 2xx body into out.
func (c *APIClient) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	resp, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}
	if out != nil {
		if err := utils.Decode(resp.Body, out); err != nil {
			return fmt.Errorf("cannot decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// errorFromResponse turns {"error": "..."} back into the typed error the
// backend started from.
func errorFromResponse(resp *http.Response) error {
	msg := http.StatusText(resp.StatusCode)
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body api.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		msg = text
	}
	return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
}
