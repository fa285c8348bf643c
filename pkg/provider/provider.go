// Package provider talks to the DocuPass API of the identity-verification provider.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	jsoniter "github.com/json-iterator/go"
)

const (
	SessionVersion = 3
	SessionMode    = 0

	maxErrorBody = 64 << 10
)

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider responded %v: %v", e.StatusCode, e.Body)
}

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    httpClient,
	}
}

type createSessionBody struct {
	Version    int    `json:"version"`
	Mode       int    `json:"mode"`
	Profile    string `json:"profile,omitempty"`
	CustomData string `json:"customData"`
}

// CreateSession creates a DocuPass session whose customData is userID, so that it comes back in the decision webhook.
func (c *Client) CreateSession(ctx context.Context, profile string, userID string) (*model.SessionResponse, error) {
	b, err := jsoniter.Marshal(createSessionBody{
		Version:    SessionVersion,
		Mode:       SessionMode,
		Profile:    profile,
		CustomData: userID,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/docupass", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-KEY", c.APIKey)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	var session model.SessionResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}
