package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zenochat/zenochat/internal/gateway"
)

// Client is the HTTP counterpart of the gateway for remote frontends: it
// speaks the /api/chat wire format and turns error envelopes back into
// classified *gateway.Error values.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

func (c *Client) Handle(ctx context.Context, message, sessionID string) (*gateway.Reply, error) {
	body, err := json.Marshal(ChatRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	return &gateway.Reply{Text: chatResp.Response, SessionID: chatResp.SessionID}, nil
}

// Clear calls the server-side clear acknowledgment endpoint.
func (c *Client) Clear(ctx context.Context, sessionID string) (*gateway.Ack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/chat/"+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build clear request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clear request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var clearResp ClearResponse
	if err := json.NewDecoder(resp.Body).Decode(&clearResp); err != nil {
		return nil, fmt.Errorf("failed to decode clear response: %w", err)
	}
	return &gateway.Ack{Message: clearResp.Message, SessionID: clearResp.SessionID}, nil
}

func decodeError(resp *http.Response) error {
	var envelope ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	code := gateway.CodeUpstreamError
	switch resp.StatusCode {
	case http.StatusBadRequest:
		code = gateway.CodeInvalidRequest
	case http.StatusTooManyRequests:
		code = gateway.CodeRateLimited
	case http.StatusUnauthorized:
		code = gateway.CodeUnauthorized
	}

	return &gateway.Error{Code: code, Message: envelope.Error, Details: envelope.Details}
}
