// Package telegram implements a send-only client for the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultAPIURL is the production Bot API endpoint.
const DefaultAPIURL = "https://api.telegram.org"

// maxResponseBytes caps reads from API responses to prevent unbounded buffering.
const maxResponseBytes = 10 << 20

// Client is a thin HTTP wrapper around the Telegram Bot API. Each method
// issues exactly one request; nothing is retried.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Telegram Bot API client. An empty baseURL selects
// the production endpoint.
func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendMessageRequest is the request body for the sendMessage method.
type SendMessageRequest struct {
	ChatID    string    `json:"chat_id"`
	Text      string    `json:"text"`
	ParseMode ParseMode `json:"parse_mode,omitempty"`
}

// SendPhotoRequest describes a sendPhoto call. Photo is a local file path;
// it is uploaded as a multipart form part, not serialized.
type SendPhotoRequest struct {
	ChatID    string
	Photo     string
	Caption   string
	ParseMode ParseMode
}

// GetMe returns the bot's user information. It is the cheapest way to check
// that a token is valid.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	return do[User](ctx, c, "getMe", nil)
}

// SendMessage sends a text message to the specified chat.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	return do[Message](ctx, c, "sendMessage", req)
}

// SendPhoto uploads a photo from the local filesystem to the specified chat.
func (c *Client) SendPhoto(ctx context.Context, req SendPhotoRequest) (*Message, error) {
	f, err := os.Open(req.Photo)
	if err != nil {
		return nil, fmt.Errorf("telegram: open photo: %w", err)
	}
	defer func() { _ = f.Close() }()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	fields := map[string]string{
		"chat_id": req.ChatID,
		"caption": req.Caption,
	}
	if req.ParseMode != ParseModePlain {
		fields["parse_mode"] = string(req.ParseMode)
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("telegram: write form field %s: %w", name, err)
		}
	}

	part, err := form.CreateFormFile("photo", filepath.Base(req.Photo))
	if err != nil {
		return nil, fmt.Errorf("telegram: create photo part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("telegram: read photo %s: %w", req.Photo, err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("telegram: finalize form: %w", err)
	}

	return post[Message](ctx, c, "sendPhoto", &body, form.FormDataContentType())
}

// do sends a JSON POST request to the given Bot API method and decodes the response.
func do[T any](ctx context.Context, c *Client, method string, payload any) (*T, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("telegram: marshal %s request: %w", method, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return post[T](ctx, c, method, body, contentType)
}

// post performs a single request against a Bot API method and interprets the
// APIResponse envelope. Transport failures surface as *NetworkError, API
// rejections as *APIError.
func post[T any](ctx context.Context, c *Client, method string, body io.Reader, contentType string) (*T, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("telegram: create %s request: %w", method, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, Err: err}
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("telegram: read %s response: %w", method, err)
	}

	var apiResp APIResponse[T]
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("telegram: decode %s response: %w", method, err)
	}

	if !apiResp.OK {
		return nil, &APIError{
			Code:        apiResp.ErrorCode,
			Description: apiResp.Description,
		}
	}

	return &apiResp.Result, nil
}
