package vapi

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/vapi-transcripts/internal/core/model"
	"github.com/penwyp/vapi-transcripts/internal/util"
)

// DefaultBaseURL is the production VAPI API endpoint.
const DefaultBaseURL = "https://api.vapi.ai"

const requestTimeout = 30 * time.Second

// Client is a thin typed wrapper over the VAPI REST API. It performs no
// retries and no pagination; one call history is fetched in one request.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the production API.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against an alternate endpoint, used
// by tests and the base_url config override.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("VAPI API error (%d) at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// ListCalls fetches every call recorded for an assistant.
func (c *Client) ListCalls(assistantID string) ([]model.CallRecord, error) {
	endpoint := "/calls?assistantId=" + url.QueryEscape(assistantID)
	body, err := c.get(endpoint)
	if err != nil {
		return nil, err
	}
	records, err := decodeList[model.CallRecord](body)
	if err != nil {
		return nil, fmt.Errorf("decode call list: %w", err)
	}
	util.LogDebugf("Fetched %d call records for assistant %s", len(records), assistantID)
	return records, nil
}

// ListAssistants fetches every assistant configured for the account.
func (c *Client) ListAssistants() ([]model.Assistant, error) {
	body, err := c.get("/assistants")
	if err != nil {
		return nil, err
	}
	assistants, err := decodeList[model.Assistant](body)
	if err != nil {
		return nil, fmt.Errorf("decode assistant list: %w", err)
	}
	util.LogDebugf("Fetched %d assistants", len(assistants))
	return assistants, nil
}

// get performs an authenticated GET and returns the raw body, translating
// non-2xx answers into an *APIError.
func (c *Client) get(endpoint string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	util.LogDebugf("GET %s%s", c.baseURL, endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newAPIError(resp.StatusCode, endpoint, body)
	}
	return body, nil
}

// newAPIError extracts the error message the API embeds in JSON bodies,
// falling back to the standard status text.
func newAPIError(status int, endpoint string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Endpoint: endpoint}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if sonic.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else if payload.Error != "" {
			apiErr.Message = payload.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// decodeList accepts both response framings the API produces: a bare JSON
// array and a data envelope.
func decodeList[T any](body []byte) ([]T, error) {
	var direct []T
	if err := sonic.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var envelope struct {
		Data []T `json:"data"`
	}
	if err := sonic.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	return nil, fmt.Errorf("response is neither an array nor a data envelope")
}
