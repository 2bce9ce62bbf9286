// Package gateway is the single point of contact with the remote QA
// backend: it composes URLs, attaches bearer authorization, interprets
// HTTP outcomes, and normalizes failures into a small error taxonomy.
// It never mutates session state; callers own state transitions.
package gateway

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

	"taxchat/internal/utils"
)

// DefaultTimeout is generous on purpose: model inference behind the
// /ask endpoint routinely takes tens of seconds.
const DefaultTimeout = 45 * time.Second

const jsonContentType = "application/json"

var (
	// ErrNotConfigured indicates no backend base URL is set. No network
	// I/O happens in that case.
	ErrNotConfigured = errors.New("backend URL not configured")

	// ErrTransport wraps network-level failures (DNS, refused
	// connection, timeout). Use errors.Is to detect.
	ErrTransport = errors.New("backend unreachable")
)

// APIError is a non-2xx response from the backend. Detail carries the
// backend's human-readable "detail" field when the error body is JSON,
// or a generic message otherwise.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

type errorBody struct {
	Detail string `json:"detail"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *utils.Logger
}

func NewClient(baseURL string, logger *utils.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}
	c.SetBaseURL(baseURL)
	return c
}

func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimSuffix(strings.TrimSpace(url), "/")
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) ClearToken() { c.token = "" }

func (c *Client) Authenticated() bool { return c.token != "" }

// Call issues one request against the configured backend and returns
// the raw JSON body on any 2xx status. body is marshaled as JSON when
// non-nil. There are no retries; the caller treats any error as "abort
// this action, leave state unchanged".
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	url := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", jsonContentType)
	if body != nil {
		req.Header.Set("Content-Type", jsonContentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debugf("gateway: %s %s", method, endpoint)
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("gateway: %s %s failed: %v", method, endpoint, err)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.logger.Warnf("gateway: %s %s returned %d", method, endpoint, res.StatusCode)
		return nil, apiError(res.StatusCode, raw)
	}
	return raw, nil
}

func apiError(status int, body []byte) error {
	detail := fmt.Sprintf("request failed with status %d", status)
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		detail = parsed.Detail
	}
	return &APIError{Status: status, Detail: detail}
}

// Login exchanges credentials for an access token. The caller decides
// whether to adopt the token; the client does not store it implicitly.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	raw, err := c.Call(ctx, http.MethodPost, "/login", Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var tok TokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &tok, nil
}

// Register creates an account. It does not authenticate; the backend's
// confirmation body is discarded.
func (c *Client) Register(ctx context.Context, email, password string) error {
	_, err := c.Call(ctx, http.MethodPost, "/register", Credentials{Email: email, Password: password})
	return err
}

func (c *Client) ListConversations(ctx context.Context) ([]ConversationSummary, error) {
	raw, err := c.Call(ctx, http.MethodGet, "/conversations", nil)
	if err != nil {
		return nil, err
	}
	var list []ConversationSummary
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode conversation list: %w", err)
	}
	return list, nil
}

func (c *Client) GetConversation(ctx context.Context, id string) ([]MessageRecord, error) {
	raw, err := c.Call(ctx, http.MethodGet, "/conversations/"+id, nil)
	if err != nil {
		return nil, err
	}
	var msgs []MessageRecord
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, fmt.Errorf("decode conversation transcript: %w", err)
	}
	return msgs, nil
}

func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	_, err := c.Call(ctx, http.MethodDelete, "/conversations/"+id, nil)
	return err
}

// Ask submits a question. conversationID is nil for a new, unsaved
// conversation.
func (c *Client) Ask(ctx context.Context, question string, conversationID *string) (*AskResponse, error) {
	raw, err := c.Call(ctx, http.MethodPost, "/ask", AskRequest{Question: question, ConversationID: conversationID})
	if err != nil {
		return nil, err
	}
	var resp AskResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}
	return &resp, nil
}

// SendFeedback rates a message +1 or -1. Fire-and-forget from the
// transcript's perspective.
func (c *Client) SendFeedback(ctx context.Context, messageID string, rating int) error {
	_, err := c.Call(ctx, http.MethodPost, "/feedback", FeedbackRequest{MessageID: messageID, Rating: rating})
	return err
}

// Notice renders a gateway error as a short user-facing line.
func Notice(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "No backend configured. Set one with /backend <url>."
	case errors.As(err, &apiErr):
		return apiErr.Detail
	case errors.Is(err, ErrTransport):
		return err.Error()
	default:
		return err.Error()
	}
}
