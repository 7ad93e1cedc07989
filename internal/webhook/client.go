package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stackmint/chatwidget/internal/content"
)

// Fixed session_id sent in placeholder mode for backends that key storage
// on session_id and reject null.
const placeholderSession = "sample_session"

// DefaultCSRFHeader is used when no header name is configured.
const DefaultCSRFHeader = "X-CSRFToken"

// SessionMode controls the session_id wire value when no session id is configured.
type SessionMode string

const (
	SessionNull        SessionMode = "null"
	SessionPlaceholder SessionMode = "placeholder"
)

// Client issues one POST per outgoing user message against the
// caller-supplied webhook endpoint.
type Client struct {
	url         string
	sessionID   string
	sessionMode SessionMode
	csrfToken   string
	csrfHeader  string
	http        *http.Client
}

func NewClient(url, sessionID string, mode SessionMode, csrfToken, csrfHeader string) *Client {
	if csrfHeader == "" {
		csrfHeader = DefaultCSRFHeader
	}
	return &Client{
		url:         url,
		sessionID:   sessionID,
		sessionMode: mode,
		csrfToken:   csrfToken,
		csrfHeader:  csrfHeader,
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

type sendRequest struct {
	Prompt    string  `json:"prompt"`
	SessionID *string `json:"session_id"`
}

// Payload is the webhook's JSON reply. Plain-text replies carry output
// (or message); interactive replies carry content + content_type.
type Payload struct {
	Content           string         `json:"content,omitempty"`
	ContentType       string         `json:"content_type,omitempty"`
	ContentAttributes map[string]any `json:"content_attributes,omitempty"`
	Output            string         `json:"output,omitempty"`
	Message           string         `json:"message,omitempty"`
}

// DefaultReply is shown when a 2xx payload carries no usable text.
const DefaultReply = "Sorry, I couldn't process that."

// Interactive reports whether the payload is an interactive reply and
// returns its content model when it is. Both content_type and content must
// be present; content_attributes defaults to an empty map.
func (p *Payload) Interactive() (content.Interactive, bool) {
	if p.ContentType == "" || p.Content == "" {
		return content.Interactive{}, false
	}
	attrs := p.ContentAttributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	return content.Interactive{
		Content:           p.Content,
		ContentType:       p.ContentType,
		ContentAttributes: attrs,
	}, true
}

// Text resolves the plain-text reply: output, then message, then the fixed
// default. Only meaningful when Interactive reports false.
func (p *Payload) Text() string {
	if p.Output != "" {
		return p.Output
	}
	if p.Message != "" {
		return p.Message
	}
	return DefaultReply
}

// Send posts one prompt and decodes the reply. A non-2xx status or a body
// that is not valid JSON is an error; the caller treats both the same way.
func (c *Client) Send(ctx context.Context, prompt string) (*Payload, error) {
	body := sendRequest{Prompt: prompt}
	switch {
	case c.sessionID != "":
		body.SessionID = &c.sessionID
	case c.sessionMode == SessionPlaceholder:
		s := placeholderSession
		body.SessionID = &s
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling webhook request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.csrfToken != "" {
		req.Header.Set(c.csrfHeader, c.csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("webhook status %d", resp.StatusCode)
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding webhook response: %w", err)
	}
	return &payload, nil
}
