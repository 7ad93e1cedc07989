package demo

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callWebhook(t *testing.T, prompt string) map[string]any {
	t.Helper()
	h, err := NewHandler(context.Background(), "")
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]any{"prompt": prompt, "session_id": nil})
	req := httptest.NewRequest("POST", "/demo/webhook", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)

	require.Equal(t, 200, rec.Code)
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestKeywordDispatch(t *testing.T) {
	cases := map[string]string{
		"show me some articles": "article",
		"any product cards?":    "card",
		"I want a contact form": "form",
		"what are my options":   "canned_response",
		"give me the help menu": "canned_response",
	}
	for prompt, wantType := range cases {
		out := callWebhook(t, prompt)
		assert.Equal(t, wantType, out["content_type"], "prompt %q", prompt)
		assert.NotEmpty(t, out["content"], "prompt %q", prompt)
		assert.NotNil(t, out["content_attributes"], "prompt %q", prompt)
	}
}

func TestTextEchoWithoutModel(t *testing.T) {
	out := callWebhook(t, "just chatting")
	assert.NotContains(t, out, "content_type")
	assert.Contains(t, out["output"], "just chatting")
}

func TestInvalidJSONRejected(t *testing.T) {
	h, err := NewHandler(context.Background(), "")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/demo/webhook", bytes.NewReader([]byte("nope")))
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)
	assert.Equal(t, 400, rec.Code)
}
