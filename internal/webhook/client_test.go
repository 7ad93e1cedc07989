package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyInteractiveWinsOverText(t *testing.T) {
	p := &Payload{
		Content:     "x",
		ContentType: "card",
		Output:      "ignored",
	}

	ic, ok := p.Interactive()
	require.True(t, ok)
	assert.Equal(t, "card", ic.ContentType)
	assert.Equal(t, "x", ic.Content)
	assert.NotNil(t, ic.ContentAttributes)
}

func TestClassifyNeedsBothContentAndType(t *testing.T) {
	_, ok := (&Payload{ContentType: "card"}).Interactive()
	assert.False(t, ok)

	_, ok = (&Payload{Content: "x"}).Interactive()
	assert.False(t, ok)
}

func TestTextFallbackOrder(t *testing.T) {
	assert.Equal(t, DefaultReply, (&Payload{}).Text())
	assert.Equal(t, "m", (&Payload{Message: "m"}).Text())
	assert.Equal(t, "o", (&Payload{Output: "o", Message: "m"}).Text())
}

func TestSendRequestShape(t *testing.T) {
	var gotBody map[string]any
	var gotCSRF string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotCSRF = r.Header.Get("X-CSRFToken")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"output": "hi"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", SessionNull, "tok123", "")
	payload, err := c.Send(context.Background(), "Hello AI")
	require.NoError(t, err)
	assert.Equal(t, "hi", payload.Output)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "tok123", gotCSRF)
	assert.Equal(t, "Hello AI", gotBody["prompt"])

	// session_id must be present and null in null mode
	v, present := gotBody["session_id"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestSendPlaceholderSession(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"output": "hi"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", SessionPlaceholder, "", "")
	_, err := c.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "sample_session", gotBody["session_id"])
}

func TestSendConfiguredSessionID(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"output": "hi"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sess-42", SessionNull, "", "")
	_, err := c.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "sess-42", gotBody["session_id"])
}

func TestSendOmitsCSRFHeaderWithoutToken(t *testing.T) {
	var gotHeader []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Values("X-CSRFToken")
		json.NewEncoder(w).Encode(map[string]string{"output": "hi"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", SessionNull, "", "")
	_, err := c.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Empty(t, gotHeader)
}

func TestSendCustomCSRFHeaderName(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-CSRF-Token")
		json.NewEncoder(w).Encode(map[string]string{"output": "hi"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", SessionNull, "tok", "X-CSRF-Token")
	_, err := c.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}

func TestSendNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", SessionNull, "", "")
	_, err := c.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSendMalformedJSONIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", SessionNull, "", "")
	_, err := c.Send(context.Background(), "hello")
	require.Error(t, err)
}
