package content

import "encoding/json"

// Recognized content_type tags. Anything else falls through to the
// plain-text fallback renderer.
const (
	TypeArticle        = "article"
	TypeCard           = "card"
	TypeForm           = "form"
	TypeCannedResponse = "canned_response"
	TypeQuickReply     = "quick_reply"
)

// Interactive is a structured assistant reply. ContentAttributes carries the
// type-specific payload; its shape is only trusted after a typed accessor
// (Articles, Cards, Form, CannedResponses) succeeds.
type Interactive struct {
	Content           string         `json:"content"`
	ContentType       string         `json:"content_type"`
	ContentAttributes map[string]any `json:"content_attributes,omitempty"`
}

type ArticleItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type CardData struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Cards       []CardItem `json:"cards"`
}

type CardItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageAlt    string `json:"imageAlt,omitempty"`
	Link        string `json:"link,omitempty"`
	LinkText    string `json:"linkText,omitempty"`
	Badge       string `json:"badge,omitempty"`
	Price       string `json:"price,omitempty"`
}

type FormData struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Fields      []FormField `json:"fields"`
	SubmitLabel string      `json:"submitLabel,omitempty"`
	SubmitURL   string      `json:"submitUrl,omitempty"`
}

// FormField types: text, email, tel, textarea, select, checkbox, radio.
type FormField struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Label       string          `json:"label"`
	Placeholder string          `json:"placeholder,omitempty"`
	Required    bool            `json:"required,omitempty"`
	Options     []FieldOption   `json:"options,omitempty"`
	Validation  *FieldValidator `json:"validation,omitempty"`
}

type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FieldValidator struct {
	Pattern string `json:"pattern,omitempty"`
	Message string `json:"message,omitempty"`
}

type CannedResponseData struct {
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Responses   []CannedResponseItem `json:"responses"`
}

type CannedResponseItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// Value is what gets sent to the webhook; defaults to Text when empty.
	Value string `json:"value,omitempty"`
}

// decodeAttr extracts one key from the opaque attributes map into a typed
// struct via a JSON round trip. Malformed or absent attributes report
// !ok rather than an error: callers degrade to rendering nothing.
func decodeAttr[T any](attrs map[string]any, key string) (T, bool) {
	var out T
	if attrs == nil {
		return out, false
	}
	raw, present := attrs[key]
	if !present || raw == nil {
		return out, false
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}

// Articles returns the article items for an article payload.
func (ic Interactive) Articles() ([]ArticleItem, bool) {
	return decodeAttr[[]ArticleItem](ic.ContentAttributes, "items")
}

// Cards returns the card group for a card payload.
func (ic Interactive) Cards() (CardData, bool) {
	return decodeAttr[CardData](ic.ContentAttributes, "cards")
}

// Form returns the form definition for a form payload.
func (ic Interactive) Form() (FormData, bool) {
	return decodeAttr[FormData](ic.ContentAttributes, "form")
}

// CannedResponses returns the quick-reply options for a canned-response payload.
func (ic Interactive) CannedResponses() (CannedResponseData, bool) {
	return decodeAttr[CannedResponseData](ic.ContentAttributes, "responses")
}
