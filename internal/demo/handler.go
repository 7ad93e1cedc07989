// Package demo ships a mountable webhook endpoint that answers with every
// interactive payload shape the widget understands, so the server can run
// end-to-end without an external backend.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

type Handler struct {
	// nil unless a Gemini API key was configured; the mock echo covers the rest.
	genai *genai.Client
}

func NewHandler(ctx context.Context, geminiAPIKey string) (*Handler, error) {
	h := &Handler{}
	if geminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  geminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		h.genai = client
	}
	return h, nil
}

type webhookRequest struct {
	Prompt    string  `json:"prompt"`
	SessionID *string `json:"session_id"`
}

// HandleWebhook answers the widget's wire contract: a keyword in the prompt
// selects one of the interactive payloads, anything else gets a text reply.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	prompt := strings.ToLower(req.Prompt)
	var reply map[string]any
	switch {
	case strings.Contains(prompt, "article"):
		reply = articlesReply()
	case strings.Contains(prompt, "card"), strings.Contains(prompt, "product"):
		reply = cardsReply()
	case strings.Contains(prompt, "form"), strings.Contains(prompt, "contact"):
		reply = formReply()
	case strings.Contains(prompt, "option"), strings.Contains(prompt, "help"), strings.Contains(prompt, "menu"):
		reply = cannedReply()
	default:
		reply = map[string]any{"output": h.textReply(r.Context(), req.Prompt)}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply)
}

func (h *Handler) textReply(ctx context.Context, prompt string) string {
	if h.genai == nil {
		return fmt.Sprintf("You said: %q. Try asking for articles, cards, a form, or options.", prompt)
	}

	resp, err := h.genai.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), nil)
	if err != nil {
		log.Printf("demo: gemini generate failed: %v", err)
		return "Sorry, the demo model is unavailable right now."
	}
	return resp.Text()
}

func articlesReply() map[string]any {
	return map[string]any{
		"content":      "Here are some articles that might help:",
		"content_type": "article",
		"content_attributes": map[string]any{
			"items": []map[string]any{
				{
					"title":       "Getting started",
					"description": "Set up the widget on your site in five minutes.",
					"link":        "https://example.com/docs/getting-started",
				},
				{
					"title":       "Webhook contract",
					"description": "The request and response shapes your endpoint must speak.",
					"link":        "https://example.com/docs/webhook",
				},
			},
		},
	}
}

func cardsReply() map[string]any {
	return map[string]any{
		"content":      "Our picks for you:",
		"content_type": "card",
		"content_attributes": map[string]any{
			"cards": map[string]any{
				"title": "Featured products",
				"cards": []map[string]any{
					{
						"title":       "Starter plan",
						"description": "Everything you need to launch.",
						"image":       "https://example.com/img/starter.png",
						"badge":       "Popular",
						"price":       "$9/mo",
						"link":        "https://example.com/plans/starter",
						"linkText":    "Choose plan",
					},
					{
						"title":       "Pro plan",
						"description": "For teams that need more.",
						"image":       "https://example.com/img/pro.png",
						"price":       "$29/mo",
						"link":        "https://example.com/plans/pro",
						"linkText":    "Choose plan",
					},
				},
			},
		},
	}
}

func formReply() map[string]any {
	return map[string]any{
		"content":      "Leave your details and we'll get back to you.",
		"content_type": "form",
		"content_attributes": map[string]any{
			"form": map[string]any{
				"title":       "Contact us",
				"submitLabel": "Send",
				"fields": []map[string]any{
					{"id": "name", "type": "text", "label": "Name", "required": true},
					{
						"id": "email", "type": "email", "label": "Email", "required": true,
						"validation": map[string]any{
							"pattern": `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
							"message": "Please enter a valid email address",
						},
					},
					{"id": "message", "type": "textarea", "label": "Message", "required": true},
				},
			},
		},
	}
}

func cannedReply() map[string]any {
	return map[string]any{
		"content":      "How can I help you today?",
		"content_type": "canned_response",
		"content_attributes": map[string]any{
			"responses": map[string]any{
				"responses": []map[string]any{
					{"id": "billing", "text": "I need help with billing", "value": "billing_help"},
					{"id": "tech", "text": "Technical support", "value": "tech_support"},
					{"id": "general", "text": "General question", "value": "general_question"},
				},
			},
		},
	}
}
