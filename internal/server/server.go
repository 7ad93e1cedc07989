package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/stackmint/chatwidget/internal/config"
	"github.com/stackmint/chatwidget/internal/content"
	"github.com/stackmint/chatwidget/internal/form"
	"github.com/stackmint/chatwidget/internal/session"
)

// Server exposes the widget page and the JSON API the embedded page calls.
// Widget state lives server-side, one conversation per session id.
type Server struct {
	cfg      *config.Config
	sessions *session.Manager
}

func New(cfg *config.Config, sessions *session.Manager) *Server {
	return &Server{cfg: cfg, sessions: sessions}
}

// Mount registers the widget routes. The API is called cross-origin from
// whatever page embeds the widget, hence the permissive CORS policy.
func (s *Server) Mount(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/widget", s.handlePage)
		r.Get("/widget.js", s.handleScript)
		r.Post("/api/messages", s.handleSendMessage)
		r.Post("/api/responses", s.handleCannedResponse)
		r.Post("/api/forms", s.handleFormSubmit)
		r.Get("/api/transcript", s.handleTranscript)
	})
}

type sendMessageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// handleSendMessage submits one user message and replies with the updated
// transcript once the webhook round trip finishes.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session_id")
		return
	}

	widget := s.sessions.Get(req.SessionID)
	if !widget.Submit(req.Text) {
		// Blank input or a send already in flight; either way nothing was queued.
		writeError(w, http.StatusConflict, "message rejected")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()
	if err := widget.WaitIdle(ctx); err != nil {
		log.Printf("server: wait for send: %v", err)
	}

	s.writeTranscript(w, req.SessionID)
}

type cannedResponseRequest struct {
	SessionID string `json:"session_id"`
	ID        string `json:"id"`
	Text      string `json:"text"`
	Value     string `json:"value,omitempty"`
}

// handleCannedResponse records a quick-reply click. The webhook call runs
// after the pacing delay; the page polls the transcript for the reply.
func (s *Server) handleCannedResponse(w http.ResponseWriter, r *http.Request) {
	var req cannedResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SessionID == "" || req.Text == "" {
		writeError(w, http.StatusBadRequest, "missing session_id or text")
		return
	}

	widget := s.sessions.Get(req.SessionID)
	widget.SelectCannedResponse(req.Text, req.Value)

	s.writeTranscript(w, req.SessionID)
}

type formSubmitRequest struct {
	Form   content.FormData `json:"form"`
	Values map[string]any   `json:"values"`
}

type formSubmitResponse struct {
	Submitted bool              `json:"submitted"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// handleFormSubmit validates and forwards one form submission. Field errors
// come back as 422 with the full field → message mapping; a transport
// failure against the submit URL surfaces as a banner error.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	var req formSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	sess := form.NewSession(req.Form)
	for id, v := range req.Values {
		sess.SetValue(id, v)
	}

	err := sess.Submit(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, formSubmitResponse{Submitted: true})
	case errors.Is(err, form.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, formSubmitResponse{Errors: sess.Errors()})
	default:
		log.Printf("server: form submit: %v", err)
		writeJSON(w, http.StatusBadGateway, formSubmitResponse{Errors: sess.Errors()})
	}
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session_id")
		return
	}
	s.writeTranscript(w, sessionID)
}

type transcriptResponse struct {
	Messages []messageView `json:"messages"`
	Sending  bool          `json:"sending"`
}

func (s *Server) writeTranscript(w http.ResponseWriter, sessionID string) {
	widget := s.sessions.Get(sessionID)
	msgs := widget.Messages()

	views := make([]messageView, len(msgs))
	for i, m := range msgs {
		views[i] = viewOf(m)
	}
	writeJSON(w, 0, transcriptResponse{Messages: views, Sending: widget.IsSending()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
