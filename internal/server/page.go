package server

import (
	"embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	texttemplate "text/template"
)

//go:embed page.html widget.js
var assets embed.FS

var (
	pageTmpl   = template.Must(template.ParseFS(assets, "page.html"))
	scriptTmpl = texttemplate.Must(texttemplate.ParseFS(assets, "widget.js"))
)

type pageData struct {
	Title string
}

// handlePage serves a minimal host page with the widget mounted, mainly for
// trying the widget without embedding it anywhere.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if err := pageTmpl.Execute(w, pageData{Title: s.cfg.Title}); err != nil {
		log.Printf("server: rendering page: %v", err)
	}
}

type scriptConfig struct {
	Title          string `json:"title"`
	InitialMessage string `json:"initialMessage"`
	AgentName      string `json:"agentName,omitempty"`
	Color          string `json:"color"`
	Placeholder    string `json:"placeholder"`
	OpenByDefault  bool   `json:"openByDefault"`
}

// handleScript serves the embeddable widget script with the server's
// configuration baked in, so embedding is a single <script> tag.
func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	cfg, err := json.Marshal(scriptConfig{
		Title:          s.cfg.Title,
		InitialMessage: s.cfg.InitialMessage,
		AgentName:      s.cfg.AgentName,
		Color:          s.cfg.Color,
		Placeholder:    s.cfg.Placeholder,
		OpenByDefault:  s.cfg.OpenByDefault,
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	if err := scriptTmpl.Execute(w, map[string]any{"Config": string(cfg)}); err != nil {
		log.Printf("server: rendering script: %v", err)
	}
}
