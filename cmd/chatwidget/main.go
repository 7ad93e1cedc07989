package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stackmint/chatwidget/internal/config"
	"github.com/stackmint/chatwidget/internal/conversation"
	"github.com/stackmint/chatwidget/internal/demo"
	"github.com/stackmint/chatwidget/internal/server"
	"github.com/stackmint/chatwidget/internal/session"
	"github.com/stackmint/chatwidget/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client := webhook.NewClient(
		cfg.WebhookURL,
		cfg.SessionID,
		webhook.SessionMode(cfg.SessionMode),
		cfg.CSRFToken,
		cfg.CSRFHeader,
	)

	sessions := session.NewManager(func(string) *conversation.Widget {
		return conversation.New(client, conversation.Options{
			OpenByDefault: cfg.OpenByDefault,
		})
	})

	// Periodic eviction of abandoned widget sessions to prevent memory leaks
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			sessions.Cleanup(1 * time.Hour)
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := server.New(cfg, sessions)
	srv.Mount(r)

	if cfg.Demo {
		demoHandler, err := demo.NewHandler(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("demo: %v", err)
		}
		r.Post("/demo/webhook", demoHandler.HandleWebhook)
		log.Printf("chatwidget: demo webhook mounted at /demo/webhook")
	}

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("chatwidget: listening on :%s", cfg.Port)
		log.Printf("chatwidget: forwarding to webhook %s", cfg.WebhookURL)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("chatwidget: shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("chatwidget: stopped")
}
