package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	shwary "github.com/shwary/shwary-go"
)

const maxWebhookBody = 1 << 20

type server struct {
	webhooks *shwary.WebhookHandler
	logger   *zap.Logger
}

func (s *server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		s.writeAck(w, http.StatusBadRequest, s.webhooks.CreateResponse(false, "Unable to read request body"))
		return
	}

	txn, err := s.webhooks.ParsePayload(body)
	if err != nil {
		s.logger.Warn("webhook rejected", zap.Error(err))
		s.writeAck(w, http.StatusBadRequest, s.webhooks.CreateResponse(false, err.Error()))
		return
	}

	s.logger.Info("webhook received",
		zap.String("transaction_id", txn.ID),
		zap.String("status", txn.Status.String()),
		zap.Bool("terminal", s.webhooks.IsTerminalStatus(txn)),
	)

	s.writeAck(w, http.StatusOK, s.webhooks.CreateResponse(true, ""))
}

func (s *server) writeAck(w http.ResponseWriter, status int, ack shwary.WebhookResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ack); err != nil {
		s.logger.Error("failed to write acknowledgment", zap.Error(err))
	}
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	s := &server{
		webhooks: shwary.NewWebhookHandler(),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/webhooks/shwary", s.handleWebhook)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("webhook server listening", zap.String("addr", addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
