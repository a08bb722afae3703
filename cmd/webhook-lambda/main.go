package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	shwary "github.com/shwary/shwary-go"
)

const forwardTimeout = 15 * time.Second

// forwarder relays parsed transactions to a downstream HTTPS endpoint.
type forwarder struct {
	url        string
	secret     string
	httpClient *http.Client
}

func newForwarder(url, secret string) (*forwarder, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("downstream URL is required")
	}
	return &forwarder{
		url:        url,
		secret:     secret,
		httpClient: &http.Client{Timeout: forwardTimeout},
	}, nil
}

func (f *forwarder) Send(ctx context.Context, txn *shwary.Transaction) error {
	body := &bytes.Buffer{}
	if err := json.NewEncoder(body).Encode(txn); err != nil {
		return fmt.Errorf("encode downstream payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, body)
	if err != nil {
		return fmt.Errorf("build downstream request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if f.secret != "" {
		req.Header.Set("X-Callback-Secret", f.secret)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send downstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("downstream endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}

type receiver struct {
	webhooks *shwary.WebhookHandler
	forward  *forwarder
	logger   *zap.Logger
}

func (r *receiver) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	txn, err := r.webhooks.ParsePayload([]byte(event.Body))
	if err != nil {
		r.logger.Warn("webhook rejected", zap.Error(err))
		return r.respond(http.StatusBadRequest, r.webhooks.CreateResponse(false, err.Error()))
	}

	r.logger.Info("webhook received",
		zap.String("transaction_id", txn.ID),
		zap.String("status", txn.Status.String()),
		zap.Bool("terminal", r.webhooks.IsTerminalStatus(txn)),
	)

	if r.forward != nil {
		if err := r.forward.Send(ctx, txn); err != nil {
			r.logger.Error("downstream delivery failed", zap.Error(err))
		}
	}

	return r.respond(http.StatusOK, r.webhooks.CreateResponse(true, ""))
}

func (r *receiver) respond(status int, ack shwary.WebhookResponse) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(ack)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var forward *forwarder
	if url := strings.TrimSpace(os.Getenv("DOWNSTREAM_URL")); url != "" {
		forward, err = newForwarder(url, os.Getenv("DOWNSTREAM_SECRET"))
		if err != nil {
			logger.Fatal("failed to configure downstream forwarder", zap.Error(err))
		}
	}

	r := &receiver{
		webhooks: shwary.NewWebhookHandler(),
		forward:  forward,
		logger:   logger,
	}

	lambda.Start(r.Handle)
}
