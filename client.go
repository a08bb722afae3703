// Package shwary is a Go client for the Shwary mobile-money payment gateway
// serving DRC, Kenya and Uganda. It validates payment requests before any
// network call, normalizes gateway responses and webhooks into a canonical
// Transaction model, and maps transport and HTTP failures onto a typed error
// taxonomy.
package shwary

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	paymentsEndpoint        = "/payments"
	sandboxPaymentsEndpoint = "/sandbox/payments"

	defaultPollInterval = 5 * time.Second
	defaultWaitTimeout  = 5 * time.Minute
)

// Client is the entry point for merchants: it validates payment requests,
// calls the gateway and normalizes responses into Transactions. All state is
// immutable after construction, so a single Client is safe for concurrent
// use.
type Client struct {
	config *Config
	http   *HTTPClient
	logger *zap.Logger

	transport *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient supplies a custom *http.Client for gateway calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.transport = hc
	}
}

// WithLogger attaches a structured logger. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a payment client for the given configuration.
func NewClient(cfg *Config, opts ...Option) *Client {
	c := &Client{
		config: cfg,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.http = NewHTTPClient(cfg, c.transport, c.logger)
	return c
}

// NewClientFromEnv builds a client configured from SHWARY_* environment
// variables.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg, opts...), nil
}

// Config returns the client configuration.
func (c *Client) Config() *Config { return c.config }

// IsSandbox reports whether the client routes payments to the sandbox
// environment.
func (c *Client) IsSandbox() bool { return c.config.Sandbox }

// Webhook returns a handler for inbound gateway notifications.
func (c *Client) Webhook() *WebhookHandler { return NewWebhookHandler() }

// CreatePayment submits a validated payment request. The sandbox endpoint is
// used when the client is configured for sandbox mode.
func (c *Client) CreatePayment(ctx context.Context, req *PaymentRequest) (*Transaction, error) {
	endpoint := paymentsEndpoint
	if c.config.Sandbox {
		endpoint = sandboxPaymentsEndpoint
	}
	return c.createPayment(ctx, endpoint, req)
}

// CreateSandboxPayment submits a payment to the sandbox environment
// regardless of the client's sandbox setting.
func (c *Client) CreateSandboxPayment(ctx context.Context, req *PaymentRequest) (*Transaction, error) {
	return c.createPayment(ctx, sandboxPaymentsEndpoint, req)
}

func (c *Client) createPayment(ctx context.Context, endpoint string, req *PaymentRequest) (*Transaction, error) {
	c.logger.Info("creating payment",
		zap.Int64("amount", req.Amount()),
		zap.String("country", req.Country().String()),
		zap.String("endpoint", endpoint),
	)

	result, err := c.http.Post(ctx, endpoint, req.Payload())
	if err != nil {
		return nil, err
	}

	txn, err := ParseTransaction(result)
	if err != nil {
		return nil, err
	}

	c.logger.Info("payment created",
		zap.String("transaction_id", txn.ID),
		zap.String("status", txn.Status.String()),
	)
	return txn, nil
}

// Pay validates and submits a payment in one step. callbackURL may be empty.
func (c *Client) Pay(ctx context.Context, amount int64, phone string, country Country, callbackURL string) (*Transaction, error) {
	req, err := NewPaymentRequest(amount, phone, country, callbackURL)
	if err != nil {
		return nil, err
	}
	return c.CreatePayment(ctx, req)
}

// PayDRC submits a payment in the Democratic Republic of the Congo.
func (c *Client) PayDRC(ctx context.Context, amount int64, phone, callbackURL string) (*Transaction, error) {
	return c.Pay(ctx, amount, phone, CountryDRC, callbackURL)
}

// PayKenya submits a payment in Kenya.
func (c *Client) PayKenya(ctx context.Context, amount int64, phone, callbackURL string) (*Transaction, error) {
	return c.Pay(ctx, amount, phone, CountryKenya, callbackURL)
}

// PayUganda submits a payment in Uganda.
func (c *Client) PayUganda(ctx context.Context, amount int64, phone, callbackURL string) (*Transaction, error) {
	return c.Pay(ctx, amount, phone, CountryUganda, callbackURL)
}

// FindTransaction fetches the current state of a transaction by id.
func (c *Client) FindTransaction(ctx context.Context, id string) (*Transaction, error) {
	if err := requireField("id", id); err != nil {
		return nil, err
	}

	result, err := c.http.Get(ctx, fmt.Sprintf("/transactions/%s", id), nil)
	if err != nil {
		return nil, err
	}
	return ParseTransaction(result)
}

// WaitOption customizes WaitForTransaction.
type WaitOption func(*waiter)

type waiter struct {
	interval time.Duration
	timeout  time.Duration
}

// WithPollInterval adjusts the delay between status checks.
func WithPollInterval(d time.Duration) WaitOption {
	return func(w *waiter) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithWaitTimeout overrides the total polling timeout.
func WithWaitTimeout(d time.Duration) WaitOption {
	return func(w *waiter) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WaitForTransaction polls the gateway until the transaction reaches a
// terminal status or the timeout elapses. The last observed transaction is
// returned alongside the context error when the wait gives up.
func (c *Client) WaitForTransaction(ctx context.Context, id string, opts ...WaitOption) (*Transaction, error) {
	w := &waiter{
		interval: defaultPollInterval,
		timeout:  defaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(w)
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var last *Transaction
	for {
		txn, err := c.FindTransaction(ctx, id)
		if err != nil {
			return last, err
		}
		if txn.IsTerminal() {
			c.logger.Info("transaction reached terminal status",
				zap.String("transaction_id", txn.ID),
				zap.String("status", txn.Status.String()),
			)
			return txn, nil
		}
		last = txn

		c.logger.Debug("transaction still pending",
			zap.String("transaction_id", id),
			zap.Duration("next_check", w.interval),
		)

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}
	}
}
