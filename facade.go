package shwary

import (
	"context"
	"errors"
	"sync"
)

// The facade keeps one process-wide client for applications that do not want
// to thread a Client through their call graph. The core components never
// touch this state; it is sugar layered on top of explicit clients.

var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// ErrNotInitialized is returned by facade operations before Init is called.
var ErrNotInitialized = errors.New("shwary: default client not initialized, call Init first")

// Init registers cfg as the process-wide default client.
func Init(cfg *Config, opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = NewClient(cfg, opts...)
}

// InitFromEnv registers a default client configured from SHWARY_*
// environment variables.
func InitFromEnv(opts ...Option) error {
	client, err := NewClientFromEnv(opts...)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = client
	return nil
}

// Reset forgets the default client.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = nil
}

// Default returns the registered default client.
func Default() (*Client, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultClient == nil {
		return nil, ErrNotInitialized
	}
	return defaultClient, nil
}

// PayDRC submits a DRC payment through the default client.
func PayDRC(ctx context.Context, amount int64, phone, callbackURL string) (*Transaction, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}
	return client.PayDRC(ctx, amount, phone, callbackURL)
}

// PayKenya submits a Kenya payment through the default client.
func PayKenya(ctx context.Context, amount int64, phone, callbackURL string) (*Transaction, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}
	return client.PayKenya(ctx, amount, phone, callbackURL)
}

// PayUganda submits a Uganda payment through the default client.
func PayUganda(ctx context.Context, amount int64, phone, callbackURL string) (*Transaction, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}
	return client.PayUganda(ctx, amount, phone, callbackURL)
}

// ParseWebhook decodes a webhook payload through the default client.
func ParseWebhook(raw []byte) (*Transaction, error) {
	client, err := Default()
	if err != nil {
		return nil, err
	}
	return client.Webhook().ParsePayload(raw)
}
