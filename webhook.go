package shwary

import (
	"encoding/json"
	"time"
)

// WebhookHandler parses inbound gateway notifications. The payload is
// trusted once received; signature verification is the host application's
// concern.
type WebhookHandler struct{}

// NewWebhookHandler builds a webhook handler.
func NewWebhookHandler() *WebhookHandler { return &WebhookHandler{} }

// ParsePayload decodes a raw webhook body into a Transaction.
func (h *WebhookHandler) ParsePayload(raw []byte) (*Transaction, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return nil, decodeError("Invalid webhook payload", err)
	}

	if _, ok := pick(data, "id", "id"); !ok {
		return nil, decodeError("Invalid webhook payload: missing transaction ID", nil)
	}

	return ParseTransaction(data)
}

// WebhookResponse is the acknowledgment a webhook endpoint returns to the
// gateway.
type WebhookResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// CreateResponse builds the acknowledgment payload. An empty message gets a
// default matching the success flag.
func (h *WebhookHandler) CreateResponse(success bool, message string) WebhookResponse {
	if message == "" {
		if success {
			message = "Webhook processed successfully"
		} else {
			message = "Webhook processing failed"
		}
	}
	return WebhookResponse{
		Success:   success,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// IsTerminalStatus reports whether the transaction needs no further webhook
// updates.
func (h *WebhookHandler) IsTerminalStatus(t *Transaction) bool {
	return t.IsTerminal()
}
