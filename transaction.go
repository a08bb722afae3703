package shwary

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Transaction is the canonical view of a gateway transaction, built from
// either an API response or a webhook payload. Instances are never mutated;
// a status change arrives as fresh source data and produces a new value.
type Transaction struct {
	ID                   string
	UserID               string
	Amount               int64
	Currency             string
	Type                 string
	Status               TransactionStatus
	RecipientPhoneNumber string
	ReferenceID          string
	Metadata             map[string]any
	FailureReason        string
	CompletedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	IsSandbox            bool
	PretiumTransactionID string
	Error                string
}

// timeLayouts are tried in order when parsing gateway timestamps. The
// gateway emits RFC 3339 with an offset; the fallbacks cover payloads seen
// from older gateway versions.
var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTransaction builds a Transaction from a decoded JSON payload. The
// gateway is inconsistent about key casing, so every logical field is looked
// up under its camelCase key first and its snake_case key second; when both
// are present the camelCase value wins.
func ParseTransaction(data map[string]any) (*Transaction, error) {
	id, err := requiredString(data, "id", "id")
	if err != nil {
		return nil, err
	}
	userID, err := requiredString(data, "userId", "user_id")
	if err != nil {
		return nil, err
	}
	amount, err := requiredAmount(data)
	if err != nil {
		return nil, err
	}
	currency, err := requiredString(data, "currency", "currency")
	if err != nil {
		return nil, err
	}
	rawStatus, err := requiredString(data, "status", "status")
	if err != nil {
		return nil, err
	}
	status, err := ParseTransactionStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	phone, err := requiredString(data, "recipientPhoneNumber", "recipient_phone_number")
	if err != nil {
		return nil, err
	}
	referenceID, err := requiredString(data, "referenceId", "reference_id")
	if err != nil {
		return nil, err
	}
	createdAt, err := requiredTime(data, "createdAt", "created_at")
	if err != nil {
		return nil, err
	}
	updatedAt, err := requiredTime(data, "updatedAt", "updated_at")
	if err != nil {
		return nil, err
	}
	completedAt, err := optionalTime(data, "completedAt", "completed_at")
	if err != nil {
		return nil, err
	}

	txnType := optionalString(data, "type", "type")
	if txnType == "" {
		txnType = "deposit"
	}

	return &Transaction{
		ID:                   id,
		UserID:               userID,
		Amount:               amount,
		Currency:             currency,
		Type:                 txnType,
		Status:               status,
		RecipientPhoneNumber: phone,
		ReferenceID:          referenceID,
		Metadata:             optionalMap(data, "metadata", "metadata"),
		FailureReason:        optionalString(data, "failureReason", "failure_reason"),
		CompletedAt:          completedAt,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
		IsSandbox:            optionalBool(data, "isSandbox", "is_sandbox"),
		PretiumTransactionID: optionalString(data, "pretiumTransactionId", "pretium_transaction_id"),
		Error:                optionalString(data, "error", "error"),
	}, nil
}

// IsPending reports whether the transaction is still in flight.
func (t *Transaction) IsPending() bool { return t.Status == StatusPending }

// IsCompleted reports whether the transaction finished successfully.
func (t *Transaction) IsCompleted() bool { return t.Status == StatusCompleted }

// IsFailed reports whether the transaction finished unsuccessfully.
func (t *Transaction) IsFailed() bool { return t.Status == StatusFailed }

// IsTerminal reports whether the status can no longer change.
func (t *Transaction) IsTerminal() bool { return t.Status.IsTerminal() }

// ToMap renders the canonical serialization: always camelCase keys, RFC 3339
// timestamps, every key present with explicit nulls for unset optionals.
func (t *Transaction) ToMap() map[string]any {
	return map[string]any{
		"id":                   t.ID,
		"userId":               t.UserID,
		"amount":               t.Amount,
		"currency":             t.Currency,
		"type":                 t.Type,
		"status":               t.Status.String(),
		"recipientPhoneNumber": t.RecipientPhoneNumber,
		"referenceId":          t.ReferenceID,
		"metadata":             nullableMap(t.Metadata),
		"failureReason":        nullableString(t.FailureReason),
		"completedAt":          nullableTime(t.CompletedAt),
		"createdAt":            t.CreatedAt.Format(time.RFC3339),
		"updatedAt":            t.UpdatedAt.Format(time.RFC3339),
		"isSandbox":            t.IsSandbox,
		"pretiumTransactionId": nullableString(t.PretiumTransactionID),
		"error":                nullableString(t.Error),
	}
}

// MarshalJSON serializes via ToMap so JSON output matches the canonical
// camelCase form.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToMap())
}

// pick returns the first present, non-nil value among the candidate keys.
func pick(data map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := data[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func requiredString(data map[string]any, camel, snake string) (string, error) {
	v, ok := pick(data, camel, snake)
	if !ok {
		return "", missingRequiredField(camel)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", missingRequiredField(camel)
	}
	return s, nil
}

func optionalString(data map[string]any, camel, snake string) string {
	v, ok := pick(data, camel, snake)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func requiredAmount(data map[string]any) (int64, error) {
	v, ok := pick(data, "amount", "amount")
	if !ok {
		return 0, missingRequiredField("amount")
	}
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, decodeError(fmt.Sprintf("Invalid amount value: %v", v), err)
		}
		return int64(f), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, decodeError(fmt.Sprintf("Invalid amount value: %v", v), err)
		}
		return int64(f), nil
	}
	return 0, decodeError(fmt.Sprintf("Invalid amount value: %v", v), nil)
}

func optionalBool(data map[string]any, camel, snake string) bool {
	v, ok := pick(data, camel, snake)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case float64:
		return b != 0
	}
	return false
}

func optionalMap(data map[string]any, camel, snake string) map[string]any {
	v, ok := pick(data, camel, snake)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

func requiredTime(data map[string]any, camel, snake string) (time.Time, error) {
	v, ok := pick(data, camel, snake)
	if !ok {
		return time.Time{}, missingRequiredField(camel)
	}
	return parseTime(camel, v)
}

func optionalTime(data map[string]any, camel, snake string) (*time.Time, error) {
	v, ok := pick(data, camel, snake)
	if !ok {
		return nil, nil
	}
	t, err := parseTime(camel, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTime(field string, v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, decodeError(fmt.Sprintf("Invalid timestamp for %s: %v", field, v), nil)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, decodeError(fmt.Sprintf("Invalid timestamp for %s: %q", field, s), nil)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableMap(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
