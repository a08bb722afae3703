package shwary

// TransactionStatus is the lifecycle state reported by the gateway for a
// transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// ParseTransactionStatus resolves a raw status value from a gateway payload.
func ParseTransactionStatus(raw string) (TransactionStatus, error) {
	switch TransactionStatus(raw) {
	case StatusPending, StatusCompleted, StatusFailed:
		return TransactionStatus(raw), nil
	}
	return "", invalidStatus(raw)
}

// IsTerminal reports whether no further status change can occur.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed:
		return true
	case StatusPending:
		return false
	}
	return false
}

// IsSuccessful reports whether the transaction completed successfully.
func (s TransactionStatus) IsSuccessful() bool {
	return s == StatusCompleted
}

func (s TransactionStatus) String() string { return string(s) }
