package shwary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func transactionJSON(id, currency, status string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"user_id": "user_1",
		"amount": 5000,
		"currency": %q,
		"type": "deposit",
		"status": %q,
		"recipient_phone_number": "+243970000000",
		"reference_id": "ref_1",
		"created_at": "2026-02-05T10:00:00+00:00",
		"updated_at": "2026-02-05T10:00:00+00:00"
	}`, id, currency, status)
}

func newTestClient(t *testing.T, baseURL string, opts ...ConfigOption) *Client {
	t.Helper()
	cfg, err := NewConfig("test-merchant", "test-key", append([]ConfigOption{WithBaseURL(baseURL)}, opts...)...)
	require.NoError(t, err)
	return NewClient(cfg)
}

func TestCreatePayment(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(transactionJSON("txn_created", "CDF", "pending")))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	req, err := NewPaymentRequest(5000, "+243970000000", CountryDRC, "")
	require.NoError(t, err)

	txn, err := client.CreatePayment(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "txn_created", txn.ID)
	require.Equal(t, int64(5000), txn.Amount)
	require.True(t, txn.IsPending())
	require.Equal(t, "/api/v1/payments", gotPath)
}

func TestCreatePaymentSandboxRouting(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(transactionJSON("txn_sandbox", "CDF", "pending")))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, WithSandbox(true))
	require.True(t, client.IsSandbox())

	req, err := NewPaymentRequest(5000, "+243970000000", CountryDRC, "")
	require.NoError(t, err)

	_, err = client.CreatePayment(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "/api/v1/sandbox/payments", gotPath)
}

func TestCreateSandboxPaymentAlwaysUsesSandboxEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(transactionJSON("txn_sandbox", "CDF", "pending")))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL) // sandbox off
	req, err := NewPaymentRequest(3000, "+243970000000", CountryDRC, "")
	require.NoError(t, err)

	_, err = client.CreateSandboxPayment(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "/api/v1/sandbox/payments", gotPath)
}

func TestPayCountryShortcuts(t *testing.T) {
	tests := []struct {
		name     string
		pay      func(c *Client) (*Transaction, error)
		currency string
	}{
		{"DRC", func(c *Client) (*Transaction, error) {
			return c.PayDRC(context.Background(), 5000, "+243970000000", "")
		}, "CDF"},
		{"Kenya", func(c *Client) (*Transaction, error) {
			return c.PayKenya(context.Background(), 1000, "+254700000000", "")
		}, "KES"},
		{"Uganda", func(c *Client) (*Transaction, error) {
			return c.PayUganda(context.Background(), 5000, "+256700000000", "")
		}, "UGX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(transactionJSON("txn_1", tt.currency, "pending")))
			}))
			defer srv.Close()

			txn, err := tt.pay(newTestClient(t, srv.URL))
			require.NoError(t, err)
			require.Equal(t, tt.currency, txn.Currency)
		})
	}
}

func TestInvalidRequestNeverReachesNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.PayDRC(context.Background(), 2900, "+243970000000", "")
	require.True(t, IsValidationError(err))

	_, err = client.PayKenya(context.Background(), 1000, "+243970000000", "")
	require.True(t, IsValidationError(err))

	require.Zero(t, hits)
}

func TestClientSurfacesAuthenticationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.PayDRC(context.Background(), 5000, "+243970000000", "")
	require.True(t, IsAuthenticationError(err))

	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, 401, e.Code)
}

func TestFindTransaction(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(transactionJSON("txn_find", "CDF", "completed")))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	txn, err := client.FindTransaction(context.Background(), "txn_find")
	require.NoError(t, err)
	require.Equal(t, "txn_find", txn.ID)
	require.Equal(t, "/api/v1/transactions/txn_find", gotPath)
}

func TestFindTransactionRequiresID(t *testing.T) {
	client := newTestClient(t, "https://api.shwary.com")
	_, err := client.FindTransaction(context.Background(), "")
	require.True(t, IsValidationError(err))
}

func TestWaitForTransactionPollsUntilTerminal(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		status := "pending"
		if calls >= 3 {
			status = "completed"
		}
		w.Write([]byte(transactionJSON("txn_wait", "CDF", status)))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	txn, err := client.WaitForTransaction(context.Background(), "txn_wait",
		WithPollInterval(5*time.Millisecond),
		WithWaitTimeout(time.Second),
	)
	require.NoError(t, err)
	require.True(t, txn.IsCompleted())
	require.Equal(t, 3, calls)
}

func TestWaitForTransactionTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(transactionJSON("txn_stuck", "CDF", "pending")))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	txn, err := client.WaitForTransaction(context.Background(), "txn_stuck",
		WithPollInterval(5*time.Millisecond),
		WithWaitTimeout(30*time.Millisecond),
	)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotNil(t, txn)
	require.True(t, txn.IsPending())
}
