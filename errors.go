package shwary

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the three error families the SDK produces.
type ErrorKind string

const (
	// KindValidation marks caller input the gateway would reject; always
	// fixable by the caller, never worth retrying.
	KindValidation ErrorKind = "validation"
	// KindAuthentication marks bad or missing merchant credentials.
	KindAuthentication ErrorKind = "authentication"
	// KindAPI marks remote failures, transport failures and unexpected
	// statuses.
	KindAPI ErrorKind = "api"
)

// Error is the single error shape used across the SDK: a human message, an
// HTTP-status-like numeric code, a machine-readable reason and a context map
// for structured logging.
type Error struct {
	Kind    ErrorKind
	Reason  string
	Message string
	Code    int
	Context map[string]any
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause, if any, for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// ToMap renders the error for structured logging or serialization.
func (e *Error) ToMap() map[string]any {
	ctx := e.Context
	if ctx == nil {
		ctx = map[string]any{}
	}
	return map[string]any{
		"message": e.Message,
		"code":    e.Code,
		"context": ctx,
	}
}

// IsValidationError reports whether err is a validation-kind SDK error.
func IsValidationError(err error) bool { return hasKind(err, KindValidation) }

// IsAuthenticationError reports whether err is an authentication-kind SDK error.
func IsAuthenticationError(err error) bool { return hasKind(err, KindAuthentication) }

// IsAPIError reports whether err is an api-kind SDK error.
func IsAPIError(err error) bool { return hasKind(err, KindAPI) }

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func invalidAmount(amount int64, country Country) *Error {
	minimum := country.MinimumAmount()
	return &Error{
		Kind:   KindValidation,
		Reason: "invalid_amount",
		Message: fmt.Sprintf("Invalid amount: %d %s. Amount must be greater than %d for %s.",
			amount, country.Currency(), minimum, country.Name()),
		Code: 400,
		Context: map[string]any{
			"amount":   amount,
			"minimum":  minimum,
			"currency": country.Currency(),
			"country":  country.String(),
		},
	}
}

func invalidPhoneNumber(phone string, country Country) *Error {
	return &Error{
		Kind:   KindValidation,
		Reason: "invalid_phone",
		Message: fmt.Sprintf("Invalid phone number: %s. Phone must start with %s for %s.",
			phone, country.DialCode(), country.Name()),
		Code: 400,
		Context: map[string]any{
			"phone":           phone,
			"expected_prefix": country.DialCode(),
			"country":         country.String(),
		},
	}
}

func invalidCallbackURL(url string) *Error {
	return &Error{
		Kind:    KindValidation,
		Reason:  "invalid_callback_url",
		Message: fmt.Sprintf("Invalid callback URL: %s. Must be a valid HTTPS URL.", url),
		Code:    400,
		Context: map[string]any{"url": url},
	}
}

func missingRequiredField(field string) *Error {
	return &Error{
		Kind:    KindValidation,
		Reason:  "missing_field",
		Message: fmt.Sprintf("Missing required field: %s", field),
		Code:    400,
		Context: map[string]any{"field": field},
	}
}

func unknownCountry(code string) *Error {
	return &Error{
		Kind:    KindValidation,
		Reason:  "unknown_country",
		Message: fmt.Sprintf("Unknown country code: %s. Supported codes are DRC, KE and UG.", code),
		Code:    400,
		Context: map[string]any{"code": code},
	}
}

func invalidStatus(raw string) *Error {
	return &Error{
		Kind:    KindValidation,
		Reason:  "invalid_status",
		Message: fmt.Sprintf("Invalid transaction status: %s", raw),
		Code:    400,
		Context: map[string]any{"status": raw},
	}
}

func invalidCredentials() *Error {
	return &Error{
		Kind:    KindAuthentication,
		Reason:  "invalid_credentials",
		Message: "Invalid merchant credentials. Please verify your merchant ID and key.",
		Code:    401,
	}
}

func missingCredentials() *Error {
	return &Error{
		Kind:    KindAuthentication,
		Reason:  "missing_credentials",
		Message: "Missing merchant credentials. Both merchant ID and key are required.",
		Code:    401,
	}
}

func networkError(detail string, cause error) *Error {
	return &Error{
		Kind:    KindAPI,
		Reason:  "network_error",
		Message: fmt.Sprintf("Network error: %s", detail),
		Code:    0,
		cause:   cause,
	}
}

func badGateway(message string) *Error {
	if message == "" {
		message = "Payment gateway error"
	}
	return &Error{
		Kind:    KindAPI,
		Reason:  "bad_gateway",
		Message: message,
		Code:    502,
	}
}

func clientNotFound(phone string) *Error {
	return &Error{
		Kind:    KindAPI,
		Reason:  "client_not_found",
		Message: fmt.Sprintf("Client with phone number %s not found", phone),
		Code:    404,
		Context: map[string]any{"phone": phone},
	}
}

func decodeError(message string, cause error) *Error {
	return &Error{
		Kind:    KindAPI,
		Reason:  "decode_error",
		Message: message,
		Code:    400,
		cause:   cause,
	}
}

// errorFromResponse maps a received non-2xx gateway response onto the
// taxonomy. body is the decoded JSON body, or nil when it could not be
// decoded.
func errorFromResponse(status int, body map[string]any) *Error {
	if status == 401 {
		return invalidCredentials()
	}

	message := responseMessage(body)

	if status >= 400 && status < 500 {
		if message == "" {
			message = "Payment request rejected by gateway"
		}
		return &Error{
			Kind:    KindAPI,
			Reason:  "api_error",
			Message: message,
			Code:    status,
		}
	}

	e := badGateway(message)
	e.Code = status
	return e
}

// responseMessage extracts a human-readable message from a gateway error
// body: "message" wins over "error", both verbatim.
func responseMessage(body map[string]any) string {
	for _, key := range []string{"message", "error"} {
		if v, ok := body[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
