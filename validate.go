package shwary

import (
	"net/url"
	"strings"
)

// validateAmount checks the amount against the country's floor. The gateway
// requires strictly more than the minimum, so the minimum itself is rejected.
func validateAmount(amount int64, country Country) error {
	if amount <= country.MinimumAmount() {
		return invalidAmount(amount, country)
	}
	return nil
}

// validatePhone checks that the phone number carries the country's dialing
// prefix.
func validatePhone(phone string, country Country) error {
	if !strings.HasPrefix(phone, country.DialCode()) {
		return invalidPhoneNumber(phone, country)
	}
	return nil
}

// validateCallbackURL accepts an empty URL; a non-empty one must be an
// absolute HTTPS URL.
func validateCallbackURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return invalidCallbackURL(raw)
	}
	return nil
}

// requireField rejects absent or empty values.
func requireField(name string, value any) error {
	switch v := value.(type) {
	case nil:
		return missingRequiredField(name)
	case string:
		if strings.TrimSpace(v) == "" {
			return missingRequiredField(name)
		}
	}
	return nil
}
