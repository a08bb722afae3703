package shwary

// PaymentRequest is a validated, immutable payment instruction. It can only
// be built through NewPaymentRequest, so an instance never carries an amount
// below the country floor, a mismatched phone prefix or a non-HTTPS callback.
type PaymentRequest struct {
	amount      int64
	phone       string
	country     Country
	callbackURL string
}

// NewPaymentRequest validates and builds a payment request. Validation runs
// amount, then phone, then callback URL, stopping at the first failure.
// callbackURL may be empty, meaning no callback is requested.
func NewPaymentRequest(amount int64, phone string, country Country, callbackURL string) (*PaymentRequest, error) {
	if err := validateAmount(amount, country); err != nil {
		return nil, err
	}
	if err := validatePhone(phone, country); err != nil {
		return nil, err
	}
	if err := validateCallbackURL(callbackURL); err != nil {
		return nil, err
	}

	return &PaymentRequest{
		amount:      amount,
		phone:       phone,
		country:     country,
		callbackURL: callbackURL,
	}, nil
}

// Amount returns the amount in the smallest currency unit.
func (r *PaymentRequest) Amount() int64 { return r.amount }

// Phone returns the recipient phone number.
func (r *PaymentRequest) Phone() string { return r.phone }

// Country returns the destination country.
func (r *PaymentRequest) Country() Country { return r.country }

// CallbackURL returns the callback URL, or the empty string when unset.
func (r *PaymentRequest) CallbackURL() string { return r.callbackURL }

// Payload renders the gateway request body. The callbackUrl key is present
// only when a callback URL was set.
func (r *PaymentRequest) Payload() map[string]any {
	payload := map[string]any{
		"amount":            r.amount,
		"clientPhoneNumber": r.phone,
	}
	if r.callbackURL != "" {
		payload["callbackUrl"] = r.callbackURL
	}
	return payload
}
