package shwary

// Country identifies a market served by the Shwary gateway. The set is
// closed: the gateway only operates in DRC, Kenya and Uganda.
type Country string

const (
	CountryDRC    Country = "DRC"
	CountryKenya  Country = "KE"
	CountryUganda Country = "UG"
)

// Countries returns every supported country.
func Countries() []Country {
	return []Country{CountryDRC, CountryKenya, CountryUganda}
}

// ParseCountry resolves a country code, failing for anything outside the
// supported set.
func ParseCountry(code string) (Country, error) {
	switch Country(code) {
	case CountryDRC, CountryKenya, CountryUganda:
		return Country(code), nil
	}
	return "", unknownCountry(code)
}

// Currency returns the ISO 4217 currency code for the country.
func (c Country) Currency() string {
	switch c {
	case CountryDRC:
		return "CDF"
	case CountryKenya:
		return "KES"
	case CountryUganda:
		return "UGX"
	}
	return ""
}

// DialCode returns the international dialing prefix, including the plus sign.
func (c Country) DialCode() string {
	switch c {
	case CountryDRC:
		return "+243"
	case CountryKenya:
		return "+254"
	case CountryUganda:
		return "+256"
	}
	return ""
}

// MinimumAmount returns the smallest payable amount in the smallest currency
// unit. Only DRC currently enforces a floor; the gateway accepts any positive
// amount elsewhere.
func (c Country) MinimumAmount() int64 {
	if c == CountryDRC {
		return 2900
	}
	return 0
}

// Name returns the display name used in messages to merchants.
func (c Country) Name() string {
	switch c {
	case CountryDRC:
		return "République Démocratique du Congo"
	case CountryKenya:
		return "Kenya"
	case CountryUganda:
		return "Ouganda"
	}
	return ""
}

func (c Country) String() string { return string(c) }
