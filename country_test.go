package shwary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCountry(t *testing.T) {
	for _, code := range []string{"DRC", "KE", "UG"} {
		country, err := ParseCountry(code)
		require.NoError(t, err)
		require.Equal(t, code, country.String())
	}
}

func TestParseCountryUnknown(t *testing.T) {
	_, err := ParseCountry("RW")
	require.Error(t, err)
	require.True(t, IsValidationError(err))

	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "unknown_country", e.Reason)
	require.Equal(t, "RW", e.Context["code"])
}

func TestCountryFacts(t *testing.T) {
	tests := []struct {
		country  Country
		currency string
		dialCode string
		minimum  int64
		name     string
	}{
		{CountryDRC, "CDF", "+243", 2900, "République Démocratique du Congo"},
		{CountryKenya, "KES", "+254", 0, "Kenya"},
		{CountryUganda, "UGX", "+256", 0, "Ouganda"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.currency, tt.country.Currency())
		require.Equal(t, tt.dialCode, tt.country.DialCode())
		require.Equal(t, tt.minimum, tt.country.MinimumAmount())
		require.Equal(t, tt.name, tt.country.Name())
	}
}

func TestCountriesCoversAllVariants(t *testing.T) {
	require.ElementsMatch(t, []Country{CountryDRC, CountryKenya, CountryUganda}, Countries())
}

func TestValidateAmountBoundaries(t *testing.T) {
	for _, country := range Countries() {
		minimum := country.MinimumAmount()

		require.NoError(t, validateAmount(minimum+1, country))
		require.Error(t, validateAmount(minimum, country))
		require.Error(t, validateAmount(minimum-1, country))
	}
}
