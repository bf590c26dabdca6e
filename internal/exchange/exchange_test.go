package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testResolver() *Resolver {
	return NewResolver([]Rate{
		{From: "EUR", To: "RON", Rate: dec("5")},
		{From: "USD", To: "EUR", Rate: dec("0.9")},
	})
}

func TestResolver_DirectAndReciprocal(t *testing.T) {
	r := testResolver()

	rate, err := r.Rate("EUR", "RON")
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("5")))

	inverse, err := r.Rate("RON", "EUR")
	require.NoError(t, err)
	assert.True(t, inverse.Equal(dec("0.2")))
}

func TestResolver_Reflexive(t *testing.T) {
	r := testResolver()

	for _, c := range r.Currencies() {
		rate, err := r.Rate(c, c)
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(1)), c)
	}
}

func TestResolver_OneHopComposition(t *testing.T) {
	r := testResolver()

	// USD -> EUR -> RON
	rate, err := r.Rate("USD", "RON")
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("4.5")), "got %s", rate)
}

func TestResolver_NoPath(t *testing.T) {
	r := NewResolver([]Rate{
		{From: "EUR", To: "RON", Rate: dec("5")},
		{From: "JPY", To: "KRW", Rate: dec("9")},
	})

	// Disconnected components are more than one hop apart.
	_, err := r.Rate("EUR", "KRW")
	assert.Error(t, err)

	_, err = r.Rate("EUR", "CHF")
	assert.Error(t, err)
}

func TestResolver_Convert(t *testing.T) {
	r := testResolver()

	got, err := r.Convert(dec("10"), "EUR", "RON")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("50")))

	_, err = r.Convert(dec("10"), "EUR", "CHF")
	assert.Error(t, err)
}

func TestResolver_Currencies(t *testing.T) {
	r := testResolver()
	assert.Equal(t, []string{"EUR", "RON", "USD"}, r.Currencies())
}
