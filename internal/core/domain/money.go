package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferenceCurrency is the fixed currency in which commission and cashback
// thresholds and plan upgrade costs are defined before conversion.
const ReferenceCurrency = "RON"

// Round2 rounds a money amount to cents. Applied after every balance mutation.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// GenerateIBAN produces a unique account identifier.
func GenerateIBAN() string {
	return "RO24BANK" + digits(16)
}

// GenerateCardNumber produces a unique 16-digit card number.
func GenerateCardNumber() string {
	return digits(16)
}

func digits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for b.Len() < n {
		for _, raw := range uuid.New() {
			b.WriteByte('0' + raw%10)
			if b.Len() == n {
				break
			}
		}
	}
	return b.String()
}
