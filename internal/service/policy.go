package service

import "github.com/shopspring/decimal"

// Policy carries the bank-wide operating constants, all thresholds in the
// reference currency. Values come from configuration at bootstrap.
type Policy struct {
	// FreezeFloor is the hard minimum balance at or below which a card
	// freezes after a successful debit.
	FreezeFloor decimal.Decimal

	// PromotionCount and PromotionMinAmount drive the silver-to-gold
	// auto-promotion on qualifying outbound transfers.
	PromotionCount     int
	PromotionMinAmount decimal.Decimal

	// InitialBusinessLimit seeds both caps of a new business account.
	InitialBusinessLimit decimal.Decimal
}

// DefaultPolicy returns the stock constants.
func DefaultPolicy() Policy {
	return Policy{
		FreezeFloor:          decimal.NewFromInt(30),
		PromotionCount:       5,
		PromotionMinAmount:   decimal.NewFromInt(300),
		InitialBusinessLimit: decimal.NewFromInt(500),
	}
}
