package domain

import "bank-ledger/pkg/apperror"

// CashbackStrategy selects the reward policy a merchant is bound to.
type CashbackStrategy string

const (
	// StrategySpendingThreshold rewards cumulative per-category spend tiers.
	StrategySpendingThreshold CashbackStrategy = "spendingThreshold"
	// StrategyTransactionCount grants category vouchers at payment-count marks.
	StrategyTransactionCount CashbackStrategy = "nrOfTransactions"
)

// ParseCashbackStrategy validates a strategy name.
func ParseCashbackStrategy(name string) (CashbackStrategy, error) {
	switch CashbackStrategy(name) {
	case StrategySpendingThreshold, StrategyTransactionCount:
		return CashbackStrategy(name), nil
	}
	return "", apperror.Validation("unknown cashback strategy: " + name)
}

// Merchant is a registered payee bound to exactly one cashback strategy.
type Merchant struct {
	Name     string           `json:"name"`
	ID       int              `json:"id"`
	IBAN     string           `json:"account"`
	Category string           `json:"type"`
	Strategy CashbackStrategy `json:"cashbackStrategy"`
}
