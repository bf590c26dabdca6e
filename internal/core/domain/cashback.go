package domain

import "github.com/shopspring/decimal"

// Spending-threshold tiers in the reference currency, and the per-plan reward
// percentages applied to the triggering payment's amount.
var (
	spendingTiers = []int64{500, 300, 100}

	spendingTierRates = map[int64]map[Plan]decimal.Decimal{
		100: {
			PlanStandard: decimal.RequireFromString("0.001"),
			PlanStudent:  decimal.RequireFromString("0.001"),
			PlanSilver:   decimal.RequireFromString("0.003"),
			PlanGold:     decimal.RequireFromString("0.005"),
		},
		300: {
			PlanStandard: decimal.RequireFromString("0.002"),
			PlanStudent:  decimal.RequireFromString("0.002"),
			PlanSilver:   decimal.RequireFromString("0.004"),
			PlanGold:     decimal.RequireFromString("0.0055"),
		},
		500: {
			PlanStandard: decimal.RequireFromString("0.0025"),
			PlanStudent:  decimal.RequireFromString("0.0025"),
			PlanSilver:   decimal.RequireFromString("0.005"),
			PlanGold:     decimal.RequireFromString("0.007"),
		},
	}

	spendingEntryThreshold = decimal.NewFromInt(100)

	// Voucher grants by qualifying-payment count: category and percentage.
	voucherGrants = []struct {
		Count    int
		Category string
		Percent  decimal.Decimal
	}{
		{2, "Food", decimal.NewFromInt(1)},
		{5, "Clothes", decimal.NewFromInt(5)},
		{10, "Tech", decimal.NewFromInt(10)},
	}

	percentDivisor = decimal.NewFromInt(100)
)

// ApplyCashback runs the merchant's reward policy for a payment of refAmount
// (reference currency) and returns the earned reward, also in the reference
// currency. Any pending voucher for the merchant's category is redeemed
// first, regardless of the merchant's own strategy.
func (a *Account) ApplyCashback(plan Plan, m *Merchant, refAmount decimal.Decimal) decimal.Decimal {
	reward := a.redeemVoucher(m.Category, refAmount)

	switch m.Strategy {
	case StrategySpendingThreshold:
		reward = reward.Add(a.spendingTierReward(plan, m.Category, refAmount))
	case StrategyTransactionCount:
		a.recordCountedPayment()
	}

	return reward
}

// SpendingTierReward applies the spending-threshold policy.
//
// Canonical rule: the payment updates the cumulative category spend; it earns
// the reward of the highest tier reached by the updated cumulative, provided
// that tier has not been rewarded before for this account and category and
// the cumulative had already reached the entry threshold (100) before this
// payment. The reward is a percentage of the triggering payment's amount,
// not of the cumulative total.
func (a *Account) spendingTierReward(plan Plan, category string, refAmount decimal.Decimal) decimal.Decimal {
	pre := a.SpentByCategory[category]
	post := pre.Add(refAmount)
	a.SpentByCategory[category] = post

	tier := highestSpendingTier(post)
	if tier == 0 || tier <= a.RewardedTier[category] {
		return decimal.Zero
	}
	if pre.LessThan(spendingEntryThreshold) {
		return decimal.Zero
	}

	a.RewardedTier[category] = tier
	return refAmount.Mul(spendingTierRates[tier][plan])
}

// recordCountedPayment applies the transaction-count policy: the payment
// counts toward the per-account total and, on reaching a grant mark, arms a
// one-time category voucher for a later payment.
func (a *Account) recordCountedPayment() {
	a.PaymentCount++
	for _, g := range voucherGrants {
		if a.PaymentCount == g.Count && !a.VoucherUsed[g.Category] {
			a.Vouchers[g.Category] = g.Percent
		}
	}
}

// redeemVoucher consumes a pending voucher for the category, if armed.
// Each category is redeemable at most once per account.
func (a *Account) redeemVoucher(category string, refAmount decimal.Decimal) decimal.Decimal {
	pct, ok := a.Vouchers[category]
	if !ok {
		return decimal.Zero
	}
	delete(a.Vouchers, category)
	a.VoucherUsed[category] = true
	return refAmount.Mul(pct).Div(percentDivisor)
}

func highestSpendingTier(cumulative decimal.Decimal) int64 {
	for _, tier := range spendingTiers {
		if cumulative.GreaterThanOrEqual(decimal.NewFromInt(tier)) {
			return tier
		}
	}
	return 0
}
