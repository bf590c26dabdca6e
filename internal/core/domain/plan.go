package domain

import (
	"bank-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Plan is a user-level fee tier affecting commission on card and transfer
// operations. It is swapped by value on upgrade.
type Plan string

const (
	PlanStudent  Plan = "student"
	PlanStandard Plan = "standard"
	PlanSilver   Plan = "silver"
	PlanGold     Plan = "gold"
)

var (
	standardCommissionRate = decimal.RequireFromString("0.002")
	silverCommissionRate   = decimal.RequireFromString("0.001")
	silverCommissionFloor  = decimal.NewFromInt(500)

	upgradeCosts = map[Plan]map[Plan]decimal.Decimal{
		PlanStudent: {
			PlanSilver: decimal.NewFromInt(100),
			PlanGold:   decimal.NewFromInt(350),
		},
		PlanStandard: {
			PlanSilver: decimal.NewFromInt(100),
			PlanGold:   decimal.NewFromInt(350),
		},
		PlanSilver: {
			PlanGold: decimal.NewFromInt(250),
		},
	}
)

// ParsePlan validates a plan name.
func ParsePlan(name string) (Plan, error) {
	switch Plan(name) {
	case PlanStudent, PlanStandard, PlanSilver, PlanGold:
		return Plan(name), nil
	}
	return "", apperror.Validation("unknown plan: " + name)
}

// DefaultPlanFor picks the initial plan from the user's occupation.
func DefaultPlanFor(occupation string) Plan {
	if occupation == "student" {
		return PlanStudent
	}
	return PlanStandard
}

// Commission returns the fee for a transaction amount expressed in the
// reference currency. Student and gold pay no commission; standard pays a
// flat proportional fee; silver pays only at or above the spending floor.
func (p Plan) Commission(refAmount decimal.Decimal) decimal.Decimal {
	switch p {
	case PlanStandard:
		return refAmount.Mul(standardCommissionRate)
	case PlanSilver:
		if refAmount.LessThan(silverCommissionFloor) {
			return decimal.Zero
		}
		return refAmount.Mul(silverCommissionRate)
	}
	return decimal.Zero
}

// rank orders plans for upgrade/downgrade comparison.
func (p Plan) rank() int {
	switch p {
	case PlanStudent, PlanStandard:
		return 0
	case PlanSilver:
		return 1
	case PlanGold:
		return 2
	}
	return -1
}

// UpgradeCost returns the cost of moving from p to target, in the reference
// currency. Downgrades are rejected without state change.
func (p Plan) UpgradeCost(target Plan) (decimal.Decimal, error) {
	if target == p {
		return decimal.Zero, apperror.ErrUnsupportedOperation("The user already has the " + string(target) + " plan.")
	}
	if target.rank() < p.rank() || (target.rank() == p.rank() && target != p) {
		return decimal.Zero, apperror.ErrDowngradeRejected(string(target))
	}
	cost, ok := upgradeCosts[p][target]
	if !ok {
		return decimal.Zero, apperror.ErrDowngradeRejected(string(target))
	}
	return cost, nil
}
