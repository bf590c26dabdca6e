package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPlan_Commission(t *testing.T) {
	tests := []struct {
		name      string
		plan      Plan
		refAmount string
		want      string
	}{
		{"student pays nothing", PlanStudent, "1000", "0"},
		{"gold pays nothing", PlanGold, "1000", "0"},
		{"standard flat rate", PlanStandard, "1000", "2"},
		{"silver below floor", PlanSilver, "499.99", "0"},
		{"silver at floor", PlanSilver, "500", "0.5"},
		{"silver above floor", PlanSilver, "1000", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.plan.Commission(dec(tt.refAmount))
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestPlan_UpgradeCost(t *testing.T) {
	cost, err := PlanStandard.UpgradeCost(PlanSilver)
	require.NoError(t, err)
	assert.True(t, cost.Equal(dec("100")))

	cost, err = PlanStudent.UpgradeCost(PlanGold)
	require.NoError(t, err)
	assert.True(t, cost.Equal(dec("350")))

	cost, err = PlanSilver.UpgradeCost(PlanGold)
	require.NoError(t, err)
	assert.True(t, cost.Equal(dec("250")))
}

func TestPlan_UpgradeCost_DowngradeRejected(t *testing.T) {
	for _, target := range []Plan{PlanSilver, PlanStandard, PlanStudent} {
		_, err := PlanGold.UpgradeCost(target)
		assert.Error(t, err, string(target))
	}

	_, err := PlanSilver.UpgradeCost(PlanStandard)
	assert.Error(t, err)

	// Lateral move between the zero-commission entry plans is not an upgrade.
	_, err = PlanStandard.UpgradeCost(PlanStudent)
	assert.Error(t, err)
}

func TestPlan_UpgradeCost_SamePlan(t *testing.T) {
	_, err := PlanGold.UpgradeCost(PlanGold)
	assert.Error(t, err)
}

func TestParsePlan(t *testing.T) {
	p, err := ParsePlan("silver")
	require.NoError(t, err)
	assert.Equal(t, PlanSilver, p)

	_, err = ParsePlan("platinum")
	assert.Error(t, err)
}

func TestDefaultPlanFor(t *testing.T) {
	assert.Equal(t, PlanStudent, DefaultPlanFor("student"))
	assert.Equal(t, PlanStandard, DefaultPlanFor("engineer"))
}
