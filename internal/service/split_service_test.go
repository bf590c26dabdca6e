package service

import (
	"testing"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createEqualSplit(t *testing.T, total string, ibans ...string) {
	t.Helper()
	require.NoError(t, e.splitSvc.Create(e.ctx, ports.CreateSplitRequest{
		Kind:      domain.SplitEqual,
		IBANs:     ibans,
		Total:     dec(total),
		Currency:  "RON",
		Timestamp: 20,
	}))
}

func TestSplitService_EqualSplitSettles(t *testing.T) {
	env := newTestEnv(t)
	carol := env.addUser(t, "Georgescu", "Carol", "carol@bank.ro", "1995-01-01", "entrepreneur")

	a1 := env.openAccount(t, env.alice, "RON", "500")
	a2 := env.openAccount(t, env.bob, "RON", "500")
	a3 := env.openAccount(t, carol, "EUR", "100")

	env.createEqualSplit(t, "300", a1.IBAN, a2.IBAN, a3.IBAN)
	require.Len(t, env.alice.SplitQueue, 1)

	require.NoError(t, env.splitSvc.Accept(env.ctx, env.alice.Email, domain.SplitEqual))
	require.NoError(t, env.splitSvc.Accept(env.ctx, env.bob.Email, domain.SplitEqual))

	// Nothing settles before the last acceptance.
	assert.Equal(t, "500.00", a1.Balance.StringFixed(2))

	require.NoError(t, env.splitSvc.Accept(env.ctx, carol.Email, domain.SplitEqual))

	assert.Equal(t, "400.00", a1.Balance.StringFixed(2))
	assert.Equal(t, "400.00", a2.Balance.StringFixed(2))
	assert.Equal(t, "80.00", a3.Balance.StringFixed(2)) // 100 RON at 0.2

	for _, u := range []*domain.User{env.alice, env.bob, carol} {
		entry := lastEntry(u)
		assert.Equal(t, "Split payment of 300.00 RON", entry.Description)
		assert.Empty(t, entry.Error)
		assert.Empty(t, u.SplitQueue)
	}
}

func TestSplitService_RejectCancelsForAll(t *testing.T) {
	env := newTestEnv(t)
	a1 := env.openAccount(t, env.alice, "RON", "500")
	a2 := env.openAccount(t, env.bob, "RON", "500")

	env.createEqualSplit(t, "300", a1.IBAN, a2.IBAN)
	require.NoError(t, env.splitSvc.Accept(env.ctx, env.alice.Email, domain.SplitEqual))
	require.NoError(t, env.splitSvc.Reject(env.ctx, env.bob.Email, domain.SplitEqual))

	assert.Equal(t, "500.00", a1.Balance.StringFixed(2))
	assert.Equal(t, "500.00", a2.Balance.StringFixed(2))

	for _, u := range []*domain.User{env.alice, env.bob} {
		entry := lastEntry(u)
		assert.Equal(t, "One user rejected the payment.", entry.Error)
		assert.Empty(t, u.SplitQueue)
	}
}

func TestSplitService_InsufficientFundsCancelsAll(t *testing.T) {
	env := newTestEnv(t)
	a1 := env.openAccount(t, env.alice, "RON", "500")
	a2 := env.openAccount(t, env.bob, "RON", "50")

	env.createEqualSplit(t, "300", a1.IBAN, a2.IBAN)
	require.NoError(t, env.splitSvc.Accept(env.ctx, env.alice.Email, domain.SplitEqual))
	err := env.splitSvc.Accept(env.ctx, env.bob.Email, domain.SplitEqual)
	require.Error(t, err)

	// All-or-nothing: no balance moved.
	assert.Equal(t, "500.00", a1.Balance.StringFixed(2))
	assert.Equal(t, "50.00", a2.Balance.StringFixed(2))

	reason := "Account " + a2.IBAN + " has insufficient funds for a split payment."
	for _, u := range []*domain.User{env.alice, env.bob} {
		assert.Equal(t, reason, lastEntry(u).Error)
		assert.Empty(t, u.SplitQueue)
	}
}

func TestSplitService_RepeatedAcceptDoesNotSettle(t *testing.T) {
	env := newTestEnv(t)
	a1 := env.openAccount(t, env.alice, "RON", "500")
	a2 := env.openAccount(t, env.bob, "RON", "500")

	env.createEqualSplit(t, "300", a1.IBAN, a2.IBAN)

	require.NoError(t, env.splitSvc.Accept(env.ctx, env.alice.Email, domain.SplitEqual))
	// Responding removed the split from Alice's queue; she has nothing
	// left to accept and cannot consent on Bob's behalf.
	err := env.splitSvc.Accept(env.ctx, env.alice.Email, domain.SplitEqual)
	require.Error(t, err)

	assert.Equal(t, "500.00", a1.Balance.StringFixed(2))
	assert.Equal(t, "500.00", a2.Balance.StringFixed(2))
	require.Len(t, env.bob.SplitQueue, 1)

	require.NoError(t, env.splitSvc.Accept(env.ctx, env.bob.Email, domain.SplitEqual))
	assert.Equal(t, "350.00", a1.Balance.StringFixed(2))
	assert.Equal(t, "350.00", a2.Balance.StringFixed(2))
}

func TestSplitService_CustomSplit(t *testing.T) {
	env := newTestEnv(t)
	a1 := env.openAccount(t, env.alice, "RON", "500")
	a2 := env.openAccount(t, env.bob, "RON", "500")

	require.NoError(t, env.splitSvc.Create(env.ctx, ports.CreateSplitRequest{
		Kind:      domain.SplitCustom,
		IBANs:     []string{a1.IBAN, a2.IBAN},
		Total:     dec("300"),
		Amounts:   []decimal.Decimal{dec("200"), dec("100")},
		Currency:  "RON",
		Timestamp: 20,
	}))

	require.NoError(t, env.splitSvc.Accept(env.ctx, env.alice.Email, domain.SplitCustom))
	require.NoError(t, env.splitSvc.Accept(env.ctx, env.bob.Email, domain.SplitCustom))

	assert.Equal(t, "300.00", a1.Balance.StringFixed(2))
	assert.Equal(t, "400.00", a2.Balance.StringFixed(2))
	assert.Equal(t, "custom", lastEntry(env.alice).SplitType)
}

func TestSplitService_CustomSplit_MisalignedAmounts(t *testing.T) {
	env := newTestEnv(t)
	a1 := env.openAccount(t, env.alice, "RON", "500")

	err := env.splitSvc.Create(env.ctx, ports.CreateSplitRequest{
		Kind:      domain.SplitCustom,
		IBANs:     []string{a1.IBAN},
		Total:     dec("300"),
		Amounts:   []decimal.Decimal{dec("200"), dec("100")},
		Currency:  "RON",
		Timestamp: 20,
	})
	require.Error(t, err)
}

func TestSplitService_FIFOPerKind(t *testing.T) {
	env := newTestEnv(t)
	a1 := env.openAccount(t, env.alice, "RON", "1000")

	env.createEqualSplit(t, "100", a1.IBAN)
	env.createEqualSplit(t, "200", a1.IBAN)

	// The first accept resolves the older split.
	require.NoError(t, env.splitSvc.Accept(env.ctx, env.alice.Email, domain.SplitEqual))
	assert.Equal(t, "900.00", a1.Balance.StringFixed(2))
	require.Len(t, env.alice.SplitQueue, 1)

	require.NoError(t, env.splitSvc.Accept(env.ctx, env.alice.Email, domain.SplitEqual))
	assert.Equal(t, "700.00", a1.Balance.StringFixed(2))
}

func TestSplitService_NoPendingSplit(t *testing.T) {
	env := newTestEnv(t)
	err := env.splitSvc.Accept(env.ctx, env.alice.Email, domain.SplitEqual)
	require.Error(t, err)
}
