package service

import (
	"testing"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportingService_Users(t *testing.T) {
	env := newTestEnv(t)
	users, err := env.reportSvc.Users(env.ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, env.alice, users[0])
	assert.Equal(t, env.bob, users[1])
}

func TestReportingService_Transactions(t *testing.T) {
	env := newTestEnv(t)
	account := env.openAccount(t, env.alice, "RON", "1000")
	card := account.AddCard(false)

	require.NoError(t, env.paymentSvc.PayOnline(env.ctx, ports.PayOnlineRequest{
		Email:      env.alice.Email,
		CardNumber: card.Number,
		Amount:     dec("100"),
		Currency:   "RON",
		Merchant:   "Carrefour",
		Timestamp:  10,
	}))

	entries, err := env.reportSvc.Transactions(env.ctx, env.alice.Email)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "New account created", entries[0].Description)
	assert.Equal(t, "Card payment", entries[1].Description)
}

func TestReportingService_AccountReport_Window(t *testing.T) {
	env := newTestEnv(t)
	account := env.openAccount(t, env.alice, "RON", "1000")
	card := account.AddCard(false)

	for _, ts := range []int64{10, 20, 30} {
		require.NoError(t, env.paymentSvc.PayOnline(env.ctx, ports.PayOnlineRequest{
			Email:      env.alice.Email,
			CardNumber: card.Number,
			Amount:     dec("10"),
			Currency:   "RON",
			Merchant:   "Carrefour",
			Timestamp:  ts,
		}))
	}

	report, err := env.reportSvc.AccountReport(env.ctx, ports.ReportRequest{
		IBAN:  account.IBAN,
		Start: 15,
		End:   30,
	})
	require.NoError(t, err)
	assert.Equal(t, account.IBAN, report.IBAN)
	assert.Equal(t, "RON", report.Currency)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, int64(20), report.Entries[0].Timestamp)
	assert.Equal(t, int64(30), report.Entries[1].Timestamp)
}

func TestReportingService_SpendingsReport(t *testing.T) {
	env := newTestEnv(t)
	account := env.openAccount(t, env.alice, "RON", "2000")
	card := account.AddCard(false)

	pay := func(merchant, amount string, ts int64) {
		require.NoError(t, env.paymentSvc.PayOnline(env.ctx, ports.PayOnlineRequest{
			Email:      env.alice.Email,
			CardNumber: card.Number,
			Amount:     dec(amount),
			Currency:   "RON",
			Merchant:   merchant,
			Timestamp:  ts,
		}))
	}
	pay("Zara", "50", 10)
	pay("Carrefour", "30", 11)
	pay("Zara", "20", 12)

	report, err := env.reportSvc.SpendingsReport(env.ctx, ports.ReportRequest{
		IBAN:  account.IBAN,
		Start: 0,
		End:   100,
	})
	require.NoError(t, err)
	require.Len(t, report.Entries, 3)
	require.Len(t, report.Merchants, 2)

	// Sorted by merchant name.
	assert.Equal(t, "Carrefour", report.Merchants[0].Merchant)
	assert.Equal(t, "30.00", report.Merchants[0].Total.StringFixed(2))
	assert.Equal(t, "Zara", report.Merchants[1].Merchant)
	assert.Equal(t, "70.00", report.Merchants[1].Total.StringFixed(2))
}

func TestReportingService_SpendingsReport_SavingsRejected(t *testing.T) {
	env := newTestEnv(t)
	savings := env.openKind(t, env.alice, domain.AccountSavings, "RON", "1000")

	_, err := env.reportSvc.SpendingsReport(env.ctx, ports.ReportRequest{
		IBAN: savings.IBAN, Start: 0, End: 100,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported for a saving account")
}

func TestReportingService_BusinessReport(t *testing.T) {
	env := newTestEnv(t)
	business := env.openKind(t, env.alice, domain.AccountBusiness, "RON", "0")
	require.NoError(t, env.accountSvc.AddAssociate(env.ctx, ports.AddAssociateRequest{
		OwnerEmail:     env.alice.Email,
		AssociateEmail: env.bob.Email,
		IBAN:           business.IBAN,
		Role:           domain.RoleEmployee,
		Timestamp:      2,
	}))

	require.NoError(t, env.accountSvc.AddFunds(env.ctx, ports.AddFundsRequest{
		Email:     env.bob.Email,
		IBAN:      business.IBAN,
		Amount:    dec("400"),
		Timestamp: 5,
	}))
	card := business.AddCard(false)
	require.NoError(t, env.paymentSvc.PayOnline(env.ctx, ports.PayOnlineRequest{
		Email:      env.bob.Email,
		CardNumber: card.Number,
		Amount:     dec("100"),
		Currency:   "RON",
		Merchant:   "Carrefour",
		Timestamp:  6,
	}))

	report, err := env.reportSvc.BusinessReport(env.ctx, ports.ReportRequest{
		IBAN: business.IBAN, Start: 0, End: 100,
	})
	require.NoError(t, err)
	require.Len(t, report.Associates, 1)

	row := report.Associates[0]
	assert.Equal(t, "Ionescu Bob", row.Name)
	assert.Equal(t, domain.RoleEmployee, row.Role)
	assert.Equal(t, "400.00", row.Deposited.StringFixed(2))
	assert.Equal(t, "100.00", row.Spent.StringFixed(2))
	assert.Equal(t, "400.00", report.TotalDeposited.StringFixed(2))
	assert.Equal(t, "100.00", report.TotalSpent.StringFixed(2))
}

func TestReportingService_BusinessReport_WrongKind(t *testing.T) {
	env := newTestEnv(t)
	classic := env.openAccount(t, env.alice, "RON", "0")

	_, err := env.reportSvc.BusinessReport(env.ctx, ports.ReportRequest{
		IBAN: classic.IBAN, Start: 0, End: 100,
	})
	require.Error(t, err)
}
