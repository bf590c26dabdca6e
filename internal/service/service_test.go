package service

import (
	"context"
	"io"
	"testing"

	"bank-ledger/internal/adapter/storage/memory"
	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/internal/exchange"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testEnv wires the services over in-memory repositories with a small
// RON/EUR/USD rate table and two seeded users.
type testEnv struct {
	ctx context.Context

	users     *memory.UserRepo
	accounts  *memory.AccountRepo
	merchants *memory.MerchantRepo
	resolver  *exchange.Resolver

	accountSvc *AccountServiceImpl
	paymentSvc *PaymentServiceImpl
	splitSvc   *SplitServiceImpl
	reportSvc  *ReportingServiceImpl

	alice *domain.User
	bob   *domain.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zerolog.New(io.Discard)
	resolver := exchange.NewResolver([]exchange.Rate{
		{From: "EUR", To: "RON", Rate: dec("5")},
		{From: "EUR", To: "USD", Rate: dec("1.1")},
	})

	env := &testEnv{
		ctx:       context.Background(),
		users:     memory.NewUserRepo(),
		accounts:  memory.NewAccountRepo(),
		merchants: memory.NewMerchantRepo(),
		resolver:  resolver,
	}
	policy := DefaultPolicy()
	env.accountSvc = NewAccountService(env.users, env.accounts, resolver, policy, log)
	env.paymentSvc = NewPaymentService(env.users, env.accounts, env.merchants, resolver, policy, log)
	env.splitSvc = NewSplitService(env.users, env.accounts, resolver, log)
	env.reportSvc = NewReportingService(env.users, env.accounts, log)

	env.alice = env.addUser(t, "Popescu", "Alice", "alice@bank.ro", "1990-04-02", "entrepreneur")
	env.bob = env.addUser(t, "Ionescu", "Bob", "bob@bank.ro", "2010-09-15", "student")

	require.NoError(t, env.merchants.Create(env.ctx, &domain.Merchant{
		Name: "Carrefour", ID: 1, IBAN: "RO24BANKMERCH0000001",
		Category: "Food", Strategy: domain.StrategyTransactionCount,
	}))
	require.NoError(t, env.merchants.Create(env.ctx, &domain.Merchant{
		Name: "Zara", ID: 2, IBAN: "RO24BANKMERCH0000002",
		Category: "Clothes", Strategy: domain.StrategySpendingThreshold,
	}))

	return env
}

func (e *testEnv) addUser(t *testing.T, last, first, email, birthDate, occupation string) *domain.User {
	t.Helper()
	u := &domain.User{
		FirstName:  first,
		LastName:   last,
		Email:      email,
		BirthDate:  birthDate,
		Occupation: occupation,
		Plan:       domain.DefaultPlanFor(occupation),
	}
	require.NoError(t, e.users.Create(e.ctx, u))
	return u
}

// openAccount opens a funded classic account for the user.
func (e *testEnv) openAccount(t *testing.T, u *domain.User, currency, balance string) *domain.Account {
	t.Helper()
	return e.openKind(t, u, domain.AccountClassic, currency, balance)
}

func (e *testEnv) openKind(t *testing.T, u *domain.User, kind domain.AccountKind, currency, balance string) *domain.Account {
	t.Helper()
	account, err := e.accountSvc.CreateAccount(e.ctx, ports.CreateAccountRequest{
		Email:     u.Email,
		Currency:  currency,
		Kind:      kind,
		Timestamp: 1,
	})
	require.NoError(t, err)
	if balance != "0" {
		account.Credit(dec(balance))
	}
	return account
}

func lastEntry(u *domain.User) *domain.LedgerEntry {
	if len(u.Ledger) == 0 {
		return nil
	}
	return u.Ledger[len(u.Ledger)-1]
}
