package ports

import (
	"context"
	"time"

	"bank-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// AuthService handles credential verification and JWT issuance for the
// HTTP surface.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Email string
}

// AccountService covers account, card and business-account administration.
type AccountService interface {
	CreateAccount(ctx context.Context, req CreateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, email, iban string, timestamp int64) error
	AddFunds(ctx context.Context, req AddFundsRequest) error
	SetMinBalance(ctx context.Context, iban string, amount decimal.Decimal, timestamp int64) error
	SetAlias(ctx context.Context, email, alias, iban string) error

	CreateCard(ctx context.Context, req CreateCardRequest) (*domain.Card, error)
	DeleteCard(ctx context.Context, email, cardNumber string, timestamp int64) error
	CheckCardStatus(ctx context.Context, cardNumber string, timestamp int64) error

	AddInterest(ctx context.Context, iban string, timestamp int64) error
	ChangeInterestRate(ctx context.Context, iban string, rate decimal.Decimal, timestamp int64) error
	WithdrawSavings(ctx context.Context, req WithdrawSavingsRequest) error

	AddAssociate(ctx context.Context, req AddAssociateRequest) error
	ChangeSpendingLimit(ctx context.Context, req ChangeLimitRequest) error
	ChangeDepositLimit(ctx context.Context, req ChangeLimitRequest) error
}

// CreateAccountRequest holds validated input for opening an account.
type CreateAccountRequest struct {
	Email        string
	Currency     string
	Kind         domain.AccountKind
	InterestRate decimal.Decimal
	Timestamp    int64
}

// AddFundsRequest holds validated input for a deposit.
type AddFundsRequest struct {
	Email     string // acting user, checked against business deposit limits
	IBAN      string
	Amount    decimal.Decimal
	Timestamp int64
}

// CreateCardRequest holds validated input for issuing a card.
type CreateCardRequest struct {
	Email     string
	IBAN      string
	OneTime   bool
	Timestamp int64
}

// WithdrawSavingsRequest moves savings funds into an own classic account.
type WithdrawSavingsRequest struct {
	Email     string
	IBAN      string // savings account
	Amount    decimal.Decimal
	Currency  string
	Timestamp int64
}

// AddAssociateRequest attaches a manager or employee to a business account.
type AddAssociateRequest struct {
	OwnerEmail     string
	AssociateEmail string
	IBAN           string
	Role           domain.BusinessRole
	Timestamp      int64
}

// ChangeLimitRequest updates a business spending or deposit limit.
type ChangeLimitRequest struct {
	Email     string
	IBAN      string
	Limit     decimal.Decimal
	Timestamp int64
}

// PaymentService covers the money-moving operations.
type PaymentService interface {
	PayOnline(ctx context.Context, req PayOnlineRequest) error
	SendFunds(ctx context.Context, req SendFundsRequest) error
	CashWithdrawal(ctx context.Context, req CashWithdrawalRequest) error
	UpgradePlan(ctx context.Context, req UpgradePlanRequest) error
}

// PayOnlineRequest is a card payment to a merchant, in the request currency.
type PayOnlineRequest struct {
	Email      string
	CardNumber string
	Amount     decimal.Decimal
	Currency   string
	Merchant   string
	Timestamp  int64
}

// SendFundsRequest is an account-to-account or account-to-merchant transfer.
// Receiver may be an IBAN or a registered alias.
type SendFundsRequest struct {
	Email       string
	SenderIBAN  string
	Receiver    string
	Amount      decimal.Decimal
	Description string
	Timestamp   int64
}

// CashWithdrawalRequest withdraws a reference-currency amount via a card.
type CashWithdrawalRequest struct {
	Email      string
	CardNumber string
	Amount     decimal.Decimal
	Timestamp  int64
}

// UpgradePlanRequest moves a user to a higher service plan.
type UpgradePlanRequest struct {
	IBAN      string
	Plan      domain.Plan
	Timestamp int64
}

// SplitService manages the split-payment consensus protocol.
type SplitService interface {
	Create(ctx context.Context, req CreateSplitRequest) error
	Accept(ctx context.Context, email string, kind domain.SplitKind) error
	Reject(ctx context.Context, email string, kind domain.SplitKind) error
}

// CreateSplitRequest opens a pending split across the listed accounts.
// Amounts is ignored for equal splits.
type CreateSplitRequest struct {
	Kind      domain.SplitKind
	IBANs     []string
	Total     decimal.Decimal
	Amounts   []decimal.Decimal
	Currency  string
	Timestamp int64
}

// ReportingService covers the read-only query surface.
type ReportingService interface {
	Users(ctx context.Context) ([]*domain.User, error)
	Transactions(ctx context.Context, email string) ([]*domain.LedgerEntry, error)
	AccountReport(ctx context.Context, req ReportRequest) (*AccountReport, error)
	SpendingsReport(ctx context.Context, req ReportRequest) (*SpendingsReport, error)
	BusinessReport(ctx context.Context, req ReportRequest) (*BusinessReport, error)
}

// ReportRequest selects an account and a closed timestamp window.
type ReportRequest struct {
	IBAN  string
	Start int64
	End   int64
}

// AccountReport is the per-account transaction history inside a window.
type AccountReport struct {
	IBAN     string
	Balance  decimal.Decimal
	Currency string
	Entries  []*domain.LedgerEntry
}

// MerchantTotal aggregates card-payment spend per merchant.
type MerchantTotal struct {
	Merchant string
	Total    decimal.Decimal
}

// SpendingsReport is the card-payment view of an account, with per-merchant
// totals sorted by merchant name.
type SpendingsReport struct {
	IBAN      string
	Balance   decimal.Decimal
	Currency  string
	Entries   []*domain.LedgerEntry
	Merchants []MerchantTotal
}

// AssociateActivity is one associate row of a business report.
type AssociateActivity struct {
	Name      string
	Role      domain.BusinessRole
	Deposited decimal.Decimal
	Spent     decimal.Decimal
}

// BusinessReport aggregates associate activity on a business account.
type BusinessReport struct {
	IBAN           string
	Balance        decimal.Decimal
	Currency       string
	SpendingLimit  decimal.Decimal
	DepositLimit   decimal.Decimal
	TotalDeposited decimal.Decimal
	TotalSpent     decimal.Decimal
	Associates     []AssociateActivity
}
