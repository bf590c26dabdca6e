package dto

import (
	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"

	"github.com/shopspring/decimal"
)

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreateAccountRequest is the request body for opening an account.
type CreateAccountRequest struct {
	Currency     string `json:"currency" binding:"required,len=3"`
	AccountType  string `json:"accountType" binding:"required,oneof=classic savings business"`
	InterestRate string `json:"interestRate,omitempty"`
	Timestamp    int64  `json:"timestamp" binding:"required"`
}

// AddFundsRequest is the request body for a deposit.
type AddFundsRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Timestamp int64  `json:"timestamp" binding:"required"`
}

// SetMinBalanceRequest configures the freeze threshold.
type SetMinBalanceRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Timestamp int64  `json:"timestamp" binding:"required"`
}

// SetAliasRequest registers a friendly name for an account.
type SetAliasRequest struct {
	Alias string `json:"alias" binding:"required"`
	IBAN  string `json:"account" binding:"required"`
}

// CreateCardRequest is the request body for issuing a card.
type CreateCardRequest struct {
	IBAN      string `json:"account" binding:"required"`
	OneTime   bool   `json:"oneTime"`
	Timestamp int64  `json:"timestamp" binding:"required"`
}

// DeleteCardRequest is the request body for destroying a card.
type DeleteCardRequest struct {
	CardNumber string `json:"cardNumber" binding:"required"`
	Timestamp  int64  `json:"timestamp" binding:"required"`
}

// PayOnlineRequest is the request body for a card payment.
type PayOnlineRequest struct {
	CardNumber string `json:"cardNumber" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Currency   string `json:"currency" binding:"required,len=3"`
	Merchant   string `json:"commerciant" binding:"required"`
	Timestamp  int64  `json:"timestamp" binding:"required"`
}

// SendFundsRequest is the request body for a transfer.
type SendFundsRequest struct {
	SenderIBAN  string `json:"account" binding:"required"`
	Receiver    string `json:"receiver" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp" binding:"required"`
}

// CashWithdrawalRequest is the request body for an ATM withdrawal.
type CashWithdrawalRequest struct {
	CardNumber string `json:"cardNumber" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Timestamp  int64  `json:"timestamp" binding:"required"`
}

// UpgradePlanRequest is the request body for a plan upgrade.
type UpgradePlanRequest struct {
	IBAN      string `json:"account" binding:"required"`
	Plan      string `json:"newPlanType" binding:"required,oneof=student standard silver gold"`
	Timestamp int64  `json:"timestamp" binding:"required"`
}

// CreateSplitRequest is the request body for opening a split payment.
type CreateSplitRequest struct {
	SplitType string   `json:"splitPaymentType" binding:"required,oneof=equal custom"`
	Accounts  []string `json:"accounts" binding:"required,min=1"`
	Total     string   `json:"amount" binding:"required"`
	Amounts   []string `json:"amountForUsers,omitempty"`
	Currency  string   `json:"currency" binding:"required,len=3"`
	Timestamp int64    `json:"timestamp" binding:"required"`
}

// SplitResponseRequest accepts or rejects the pending split of a type.
type SplitResponseRequest struct {
	SplitType string `json:"splitPaymentType" binding:"required,oneof=equal custom"`
	Timestamp int64  `json:"timestamp" binding:"required"`
}

// InterestRateRequest changes the rate on a savings account.
type InterestRateRequest struct {
	Rate      string `json:"interestRate" binding:"required"`
	Timestamp int64  `json:"timestamp" binding:"required"`
}

// WithdrawSavingsRequest moves savings funds into a classic account.
type WithdrawSavingsRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Currency  string `json:"currency" binding:"required,len=3"`
	Timestamp int64  `json:"timestamp" binding:"required"`
}

// AddAssociateRequest attaches a manager or employee to a business account.
type AddAssociateRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required,oneof=manager employee"`
	Timestamp int64  `json:"timestamp" binding:"required"`
}

// ChangeLimitRequest updates a business spending or deposit limit.
type ChangeLimitRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Timestamp int64  `json:"timestamp" binding:"required"`
}

// ReportQuery selects the inclusive timestamp window of a report.
type ReportQuery struct {
	Start int64 `form:"startTimestamp"`
	End   int64 `form:"endTimestamp" binding:"required"`
}

// CardView is the external representation of a card.
type CardView struct {
	CardNumber string `json:"cardNumber"`
	Status     string `json:"status"`
}

// AccountView is the external representation of an account.
type AccountView struct {
	IBAN     string     `json:"IBAN"`
	Balance  string     `json:"balance"`
	Currency string     `json:"currency"`
	Type     string     `json:"type"`
	Cards    []CardView `json:"cards"`
}

// UserView is the external representation of a user with owned accounts.
type UserView struct {
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Plan      string        `json:"plan"`
	Accounts  []AccountView `json:"accounts"`
}

// ReportView is the account report payload.
type ReportView struct {
	IBAN         string                `json:"IBAN"`
	Balance      string                `json:"balance"`
	Currency     string                `json:"currency"`
	Transactions []*domain.LedgerEntry `json:"transactions"`
}

// MerchantTotalView is one per-merchant aggregation row.
type MerchantTotalView struct {
	Merchant string `json:"commerciant"`
	Total    string `json:"total"`
}

// SpendingsReportView is the spendings report payload.
type SpendingsReportView struct {
	IBAN         string                `json:"IBAN"`
	Balance      string                `json:"balance"`
	Currency     string                `json:"currency"`
	Transactions []*domain.LedgerEntry `json:"transactions"`
	Merchants    []MerchantTotalView   `json:"commerciants"`
}

// AssociateView is one associate row of a business report.
type AssociateView struct {
	Name      string `json:"username"`
	Role      string `json:"role"`
	Deposited string `json:"deposited"`
	Spent     string `json:"spent"`
}

// BusinessReportView is the business report payload.
type BusinessReportView struct {
	IBAN           string          `json:"IBAN"`
	Balance        string          `json:"balance"`
	Currency       string          `json:"currency"`
	SpendingLimit  string          `json:"spending limit"`
	DepositLimit   string          `json:"deposit limit"`
	TotalDeposited string          `json:"total deposited"`
	TotalSpent     string          `json:"total spent"`
	Associates     []AssociateView `json:"associates"`
}

// ToUserView renders a user with the accounts they own.
func ToUserView(u *domain.User) UserView {
	view := UserView{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Plan:      string(u.Plan),
		Accounts:  []AccountView{},
	}
	for _, a := range u.OwnedAccounts() {
		view.Accounts = append(view.Accounts, ToAccountView(a))
	}
	return view
}

// ToAccountView renders an account with its cards.
func ToAccountView(a *domain.Account) AccountView {
	view := AccountView{
		IBAN:     a.IBAN,
		Balance:  a.Balance.String(),
		Currency: a.Currency,
		Type:     string(a.Kind),
		Cards:    []CardView{},
	}
	for _, c := range a.Cards {
		view.Cards = append(view.Cards, CardView{CardNumber: c.Number, Status: string(c.Status)})
	}
	return view
}

// ToReportView renders an account report.
func ToReportView(r *ports.AccountReport) ReportView {
	return ReportView{
		IBAN:         r.IBAN,
		Balance:      r.Balance.String(),
		Currency:     r.Currency,
		Transactions: nonNilEntries(r.Entries),
	}
}

// ToSpendingsReportView renders a spendings report.
func ToSpendingsReportView(r *ports.SpendingsReport) SpendingsReportView {
	view := SpendingsReportView{
		IBAN:         r.IBAN,
		Balance:      r.Balance.String(),
		Currency:     r.Currency,
		Transactions: nonNilEntries(r.Entries),
		Merchants:    []MerchantTotalView{},
	}
	for _, m := range r.Merchants {
		view.Merchants = append(view.Merchants, MerchantTotalView{Merchant: m.Merchant, Total: m.Total.String()})
	}
	return view
}

// ToBusinessReportView renders a business report.
func ToBusinessReportView(r *ports.BusinessReport) BusinessReportView {
	view := BusinessReportView{
		IBAN:           r.IBAN,
		Balance:        r.Balance.String(),
		Currency:       r.Currency,
		SpendingLimit:  r.SpendingLimit.String(),
		DepositLimit:   r.DepositLimit.String(),
		TotalDeposited: r.TotalDeposited.String(),
		TotalSpent:     r.TotalSpent.String(),
		Associates:     []AssociateView{},
	}
	for _, a := range r.Associates {
		view.Associates = append(view.Associates, AssociateView{
			Name:      a.Name,
			Role:      string(a.Role),
			Deposited: a.Deposited.String(),
			Spent:     a.Spent.String(),
		})
	}
	return view
}

// ParseAmount validates and parses a positive decimal amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func nonNilEntries(entries []*domain.LedgerEntry) []*domain.LedgerEntry {
	if entries == nil {
		return []*domain.LedgerEntry{}
	}
	return entries
}
