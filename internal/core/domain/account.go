package domain

import (
	"bank-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

// AccountKind tags the account variant.
type AccountKind string

const (
	AccountClassic  AccountKind = "classic"
	AccountSavings  AccountKind = "savings"
	AccountBusiness AccountKind = "business"
)

// BusinessRole is a participant role on a shared business account.
type BusinessRole string

const (
	RoleOwner    BusinessRole = "owner"
	RoleManager  BusinessRole = "manager"
	RoleEmployee BusinessRole = "employee"
)

// BusinessMovement is one participant-attributed money movement on a business
// account, kept separately from the user-level ledger and used only for
// reporting aggregation. Amount is signed: credits positive, debits negative.
type BusinessMovement struct {
	Participant string          `json:"participant"` // "LastName FirstName"
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   int64           `json:"timestamp"`
	Merchant    string          `json:"merchant,omitempty"`
}

// Account owns a balance, its freeze policy, a card set and the cashback
// bookkeeping. Variant-specific fields are populated per Kind instead of
// subtyping.
type Account struct {
	IBAN     string
	Currency string
	Owner    string // owner's email
	Kind     AccountKind

	Balance    decimal.Decimal
	MinBalance *decimal.Decimal

	Cards []*Card

	// Cashback bookkeeping, all amounts in the reference currency.
	SpentByCategory map[string]decimal.Decimal
	RewardedTier    map[string]int64
	PaymentCount    int
	Vouchers        map[string]decimal.Decimal // pending percentage by category
	VoucherUsed     map[string]bool

	// Savings variant.
	InterestRate decimal.Decimal

	// Business variant.
	SpendingLimit decimal.Decimal
	DepositLimit  decimal.Decimal
	Managers      []string // emails
	Employees     []string // emails
	Movements     []BusinessMovement
}

// NewAccount creates an account of the given kind. Savings accounts carry the
// interest rate; business accounts get their default limits set by the caller
// (they are defined in the reference currency and need conversion).
func NewAccount(kind AccountKind, currency, owner string, interestRate decimal.Decimal) *Account {
	return &Account{
		IBAN:            GenerateIBAN(),
		Currency:        currency,
		Owner:           owner,
		Kind:            kind,
		Balance:         decimal.Zero,
		SpentByCategory: make(map[string]decimal.Decimal),
		RewardedTier:    make(map[string]int64),
		Vouchers:        make(map[string]decimal.Decimal),
		VoucherUsed:     make(map[string]bool),
		InterestRate:    interestRate,
	}
}

// Card returns the card with the given number, or nil.
func (a *Account) Card(number string) *Card {
	for _, c := range a.Cards {
		if c.Number == number {
			return c
		}
	}
	return nil
}

// AddCard attaches a new card of the requested flavor.
func (a *Account) AddCard(oneTime bool) *Card {
	card := NewCard(oneTime)
	a.Cards = append(a.Cards, card)
	return card
}

// RemoveCard detaches the card with the given number.
func (a *Account) RemoveCard(number string) {
	for i, c := range a.Cards {
		if c.Number == number {
			a.Cards = append(a.Cards[:i], a.Cards[i+1:]...)
			return
		}
	}
}

// Credit adds funds and rounds to cents.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = Round2(a.Balance.Add(amount))
}

// Debit removes funds and rounds to cents. Callers check availability first;
// a balance never goes negative as the result of a core operation.
func (a *Account) Debit(amount decimal.Decimal) {
	a.Balance = Round2(a.Balance.Sub(amount))
}

// Covers reports whether the balance covers the given debit.
func (a *Account) Covers(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// AccrueInterest computes interestRate × balance, credits it and returns the
// delta. Only savings accounts accrue interest.
func (a *Account) AccrueInterest() (decimal.Decimal, error) {
	if a.Kind != AccountSavings {
		return decimal.Zero, apperror.ErrNotSavingsAccount()
	}
	interest := Round2(a.InterestRate.Mul(a.Balance))
	a.Credit(interest)
	return interest, nil
}

// SetInterestRate replaces the interest rate. Only valid for savings accounts.
func (a *Account) SetInterestRate(rate decimal.Decimal) error {
	if a.Kind != AccountSavings {
		return apperror.ErrNotSavingsAccount()
	}
	a.InterestRate = rate
	return nil
}

// RoleOf resolves a participant's role on a business account.
func (a *Account) RoleOf(email string) (BusinessRole, bool) {
	if a.Owner == email {
		return RoleOwner, true
	}
	for _, m := range a.Managers {
		if m == email {
			return RoleManager, true
		}
	}
	for _, e := range a.Employees {
		if e == email {
			return RoleEmployee, true
		}
	}
	return "", false
}

// AddAssociate registers a manager or employee on a business account.
func (a *Account) AddAssociate(email string, role BusinessRole) error {
	if a.Kind != AccountBusiness {
		return apperror.ErrUnsupportedOperation("This is not a business account")
	}
	switch role {
	case RoleManager:
		a.Managers = append(a.Managers, email)
	case RoleEmployee:
		a.Employees = append(a.Employees, email)
	default:
		return apperror.Validation("unknown business role: " + string(role))
	}
	return nil
}

// AuthorizeDeposit gates a credit by the acting participant. The owner and
// managers are unconstrained; employees are capped by the deposit limit.
func (a *Account) AuthorizeDeposit(email string, amount decimal.Decimal) error {
	role, ok := a.RoleOf(email)
	if !ok {
		return apperror.ErrNotAuthorized("You are not authorized to make this transaction.")
	}
	if role == RoleEmployee && amount.GreaterThan(a.DepositLimit) {
		return apperror.ErrNotAuthorized("Deposit limit exceeded")
	}
	return nil
}

// AuthorizeSpend gates a debit by the acting participant. The owner and
// managers are unconstrained; employees are capped by the spending limit.
func (a *Account) AuthorizeSpend(email string, amount decimal.Decimal) error {
	role, ok := a.RoleOf(email)
	if !ok {
		return apperror.ErrNotAuthorized("You are not authorized to make this transaction.")
	}
	if role == RoleEmployee && amount.GreaterThan(a.SpendingLimit) {
		return apperror.ErrNotAuthorized("Spending limit exceeded")
	}
	return nil
}

// SetSpendingLimit replaces the spending cap. Owner only.
func (a *Account) SetSpendingLimit(email string, limit decimal.Decimal) error {
	if a.Kind != AccountBusiness {
		return apperror.ErrUnsupportedOperation("This is not a business account")
	}
	if a.Owner != email {
		return apperror.ErrNotAuthorized("You must be owner in order to change spending limit.")
	}
	a.SpendingLimit = limit
	return nil
}

// SetDepositLimit replaces the deposit cap. Owner only.
func (a *Account) SetDepositLimit(email string, limit decimal.Decimal) error {
	if a.Kind != AccountBusiness {
		return apperror.ErrUnsupportedOperation("This is not a business account")
	}
	if a.Owner != email {
		return apperror.ErrNotAuthorized("You must be owner in order to change deposit limit.")
	}
	a.DepositLimit = limit
	return nil
}

// RecordMovement appends a participant-attributed movement to the business
// activity log. No-op for other variants.
func (a *Account) RecordMovement(participant string, amount decimal.Decimal, ts int64, merchant string) {
	if a.Kind != AccountBusiness {
		return
	}
	a.Movements = append(a.Movements, BusinessMovement{
		Participant: participant,
		Amount:      amount,
		Timestamp:   ts,
		Merchant:    merchant,
	})
}

// ResetSpending clears the running per-category spend counters used by the
// progressive cashback tiers. Invoked on plan upgrades.
func (a *Account) ResetSpending() {
	a.SpentByCategory = make(map[string]decimal.Decimal)
	a.RewardedTier = make(map[string]int64)
}
