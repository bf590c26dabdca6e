package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType tags the type-specific payload of a ledger entry.
type EntryType string

const (
	EntryGeneric           EntryType = "generic"
	EntryCardPayment       EntryType = "cardPayment"
	EntryTransfer          EntryType = "transfer"
	EntryCardOperation     EntryType = "cardOperation"
	EntrySplitPayment      EntryType = "splitPayment"
	EntryInterest          EntryType = "interest"
	EntryPlanUpgrade       EntryType = "planUpgrade"
	EntryCashWithdrawal    EntryType = "cashWithdrawal"
	EntrySavingsWithdrawal EntryType = "savingsWithdrawal"
)

// LedgerEntry is one append-only financial event on a user's record. The
// associated IBAN set is what account-scoped report filtering matches
// against; the remaining fields are the type-specific payload.
type LedgerEntry struct {
	ID          uuid.UUID `json:"-"`
	Timestamp   int64     `json:"timestamp"`
	Description string    `json:"description"`
	Type        EntryType `json:"-"`
	IBANs       []string  `json:"-"`

	Amount           *decimal.Decimal  `json:"amount,omitempty"`
	Currency         string            `json:"currency,omitempty"`
	CounterpartyIBAN string            `json:"counterparty,omitempty"`
	Direction        string            `json:"direction,omitempty"` // sent | received
	Merchant         string            `json:"merchant,omitempty"`
	CardNumber       string            `json:"card,omitempty"`
	CardHolder       string            `json:"cardHolder,omitempty"`
	NewPlan          string            `json:"newPlanType,omitempty"`
	SplitType        string            `json:"splitPaymentType,omitempty"`
	SplitAmounts     []decimal.Decimal `json:"amounts,omitempty"`
	InvolvedIBANs    []string          `json:"involvedAccounts,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// NewEntry creates a plain descriptive entry bound to one account.
func NewEntry(ts int64, description, iban string) *LedgerEntry {
	return &LedgerEntry{
		ID:          uuid.New(),
		Timestamp:   ts,
		Description: description,
		Type:        EntryGeneric,
		IBANs:       []string{iban},
	}
}

// Matches reports whether the entry is associated with the given IBAN.
func (e *LedgerEntry) Matches(iban string) bool {
	for _, i := range e.IBANs {
		if i == iban {
			return true
		}
	}
	return false
}

// InWindow reports whether the entry falls inside the inclusive window.
func (e *LedgerEntry) InWindow(start, end int64) bool {
	return e.Timestamp >= start && e.Timestamp <= end
}

// MerchantSpend reports whether the entry contributes to a spendings report
// (card payments directed at a merchant).
func (e *LedgerEntry) MerchantSpend() bool {
	return e.Type == EntryCardPayment && e.Merchant != "" && e.Amount != nil
}
