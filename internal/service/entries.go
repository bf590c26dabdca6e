package service

import (
	"errors"

	"bank-ledger/internal/core/domain"
	"bank-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newEntryID() uuid.UUID {
	return uuid.New()
}

func insufficientFundsEntry(ts int64, iban string) *domain.LedgerEntry {
	return domain.NewEntry(ts, "Insufficient funds", iban)
}

func frozenEntry(ts int64, iban string) *domain.LedgerEntry {
	return domain.NewEntry(ts, "The card is frozen", iban)
}

func transferEntry(ts int64, description, iban, counterparty string, amount decimal.Decimal, currency, direction string) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:               newEntryID(),
		Timestamp:        ts,
		Description:      description,
		Type:             domain.EntryTransfer,
		IBANs:            []string{iban},
		Amount:           &amount,
		Currency:         currency,
		CounterpartyIBAN: counterparty,
		Direction:        direction,
	}
}

func cardOperationEntry(ts int64, description, iban, cardNumber, holder string) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:          newEntryID(),
		Timestamp:   ts,
		Description: description,
		Type:        domain.EntryCardOperation,
		IBANs:       []string{iban},
		CardNumber:  cardNumber,
		CardHolder:  holder,
	}
}

// appErrorMessage extracts the ledger-visible description of a structured
// error.
func appErrorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
