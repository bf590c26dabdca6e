package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitKind is how the total is divided across participants.
type SplitKind string

const (
	SplitEqual  SplitKind = "equal"
	SplitCustom SplitKind = "custom"
)

// SplitStatus is the outcome state of a split payment.
type SplitStatus string

const (
	SplitPending   SplitStatus = "pending"
	SplitSettled   SplitStatus = "settled"
	SplitCancelled SplitStatus = "cancelled"
)

// SplitParticipant is one (user, account, owed amount) tuple. Owed is in the
// split currency; Converted is the owed amount frozen in the participant's
// account currency at creation time, never re-resolved.
type SplitParticipant struct {
	User      *User
	IBAN      string
	Owed      decimal.Decimal
	Converted decimal.Decimal
}

// SplitPayment is a shared charge requiring every participant's consent
// before settlement. It is the only multi-step state in the engine: it waits
// on the participants' queues across external calls until resolved.
type SplitPayment struct {
	ID           uuid.UUID
	Timestamp    int64
	Total        decimal.Decimal
	Currency     string
	Kind         SplitKind
	Participants []SplitParticipant
	Accepted     int
	Status       SplitStatus
}

// Description renders the ledger description shared by every outcome entry.
func (sp *SplitPayment) Description() string {
	return fmt.Sprintf("Split payment of %s %s", sp.Total.StringFixed(2), sp.Currency)
}

// Amounts returns the owed amounts in participant order (pre-conversion).
func (sp *SplitPayment) Amounts() []decimal.Decimal {
	out := make([]decimal.Decimal, len(sp.Participants))
	for i, p := range sp.Participants {
		out[i] = p.Owed
	}
	return out
}

// IBANs returns the involved account identifiers in participant order.
func (sp *SplitPayment) IBANs() []string {
	out := make([]string, len(sp.Participants))
	for i, p := range sp.Participants {
		out[i] = p.IBAN
	}
	return out
}

// Resolved reports whether the split has reached a terminal state.
func (sp *SplitPayment) Resolved() bool {
	return sp.Status != SplitPending
}
