package domain

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardStatusActive CardStatus = "active"
	CardStatusFrozen CardStatus = "frozen"
)

// Card is a payment instrument attached to an account. A one-time card is
// destroyed and replaced by a fresh one immediately after its first
// successful payment.
type Card struct {
	Number  string     `json:"cardNumber"`
	Status  CardStatus `json:"status"`
	OneTime bool       `json:"-"`
}

// NewCard creates an active card.
func NewCard(oneTime bool) *Card {
	return &Card{
		Number:  GenerateCardNumber(),
		Status:  CardStatusActive,
		OneTime: oneTime,
	}
}

// Frozen reports whether the card may not be used for debit.
func (c *Card) Frozen() bool {
	return c.Status == CardStatusFrozen
}

// Freeze marks the card frozen.
func (c *Card) Freeze() {
	c.Status = CardStatusFrozen
}
