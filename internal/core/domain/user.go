package domain

// User is an identity holding a mutable plan, account references and the
// append-only ledger. Business accounts appear in several users' account
// lists under different roles; ownership is decided by Account.Owner.
type User struct {
	FirstName    string
	LastName     string
	Email        string
	BirthDate    string // YYYY-MM-DD
	Occupation   string
	PasswordHash string

	Plan Plan

	// QualifyingTransfers counts outbound transfers at or above the
	// promotion threshold, driving the silver-to-gold auto-promotion.
	QualifyingTransfers int

	Accounts []*Account
	Ledger   []*LedgerEntry

	// SplitQueue is the personal FIFO queue of pending split payments; a
	// user only ever resolves its head.
	SplitQueue []*SplitPayment
}

// FullName renders the participant identity used in business reporting.
func (u *User) FullName() string {
	return u.LastName + " " + u.FirstName
}

// Append records a ledger entry.
func (u *User) Append(e *LedgerEntry) {
	u.Ledger = append(u.Ledger, e)
}

// AttachAccount adds an account reference.
func (u *User) AttachAccount(a *Account) {
	u.Accounts = append(u.Accounts, a)
}

// DetachAccount removes an account reference by IBAN.
func (u *User) DetachAccount(iban string) {
	for i, a := range u.Accounts {
		if a.IBAN == iban {
			u.Accounts = append(u.Accounts[:i], u.Accounts[i+1:]...)
			return
		}
	}
}

// AccountByIBAN returns the referenced account, or nil.
func (u *User) AccountByIBAN(iban string) *Account {
	for _, a := range u.Accounts {
		if a.IBAN == iban {
			return a
		}
	}
	return nil
}

// AccountWithCard locates the account holding the card number, if any.
func (u *User) AccountWithCard(number string) (*Account, *Card) {
	for _, a := range u.Accounts {
		if c := a.Card(number); c != nil {
			return a, c
		}
	}
	return nil, nil
}

// OwnedAccounts filters the references down to accounts this user owns.
func (u *User) OwnedAccounts() []*Account {
	out := make([]*Account, 0, len(u.Accounts))
	for _, a := range u.Accounts {
		if a.Owner == u.Email {
			out = append(out, a)
		}
	}
	return out
}

// EnqueueSplit appends a pending split payment to the personal queue.
func (u *User) EnqueueSplit(sp *SplitPayment) {
	u.SplitQueue = append(u.SplitQueue, sp)
}

// DequeueSplit pops the head of the queue, or nil when empty.
func (u *User) DequeueSplit() *SplitPayment {
	if len(u.SplitQueue) == 0 {
		return nil
	}
	head := u.SplitQueue[0]
	u.SplitQueue = u.SplitQueue[1:]
	return head
}

// DropSplit removes a resolved split payment from anywhere in the queue.
func (u *User) DropSplit(sp *SplitPayment) {
	for i, queued := range u.SplitQueue {
		if queued == sp {
			u.SplitQueue = append(u.SplitQueue[:i], u.SplitQueue[i+1:]...)
			return
		}
	}
}
