package memory

import (
	"context"

	"bank-ledger/internal/core/domain"
	"bank-ledger/pkg/apperror"
)

// AccountRepo implements ports.AccountRepository on top of process memory.
// Aliases live here so transfers can address accounts by friendly name.
type AccountRepo struct {
	byIBAN  map[string]*domain.Account
	aliases map[string]string
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		byIBAN:  make(map[string]*domain.Account),
		aliases: make(map[string]string),
	}
}

// Create registers an account keyed by IBAN.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	if _, ok := r.byIBAN[a.IBAN]; ok {
		return apperror.Validation("account already exists: " + a.IBAN)
	}
	r.byIBAN[a.IBAN] = a
	return nil
}

// GetByIBAN fetches an account by IBAN.
func (r *AccountRepo) GetByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	a, ok := r.byIBAN[iban]
	if !ok {
		return nil, apperror.ErrNotFound("Account")
	}
	return a, nil
}

// Delete removes an account and any aliases pointing at it.
func (r *AccountRepo) Delete(ctx context.Context, iban string) error {
	if _, ok := r.byIBAN[iban]; !ok {
		return apperror.ErrNotFound("Account")
	}
	delete(r.byIBAN, iban)
	for alias, target := range r.aliases {
		if target == iban {
			delete(r.aliases, alias)
		}
	}
	return nil
}

// SetAlias maps a friendly name to an IBAN. Re-registering an alias
// repoints it.
func (r *AccountRepo) SetAlias(ctx context.Context, alias, iban string) error {
	if _, ok := r.byIBAN[iban]; !ok {
		return apperror.ErrNotFound("Account")
	}
	r.aliases[alias] = iban
	return nil
}

// Resolve accepts an alias or a raw IBAN and returns the account.
func (r *AccountRepo) Resolve(ctx context.Context, aliasOrIBAN string) (*domain.Account, error) {
	iban := aliasOrIBAN
	if target, ok := r.aliases[aliasOrIBAN]; ok {
		iban = target
	}
	return r.GetByIBAN(ctx, iban)
}
