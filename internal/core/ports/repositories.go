package ports

import (
	"context"

	"bank-ledger/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIBAN(ctx context.Context, iban string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// BindIBAN associates an account IBAN with its owning user so
	// GetByIBAN can resolve transfers addressed by account.
	BindIBAN(ctx context.Context, iban, email string) error
	UnbindIBAN(ctx context.Context, iban string) error
}

// AccountRepository defines persistence operations for accounts and aliases.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByIBAN(ctx context.Context, iban string) (*domain.Account, error)
	Delete(ctx context.Context, iban string) error
	// SetAlias maps a friendly name to an IBAN. Resolve accepts either
	// an alias or a raw IBAN and returns the account.
	SetAlias(ctx context.Context, alias, iban string) error
	Resolve(ctx context.Context, aliasOrIBAN string) (*domain.Account, error)
}

// MerchantRepository defines lookup operations for seeded merchants.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByName(ctx context.Context, name string) (*domain.Merchant, error)
	GetByIBAN(ctx context.Context, iban string) (*domain.Merchant, error)
	List(ctx context.Context) ([]*domain.Merchant, error)
}
