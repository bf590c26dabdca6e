package memory

import (
	"context"

	"bank-ledger/internal/core/domain"
	"bank-ledger/pkg/apperror"
)

// UserRepo implements ports.UserRepository on top of process memory.
type UserRepo struct {
	byEmail map[string]*domain.User
	byIBAN  map[string]string
	order   []string
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo() *UserRepo {
	return &UserRepo{
		byEmail: make(map[string]*domain.User),
		byIBAN:  make(map[string]string),
	}
}

// Create registers a user keyed by email. Insertion order is preserved
// for listings.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return apperror.Validation("user already exists: " + u.Email)
	}
	r.byEmail[u.Email] = u
	r.order = append(r.order, u.Email)
	return nil
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperror.ErrNotFound("User")
	}
	return u, nil
}

// GetByIBAN resolves the user owning the given account IBAN.
func (r *UserRepo) GetByIBAN(ctx context.Context, iban string) (*domain.User, error) {
	email, ok := r.byIBAN[iban]
	if !ok {
		return nil, apperror.ErrNotFound("User")
	}
	return r.GetByEmail(ctx, email)
}

// List returns every user in insertion order.
func (r *UserRepo) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.order))
	for _, email := range r.order {
		users = append(users, r.byEmail[email])
	}
	return users, nil
}

// BindIBAN associates an account IBAN with its owning user.
func (r *UserRepo) BindIBAN(ctx context.Context, iban, email string) error {
	if _, ok := r.byEmail[email]; !ok {
		return apperror.ErrNotFound("User")
	}
	r.byIBAN[iban] = email
	return nil
}

// UnbindIBAN removes the IBAN association.
func (r *UserRepo) UnbindIBAN(ctx context.Context, iban string) error {
	delete(r.byIBAN, iban)
	return nil
}
