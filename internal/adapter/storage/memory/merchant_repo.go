package memory

import (
	"context"

	"bank-ledger/internal/core/domain"
	"bank-ledger/pkg/apperror"
)

// MerchantRepo implements ports.MerchantRepository on top of process memory.
type MerchantRepo struct {
	byName map[string]*domain.Merchant
	byIBAN map[string]*domain.Merchant
	order  []string
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo() *MerchantRepo {
	return &MerchantRepo{
		byName: make(map[string]*domain.Merchant),
		byIBAN: make(map[string]*domain.Merchant),
	}
}

// Create registers a merchant keyed by name and IBAN.
func (r *MerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	if _, ok := r.byName[m.Name]; ok {
		return apperror.Validation("merchant already exists: " + m.Name)
	}
	r.byName[m.Name] = m
	r.byIBAN[m.IBAN] = m
	r.order = append(r.order, m.Name)
	return nil
}

// GetByName fetches a merchant by display name.
func (r *MerchantRepo) GetByName(ctx context.Context, name string) (*domain.Merchant, error) {
	m, ok := r.byName[name]
	if !ok {
		return nil, apperror.ErrNotFound("Merchant")
	}
	return m, nil
}

// GetByIBAN fetches a merchant by its receiving IBAN.
func (r *MerchantRepo) GetByIBAN(ctx context.Context, iban string) (*domain.Merchant, error) {
	m, ok := r.byIBAN[iban]
	if !ok {
		return nil, apperror.ErrNotFound("Merchant")
	}
	return m, nil
}

// List returns every merchant in insertion order.
func (r *MerchantRepo) List(ctx context.Context) ([]*domain.Merchant, error) {
	merchants := make([]*domain.Merchant, 0, len(r.order))
	for _, name := range r.order {
		merchants = append(merchants, r.byName[name])
	}
	return merchants, nil
}
