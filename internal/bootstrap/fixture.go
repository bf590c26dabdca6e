// Package bootstrap seeds the in-memory state from a JSON fixture at
// startup: users, merchants and the exchange-rate graph.
package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/internal/exchange"
)

// Fixture is the seed file layout.
type Fixture struct {
	Users         []FixtureUser     `json:"users"`
	ExchangeRates []exchange.Rate   `json:"exchangeRates"`
	Merchants     []FixtureMerchant `json:"commerciants"`
}

// FixtureUser carries the identity fields plus a plaintext password that is
// hashed during seeding and never stored.
type FixtureUser struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	BirthDate  string `json:"birthDate"`
	Occupation string `json:"occupation"`
}

type FixtureMerchant struct {
	Name     string `json:"commerciant"`
	ID       int    `json:"id"`
	IBAN     string `json:"account"`
	Category string `json:"type"`
	Strategy string `json:"cashbackStrategy"`
}

// LoadFixture parses the seed file.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var fx Fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return &fx, nil
}

// Seed hashes the fixture passwords, creates the users and merchants and
// builds the exchange resolver. Seeding is all-or-nothing: the first failure
// aborts startup.
func Seed(
	ctx context.Context,
	fx *Fixture,
	users ports.UserRepository,
	merchants ports.MerchantRepository,
) (*exchange.Resolver, error) {
	for _, fu := range fx.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(fu.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", fu.Email, err)
		}
		user := &domain.User{
			FirstName:    fu.FirstName,
			LastName:     fu.LastName,
			Email:        fu.Email,
			BirthDate:    fu.BirthDate,
			Occupation:   fu.Occupation,
			PasswordHash: string(hash),
			Plan:         domain.DefaultPlanFor(fu.Occupation),
		}
		if err := users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("seeding user %s: %w", fu.Email, err)
		}
	}

	for _, fm := range fx.Merchants {
		strategy, err := domain.ParseCashbackStrategy(fm.Strategy)
		if err != nil {
			return nil, fmt.Errorf("seeding merchant %s: %w", fm.Name, err)
		}
		merchant := &domain.Merchant{
			Name:     fm.Name,
			ID:       fm.ID,
			IBAN:     fm.IBAN,
			Category: fm.Category,
			Strategy: strategy,
		}
		if err := merchants.Create(ctx, merchant); err != nil {
			return nil, fmt.Errorf("seeding merchant %s: %w", fm.Name, err)
		}
	}

	return exchange.NewResolver(fx.ExchangeRates), nil
}
