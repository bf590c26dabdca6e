package service

import (
	"context"
	"fmt"
	"time"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/internal/exchange"
	"bank-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const adultAge = 21

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	userRepo    ports.UserRepository
	accountRepo ports.AccountRepository
	resolver    *exchange.Resolver
	policy      Policy
	log         zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(
	userRepo ports.UserRepository,
	accountRepo ports.AccountRepository,
	resolver *exchange.Resolver,
	policy Policy,
	log zerolog.Logger,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		resolver:    resolver,
		policy:      policy,
		log:         log,
	}
}

// CreateAccount opens a classic, savings or business account for the user.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, req ports.CreateAccountRequest) (*domain.Account, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	account := domain.NewAccount(req.Kind, req.Currency, req.Email, req.InterestRate)
	if req.Kind == domain.AccountBusiness {
		limit, err := s.resolver.Convert(s.policy.InitialBusinessLimit, domain.ReferenceCurrency, req.Currency)
		if err != nil {
			return nil, err
		}
		account.SpendingLimit = domain.Round2(limit)
		account.DepositLimit = domain.Round2(limit)
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	if err := s.userRepo.BindIBAN(ctx, account.IBAN, req.Email); err != nil {
		return nil, err
	}
	user.AttachAccount(account)
	user.Append(domain.NewEntry(req.Timestamp, "New account created", account.IBAN))

	s.log.Info().Str("iban", account.IBAN).Str("kind", string(req.Kind)).Msg("account created")
	return account, nil
}

// DeleteAccount removes an owned account; rejected when funds remain.
func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, email, iban string, timestamp int64) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	account, err := s.accountRepo.GetByIBAN(ctx, iban)
	if err != nil {
		return err
	}
	if account.Owner != email {
		return apperror.ErrNotAuthorized("You are not authorized to make this transaction.")
	}
	if !account.Balance.IsZero() {
		user.Append(domain.NewEntry(timestamp, "Account couldn't be deleted - there are funds remaining", iban))
		return apperror.ErrBalanceNotEmpty()
	}

	if err := s.accountRepo.Delete(ctx, iban); err != nil {
		return err
	}
	if err := s.userRepo.UnbindIBAN(ctx, iban); err != nil {
		return err
	}
	user.DetachAccount(iban)
	for _, associate := range append(append([]string{}, account.Managers...), account.Employees...) {
		if u, err := s.userRepo.GetByEmail(ctx, associate); err == nil {
			u.DetachAccount(iban)
		}
	}
	return nil
}

// AddFunds credits an account, applying the business deposit gate.
func (s *AccountServiceImpl) AddFunds(ctx context.Context, req ports.AddFundsRequest) error {
	account, err := s.accountRepo.GetByIBAN(ctx, req.IBAN)
	if err != nil {
		return err
	}

	if account.Kind == domain.AccountBusiness {
		if err := account.AuthorizeDeposit(req.Email, req.Amount); err != nil {
			return err
		}
		if user, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
			account.RecordMovement(user.FullName(), domain.Round2(req.Amount), req.Timestamp, "")
		}
	}

	account.Credit(req.Amount)
	return nil
}

// SetMinBalance configures the freeze threshold for an account.
func (s *AccountServiceImpl) SetMinBalance(ctx context.Context, iban string, amount decimal.Decimal, timestamp int64) error {
	account, err := s.accountRepo.GetByIBAN(ctx, iban)
	if err != nil {
		return err
	}
	min := domain.Round2(amount)
	account.MinBalance = &min
	return nil
}

// SetAlias registers a friendly name for an account.
func (s *AccountServiceImpl) SetAlias(ctx context.Context, email, alias, iban string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return err
	}
	return s.accountRepo.SetAlias(ctx, alias, iban)
}

// CreateCard issues a card on an account the user participates in.
func (s *AccountServiceImpl) CreateCard(ctx context.Context, req ports.CreateCardRequest) (*domain.Card, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	account := user.AccountByIBAN(req.IBAN)
	if account == nil {
		return nil, apperror.ErrNotFound("Account")
	}

	card := account.AddCard(req.OneTime)
	user.Append(cardOperationEntry(req.Timestamp, "New card created", account.IBAN, card.Number, req.Email))
	return card, nil
}

// DeleteCard destroys a card held by the user.
func (s *AccountServiceImpl) DeleteCard(ctx context.Context, email, cardNumber string, timestamp int64) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	account, card := user.AccountWithCard(cardNumber)
	if card == nil {
		return apperror.ErrCardNotFound()
	}

	account.RemoveCard(cardNumber)
	user.Append(cardOperationEntry(timestamp, "The card has been destroyed", account.IBAN, cardNumber, email))
	return nil
}

// CheckCardStatus applies the freeze policy out-of-band. Two independent
// thresholds: the hard floor freezes with a warning about the minimum amount
// of funds; a configured minimum balance freezes on its own.
func (s *AccountServiceImpl) CheckCardStatus(ctx context.Context, cardNumber string, timestamp int64) error {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		account, card := user.AccountWithCard(cardNumber)
		if card == nil {
			continue
		}
		if card.Frozen() {
			return nil
		}
		if account.Balance.LessThanOrEqual(s.policy.FreezeFloor) {
			card.Freeze()
			user.Append(domain.NewEntry(timestamp,
				"You have reached the minimum amount of funds, the card will be frozen", account.IBAN))
			return nil
		}
		if account.MinBalance != nil && account.Balance.LessThanOrEqual(*account.MinBalance) {
			card.Freeze()
			user.Append(domain.NewEntry(timestamp, "Card is frozen", account.IBAN))
		}
		return nil
	}
	return apperror.ErrCardNotFound()
}

// AddInterest accrues interest on a savings account.
func (s *AccountServiceImpl) AddInterest(ctx context.Context, iban string, timestamp int64) error {
	account, err := s.accountRepo.GetByIBAN(ctx, iban)
	if err != nil {
		return err
	}
	delta, err := account.AccrueInterest()
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByIBAN(ctx, iban)
	if err != nil {
		return err
	}
	user.Append(&domain.LedgerEntry{
		ID:          newEntryID(),
		Timestamp:   timestamp,
		Description: "Interest rate income",
		Type:        domain.EntryInterest,
		IBANs:       []string{iban},
		Amount:      &delta,
		Currency:    account.Currency,
	})
	return nil
}

// ChangeInterestRate replaces the rate on a savings account.
func (s *AccountServiceImpl) ChangeInterestRate(ctx context.Context, iban string, rate decimal.Decimal, timestamp int64) error {
	account, err := s.accountRepo.GetByIBAN(ctx, iban)
	if err != nil {
		return err
	}
	if err := account.SetInterestRate(rate); err != nil {
		return err
	}

	user, err := s.userRepo.GetByIBAN(ctx, iban)
	if err != nil {
		return err
	}
	user.Append(domain.NewEntry(timestamp,
		fmt.Sprintf("Interest rate of the account changed to %s", rate.String()), iban))
	return nil
}

// WithdrawSavings moves funds from a savings account into the user's first
// classic account in the requested currency. Requires the holder to be of
// age; failures are recorded on the ledger without moving money.
func (s *AccountServiceImpl) WithdrawSavings(ctx context.Context, req ports.WithdrawSavingsRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	savings := user.AccountByIBAN(req.IBAN)
	if savings == nil {
		return apperror.ErrNotFound("Account")
	}
	if savings.Kind != domain.AccountSavings {
		user.Append(domain.NewEntry(req.Timestamp, "Account is not of type savings.", req.IBAN))
		return apperror.ErrNotSavingsAccount()
	}
	if ageOf(user.BirthDate) < adultAge {
		user.Append(domain.NewEntry(req.Timestamp, "You don't have the minimum age required.", req.IBAN))
		return nil
	}

	var classic *domain.Account
	for _, a := range user.OwnedAccounts() {
		if a.Kind == domain.AccountClassic && a.Currency == req.Currency {
			classic = a
			break
		}
	}
	if classic == nil {
		user.Append(domain.NewEntry(req.Timestamp, "You do not have a classic account.", req.IBAN))
		return nil
	}

	debit, err := s.resolver.Convert(req.Amount, req.Currency, savings.Currency)
	if err != nil {
		return err
	}
	if !savings.Covers(debit) {
		user.Append(insufficientFundsEntry(req.Timestamp, savings.IBAN))
		return apperror.ErrInsufficientFunds()
	}

	savings.Debit(debit)
	classic.Credit(req.Amount)

	amount := domain.Round2(req.Amount)
	user.Append(&domain.LedgerEntry{
		ID:          newEntryID(),
		Timestamp:   req.Timestamp,
		Description: "Savings withdrawal",
		Type:        domain.EntrySavingsWithdrawal,
		IBANs:       []string{savings.IBAN, classic.IBAN},
		Amount:      &amount,
		Currency:    req.Currency,
	})
	return nil
}

// AddAssociate attaches a manager or employee to a business account.
func (s *AccountServiceImpl) AddAssociate(ctx context.Context, req ports.AddAssociateRequest) error {
	account, err := s.accountRepo.GetByIBAN(ctx, req.IBAN)
	if err != nil {
		return err
	}
	associate, err := s.userRepo.GetByEmail(ctx, req.AssociateEmail)
	if err != nil {
		return err
	}
	if _, already := account.RoleOf(req.AssociateEmail); already {
		return apperror.ErrUnsupportedOperation("The user is already an associate of the account.")
	}
	if err := account.AddAssociate(req.AssociateEmail, req.Role); err != nil {
		return err
	}
	associate.AttachAccount(account)
	return nil
}

// ChangeSpendingLimit updates the employee debit cap. Owner only.
func (s *AccountServiceImpl) ChangeSpendingLimit(ctx context.Context, req ports.ChangeLimitRequest) error {
	account, err := s.accountRepo.GetByIBAN(ctx, req.IBAN)
	if err != nil {
		return err
	}
	return account.SetSpendingLimit(req.Email, domain.Round2(req.Limit))
}

// ChangeDepositLimit updates the employee credit cap. Owner only.
func (s *AccountServiceImpl) ChangeDepositLimit(ctx context.Context, req ports.ChangeLimitRequest) error {
	account, err := s.accountRepo.GetByIBAN(ctx, req.IBAN)
	if err != nil {
		return err
	}
	return account.SetDepositLimit(req.Email, domain.Round2(req.Limit))
}

// ageOf computes full years since a YYYY-MM-DD birth date.
func ageOf(birthDate string) int {
	born, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return 0
	}
	now := time.Now()
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}
	return age
}
