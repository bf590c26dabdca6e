package service

import (
	"context"
	"fmt"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/internal/exchange"
	"bank-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PaymentServiceImpl implements ports.PaymentService.
type PaymentServiceImpl struct {
	userRepo     ports.UserRepository
	accountRepo  ports.AccountRepository
	merchantRepo ports.MerchantRepository
	resolver     *exchange.Resolver
	policy       Policy
	log          zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	userRepo ports.UserRepository,
	accountRepo ports.AccountRepository,
	merchantRepo ports.MerchantRepository,
	resolver *exchange.Resolver,
	policy Policy,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		userRepo:     userRepo,
		accountRepo:  accountRepo,
		merchantRepo: merchantRepo,
		resolver:     resolver,
		policy:       policy,
		log:          log,
	}
}

// PayOnline is a card payment to a merchant. The card's account is debited
// principal plus commission; cashback is credited; a one-time card is
// destroyed and reissued after use.
func (s *PaymentServiceImpl) PayOnline(ctx context.Context, req ports.PayOnlineRequest) error {
	if req.Amount.IsZero() {
		return nil
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	account, card := user.AccountWithCard(req.CardNumber)
	if card == nil {
		return apperror.ErrCardNotFound()
	}

	if card.Frozen() {
		user.Append(frozenEntry(req.Timestamp, account.IBAN))
		return apperror.ErrCardFrozen("The card is frozen")
	}

	merchant, err := s.merchantRepo.GetByName(ctx, req.Merchant)
	if err != nil {
		return err
	}

	principal, err := s.resolver.Convert(req.Amount, req.Currency, account.Currency)
	if err != nil {
		return err
	}
	refAmount, err := s.resolver.Convert(req.Amount, req.Currency, domain.ReferenceCurrency)
	if err != nil {
		return err
	}

	owner, err := s.ownerOf(ctx, user, account)
	if err != nil {
		return err
	}
	commission, err := s.commissionFor(owner.Plan, refAmount, account.Currency)
	if err != nil {
		return err
	}

	total := principal.Add(commission)
	if !account.Covers(total) {
		user.Append(insufficientFundsEntry(req.Timestamp, account.IBAN))
		return apperror.ErrInsufficientFunds()
	}

	post := account.Balance.Sub(total)
	if account.MinBalance != nil && post.LessThanOrEqual(*account.MinBalance) {
		card.Freeze()
		user.Append(frozenEntry(req.Timestamp, account.IBAN))
		return apperror.ErrCardFrozen("The card is frozen")
	}

	if account.Kind == domain.AccountBusiness {
		if err := account.AuthorizeSpend(req.Email, principal); err != nil {
			return err
		}
	}

	account.Debit(total)
	account.RecordMovement(user.FullName(), principal.Neg(), req.Timestamp, merchant.Name)

	reward := account.ApplyCashback(user.Plan, merchant, domain.Round2(refAmount))
	if reward.IsPositive() {
		converted, err := s.resolver.Convert(reward, domain.ReferenceCurrency, account.Currency)
		if err != nil {
			return err
		}
		account.Credit(converted)
	}

	amount := domain.Round2(principal)
	user.Append(&domain.LedgerEntry{
		ID:          newEntryID(),
		Timestamp:   req.Timestamp,
		Description: "Card payment",
		Type:        domain.EntryCardPayment,
		IBANs:       []string{account.IBAN},
		Amount:      &amount,
		Currency:    account.Currency,
		Merchant:    merchant.Name,
	})

	if card.OneTime {
		s.reissueOneTimeCard(user, account, card, req.Timestamp)
	}

	if account.Balance.LessThanOrEqual(s.policy.FreezeFloor) {
		for _, c := range account.Cards {
			c.Freeze()
		}
	}

	s.log.Debug().
		Str("iban", account.IBAN).
		Str("merchant", merchant.Name).
		Str("amount", amount.String()).
		Msg("card payment settled")
	return nil
}

// SendFunds transfers between accounts, or to a merchant addressed by IBAN.
// The receiver identifier may be a registered alias.
func (s *PaymentServiceImpl) SendFunds(ctx context.Context, req ports.SendFundsRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	sender := user.AccountByIBAN(req.SenderIBAN)
	if sender == nil {
		return apperror.ErrNotFound("Account")
	}

	receiverAccount, accErr := s.accountRepo.Resolve(ctx, req.Receiver)
	var merchant *domain.Merchant
	if accErr != nil {
		merchant, err = s.merchantRepo.GetByIBAN(ctx, req.Receiver)
		if err != nil {
			return apperror.ErrNotFound("User")
		}
	}

	refAmount, err := s.resolver.Convert(req.Amount, sender.Currency, domain.ReferenceCurrency)
	if err != nil {
		return err
	}
	owner, err := s.ownerOf(ctx, user, sender)
	if err != nil {
		return err
	}
	commission, err := s.commissionFor(owner.Plan, refAmount, sender.Currency)
	if err != nil {
		return err
	}

	if sender.Kind == domain.AccountBusiness {
		if err := sender.AuthorizeSpend(req.Email, req.Amount); err != nil {
			return err
		}
	}

	total := req.Amount.Add(commission)
	if !sender.Covers(total) {
		user.Append(insufficientFundsEntry(req.Timestamp, sender.IBAN))
		return apperror.ErrInsufficientFunds()
	}

	sender.Debit(total)
	sent := domain.Round2(req.Amount)
	sender.RecordMovement(user.FullName(), sent.Neg(), req.Timestamp, "")

	if merchant != nil {
		reward := sender.ApplyCashback(user.Plan, merchant, domain.Round2(refAmount))
		if reward.IsPositive() {
			converted, err := s.resolver.Convert(reward, domain.ReferenceCurrency, sender.Currency)
			if err != nil {
				return err
			}
			sender.Credit(converted)
		}
		user.Append(transferEntry(req.Timestamp, req.Description, sender.IBAN, req.Receiver, sent, sender.Currency, "sent"))
	} else {
		converted, err := s.resolver.Convert(req.Amount, sender.Currency, receiverAccount.Currency)
		if err != nil {
			return err
		}
		receiverAccount.Credit(converted)
		receiverAccount.RecordMovement(user.FullName(), domain.Round2(converted), req.Timestamp, "")

		user.Append(transferEntry(req.Timestamp, req.Description, sender.IBAN, receiverAccount.IBAN, sent, sender.Currency, "sent"))
		if receiverUser, err := s.userRepo.GetByIBAN(ctx, receiverAccount.IBAN); err == nil {
			received := domain.Round2(converted)
			entry := transferEntry(req.Timestamp, req.Description, receiverAccount.IBAN, sender.IBAN, received, receiverAccount.Currency, "received")
			receiverUser.Append(entry)
		}
	}

	s.maybePromote(user, sender, refAmount, req.Timestamp)
	return nil
}

// CashWithdrawal debits a reference-currency amount through a card.
func (s *PaymentServiceImpl) CashWithdrawal(ctx context.Context, req ports.CashWithdrawalRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	account, card := user.AccountWithCard(req.CardNumber)
	if card == nil {
		return apperror.ErrCardNotFound()
	}
	if card.Frozen() {
		user.Append(frozenEntry(req.Timestamp, account.IBAN))
		return apperror.ErrCardFrozen("The card is frozen")
	}

	principal, err := s.resolver.Convert(req.Amount, domain.ReferenceCurrency, account.Currency)
	if err != nil {
		return err
	}
	commission, err := s.commissionFor(user.Plan, req.Amount, account.Currency)
	if err != nil {
		return err
	}

	total := principal.Add(commission)
	if !account.Covers(total) {
		user.Append(insufficientFundsEntry(req.Timestamp, account.IBAN))
		return apperror.ErrInsufficientFunds()
	}

	account.Debit(total)

	amount := domain.Round2(req.Amount)
	user.Append(&domain.LedgerEntry{
		ID:          newEntryID(),
		Timestamp:   req.Timestamp,
		Description: fmt.Sprintf("Cash withdrawal of %s", amount.String()),
		Type:        domain.EntryCashWithdrawal,
		IBANs:       []string{account.IBAN},
		Amount:      &amount,
		Currency:    domain.ReferenceCurrency,
	})
	return nil
}

// UpgradePlan moves the account owner to a higher plan, debiting the
// converted upgrade cost from the given account.
func (s *PaymentServiceImpl) UpgradePlan(ctx context.Context, req ports.UpgradePlanRequest) error {
	account, err := s.accountRepo.GetByIBAN(ctx, req.IBAN)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByIBAN(ctx, req.IBAN)
	if err != nil {
		return err
	}

	cost, err := user.Plan.UpgradeCost(req.Plan)
	if err != nil {
		user.Append(domain.NewEntry(req.Timestamp, appErrorMessage(err), account.IBAN))
		return err
	}

	converted, err := s.resolver.Convert(cost, domain.ReferenceCurrency, account.Currency)
	if err != nil {
		return err
	}
	if !account.Covers(converted) {
		user.Append(insufficientFundsEntry(req.Timestamp, account.IBAN))
		return apperror.ErrInsufficientFunds()
	}

	account.Debit(converted)
	user.Plan = req.Plan
	account.ResetSpending()

	user.Append(&domain.LedgerEntry{
		ID:          newEntryID(),
		Timestamp:   req.Timestamp,
		Description: "Upgrade plan",
		Type:        domain.EntryPlanUpgrade,
		IBANs:       []string{account.IBAN},
		NewPlan:     string(req.Plan),
	})
	return nil
}

// ownerOf resolves the user whose plan prices commissions on the account.
// For shared business accounts that is the owner, not the acting user.
func (s *PaymentServiceImpl) ownerOf(ctx context.Context, acting *domain.User, account *domain.Account) (*domain.User, error) {
	if account.Owner == acting.Email {
		return acting, nil
	}
	return s.userRepo.GetByEmail(ctx, account.Owner)
}

func (s *PaymentServiceImpl) commissionFor(plan domain.Plan, refAmount decimal.Decimal, currency string) (decimal.Decimal, error) {
	fee := plan.Commission(refAmount)
	if fee.IsZero() {
		return decimal.Zero, nil
	}
	return s.resolver.Convert(fee, domain.ReferenceCurrency, currency)
}

// maybePromote counts qualifying outbound transfers for silver users and
// promotes to gold on the configured count.
func (s *PaymentServiceImpl) maybePromote(user *domain.User, account *domain.Account, refAmount decimal.Decimal, ts int64) {
	if user.Plan != domain.PlanSilver || refAmount.LessThan(s.policy.PromotionMinAmount) {
		return
	}
	user.QualifyingTransfers++
	if user.QualifyingTransfers < s.policy.PromotionCount {
		return
	}
	user.Plan = domain.PlanGold
	user.Append(&domain.LedgerEntry{
		ID:          newEntryID(),
		Timestamp:   ts,
		Description: "Upgrade plan",
		Type:        domain.EntryPlanUpgrade,
		IBANs:       []string{account.IBAN},
		NewPlan:     string(domain.PlanGold),
	})
}

// reissueOneTimeCard destroys a spent one-time card and issues a fresh one,
// recording both operations.
func (s *PaymentServiceImpl) reissueOneTimeCard(user *domain.User, account *domain.Account, card *domain.Card, ts int64) {
	account.RemoveCard(card.Number)
	user.Append(cardOperationEntry(ts, "The card has been destroyed", account.IBAN, card.Number, user.Email))

	fresh := account.AddCard(true)
	user.Append(cardOperationEntry(ts, "New card created", account.IBAN, fresh.Number, user.Email))
}
