package service

import (
	"context"
	"fmt"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/internal/exchange"
	"bank-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SplitServiceImpl implements ports.SplitService: the accept/reject protocol
// over pending split payments, settled all-or-nothing.
type SplitServiceImpl struct {
	userRepo    ports.UserRepository
	accountRepo ports.AccountRepository
	resolver    *exchange.Resolver
	log         zerolog.Logger
}

// NewSplitService creates a new SplitServiceImpl.
func NewSplitService(
	userRepo ports.UserRepository,
	accountRepo ports.AccountRepository,
	resolver *exchange.Resolver,
	log zerolog.Logger,
) *SplitServiceImpl {
	return &SplitServiceImpl{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		resolver:    resolver,
		log:         log,
	}
}

// Create opens a pending split payment across the listed accounts. Owed
// amounts are fixed positionally at creation, converted once into each
// participant's currency and never re-resolved.
func (s *SplitServiceImpl) Create(ctx context.Context, req ports.CreateSplitRequest) error {
	if len(req.IBANs) == 0 {
		return apperror.Validation("split payment requires at least one account")
	}
	if req.Kind == domain.SplitCustom && len(req.Amounts) != len(req.IBANs) {
		return apperror.Validation("custom split amounts must align with the account list")
	}

	count := decimal.NewFromInt(int64(len(req.IBANs)))
	sp := &domain.SplitPayment{
		ID:        uuid.New(),
		Timestamp: req.Timestamp,
		Total:     req.Total,
		Currency:  req.Currency,
		Kind:      req.Kind,
		Status:    domain.SplitPending,
	}

	for i, iban := range req.IBANs {
		account, err := s.accountRepo.GetByIBAN(ctx, iban)
		if err != nil {
			return err
		}
		user, err := s.userRepo.GetByIBAN(ctx, iban)
		if err != nil {
			return err
		}

		owed := req.Total.Div(count)
		if req.Kind == domain.SplitCustom {
			owed = req.Amounts[i]
		}
		converted, err := s.resolver.Convert(owed, req.Currency, account.Currency)
		if err != nil {
			return err
		}

		sp.Participants = append(sp.Participants, domain.SplitParticipant{
			User:      user,
			IBAN:      iban,
			Owed:      owed,
			Converted: domain.Round2(converted),
		})
	}

	for _, user := range s.distinctUsers(sp) {
		user.EnqueueSplit(sp)
	}

	s.log.Debug().Str("id", sp.ID.String()).Int("participants", len(sp.Participants)).Msg("split payment created")
	return nil
}

// Accept records the user's consent on the earliest pending split of the
// given kind in their queue. Responding removes the split from that queue,
// so one user cannot be counted twice. The final acceptance triggers
// settlement.
func (s *SplitServiceImpl) Accept(ctx context.Context, email string, kind domain.SplitKind) error {
	user, sp, err := s.pendingSplit(ctx, email, kind)
	if err != nil {
		return err
	}

	for _, p := range sp.Participants {
		if p.User == user {
			sp.Accepted++
		}
	}
	user.DropSplit(sp)

	if sp.Accepted < len(sp.Participants) {
		return nil
	}
	return s.settle(ctx, sp)
}

// Reject cancels the user's earliest pending split of the given kind for
// every participant.
func (s *SplitServiceImpl) Reject(ctx context.Context, email string, kind domain.SplitKind) error {
	user, sp, err := s.pendingSplit(ctx, email, kind)
	if err != nil {
		return err
	}
	user.DropSplit(sp)
	s.cancel(sp, "One user rejected the payment.")
	return nil
}

// settle re-validates every participant's funds, then debits all accounts as
// a single pass. Any shortfall cancels the whole split; no partial
// settlement is observable.
func (s *SplitServiceImpl) settle(ctx context.Context, sp *domain.SplitPayment) error {
	for _, p := range sp.Participants {
		account, err := s.accountRepo.GetByIBAN(ctx, p.IBAN)
		if err != nil {
			return err
		}
		if !account.Covers(p.Converted) {
			s.cancel(sp, fmt.Sprintf("Account %s has insufficient funds for a split payment.", p.IBAN))
			return apperror.ErrInsufficientFunds()
		}
	}

	for _, p := range sp.Participants {
		account, err := s.accountRepo.GetByIBAN(ctx, p.IBAN)
		if err != nil {
			return err
		}
		account.Debit(p.Converted)
	}

	sp.Status = domain.SplitSettled
	s.resolve(sp, "")
	return nil
}

func (s *SplitServiceImpl) cancel(sp *domain.SplitPayment, reason string) {
	sp.Status = domain.SplitCancelled
	s.resolve(sp, reason)
}

// resolve appends the outcome entry to every participant and removes the
// split from all queues. Outcome entries carry the creation timestamp.
func (s *SplitServiceImpl) resolve(sp *domain.SplitPayment, errDescription string) {
	for _, user := range s.distinctUsers(sp) {
		user.Append(&domain.LedgerEntry{
			ID:            newEntryID(),
			Timestamp:     sp.Timestamp,
			Description:   sp.Description(),
			Type:          domain.EntrySplitPayment,
			IBANs:         sp.IBANs(),
			Currency:      sp.Currency,
			SplitType:     string(sp.Kind),
			SplitAmounts:  sp.Amounts(),
			InvolvedIBANs: sp.IBANs(),
			Error:         errDescription,
		})
		user.DropSplit(sp)
	}
}

// pendingSplit finds the earliest pending split of the given kind in the
// user's queue.
func (s *SplitServiceImpl) pendingSplit(ctx context.Context, email string, kind domain.SplitKind) (*domain.User, *domain.SplitPayment, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	for _, sp := range user.SplitQueue {
		if sp.Kind == kind && !sp.Resolved() {
			return user, sp, nil
		}
	}
	return nil, nil, apperror.ErrNotFound("Split payment")
}

func (s *SplitServiceImpl) distinctUsers(sp *domain.SplitPayment) []*domain.User {
	seen := make(map[*domain.User]bool)
	var users []*domain.User
	for _, p := range sp.Participants {
		if !seen[p.User] {
			seen[p.User] = true
			users = append(users, p.User)
		}
	}
	return users
}
