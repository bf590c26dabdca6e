package service

import (
	"context"
	"sort"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ReportingServiceImpl implements ports.ReportingService. All methods are
// pure reads over the ledger and the business movement log.
type ReportingServiceImpl struct {
	userRepo    ports.UserRepository
	accountRepo ports.AccountRepository
	log         zerolog.Logger
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(userRepo ports.UserRepository, accountRepo ports.AccountRepository, log zerolog.Logger) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		log:         log,
	}
}

// Users lists every user in registration order.
func (s *ReportingServiceImpl) Users(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// Transactions returns a user's full ledger in timestamp order.
func (s *ReportingServiceImpl) Transactions(ctx context.Context, email string) ([]*domain.LedgerEntry, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	entries := make([]*domain.LedgerEntry, len(user.Ledger))
	copy(entries, user.Ledger)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp < entries[j].Timestamp
	})
	return entries, nil
}

// AccountReport returns the account's entries inside the inclusive window.
func (s *ReportingServiceImpl) AccountReport(ctx context.Context, req ports.ReportRequest) (*ports.AccountReport, error) {
	account, err := s.accountRepo.GetByIBAN(ctx, req.IBAN)
	if err != nil {
		return nil, err
	}
	entries, err := s.windowEntries(ctx, account, req)
	if err != nil {
		return nil, err
	}
	return &ports.AccountReport{
		IBAN:     account.IBAN,
		Balance:  account.Balance,
		Currency: account.Currency,
		Entries:  entries,
	}, nil
}

// SpendingsReport returns the account's card payments inside the window with
// per-merchant totals. Savings accounts are rejected.
func (s *ReportingServiceImpl) SpendingsReport(ctx context.Context, req ports.ReportRequest) (*ports.SpendingsReport, error) {
	account, err := s.accountRepo.GetByIBAN(ctx, req.IBAN)
	if err != nil {
		return nil, err
	}
	if account.Kind == domain.AccountSavings {
		return nil, apperror.ErrUnsupportedOperation("This kind of report is not supported for a saving account")
	}

	entries, err := s.windowEntries(ctx, account, req)
	if err != nil {
		return nil, err
	}

	var spend []*domain.LedgerEntry
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if !e.MerchantSpend() {
			continue
		}
		spend = append(spend, e)
		totals[e.Merchant] = totals[e.Merchant].Add(*e.Amount)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	merchants := make([]ports.MerchantTotal, 0, len(names))
	for _, name := range names {
		merchants = append(merchants, ports.MerchantTotal{Merchant: name, Total: domain.Round2(totals[name])})
	}

	return &ports.SpendingsReport{
		IBAN:      account.IBAN,
		Balance:   account.Balance,
		Currency:  account.Currency,
		Entries:   spend,
		Merchants: merchants,
	}, nil
}

// BusinessReport aggregates associate activity on a business account inside
// the window. Totals cover managers and employees, not the owner.
func (s *ReportingServiceImpl) BusinessReport(ctx context.Context, req ports.ReportRequest) (*ports.BusinessReport, error) {
	account, err := s.accountRepo.GetByIBAN(ctx, req.IBAN)
	if err != nil {
		return nil, err
	}
	if account.Kind != domain.AccountBusiness {
		return nil, apperror.ErrUnsupportedOperation("This is not a business account")
	}

	deposited := make(map[string]decimal.Decimal)
	spent := make(map[string]decimal.Decimal)
	for _, m := range account.Movements {
		if m.Timestamp < req.Start || m.Timestamp > req.End {
			continue
		}
		if m.Amount.IsPositive() {
			deposited[m.Participant] = deposited[m.Participant].Add(m.Amount)
		} else {
			spent[m.Participant] = spent[m.Participant].Add(m.Amount.Neg())
		}
	}

	report := &ports.BusinessReport{
		IBAN:          account.IBAN,
		Balance:       account.Balance,
		Currency:      account.Currency,
		SpendingLimit: account.SpendingLimit,
		DepositLimit:  account.DepositLimit,
	}

	appendRow := func(email string, role domain.BusinessRole) error {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		name := user.FullName()
		row := ports.AssociateActivity{
			Name:      name,
			Role:      role,
			Deposited: domain.Round2(deposited[name]),
			Spent:     domain.Round2(spent[name]),
		}
		report.Associates = append(report.Associates, row)
		report.TotalDeposited = report.TotalDeposited.Add(row.Deposited)
		report.TotalSpent = report.TotalSpent.Add(row.Spent)
		return nil
	}

	for _, email := range account.Managers {
		if err := appendRow(email, domain.RoleManager); err != nil {
			return nil, err
		}
	}
	for _, email := range account.Employees {
		if err := appendRow(email, domain.RoleEmployee); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// windowEntries filters the owning user's ledger down to entries associated
// with the account inside the window.
func (s *ReportingServiceImpl) windowEntries(ctx context.Context, account *domain.Account, req ports.ReportRequest) ([]*domain.LedgerEntry, error) {
	user, err := s.userRepo.GetByIBAN(ctx, account.IBAN)
	if err != nil {
		return nil, err
	}
	var entries []*domain.LedgerEntry
	for _, e := range user.Ledger {
		if e.Matches(account.IBAN) && e.InWindow(req.Start, req.End) {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp < entries[j].Timestamp
	})
	return entries, nil
}
