package handler

import (
	"context"

	"bank-ledger/internal/adapter/http/dto"
	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"
	"bank-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account, card and business administration.
type AccountHandler struct {
	accountSvc ports.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// CreateAccount handles POST /api/v1/accounts.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rate := decimal.Zero
	if req.InterestRate != "" {
		parsed, err := dto.ParseAmount(req.InterestRate)
		if err != nil {
			response.Error(c, apperror.Validation("invalid interest rate"))
			return
		}
		rate = parsed
	}

	account, err := h.accountSvc.CreateAccount(c.Request.Context(), ports.CreateAccountRequest{
		Email:        email,
		Currency:     req.Currency,
		Kind:         domain.AccountKind(req.AccountType),
		InterestRate: rate,
		Timestamp:    req.Timestamp,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToAccountView(account))
}

// DeleteAccount handles DELETE /api/v1/accounts/:iban.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	err := h.accountSvc.DeleteAccount(c.Request.Context(), email, c.Param("iban"), timestampQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// AddFunds handles POST /api/v1/accounts/:iban/funds.
func (h *AccountHandler) AddFunds(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil || !amount.IsPositive() {
		response.Error(c, apperror.Validation("invalid amount"))
		return
	}

	if err := h.accountSvc.AddFunds(c.Request.Context(), ports.AddFundsRequest{
		Email:     email,
		IBAN:      c.Param("iban"),
		Amount:    amount,
		Timestamp: req.Timestamp,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"added": true})
}

// SetMinBalance handles PUT /api/v1/accounts/:iban/min-balance.
func (h *AccountHandler) SetMinBalance(c *gin.Context) {
	var req dto.SetMinBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, apperror.Validation("invalid amount"))
		return
	}

	if err := h.accountSvc.SetMinBalance(c.Request.Context(), c.Param("iban"), amount, req.Timestamp); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"updated": true})
}

// SetAlias handles POST /api/v1/aliases.
func (h *AccountHandler) SetAlias(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SetAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.accountSvc.SetAlias(c.Request.Context(), email, req.Alias, req.IBAN); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"alias": req.Alias})
}

// CreateCard handles POST /api/v1/cards.
func (h *AccountHandler) CreateCard(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	card, err := h.accountSvc.CreateCard(c.Request.Context(), ports.CreateCardRequest{
		Email:     email,
		IBAN:      req.IBAN,
		OneTime:   req.OneTime,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CardView{CardNumber: card.Number, Status: string(card.Status)})
}

// DeleteCard handles DELETE /api/v1/cards.
func (h *AccountHandler) DeleteCard(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.DeleteCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.accountSvc.DeleteCard(c.Request.Context(), email, req.CardNumber, req.Timestamp); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// CheckCardStatus handles POST /api/v1/cards/:number/status.
func (h *AccountHandler) CheckCardStatus(c *gin.Context) {
	if err := h.accountSvc.CheckCardStatus(c.Request.Context(), c.Param("number"), timestampQuery(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"checked": true})
}

// AddInterest handles POST /api/v1/accounts/:iban/interest.
func (h *AccountHandler) AddInterest(c *gin.Context) {
	if err := h.accountSvc.AddInterest(c.Request.Context(), c.Param("iban"), timestampQuery(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"added": true})
}

// ChangeInterestRate handles PUT /api/v1/accounts/:iban/interest-rate.
func (h *AccountHandler) ChangeInterestRate(c *gin.Context) {
	var req dto.InterestRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	rate, err := dto.ParseAmount(req.Rate)
	if err != nil {
		response.Error(c, apperror.Validation("invalid interest rate"))
		return
	}

	if err := h.accountSvc.ChangeInterestRate(c.Request.Context(), c.Param("iban"), rate, req.Timestamp); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"updated": true})
}

// WithdrawSavings handles POST /api/v1/accounts/:iban/withdraw-savings.
func (h *AccountHandler) WithdrawSavings(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.WithdrawSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil || !amount.IsPositive() {
		response.Error(c, apperror.Validation("invalid amount"))
		return
	}

	if err := h.accountSvc.WithdrawSavings(c.Request.Context(), ports.WithdrawSavingsRequest{
		Email:     email,
		IBAN:      c.Param("iban"),
		Amount:    amount,
		Currency:  req.Currency,
		Timestamp: req.Timestamp,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"withdrawn": true})
}

// AddAssociate handles POST /api/v1/accounts/:iban/associates.
func (h *AccountHandler) AddAssociate(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AddAssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.accountSvc.AddAssociate(c.Request.Context(), ports.AddAssociateRequest{
		OwnerEmail:     email,
		AssociateEmail: req.Email,
		IBAN:           c.Param("iban"),
		Role:           domain.BusinessRole(req.Role),
		Timestamp:      req.Timestamp,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"added": true})
}

// ChangeSpendingLimit handles PUT /api/v1/accounts/:iban/spending-limit.
func (h *AccountHandler) ChangeSpendingLimit(c *gin.Context) {
	h.changeLimit(c, h.accountSvc.ChangeSpendingLimit)
}

// ChangeDepositLimit handles PUT /api/v1/accounts/:iban/deposit-limit.
func (h *AccountHandler) ChangeDepositLimit(c *gin.Context) {
	h.changeLimit(c, h.accountSvc.ChangeDepositLimit)
}

func (h *AccountHandler) changeLimit(c *gin.Context, apply func(ctx context.Context, req ports.ChangeLimitRequest) error) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ChangeLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	limit, err := dto.ParseAmount(req.Amount)
	if err != nil || !limit.IsPositive() {
		response.Error(c, apperror.Validation("invalid amount"))
		return
	}

	if err := apply(c.Request.Context(), ports.ChangeLimitRequest{
		Email:     email,
		IBAN:      c.Param("iban"),
		Limit:     limit,
		Timestamp: req.Timestamp,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"updated": true})
}
