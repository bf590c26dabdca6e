package handler

import (
	"strconv"

	"bank-ledger/internal/adapter/http/dto"
	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"
	"bank-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles the money-moving endpoints.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// PayOnline handles POST /api/v1/payments/card.
func (h *PaymentHandler) PayOnline(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.PayOnlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil || amount.IsNegative() {
		response.Error(c, apperror.Validation("invalid amount"))
		return
	}

	if err := h.paymentSvc.PayOnline(c.Request.Context(), ports.PayOnlineRequest{
		Email:      email,
		CardNumber: req.CardNumber,
		Amount:     amount,
		Currency:   req.Currency,
		Merchant:   req.Merchant,
		Timestamp:  req.Timestamp,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"paid": true})
}

// SendFunds handles POST /api/v1/payments/transfer.
func (h *PaymentHandler) SendFunds(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SendFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil || !amount.IsPositive() {
		response.Error(c, apperror.Validation("invalid amount"))
		return
	}

	if err := h.paymentSvc.SendFunds(c.Request.Context(), ports.SendFundsRequest{
		Email:       email,
		SenderIBAN:  req.SenderIBAN,
		Receiver:    req.Receiver,
		Amount:      amount,
		Description: req.Description,
		Timestamp:   req.Timestamp,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"sent": true})
}

// CashWithdrawal handles POST /api/v1/payments/cash-withdrawal.
func (h *PaymentHandler) CashWithdrawal(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CashWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil || !amount.IsPositive() {
		response.Error(c, apperror.Validation("invalid amount"))
		return
	}

	if err := h.paymentSvc.CashWithdrawal(c.Request.Context(), ports.CashWithdrawalRequest{
		Email:      email,
		CardNumber: req.CardNumber,
		Amount:     amount,
		Timestamp:  req.Timestamp,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"withdrawn": true})
}

// UpgradePlan handles POST /api/v1/plans/upgrade.
func (h *PaymentHandler) UpgradePlan(c *gin.Context) {
	var req dto.UpgradePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	plan, err := domain.ParsePlan(req.Plan)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.paymentSvc.UpgradePlan(c.Request.Context(), ports.UpgradePlanRequest{
		IBAN:      req.IBAN,
		Plan:      plan,
		Timestamp: req.Timestamp,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"plan": req.Plan})
}

// timestampQuery reads the logical timestamp from the query string.
func timestampQuery(c *gin.Context) int64 {
	ts, _ := strconv.ParseInt(c.Query("timestamp"), 10, 64)
	return ts
}
