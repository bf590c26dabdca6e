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

// SplitHandler handles the split-payment protocol endpoints.
type SplitHandler struct {
	splitSvc ports.SplitService
}

// NewSplitHandler creates a new SplitHandler.
func NewSplitHandler(splitSvc ports.SplitService) *SplitHandler {
	return &SplitHandler{splitSvc: splitSvc}
}

// Create handles POST /api/v1/splits.
func (h *SplitHandler) Create(c *gin.Context) {
	var req dto.CreateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	total, err := dto.ParseAmount(req.Total)
	if err != nil || !total.IsPositive() {
		response.Error(c, apperror.Validation("invalid amount"))
		return
	}

	amounts := make([]decimal.Decimal, 0, len(req.Amounts))
	for _, s := range req.Amounts {
		a, err := dto.ParseAmount(s)
		if err != nil || !a.IsPositive() {
			response.Error(c, apperror.Validation("invalid split amount"))
			return
		}
		amounts = append(amounts, a)
	}

	if err := h.splitSvc.Create(c.Request.Context(), ports.CreateSplitRequest{
		Kind:      domain.SplitKind(req.SplitType),
		IBANs:     req.Accounts,
		Total:     total,
		Amounts:   amounts,
		Currency:  req.Currency,
		Timestamp: req.Timestamp,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"pending": true})
}

// Accept handles POST /api/v1/splits/accept.
func (h *SplitHandler) Accept(c *gin.Context) {
	h.respond(c, h.splitSvc.Accept)
}

// Reject handles POST /api/v1/splits/reject.
func (h *SplitHandler) Reject(c *gin.Context) {
	h.respond(c, h.splitSvc.Reject)
}

func (h *SplitHandler) respond(c *gin.Context, apply func(ctx context.Context, email string, kind domain.SplitKind) error) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SplitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := apply(c.Request.Context(), email, domain.SplitKind(req.SplitType)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"resolved": true})
}
