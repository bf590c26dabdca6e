package handler

import (
	"bank-ledger/internal/adapter/http/dto"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"
	"bank-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReportHandler handles the read-only query endpoints.
type ReportHandler struct {
	reportSvc ports.ReportingService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportSvc ports.ReportingService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// ListUsers handles GET /api/v1/users.
func (h *ReportHandler) ListUsers(c *gin.Context) {
	users, err := h.reportSvc.Users(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]dto.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, dto.ToUserView(u))
	}
	response.OK(c, views)
}

// ListTransactions handles GET /api/v1/transactions.
func (h *ReportHandler) ListTransactions(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	entries, err := h.reportSvc.Transactions(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// AccountReport handles GET /api/v1/reports/:iban.
func (h *ReportHandler) AccountReport(c *gin.Context) {
	req, ok := reportRequest(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.AccountReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToReportView(report))
}

// SpendingsReport handles GET /api/v1/reports/:iban/spendings.
func (h *ReportHandler) SpendingsReport(c *gin.Context) {
	req, ok := reportRequest(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.SpendingsReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToSpendingsReportView(report))
}

// BusinessReport handles GET /api/v1/reports/:iban/business.
func (h *ReportHandler) BusinessReport(c *gin.Context) {
	req, ok := reportRequest(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.BusinessReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToBusinessReportView(report))
}

func reportRequest(c *gin.Context) (ports.ReportRequest, bool) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return ports.ReportRequest{}, false
	}
	return ports.ReportRequest{
		IBAN:  c.Param("iban"),
		Start: q.Start,
		End:   q.End,
	}, true
}
