package handler

import (
	"bank-ledger/internal/adapter/http/dto"
	"bank-ledger/internal/adapter/http/middleware"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"
	"bank-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, expiresAt, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{Token: token, Expiry: expiresAt.Unix()})
}

// callerEmail reads the authenticated email set by the JWT middleware.
func callerEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.CtxEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
