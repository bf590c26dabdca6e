package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bank-ledger/internal/adapter/storage/memory"
	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/exchange"
	"bank-ledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type routerFixture struct {
	engine *gin.Engine
	token  string
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	log := zerolog.New(io.Discard)
	users := memory.NewUserRepo()
	accounts := memory.NewAccountRepo()
	merchants := memory.NewMerchantRepo()
	resolver := exchange.NewResolver([]exchange.Rate{
		{From: "EUR", To: "RON", Rate: decimal.NewFromInt(5)},
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &domain.User{
		FirstName:    "Alice",
		LastName:     "Popescu",
		Email:        "alice@bank.ro",
		BirthDate:    "1990-04-02",
		Occupation:   "entrepreneur",
		PasswordHash: string(hash),
		Plan:         domain.PlanStandard,
	}))
	require.NoError(t, merchants.Create(context.Background(), &domain.Merchant{
		Name: "Carrefour", ID: 1, IBAN: "RO24BANKMERCH0000001",
		Category: "Food", Strategy: domain.StrategyTransactionCount,
	}))

	policy := service.DefaultPolicy()
	authSvc := service.NewAuthService(users, "test-secret", time.Hour, "bank-ledger")
	engine := SetupRouter(RouterDeps{
		AuthSvc:    authSvc,
		AccountSvc: service.NewAccountService(users, accounts, resolver, policy, log),
		PaymentSvc: service.NewPaymentService(users, accounts, merchants, resolver, policy, log),
		SplitSvc:   service.NewSplitService(users, accounts, resolver, log),
		ReportSvc:  service.NewReportingService(users, accounts, log),
		Logger:     log,
	})

	f := &routerFixture{engine: engine}
	f.token = f.login(t, "alice@bank.ro", "hunter2")
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *routerFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

func TestRouter_Login_BadCredentials(t *testing.T) {
	f := newRouterFixture(t)
	w := f.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@bank.ro", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	f := newRouterFixture(t)
	w := f.do(t, http.MethodGet, "/api/v1/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AccountAndPaymentFlow(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/accounts", f.token, gin.H{
		"currency": "RON", "accountType": "classic", "timestamp": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			IBAN string `json:"IBAN"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	iban := created.Data.IBAN
	require.NotEmpty(t, iban)

	w = f.do(t, http.MethodPost, "/api/v1/accounts/"+iban+"/funds", f.token, gin.H{
		"amount": "1000", "timestamp": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodPost, "/api/v1/cards", f.token, gin.H{
		"account": iban, "timestamp": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var card struct {
		Data struct {
			CardNumber string `json:"cardNumber"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))

	w = f.do(t, http.MethodPost, "/api/v1/payments/card", f.token, gin.H{
		"cardNumber":  card.Data.CardNumber,
		"amount":      "100",
		"currency":    "RON",
		"commerciant": "Carrefour",
		"timestamp":   4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, "/api/v1/reports/"+iban+"?startTimestamp=0&endTimestamp=10", f.token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Card payment")

	w = f.do(t, http.MethodGet, "/api/v1/users", f.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@bank.ro")
}

func TestRouter_ValidationErrors(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/payments/card", f.token, gin.H{
		"cardNumber": "123", "amount": "not-a-number", "currency": "RON",
		"commerciant": "Carrefour", "timestamp": 4,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
