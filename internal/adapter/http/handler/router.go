package handler

import (
	"sync"

	"bank-ledger/internal/adapter/http/middleware"
	"bank-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc    ports.AuthService
	AccountSvc ports.AccountService
	PaymentSvc ports.PaymentService
	SplitSvc   ports.SplitService
	ReportSvc  ports.ReportingService
	Logger     zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
// Mutating operations are serialized through one mutex: the engine applies
// them in a single logical sequence.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	var mu sync.Mutex
	serialize := middleware.Serialize(&mu)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// --- Public routes ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/login", authHandler.Login)

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.AuthSvc, deps.Logger)

	accountHandler := NewAccountHandler(deps.AccountSvc)
	accounts := v1.Group("/accounts", jwtAuth, serialize)
	{
		accounts.POST("", accountHandler.CreateAccount)
		accounts.DELETE("/:iban", accountHandler.DeleteAccount)
		accounts.POST("/:iban/funds", accountHandler.AddFunds)
		accounts.PUT("/:iban/min-balance", accountHandler.SetMinBalance)
		accounts.POST("/:iban/interest", accountHandler.AddInterest)
		accounts.PUT("/:iban/interest-rate", accountHandler.ChangeInterestRate)
		accounts.POST("/:iban/withdraw-savings", accountHandler.WithdrawSavings)
		accounts.POST("/:iban/associates", accountHandler.AddAssociate)
		accounts.PUT("/:iban/spending-limit", accountHandler.ChangeSpendingLimit)
		accounts.PUT("/:iban/deposit-limit", accountHandler.ChangeDepositLimit)
	}
	v1.POST("/aliases", jwtAuth, serialize, accountHandler.SetAlias)

	cards := v1.Group("/cards", jwtAuth, serialize)
	{
		cards.POST("", accountHandler.CreateCard)
		cards.DELETE("", accountHandler.DeleteCard)
		cards.POST("/:number/status", accountHandler.CheckCardStatus)
	}

	paymentHandler := NewPaymentHandler(deps.PaymentSvc)
	payments := v1.Group("/payments", jwtAuth, serialize)
	{
		payments.POST("/card", paymentHandler.PayOnline)
		payments.POST("/transfer", paymentHandler.SendFunds)
		payments.POST("/cash-withdrawal", paymentHandler.CashWithdrawal)
	}
	v1.POST("/plans/upgrade", jwtAuth, serialize, paymentHandler.UpgradePlan)

	splitHandler := NewSplitHandler(deps.SplitSvc)
	splits := v1.Group("/splits", jwtAuth, serialize)
	{
		splits.POST("", splitHandler.Create)
		splits.POST("/accept", splitHandler.Accept)
		splits.POST("/reject", splitHandler.Reject)
	}

	reportHandler := NewReportHandler(deps.ReportSvc)
	reports := v1.Group("", jwtAuth, serialize)
	{
		reports.GET("/users", reportHandler.ListUsers)
		reports.GET("/transactions", reportHandler.ListTransactions)
		reports.GET("/reports/:iban", reportHandler.AccountReport)
		reports.GET("/reports/:iban/spendings", reportHandler.SpendingsReport)
		reports.GET("/reports/:iban/business", reportHandler.BusinessReport)
	}

	return r
}
