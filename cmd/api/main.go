package main

import (
	"fmt"
	"net/http"
	"os"

	"expensely/internal/config"
	"expensely/internal/database"
	"expensely/internal/handlers"
	"expensely/internal/logger"
	"expensely/internal/middleware"
	"expensely/internal/services"
	"expensely/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "expensely/internal/docs" // Import swagger docs
)

// @title           Expensely API
// @version         1.0
// @description     Expensely is a personal finance tracker for logging expenses and income, with monthly statistics, category breakdowns, exports, and receipt scanning.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validators used by request bindings
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)
	incomeService := services.NewIncomeService(db)
	statsService := services.NewStatsService(expenseService, incomeService)
	exportService := services.NewExportService(expenseService, incomeService)
	receiptService := services.NewReceiptService(appConfig)
	emailService := services.NewEmailService(appConfig)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, emailService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	statsHandler := handlers.NewStatsHandler(statsService)
	exportHandler := handlers.NewExportHandler(exportService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and account management
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/me/password", authHandler.ChangePassword)
	protected.DELETE("/me", authHandler.DeleteAccount)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetUserExpenses)
	expenses.GET("/recent", expenseHandler.GetRecentExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Income routes
	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.GetUserIncomes)
	income.GET("/recent", incomeHandler.GetRecentIncomes)
	income.GET("/:id", incomeHandler.GetIncomeByID)
	income.PUT("/:id", incomeHandler.UpdateIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)

	// Statistics routes
	stats := protected.Group("/stats")
	stats.GET("/current-month", statsHandler.GetCurrentMonth)
	stats.GET("/monthly-trend", statsHandler.GetMonthlyTrend)
	stats.GET("/by-month", statsHandler.GetByMonth)
	stats.GET("/month-by-category", statsHandler.GetMonthByCategory)
	stats.GET("/net-income", statsHandler.GetNetIncome)
	stats.GET("/income/current-month", statsHandler.GetIncomeCurrentMonth)
	stats.GET("/income/by-month", statsHandler.GetIncomeByMonth)

	// Export routes
	export := protected.Group("/export")
	export.GET("/csv", exportHandler.ExportCSV)
	export.GET("/pdf", exportHandler.ExportPDF)

	// Receipt scanning
	protected.POST("/receipts/scan", receiptHandler.ScanReceipt)

	log.Infof("Starting Expensely backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
