package routes

import (
	"database/sql"

	"fintrack-api/handlers"
	"fintrack-api/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/register", authHandler.Register)
	rg.POST("/login", authHandler.Login)
}

// SetupUserRoutes sets up protected account management routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
	rg.DELETE("/user/account", userHandler.DeleteAccount)
}

// SetupCategoryRoutes sets up protected category routes.
func SetupCategoryRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := handlers.NewCategoryHandler(services.NewCategoryService(db))

	rg.GET("/categories", h.List)
	rg.POST("/categories", h.Create)
	rg.PUT("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
}

// SetupTransactionRoutes sets up protected transaction routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := handlers.NewTransactionHandler(services.NewTransactionService(db))

	rg.POST("/transactions", h.Create)
	rg.GET("/transactions", h.List)
	rg.GET("/transactions/:id", h.Get)
	rg.PUT("/transactions/:id", h.Update)
	rg.DELETE("/transactions/:id", h.Delete)
}

// SetupDashboardRoutes sets up the protected dashboard summary route.
func SetupDashboardRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := handlers.NewDashboardHandler(services.NewDashboardService(db))

	rg.GET("/dashboard/summary", h.Summary)
}

// SetupAdviceRoutes sets up the protected AI advice route.
func SetupAdviceRoutes(rg *gin.RouterGroup, db *sql.DB) {
	adviceService := services.NewAdviceService(db, services.NewClaudeClient())
	h := handlers.NewAdviceHandler(adviceService)

	rg.POST("/advice", h.Generate)
}
