// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seriesmint/seriesmint-backend/internal/config"
	"github.com/seriesmint/seriesmint-backend/internal/handlers"
	"github.com/seriesmint/seriesmint-backend/internal/middleware"
	"github.com/seriesmint/seriesmint-backend/internal/services"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	oracle := services.NewStorageOracle(cfg)
	transferService := services.NewTransferService(db)
	accessService := services.NewAccessService(db, cfg)
	mediaService, _ := services.NewMediaService(cfg)

	authService := services.NewAuthService(db, cfg)
	seriesService := services.NewSeriesService(db, cfg, accessService, transferService, oracle)
	mintService := services.NewMintService(db, cfg, accessService, transferService, oracle)
	tokenService := services.NewTokenService(db)
	payoutService := services.NewPayoutService(db)
	fundingService := services.NewFundingService(db, cfg, transferService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	seriesHandler := handlers.NewSeriesHandler(seriesService, mintService, tokenService, mediaService)
	tokenHandler := handlers.NewTokenHandler(tokenService, payoutService)
	accountHandler := handlers.NewAccountHandler(authService, transferService)
	adminHandler := handlers.NewAdminHandler(accessService)
	fundingHandler := handlers.NewFundingHandler(fundingService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Series routes
		series := v1.Group("/series")
		{
			series.GET("", seriesHandler.GetSeries)
			series.GET("/supply", seriesHandler.GetSupplySeries)
			series.GET("/:id", seriesHandler.GetSeriesInfo)
			series.GET("/:id/supply", seriesHandler.GetSupplyForSeries)
			series.GET("/:id/tokens", seriesHandler.GetTokensForSeries)

			series.POST("", middleware.AuthRequired(), seriesHandler.CreateSeries)
			series.POST("/:id/mint", middleware.AuthRequired(), middleware.MintRateLimit(), seriesHandler.Mint)
			series.POST("/upload", middleware.AuthRequired(), middleware.UploadRateLimit(), seriesHandler.UploadMedia)
		}

		// Token routes
		tokens := v1.Group("/tokens")
		{
			tokens.GET("/:id", tokenHandler.GetToken)
			tokens.GET("/:id/payout", tokenHandler.GetPayout)
		}

		// Account routes
		accounts := v1.Group("/accounts")
		{
			accounts.GET("/:id/tokens", tokenHandler.GetTokensForOwner)
			accounts.GET("/balance", middleware.AuthRequired(), accountHandler.GetBalance)
			accounts.GET("/transfers", middleware.AuthRequired(), accountHandler.GetTransfers)
		}

		// Funding routes
		funding := v1.Group("/funding")
		funding.Use(middleware.AuthRequired())
		{
			funding.POST("/intent", fundingHandler.CreateDepositIntent)
			funding.POST("/confirm", fundingHandler.ConfirmDeposit)
		}

		// Registry owner routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.OwnerRequired(cfg))
		{
			admin.GET("/creators", adminHandler.ListCreators)
			admin.POST("/creators/:id", adminHandler.AddCreator)
			admin.DELETE("/creators/:id", adminHandler.RemoveCreator)
			admin.GET("/minters", adminHandler.ListMinters)
			admin.POST("/minters/:id", adminHandler.AddMinter)
			admin.DELETE("/minters/:id", adminHandler.RemoveMinter)
		}
	}

	return r
}
