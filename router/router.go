package router

import (
	"time"

	"kassabon/api"
	"kassabon/config"
	_ "kassabon/docs"
	"kassabon/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires all routes.
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(CORSMiddleware())

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		authHandler := api.NewAuthHandler(cfg)
		passwordResetHandler := api.NewPasswordResetHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)

			// forgot-password flow, no login required
			auth.POST("/password/request-reset", passwordResetHandler.RequestPasswordReset)
			auth.POST("/password/verify-code", passwordResetHandler.VerifyResetCode)
			auth.POST("/password/reset", passwordResetHandler.ResetPassword)
		}

		// category list is public so the scan UI can populate its picker
		categoryHandler := api.NewCategoryHandler()
		v1.GET("/categories", categoryHandler.List)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			authorized.POST("/categories", categoryHandler.Create)
			authorized.PUT("/categories/:id", categoryHandler.Update)
			authorized.DELETE("/categories/:id", categoryHandler.Delete)

			receiptHandler := api.NewReceiptHandler()
			scanHandler := api.NewScanHandler(cfg)
			receipts := authorized.Group("/receipts")
			{
				receipts.POST("", receiptHandler.Create)
				receipts.GET("", receiptHandler.List)
				receipts.GET("/statistics", receiptHandler.GetStatistics)
				receipts.POST("/scan", scanHandler.Scan)
				receipts.POST("/validate", scanHandler.Validate)
				receipts.GET("/:id", receiptHandler.Get)
				receipts.PUT("/:id", receiptHandler.Update)
				receipts.DELETE("/:id", receiptHandler.Delete)
			}

			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware allows cross-origin requests from the web client.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
