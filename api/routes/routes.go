package routes

import (
	"fmt"
	"net/http"

	"scanlens-api/api/handlers"
	"scanlens-api/api/middleware"
	"scanlens-api/internal/account"
	"scanlens-api/internal/identity"
	"scanlens-api/internal/scan"
	"scanlens-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, logger *logger.Logger,
	accountService account.Service, scanService scan.Service, identityService identity.Service) {

	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogging(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered", "error", recovered)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprint(recovered)})
	}))

	// Unsupported methods on known routes answer with a structured 405.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not supported"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	healthHandler := handlers.NewHealthHandler(db, logger)
	accountHandler := handlers.NewAccountHandler(accountService, logger)
	scanHandler := handlers.NewScanHandler(scanService, logger)
	identityHandler := handlers.NewIdentityHandler(identityService, logger)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)

		v1.POST("/accounts", accountHandler.RegisterOrLogin)
		v1.GET("/accounts", accountHandler.GetProfile)
		v1.PUT("/accounts", accountHandler.UpdateSettings)

		v1.POST("/scans", scanHandler.Submit)
		v1.GET("/scans", scanHandler.History)

		v1.GET("/auth/yandex", identityHandler.AuthURL)
		v1.POST("/auth/yandex", identityHandler.Authorize)
	}

	router.GET("/health", healthHandler.Check)
}
