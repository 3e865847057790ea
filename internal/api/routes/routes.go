// server/internal/api/routes/routes.go
package routes

import (
	"time"

	"pharma-alert-api-server/config"
	"pharma-alert-api-server/internal/api/handlers"
	"pharma-alert-api-server/internal/api/middleware"
	"pharma-alert-api-server/internal/auth"
	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/followup"
	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/notify"
	"pharma-alert-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires the handlers to their dependencies and registers
// all routes.
func SetupRouter(
	cfg config.Config,
	reports *directory.ReportRegistry,
	pharmacies *directory.PharmacyDirectory,
	led *ledger.Ledger,
	transport notify.Transport,
	scheduler *followup.Scheduler,
	users *auth.UserStore,
	wsHub *socket.Hub,
	jwtExpiration time.Duration,
	followupThreshold time.Duration,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())

	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
		router.Use(cors.New(corsConfig))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userHandler := &handlers.UserHandler{Users: users, JWTExpiration: jwtExpiration}
	reportHandler := &handlers.ReportHandler{Reports: reports}
	pharmacyHandler := &handlers.PharmacyHandler{Pharmacies: pharmacies, Ledger: led}
	alertHandler := &handlers.AlertHandler{Reports: reports, Pharmacies: pharmacies, Ledger: led, Transport: transport, Hub: wsHub}
	receiptHandler := &handlers.ReceiptHandler{Ledger: led, Hub: wsHub}
	followupHandler := &handlers.FollowupHandler{Scheduler: scheduler, DefaultThreshold: followupThreshold}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// Admin-only management routes.
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("admin"))
		{
			admin.POST("/users", userHandler.CreateUser)

			pharmaciesAdmin := admin.Group("/pharmacies")
			{
				pharmaciesAdmin.POST("/", pharmacyHandler.CreatePharmacy)
				pharmaciesAdmin.POST("/:id/deactivate", pharmacyHandler.DeactivatePharmacy)
				pharmaciesAdmin.DELETE("/:id", pharmacyHandler.DeletePharmacy)
			}
		}

		// Business routes for alert operators and the dashboard.
		businessRoutes := apiV1.Group("/")
		businessRoutes.Use(middleware.Authenticate())
		businessRoutes.Use(middleware.Authorize("admin", "operator"))
		{
			reportsGroup := businessRoutes.Group("/reports")
			{
				reportsGroup.POST("/", reportHandler.CreateReport)
				reportsGroup.GET("/", reportHandler.GetAllReports)
				reportsGroup.GET("/:id", reportHandler.GetReport)
			}

			pharmaciesGroup := businessRoutes.Group("/pharmacies")
			{
				pharmaciesGroup.GET("/", pharmacyHandler.GetAllPharmacies)
				pharmaciesGroup.GET("/:id", pharmacyHandler.GetPharmacyByID)
			}

			alerts := businessRoutes.Group("/alerts")
			{
				alerts.POST("/broadcast", alertHandler.BroadcastAlert)
				alerts.POST("/targeted", alertHandler.TargetedAlert)
			}

			receipts := businessRoutes.Group("/receipts")
			{
				receipts.GET("/", receiptHandler.GetAllReceipts)
				receipts.GET("/:id", receiptHandler.GetReceipt)
			}

			// Kept outside /receipts so the static segment does not
			// clash with the :id wildcard.
			businessRoutes.GET("/export/receipts", receiptHandler.ExportReceipts)

			businessRoutes.POST("/followups/run", followupHandler.RunFollowups)
			businessRoutes.GET("/statistics", receiptHandler.GetStatistics)
		}

		// Pharmacies acknowledge their own receipts.
		pharmacyRoutes := apiV1.Group("/")
		pharmacyRoutes.Use(middleware.Authenticate())
		pharmacyRoutes.Use(middleware.Authorize("admin", "operator", "pharmacy"))
		{
			pharmacyRoutes.POST("/receipts/:id/acknowledge", receiptHandler.AcknowledgeReceipt)
		}
	}

	return router
}
