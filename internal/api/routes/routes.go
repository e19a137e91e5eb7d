package routes

import (
	"net/http"

	"relief-coordination-api/internal/api/handlers"
	"relief-coordination-api/internal/api/middleware"
	"relief-coordination-api/internal/auth"
	"relief-coordination-api/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies carries everything the router wires into handlers.
// Campaigns is nil when no Fabric network is configured.
type Dependencies struct {
	Log           *zap.Logger
	Tokens        *auth.TokenManager
	CORSOrigins   []string
	Auth          *handlers.AuthHandler
	Inventory     *handlers.InventoryHandler
	Organizations *handlers.OrganizationHandler
	Alerts        *handlers.AlertHandler
	Campaigns     *handlers.CampaignHandler
	WebSocket     *handlers.WebSocketHandler
}

func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.CORS(deps.CORSOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticate := middleware.Authenticate(deps.Tokens)
	staff := middleware.Authorize(models.RoleSuperAdmin, models.RoleAdmin)
	anyRole := middleware.Authorize(models.RoleSuperAdmin, models.RoleAdmin, models.RoleOrganization)

	apiV1 := router.Group("/api/v1")
	{
		// Authenticates itself through ?token=.
		apiV1.GET("/ws", deps.WebSocket.ServeWs)

		// === Public ===
		apiV1.POST("/auth/login", deps.Auth.Login)
		apiV1.POST("/organizations/register", deps.Organizations.Register)
		apiV1.GET("/inventory/catalog", deps.Inventory.GetCatalog)

		// === Any signed-in account ===
		protected := apiV1.Group("/")
		protected.Use(authenticate, anyRole)
		{
			inventory := protected.Group("/inventory")
			{
				inventory.POST("", deps.Inventory.SubmitInventory)
				inventory.GET("/:registrationNumber", deps.Inventory.GetInventory)
				inventory.PUT("/:registrationNumber/monitoring", deps.Inventory.SetMonitoring)
			}

			organizations := protected.Group("/organizations")
			{
				organizations.GET("/:registrationNumber", deps.Organizations.GetOrganization)
				organizations.POST("/:registrationNumber/certificate", deps.Organizations.UploadCertificate)
			}

			protected.GET("/alerts", deps.Alerts.ListAlerts)

			if deps.Campaigns != nil {
				campaigns := protected.Group("/campaigns")
				{
					campaigns.GET("/:id", deps.Campaigns.GetCampaign)
					campaigns.POST("/:id/donations", deps.Campaigns.Donate)
				}
			}
		}

		// === Staff only ===
		admin := apiV1.Group("/admin")
		admin.Use(authenticate, staff)
		{
			admin.GET("/inventory/rank", deps.Inventory.RankInventories)
			admin.GET("/organizations", deps.Organizations.ListOrganizations)
			admin.POST("/organizations/:registrationNumber/approve", deps.Organizations.Approve)
			admin.POST("/organizations/:registrationNumber/reject", deps.Organizations.Reject)
			admin.POST("/alerts", deps.Alerts.CreateAlert)
		}
	}

	return router
}
