package api

import (
	"net/http"

	appauth "fitlog/internal/application/auth"
	planapp "fitlog/internal/application/plan"
	workoutapp "fitlog/internal/application/workout"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware

	_ "fitlog/docs" // swagger docs
)

// Handler handles HTTP requests for the fitness API
type Handler struct {
	planService    *planapp.Service
	workoutService *workoutapp.Service
	authService    *appauth.Service
	wsManager      *WebSocketManager
}

// NewHandler creates a new API handler
func NewHandler(planService *planapp.Service, workoutService *workoutapp.Service, authService *appauth.Service) *Handler {
	h := &Handler{
		planService:    planService,
		workoutService: workoutService,
		authService:    authService,
		wsManager:      NewWebSocketManager(),
	}
	workoutService.SetNotifier(h.wsManager)
	return h
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine, requireAuth, optionalAuth, requireAAL2 gin.HandlerFunc) {
	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health)

		// Shared plan view works anonymously for public plans
		api.GET("/plans/shared/:planId", optionalAuth, h.GetSharedPlan)

		// Live sync (token authenticated via query param)
		api.GET("/ws", h.HandleWebSocket)

		authed := api.Group("", requireAuth)
		{
			plans := authed.Group("/plans")
			{
				plans.POST("", h.CreatePlan)
				plans.GET("", h.ListPlans)
				plans.GET("/:planId", h.GetPlan)
				plans.PUT("/:planId", h.UpdatePlan)
				plans.DELETE("/:planId", h.ArchivePlan)
				plans.POST("/:planId/activate", h.ActivatePlan)
				plans.GET("/:planId/versions", h.ListPlanVersions)
			}

			workouts := authed.Group("/workouts")
			{
				workouts.POST("", h.CreateWorkout)
				workouts.GET("", h.ListWorkouts)
				workouts.GET("/:workoutId", h.GetWorkout)
				workouts.PUT("/:workoutId", h.UpdateWorkout)
				workouts.DELETE("/:workoutId", h.DeleteWorkout)
				workouts.POST("/:workoutId/complete", h.CompleteWorkout)
			}

			authed.GET("/me", h.GetMe)
			authed.GET("/me/profile", h.GetMyProfile)
			authed.GET("/me/export", requireAAL2, h.ExportData)
		}
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Health godoc
//
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
