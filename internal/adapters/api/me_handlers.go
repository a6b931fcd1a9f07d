package api

import (
	"net/http"

	"fitlog/internal/adapters/api/middleware"
	"fitlog/internal/domain/plan"
	"fitlog/internal/domain/workout"

	"github.com/gin-gonic/gin"
)

// GetMe godoc
//
// @Summary      Get current identity
// @Description  Returns the verified claims of the calling token
// @Tags         me
// @Produce      json
// @Success      200 {object} auth.Claims
// @Failure      401 {object} map[string]string
// @Router       /me [get]
// @Security     BearerAuth
func (h *Handler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetClaims(c))
}

// GetMyProfile godoc
//
// @Summary      Get provider profile
// @Description  Fetches the caller's user document from the identity provider
// @Tags         me
// @Produce      json
// @Success      200 {object} map[string]any
// @Failure      401 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /me/profile [get]
// @Security     BearerAuth
func (h *Handler) GetMyProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	profile, err := h.authService.UserProfile(c.Request.Context(), claims.RawToken)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ExportData godoc
//
// @Summary      Export all data
// @Description  Returns every plan and workout owned by the caller. Requires a session that completed multi-factor authentication.
// @Tags         me
// @Produce      json
// @Success      200 {object} map[string]any
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Router       /me/export [get]
// @Security     BearerAuth
func (h *Handler) ExportData(c *gin.Context) {
	claims := middleware.GetClaims(c)
	ctx := c.Request.Context()

	plans := make([]*plan.Plan, 0)
	for offset := 0; ; offset += 200 {
		page, err := h.planService.List(ctx, plan.ListFilter{OwnerID: claims.UserID, Limit: 200, Offset: offset})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		plans = append(plans, page...)
		if len(page) < 200 {
			break
		}
	}

	workouts := make([]*workout.Workout, 0)
	for offset := 0; ; offset += 200 {
		page, err := h.workoutService.List(ctx, workout.ListFilter{OwnerID: claims.UserID, Limit: 200, Offset: offset})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		workouts = append(workouts, page...)
		if len(page) < 200 {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  claims.UserID,
		"plans":    plans,
		"workouts": workouts,
	})
}
