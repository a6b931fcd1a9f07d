package api

import (
	"errors"
	"net/http"
	"strconv"

	"fitlog/internal/adapters/api/middleware"
	"fitlog/internal/domain/plan"

	"github.com/gin-gonic/gin"
)

// CreatePlan godoc
//
// @Summary      Create a workout plan
// @Description  Creates version 1 of a new plan in draft state
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        plan body plan.CreateRequest true "Plan to create"
// @Success      201 {object} plan.Plan
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /plans [post]
// @Security     BearerAuth
func (h *Handler) CreatePlan(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req plan.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.planService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListPlans godoc
//
// @Summary      List plans
// @Description  Lists the caller's plans, newest first
// @Tags         plans
// @Produce      json
// @Param        status query string false "Filter by status (draft, active, archived)"
// @Param        limit  query int false "Page size" default(50)
// @Param        offset query int false "Page offset" default(0)
// @Success      200 {array} plan.Plan
// @Failure      401 {object} map[string]string
// @Router       /plans [get]
// @Security     BearerAuth
func (h *Handler) ListPlans(c *gin.Context) {
	claims := middleware.GetClaims(c)

	filter := plan.ListFilter{
		OwnerID: claims.UserID,
		Status:  plan.Status(c.Query("status")),
		Limit:   queryInt(c, "limit", 0),
		Offset:  queryInt(c, "offset", 0),
	}

	plans, err := h.planService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan godoc
//
// @Summary      Get a plan
// @Tags         plans
// @Produce      json
// @Param        planId path string true "Plan ID"
// @Success      200 {object} plan.Plan
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /plans/{planId} [get]
// @Security     BearerAuth
func (h *Handler) GetPlan(c *gin.Context) {
	claims := middleware.GetClaims(c)

	p, err := h.planService.Get(c.Request.Context(), claims.UserID, c.Param("planId"))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetSharedPlan godoc
//
// @Summary      Get a shared plan
// @Description  Public plans are readable without authentication; owners can read their private plans too
// @Tags         plans
// @Produce      json
// @Param        planId path string true "Plan ID"
// @Success      200 {object} plan.Plan
// @Failure      404 {object} map[string]string
// @Router       /plans/shared/{planId} [get]
func (h *Handler) GetSharedPlan(c *gin.Context) {
	viewerID := ""
	if claims := middleware.GetClaims(c); claims != nil {
		viewerID = claims.UserID
	}

	p, err := h.planService.GetShared(c.Request.Context(), viewerID, c.Param("planId"))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePlan godoc
//
// @Summary      Update a plan
// @Description  Drafts change in place. Updating an active version creates the next draft version. Archived versions reject updates.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        planId path string true "Plan ID"
// @Param        plan body plan.UpdateRequest true "Fields to change"
// @Success      200 {object} plan.Plan
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /plans/{planId} [put]
// @Security     BearerAuth
func (h *Handler) UpdatePlan(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req plan.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.planService.Update(c.Request.Context(), claims.UserID, c.Param("planId"), &req)
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ActivatePlan godoc
//
// @Summary      Activate a plan version
// @Description  Promotes a draft to active and archives the previously active version of the group
// @Tags         plans
// @Produce      json
// @Param        planId path string true "Plan ID"
// @Success      200 {object} plan.Plan
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /plans/{planId}/activate [post]
// @Security     BearerAuth
func (h *Handler) ActivatePlan(c *gin.Context) {
	claims := middleware.GetClaims(c)

	p, err := h.planService.Activate(c.Request.Context(), claims.UserID, c.Param("planId"))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ArchivePlan godoc
//
// @Summary      Archive a plan version
// @Tags         plans
// @Param        planId path string true "Plan ID"
// @Success      204
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /plans/{planId} [delete]
// @Security     BearerAuth
func (h *Handler) ArchivePlan(c *gin.Context) {
	claims := middleware.GetClaims(c)

	if err := h.planService.Archive(c.Request.Context(), claims.UserID, c.Param("planId")); err != nil {
		planError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPlanVersions godoc
//
// @Summary      List all versions of a plan
// @Tags         plans
// @Produce      json
// @Param        planId path string true "Plan ID (any version in the group)"
// @Success      200 {array} plan.Plan
// @Failure      404 {object} map[string]string
// @Router       /plans/{planId}/versions [get]
// @Security     BearerAuth
func (h *Handler) ListPlanVersions(c *gin.Context) {
	claims := middleware.GetClaims(c)

	versions, err := h.planService.ListVersions(c.Request.Context(), claims.UserID, c.Param("planId"))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

// planError maps plan domain errors to HTTP responses. Ownership
// mismatches surface as 404 so plan IDs are not probeable.
func planError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, plan.ErrPlanNotFound), errors.Is(err, plan.ErrNotOwner):
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
	case errors.Is(err, plan.ErrArchived), errors.Is(err, plan.ErrAlreadyActive), errors.Is(err, plan.ErrNotDraft):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, plan.ErrEmptyExercises), errors.Is(err, plan.ErrInvalidExercise):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
