package api

import (
	"errors"
	"net/http"

	"fitlog/internal/adapters/api/middleware"
	"fitlog/internal/domain/workout"

	"github.com/gin-gonic/gin"
)

// CreateWorkout godoc
//
// @Summary      Log a workout
// @Description  Creates a workout session, optionally referencing an active plan version
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Param        workout body workout.CreateRequest true "Workout to log"
// @Success      201 {object} workout.Workout
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /workouts [post]
// @Security     BearerAuth
func (h *Handler) CreateWorkout(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req workout.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.workoutService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		workoutError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// ListWorkouts godoc
//
// @Summary      List workouts
// @Description  Lists the caller's workouts, newest first
// @Tags         workouts
// @Produce      json
// @Param        completed query bool false "Filter by completion"
// @Param        limit  query int false "Page size" default(50)
// @Param        offset query int false "Page offset" default(0)
// @Success      200 {array} workout.Workout
// @Failure      401 {object} map[string]string
// @Router       /workouts [get]
// @Security     BearerAuth
func (h *Handler) ListWorkouts(c *gin.Context) {
	claims := middleware.GetClaims(c)

	filter := workout.ListFilter{
		OwnerID: claims.UserID,
		Limit:   queryInt(c, "limit", 0),
		Offset:  queryInt(c, "offset", 0),
	}
	if completedStr := c.Query("completed"); completedStr != "" {
		completed := completedStr == "true"
		filter.Completed = &completed
	}

	workouts, err := h.workoutService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout godoc
//
// @Summary      Get a workout
// @Tags         workouts
// @Produce      json
// @Param        workoutId path string true "Workout ID"
// @Success      200 {object} workout.Workout
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workouts/{workoutId} [get]
// @Security     BearerAuth
func (h *Handler) GetWorkout(c *gin.Context) {
	claims := middleware.GetClaims(c)

	w, err := h.workoutService.Get(c.Request.Context(), claims.UserID, c.Param("workoutId"))
	if err != nil {
		workoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// UpdateWorkout godoc
//
// @Summary      Update a workout
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Param        workoutId path string true "Workout ID"
// @Param        workout body workout.UpdateRequest true "Fields to change"
// @Success      200 {object} workout.Workout
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workouts/{workoutId} [put]
// @Security     BearerAuth
func (h *Handler) UpdateWorkout(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req workout.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.workoutService.Update(c.Request.Context(), claims.UserID, c.Param("workoutId"), &req)
	if err != nil {
		workoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// CompleteWorkout godoc
//
// @Summary      Complete a workout
// @Description  Closes out a session; completing twice is rejected
// @Tags         workouts
// @Produce      json
// @Param        workoutId path string true "Workout ID"
// @Success      200 {object} workout.Workout
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /workouts/{workoutId}/complete [post]
// @Security     BearerAuth
func (h *Handler) CompleteWorkout(c *gin.Context) {
	claims := middleware.GetClaims(c)

	w, err := h.workoutService.Complete(c.Request.Context(), claims.UserID, c.Param("workoutId"))
	if err != nil {
		workoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// DeleteWorkout godoc
//
// @Summary      Delete a workout
// @Tags         workouts
// @Param        workoutId path string true "Workout ID"
// @Success      204
// @Failure      404 {object} map[string]string
// @Router       /workouts/{workoutId} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteWorkout(c *gin.Context) {
	claims := middleware.GetClaims(c)

	if err := h.workoutService.Delete(c.Request.Context(), claims.UserID, c.Param("workoutId")); err != nil {
		workoutError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// workoutError maps workout domain errors to HTTP responses
func workoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workout.ErrWorkoutNotFound), errors.Is(err, workout.ErrNotOwner):
		c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
	case errors.Is(err, workout.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workout.ErrPlanNotActive), errors.Is(err, workout.ErrInvalidSet):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
