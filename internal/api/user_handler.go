package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jestephe2/rootedwellness-workout-app/internal/gateway"
	"github.com/jestephe2/rootedwellness-workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request Structs ---

type InitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type OnboardRequestBody struct {
	Email             string `json:"email" binding:"required,email"`
	FirstName         string `json:"first_name" binding:"required"`
	PrimaryGoal       string `json:"primary_goal" binding:"required"`
	TargetDaysPerWeek string `json:"target_days_per_week" binding:"required"`
	BiggestObstacle   string `json:"biggest_obstacle"`
}

func (r OnboardRequestBody) toGatewayRequest() gateway.OnboardRequest {
	return gateway.OnboardRequest{
		Email:             r.Email,
		FirstName:         r.FirstName,
		PrimaryGoal:       r.PrimaryGoal,
		TargetDaysPerWeek: r.TargetDaysPerWeek,
		BiggestObstacle:   r.BiggestObstacle,
	}
}

// Init resolves an email against the remote user store: existing users
// get their cached profile and recent logs back, new users are told to
// onboard.
func (h *UserHandler) Init(c *gin.Context) {
	var req InitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.userService.Init(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserBackendDown) {
			abortWithError(c, http.StatusBadGateway, "User store is unreachable, try again shortly")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to initialize user")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Onboard registers a new user with the remote store.
func (h *UserHandler) Onboard(c *gin.Context) {
	var req OnboardRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.userService.Onboard(c.Request.Context(), req.toGatewayRequest())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOnboardingRejected):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrUserBackendDown):
			abortWithError(c, http.StatusBadGateway, "User store is unreachable, your answers were not saved remotely")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to onboard user")
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Profile returns the locally cached member profile.
func (h *UserHandler) Profile(c *gin.Context) {
	email := c.Param("email")

	user, err := h.userService.Profile(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserProfileNotFound) {
			abortWithError(c, http.StatusNotFound, "No profile for this email")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
