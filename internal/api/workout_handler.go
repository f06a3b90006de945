package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler drives the member-facing workout flow: the progression
// state machine, weight logging, and the composed dashboard view.
type WorkoutHandler struct {
	progressService service.ProgressService
	ledgerService   service.LedgerService
	catalog         service.CatalogService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(progressService service.ProgressService, ledgerService service.LedgerService, catalog service.CatalogService) *WorkoutHandler {
	return &WorkoutHandler{
		progressService: progressService,
		ledgerService:   ledgerService,
		catalog:         catalog,
	}
}

// --- Request Structs ---

type SelectWeekRequest struct {
	Week int `json:"week" binding:"required,min=1"`
}

type SelectDayRequest struct {
	Day int `json:"day" binding:"required,min=1"`
}

type SelectVariationRequest struct {
	VariationID string `json:"variationId" binding:"required"`
}

type SetPhaseRequest struct {
	Phase string `json:"phase" binding:"required"`
}

type SetDaysPerWeekRequest struct {
	Days      int  `json:"days" binding:"required,min=1"`
	Confirmed bool `json:"confirmed"`
}

type ReflectionRequest struct {
	Moods []string `json:"moods"`
	Note  string   `json:"note"`
}

type LogWeightRequestBody struct {
	Week         int     `json:"week" binding:"required,min=1"`
	Day          int     `json:"day" binding:"required,min=1"`
	ExerciseName string  `json:"exercise_name" binding:"required"`
	SetNumber    int     `json:"set_number" binding:"omitempty,min=1"`
	Weight       float64 `json:"weight" binding:"min=0"`
}

// Current returns the composed dashboard state: the cursor, the resolved
// program day (absent if the catalog cannot resolve it), the set-logging
// progress, and the advisory phase guidance.
func (h *WorkoutHandler) Current(c *gin.Context) {
	email := c.Param("email")
	cursor, err := h.progressService.Get(c.Request.Context(), email)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load progress")
		return
	}

	response := gin.H{"cursor": cursor}

	// The day may not resolve after an admin published a different
	// program shape; the cursor keeps its position and the UI shows an
	// empty state.
	if day, ok := h.catalog.GetDay(cursor.VariationID, cursor.Week, cursor.Day); ok {
		response["day"] = day
		response["totalSets"] = day.TotalSets()
		if logged, err := h.ledgerService.SetsLoggedCount(c.Request.Context(), email, day, cursor.Week, cursor.Day); err == nil {
			response["setsLogged"] = logged
		}
	}
	response["daysInWeek"] = h.catalog.ListDaysForWeek(cursor.VariationID, cursor.Week)

	if guidance, ok := domain.GuidanceForPhase(cursor.Phase); ok {
		response["phaseGuidance"] = guidance
	}

	c.JSON(http.StatusOK, response)
}

// Start begins the current day's workout.
func (h *WorkoutHandler) Start(c *gin.Context) {
	cursor, err := h.progressService.Start(c.Request.Context(), c.Param("email"))
	h.respondCursor(c, cursor, err)
}

// Complete marks the current day's workout done and unlocks reflection.
func (h *WorkoutHandler) Complete(c *gin.Context) {
	cursor, err := h.progressService.Complete(c.Request.Context(), c.Param("email"))
	h.respondCursor(c, cursor, err)
}

// Advance moves the cursor to the next day after the post-workout
// acknowledgements. Finishing the whole program is not an error: the
// response flags the milestone and the cursor stays on the last day.
func (h *WorkoutHandler) Advance(c *gin.Context) {
	cursor, err := h.progressService.Advance(c.Request.Context(), c.Param("email"))
	if errors.Is(err, service.ErrProgramComplete) {
		c.JSON(http.StatusOK, gin.H{"cursor": cursor, "programComplete": true})
		return
	}
	h.respondCursor(c, cursor, err)
}

// Restart resets to week 1, day 1 (the "start over" choice on the
// program-complete milestone).
func (h *WorkoutHandler) Restart(c *gin.Context) {
	cursor, err := h.progressService.Restart(c.Request.Context(), c.Param("email"))
	h.respondCursor(c, cursor, err)
}

// SelectWeek jumps to a week directly.
func (h *WorkoutHandler) SelectWeek(c *gin.Context) {
	var req SelectWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	cursor, err := h.progressService.SelectWeek(c.Request.Context(), c.Param("email"), req.Week)
	h.respondCursor(c, cursor, err)
}

// SelectDay jumps to a day directly.
func (h *WorkoutHandler) SelectDay(c *gin.Context) {
	var req SelectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	cursor, err := h.progressService.SelectDay(c.Request.Context(), c.Param("email"), req.Day)
	h.respondCursor(c, cursor, err)
}

// SelectVariation switches the followed program variation.
func (h *WorkoutHandler) SelectVariation(c *gin.Context) {
	var req SelectVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	cursor, err := h.progressService.SelectVariation(c.Request.Context(), c.Param("email"), req.VariationID)
	h.respondCursor(c, cursor, err)
}

// SetPhase stores the advisory cycle-phase selection.
func (h *WorkoutHandler) SetPhase(c *gin.Context) {
	var req SetPhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	cursor, err := h.progressService.SetPhase(c.Request.Context(), c.Param("email"), domain.CyclePhase(req.Phase))
	h.respondCursor(c, cursor, err)
}

// SetDaysPerWeek applies the split setting. When shrinking would strand
// the cursor, the service withholds the change and this responds 409
// with the confirmation payload; the client repeats with confirmed=true.
func (h *WorkoutHandler) SetDaysPerWeek(c *gin.Context) {
	var req SetDaysPerWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	cursor, confirmation, err := h.progressService.SetDaysPerWeek(c.Request.Context(), c.Param("email"), req.Days, req.Confirmed)
	if err != nil {
		h.respondCursor(c, nil, err)
		return
	}
	if confirmation != nil {
		c.JSON(http.StatusConflict, gin.H{
			"cursor":               cursor,
			"confirmationRequired": confirmation,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cursor": cursor})
}

// SubmitReflection stores the post-workout check-in.
func (h *WorkoutHandler) SubmitReflection(c *gin.Context) {
	var req ReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reflection, err := h.progressService.SubmitReflection(c.Request.Context(), c.Param("email"), req.Moods, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotCompleted) {
			abortWithError(c, http.StatusConflict, "Reflection is only captured after completing a workout")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save reflection")
		}
		return
	}
	c.JSON(http.StatusCreated, reflection)
}

// LatestReflection returns the most recent check-in.
func (h *WorkoutHandler) LatestReflection(c *gin.Context) {
	reflection, err := h.progressService.LatestReflection(c.Request.Context(), c.Param("email"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "No reflection recorded yet")
		return
	}
	c.JSON(http.StatusOK, reflection)
}

// LogWeight appends a weight entry. A failed remote write is not a
// failed save: the entry is kept locally and the response says so with
// a 202 instead of the 201 "saved" confirmation.
func (h *WorkoutHandler) LogWeight(c *gin.Context) {
	var req LogWeightRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.ledgerService.Record(c.Request.Context(), domain.WorkoutLogEntry{
		Email:        c.Param("email"),
		Week:         req.Week,
		Day:          req.Day,
		ExerciseName: req.ExerciseName,
		SetNumber:    req.SetNumber,
		Weight:       req.Weight,
	})
	if err != nil {
		if errors.Is(err, service.ErrRemoteWriteFailed) {
			c.JSON(http.StatusAccepted, gin.H{
				"entry":   entry,
				"synced":  false,
				"message": "Saved locally; syncing to the log store failed and can be retried",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidLogEntry) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save weight")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry, "synced": true})
}

// Logs returns the user's entries, newest first.
func (h *WorkoutHandler) Logs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			abortWithError(c, http.StatusBadRequest, "Query parameter 'limit' must be a positive integer")
			return
		}
		limit = parsed
	}

	logs, err := h.ledgerService.RecentLogs(c.Request.Context(), c.Param("email"), limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load logs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// LatestWeight returns the prefill weight for one exercise.
func (h *WorkoutHandler) LatestWeight(c *gin.Context) {
	exercise := c.Query("exercise")
	if exercise == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'exercise' is required")
		return
	}

	weight, ok, err := h.ledgerService.MostRecentWeight(c.Request.Context(), c.Param("email"), exercise)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve most recent weight")
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"exercise": exercise, "weight": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercise": exercise, "weight": weight})
}

// respondCursor maps progression-service errors onto HTTP statuses.
func (h *WorkoutHandler) respondCursor(c *gin.Context, cursor *domain.ProgressCursor, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"cursor": cursor})
		return
	}
	switch {
	case errors.Is(err, service.ErrWorkoutAlreadyStarted),
		errors.Is(err, service.ErrWorkoutNotInProgress),
		errors.Is(err, service.ErrWorkoutNotCompleted),
		errors.Is(err, service.ErrSelectionLocked):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrWeekOutOfRange),
		errors.Is(err, service.ErrDayOutOfRange),
		errors.Is(err, service.ErrDaysPerWeekNotAllowed),
		errors.Is(err, service.ErrUnknownVariation),
		errors.Is(err, service.ErrUnknownPhase):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to update progress")
	}
}
