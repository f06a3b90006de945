package api

import (
	"net/http"
	"strconv"

	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgramHandler serves read-only catalog lookups. Missing variations,
// weeks, or days are 404s with no error payload beyond the message, so
// navigation can render an empty state instead of failing.
type ProgramHandler struct {
	catalog service.CatalogService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(catalog service.CatalogService) *ProgramHandler {
	return &ProgramHandler{catalog: catalog}
}

// Library returns the full active library with its publish timestamp
// (null when the built-in default is active).
func (h *ProgramHandler) Library(c *gin.Context) {
	library, publishedAt := h.catalog.ActiveLibrary()
	c.JSON(http.StatusOK, gin.H{
		"library":     library,
		"publishedAt": publishedAt,
	})
}

// Variation returns one program variation by id.
func (h *ProgramHandler) Variation(c *gin.Context) {
	variation, ok := h.catalog.GetVariation(c.Param("variationId"))
	if !ok {
		abortWithError(c, http.StatusNotFound, "Variation not found")
		return
	}
	c.JSON(http.StatusOK, variation)
}

// Week returns one week of a variation.
func (h *ProgramHandler) Week(c *gin.Context) {
	week, ok := intParam(c, "week")
	if !ok {
		return
	}
	programWeek, found := h.catalog.GetWeek(c.Param("variationId"), week)
	if !found {
		abortWithError(c, http.StatusNotFound, "Week not found")
		return
	}
	c.JSON(http.StatusOK, programWeek)
}

// Days returns the day list for one week; an absent week is an empty
// list, not an error.
func (h *ProgramHandler) Days(c *gin.Context) {
	week, ok := intParam(c, "week")
	if !ok {
		return
	}
	days := h.catalog.ListDaysForWeek(c.Param("variationId"), week)
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// Day returns one program day, looked up by its day number.
func (h *ProgramHandler) Day(c *gin.Context) {
	week, ok := intParam(c, "week")
	if !ok {
		return
	}
	day, ok := intParam(c, "day")
	if !ok {
		return
	}
	programDay, found := h.catalog.GetDay(c.Param("variationId"), week, day)
	if !found {
		abortWithError(c, http.StatusNotFound, "Day not found")
		return
	}
	c.JSON(http.StatusOK, programDay)
}

// PhaseGuidance returns the advisory text for a cycle phase.
func (h *ProgramHandler) PhaseGuidance(c *gin.Context) {
	guidance, ok := domain.GuidanceForPhase(domain.CyclePhase(c.Param("phase")))
	if !ok {
		abortWithError(c, http.StatusNotFound, "Unknown cycle phase")
		return
	}
	c.JSON(http.StatusOK, guidance)
}

// intParam parses a positive integer path parameter, aborting with a 400
// on garbage input.
func intParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value < 1 {
		abortWithError(c, http.StatusBadRequest, "Parameter '"+name+"' must be a positive integer")
		return 0, false
	}
	return value, true
}
