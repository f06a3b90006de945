package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jestephe2/rootedwellness-workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin surface: session management and the
// program library editor (publish, revert, import, export).
type AdminHandler struct {
	sessions service.SessionService
	catalog  service.CatalogService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(sessions service.SessionService, catalog service.CatalogService) *AdminHandler {
	return &AdminHandler{sessions: sessions, catalog: catalog}
}

// --- Request Structs ---

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type ImportLibraryRequest struct {
	// The library document as a JSON string, exactly as pasted into the
	// import box.
	Document string `json:"document" binding:"required"`
}

// Login exchanges the admin password for a session token. The password
// check happens at the auth backend; a rejected password is a 401 and an
// unreachable backend is a 502.
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, "Invalid admin password")
		case errors.Is(err, service.ErrAuthBackendDown):
			abortWithError(c, http.StatusBadGateway, "Authentication backend is unreachable")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create admin session")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
}

// Session confirms the presented token still maps to a live session.
// The middleware already resolved it; this just echoes the expiry.
func (h *AdminHandler) Session(c *gin.Context) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		abortToLogin(c, "Admin session is missing or expired")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": value})
}

// Logout discards the session.
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to end admin session")
		return
	}
	c.Status(http.StatusNoContent)
}

// Publish validates and activates a pasted library document. A shape
// violation reports the first failing rule and changes nothing.
func (h *AdminHandler) Publish(c *gin.Context) {
	var req ImportLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	library, err := h.catalog.ImportJSON(req.Document)
	if err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := h.catalog.Publish(c.Request.Context(), library); err != nil {
		h.respondValidation(c, err)
		return
	}

	activeLibrary, publishedAt := h.catalog.ActiveLibrary()
	c.JSON(http.StatusOK, gin.H{
		"library":     activeLibrary,
		"publishedAt": publishedAt,
	})
}

// Revert removes the published override and reinstates the built-in
// default catalog.
func (h *AdminHandler) Revert(c *gin.Context) {
	if err := h.catalog.RevertToDefault(c.Request.Context()); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to revert to the default program")
		return
	}
	library, publishedAt := h.catalog.ActiveLibrary()
	c.JSON(http.StatusOK, gin.H{
		"library":     library,
		"publishedAt": publishedAt,
	})
}

// Import validates a pasted document without activating it, so the UI
// can preview before publishing.
func (h *AdminHandler) Import(c *gin.Context) {
	var req ImportLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	library, err := h.catalog.ImportJSON(req.Document)
	if err != nil {
		h.respondValidation(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "library": library})
}

// Export returns the active library in the import format.
func (h *AdminHandler) Export(c *gin.Context) {
	data, err := h.catalog.ExportJSON()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to export the program library")
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// ExportDownloadURL presigns a download of the latest archived snapshot.
func (h *AdminHandler) ExportDownloadURL(c *gin.Context) {
	url, err := h.catalog.ExportDownloadURL(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoSnapshotStorage) {
			abortWithError(c, http.StatusNotImplemented, "Snapshot storage is not configured on this server")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to presign the snapshot download")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// respondValidation renders a library shape failure with its rule id so
// the editor can highlight the offending section.
func (h *AdminHandler) respondValidation(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"rule":  validationErr.Rule,
		})
		return
	}
	abortWithError(c, http.StatusInternalServerError, "Failed to process the program library")
}
