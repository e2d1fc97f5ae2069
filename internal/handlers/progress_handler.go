package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/speakbright/backend/internal/auth"
	"github.com/speakbright/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressService defines methods for progress reads
type ProgressService interface {
	// ListProgress retrieves all per-lesson progress rows for a user.
	//
	// If no records are found, an empty slice will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	ListProgress(ctx context.Context, userID int) ([]models.UserProgress, error)
}

// ProgressHandler handles progress routes
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(service ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/progress", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListProgress)
	})
}

// ListProgress handles GET /api/v1/progress
// @Summary Get per-lesson progress
// @Description Get the authenticated user's progress rows across all attempted lessons.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserProgress "Progress rows (empty array if none)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/progress [get]
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	progress, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to load progress", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}
