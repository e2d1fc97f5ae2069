package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/speakbright/backend/internal/auth"
	"github.com/speakbright/backend/internal/models"
	"github.com/speakbright/backend/internal/repositories"
	"github.com/speakbright/backend/internal/services"
	"go.uber.org/zap"
)

// ArtifactService defines methods for the artifact collection
type ArtifactService interface {
	// ListArtifacts returns the full artifact catalog annotated with the
	// user's ownership and equip state.
	//
	// If some error occurs during data retrieval, the error will be returned.
	ListArtifacts(ctx context.Context, userID int) ([]models.UserArtifactDetail, error)
	// Equip equips one owned artifact, replacing any equipped artifact in
	// the same category.
	//
	// If the key is not in the catalog, services.ErrUnknownArtifact will be returned.
	// If the user does not own the artifact, repositories.ErrArtifactNotOwned will be returned.
	// If some error occurs during the update, the error will be returned.
	Equip(ctx context.Context, userID int, artifactKey string) error
}

// ArtifactHandler handles artifact collection routes
type ArtifactHandler struct {
	BaseHandler
	service ArtifactService
}

// NewArtifactHandler creates a new artifact handler
func NewArtifactHandler(service ArtifactService, logger *zap.Logger) *ArtifactHandler {
	return &ArtifactHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all artifact handler routes
func (h *ArtifactHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/artifacts", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListArtifacts)
		r.Post("/{key}/equip", h.Equip)
	})
}

// ListArtifacts handles GET /api/v1/artifacts
// @Summary Get the artifact collection
// @Description Get the full artifact catalog annotated with the authenticated user's ownership and equip state.
// @Tags artifacts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserArtifactDetail "Catalog in display order"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/artifacts [get]
func (h *ArtifactHandler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	artifacts, err := h.service.ListArtifacts(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to load artifacts", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to load artifacts")
		return
	}

	h.RespondJSON(w, http.StatusOK, artifacts)
}

// Equip handles POST /api/v1/artifacts/{key}/equip
// @Summary Equip an artifact
// @Description Equip one owned artifact. Any previously equipped artifact in the same category is unequipped.
// @Tags artifacts
// @Produce json
// @Security ApiKeyAuth
// @Param key path string true "Artifact key"
// @Success 200 {object} map[string]string "Artifact equipped"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Unknown artifact key"
// @Failure 409 {object} map[string]string "Artifact not owned"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/artifacts/{key}/equip [post]
func (h *ArtifactHandler) Equip(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	key := chi.URLParam(r, "key")

	if err := h.service.Equip(r.Context(), userID, key); err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownArtifact):
			h.RespondError(w, http.StatusNotFound, "unknown artifact")
		case errors.Is(err, repositories.ErrArtifactNotOwned):
			h.RespondError(w, http.StatusConflict, "artifact not owned")
		default:
			h.Logger.Error("failed to equip artifact", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "failed to equip artifact")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "artifact equipped"})
}
