package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/speakbright/backend/internal/auth"
	"github.com/speakbright/backend/internal/models"
	"go.uber.org/zap"
)

// QuestService defines methods for daily quest business logic
type QuestService interface {
	// TodayQuests returns the user's 3 quests for the current day,
	// generating them on first access.
	//
	// If some error occurs during generation or retrieval, the error will
	// be returned.
	TodayQuests(ctx context.Context, userID int) ([]models.DailyQuest, error)
}

// QuestHandler handles daily quest routes
type QuestHandler struct {
	BaseHandler
	service QuestService
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(service QuestService, logger *zap.Logger) *QuestHandler {
	return &QuestHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all quest handler routes
func (h *QuestHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/quests", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/today", h.TodayQuests)
	})
}

// TodayQuests handles GET /api/v1/quests/today
// @Summary Get today's quests
// @Description Get the authenticated user's 3 daily quests, generating them on first access of the day.
// @Tags quests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.DailyQuest "Today's quests in slot order"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error - failed to generate or load quests"
// @Router /api/v1/quests/today [get]
func (h *QuestHandler) TodayQuests(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	quests, err := h.service.TodayQuests(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to load daily quests", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to load daily quests")
		return
	}

	h.RespondJSON(w, http.StatusOK, quests)
}
