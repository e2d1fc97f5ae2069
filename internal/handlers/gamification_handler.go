package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/speakbright/backend/internal/auth"
	"github.com/speakbright/backend/internal/models"
	"go.uber.org/zap"
)

// Leaderboard size bounds
const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// GamificationService defines methods for gamification reads
type GamificationService interface {
	// Profile assembles the user's gamification profile with derived
	// level, rank, and streak.
	//
	// If some error occurs during data retrieval, the error will be returned.
	Profile(ctx context.Context, userID int) (*models.GamificationProfile, error)
	// Leaderboard retrieves the top users by total XP.
	//
	// If some error occurs during data retrieval, the error will be returned.
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	// Achievements retrieves the user's unlocked achievements, newest first.
	//
	// If no records are found, an empty slice will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	Achievements(ctx context.Context, userID int) ([]models.UserAchievement, error)
}

// GamificationHandler handles gamification routes
type GamificationHandler struct {
	BaseHandler
	service GamificationService
}

// NewGamificationHandler creates a new gamification handler
func NewGamificationHandler(service GamificationService, logger *zap.Logger) *GamificationHandler {
	return &GamificationHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all gamification handler routes
func (h *GamificationHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/gamification", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/profile", h.Profile)
		r.Get("/leaderboard", h.Leaderboard)
		r.Get("/achievements", h.Achievements)
	})
}

// Profile handles GET /api/v1/gamification/profile
// @Summary Get gamification profile
// @Description Get the authenticated user's XP, level, rank, and streak.
// @Tags gamification
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.GamificationProfile "Profile with derived level and rank"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/gamification/profile [get]
func (h *GamificationHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to load gamification profile", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	h.RespondJSON(w, http.StatusOK, profile)
}

// Leaderboard handles GET /api/v1/gamification/leaderboard
// @Summary Get the XP leaderboard
// @Description Get the top users by total XP. The count query parameter caps the page size at 100.
// @Tags gamification
// @Produce json
// @Security ApiKeyAuth
// @Param count query int false "Number of entries (default 10, max 100)"
// @Success 200 {array} models.LeaderboardEntry "Entries in descending XP order"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/gamification/leaderboard [get]
func (h *GamificationHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.GetUserID(r.Context()); !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		h.Logger.Error("failed to load leaderboard", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	h.RespondJSON(w, http.StatusOK, entries)
}

// Achievements handles GET /api/v1/gamification/achievements
// @Summary Get unlocked achievements
// @Description Get the authenticated user's unlocked achievements, newest first.
// @Tags gamification
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserAchievement "Unlocked achievements (empty array if none)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/gamification/achievements [get]
func (h *GamificationHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	achievements, err := h.service.Achievements(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to load achievements", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to load achievements")
		return
	}

	h.RespondJSON(w, http.StatusOK, achievements)
}
