package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/speakbright/backend/internal/auth"
	"github.com/speakbright/backend/internal/models"
	"github.com/speakbright/backend/internal/repositories"
	"github.com/speakbright/backend/internal/services"
	"go.uber.org/zap"
)

// LessonService defines methods for lesson reads and submission scoring
type LessonService interface {
	// GetLesson retrieves lesson reference data by coordinates.
	//
	// If the lesson does not exist, repositories.ErrLessonNotFound will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	GetLesson(ctx context.Context, category string, module, level int) (*models.Lesson, error)
	// ListLessons retrieves a category's lessons with the user's
	// completion state, sorted by module and level.
	//
	// If no records are found, an empty slice will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	ListLessons(ctx context.Context, category string, userID int) ([]models.LessonListItem, error)
	// SubmitRecording scores a practice transcript, records the session,
	// and applies gamification side effects.
	//
	// If the transcript is empty or the duration non-positive, a
	// validation error will be returned.
	// If some error occurs during scoring or the session write, the error
	// will be returned.
	SubmitRecording(ctx context.Context, userID int, category string, module, level int, req *models.SubmitRecordingRequest) (*models.SubmissionResponse, error)
}

// LessonHandler handles lesson reads and practice submissions
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(service LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/lessons", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/{category}", h.ListLessons)
		r.Get("/{category}/{module}/{level}", h.GetLesson)
		r.Post("/{category}/{module}/{level}/submissions", h.SubmitRecording)
	})
}

// lessonCoords parses the module and level path parameters
func lessonCoords(r *http.Request) (category string, module, level int, err error) {
	category = chi.URLParam(r, "category")

	module, err = strconv.Atoi(chi.URLParam(r, "module"))
	if err != nil || module < 1 {
		return "", 0, 0, errors.New("invalid module")
	}

	level, err = strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil || level < 1 {
		return "", 0, 0, errors.New("invalid level")
	}

	return category, module, level, nil
}

// ListLessons handles GET /api/v1/lessons/{category}
// @Summary List lessons in a category
// @Description Get all lessons in a category with the authenticated user's completion state.
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param category path string true "Lesson category"
// @Success 200 {array} models.LessonListItem "Lessons in module and level order"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/lessons/{category} [get]
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessons, err := h.service.ListLessons(r.Context(), chi.URLParam(r, "category"), userID)
	if err != nil {
		h.Logger.Error("failed to list lessons", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to list lessons")
		return
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// GetLesson handles GET /api/v1/lessons/{category}/{module}/{level}
// @Summary Get one lesson
// @Description Get lesson reference data by its category, module, and level coordinates.
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param category path string true "Lesson category"
// @Param module path int true "Module number"
// @Param level path int true "Level number"
// @Success 200 {object} models.Lesson "Lesson reference data"
// @Failure 400 {object} map[string]string "Bad request - invalid module or level"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/lessons/{category}/{module}/{level} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.GetUserID(r.Context()); !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	category, module, level, err := lessonCoords(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), category, module, level)
	if err != nil {
		if errors.Is(err, repositories.ErrLessonNotFound) {
			h.RespondError(w, http.StatusNotFound, "lesson not found")
			return
		}
		h.Logger.Error("failed to get lesson", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get lesson")
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// SubmitRecording handles POST /api/v1/lessons/{category}/{module}/{level}/submissions
// @Summary Submit a practice recording transcript
// @Description Score a practice transcript against the lesson, record the session, and apply XP, quest, and achievement effects.
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param category path string true "Lesson category"
// @Param module path int true "Module number"
// @Param level path int true "Level number"
// @Param submission body models.SubmitRecordingRequest true "Transcript and duration"
// @Success 200 {object} models.SubmissionResponse "Feedback and gamification outcome"
// @Failure 400 {object} map[string]string "Bad request - invalid body, empty transcript, or non-positive duration"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error - AI judgment or session write failed"
// @Router /api/v1/lessons/{category}/{module}/{level}/submissions [post]
func (h *LessonHandler) SubmitRecording(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	category, module, level, err := lessonCoords(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.SubmitRecordingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.SubmitRecording(r.Context(), userID, category, module, level, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTranscript), errors.Is(err, services.ErrInvalidDuration):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrLessonNotFound):
			h.RespondError(w, http.StatusNotFound, "lesson not found")
		default:
			h.Logger.Error("failed to process submission", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "failed to process submission")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}
