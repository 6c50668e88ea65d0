package handlers

import (
	"net/http"
	"strconv"

	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/service"
	"go_5_superlingo/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type LessonHandler struct {
	lessons  service.LessonService
	progress service.ProgressService
}

func NewLessonHandler(lessons service.LessonService, progress service.ProgressService) *LessonHandler {
	return &LessonHandler{lessons: lessons, progress: progress}
}

// ListLessons はレッスン一覧を順序どおりに返す
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	lessons, err := h.lessons.ListLessons(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, lessons, logger)
}

func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	idStr := chi.URLParam(r, "id")
	lessonID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || lessonID == 0 {
		logger.Warn("Invalid lesson ID format", "id", idStr)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_LESSON_ID", "lesson id must be a positive integer.", "id", model.ErrInvalidInput))
		return
	}

	lesson, err := h.lessons.GetLesson(r.Context(), userID, uint(lessonID))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, lesson, logger)
}

// CompleteLesson はレッスンを完了にし、付与した XP と合計を返す。何度呼んでも付与は初回だけ
func (h *LessonHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CompleteLessonRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode complete-lesson request body", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "lesson_id must be an integer.", "lesson_id", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed for complete-lesson", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.progress.CompleteLesson(r.Context(), userID, req.LessonID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.CompleteLessonResponse{
		Status:                "Lesson completed",
		XPGained:              result.XPGained,
		TotalExperiencePoints: result.TotalXP,
	}, logger)
}
