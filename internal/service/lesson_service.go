package service

import (
	"context"
	"errors"

	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type LessonService interface {
	ListLessons(ctx context.Context, userID uuid.UUID) ([]*model.LessonResponse, error)
	GetLesson(ctx context.Context, userID uuid.UUID, lessonID uint) (*model.LessonResponse, error)
}

type lessonService struct {
	db           *gorm.DB
	lessonRepo   repository.LessonRepository
	progressRepo repository.ProgressRepository
}

func NewLessonService(db *gorm.DB, lessonRepo repository.LessonRepository, progressRepo repository.ProgressRepository) LessonService {
	return &lessonService{
		db:           db,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
	}
}

// ListLessons は順序キーの昇順で返す。completed はリクエストしたユーザーの完了状態
func (s *lessonService) ListLessons(ctx context.Context, userID uuid.UUID) ([]*model.LessonResponse, error) {
	logger := middleware.GetLogger(ctx)

	lessons, err := s.lessonRepo.FindAllOrdered(ctx, s.db)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to list lessons.", "", err)
	}

	completedIDs, err := s.progressRepo.CompletedLessonIDs(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load lesson progress.", "", err)
	}
	completed := lo.Associate(completedIDs, func(id uint) (uint, struct{}) {
		return id, struct{}{}
	})

	resp := lo.Map(lessons, func(l *model.Lesson, _ int) *model.LessonResponse {
		_, done := completed[l.ID]
		return model.NewLessonResponse(l, done)
	})

	logger.Debug("Lessons listed", "count", len(resp), "completed", len(completed))
	return resp, nil
}

func (s *lessonService) GetLesson(ctx context.Context, userID uuid.UUID, lessonID uint) (*model.LessonResponse, error) {
	if lessonID == 0 {
		return nil, model.NewAppError("INVALID_LESSON_ID", "lesson id must be a positive integer.", "id", model.ErrInvalidInput)
	}

	lesson, err := s.lessonRepo.FindByID(ctx, s.db, lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("LESSON_NOT_FOUND", "Lesson not found.", "id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the lesson.", "", err)
	}

	done, err := s.progressRepo.Exists(ctx, s.db, userID, lessonID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load lesson progress.", "", err)
	}
	return model.NewLessonResponse(lesson, done), nil
}
