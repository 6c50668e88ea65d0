package service

import (
	"context"
	"errors"

	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/observe"
	"go_5_superlingo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressService interface {
	CompleteLesson(ctx context.Context, userID uuid.UUID, lessonID uint) (*model.CompletionResult, error)
}

type progressService struct {
	db           *gorm.DB
	lessonRepo   repository.LessonRepository
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	metrics      *observe.Metrics
}

func NewProgressService(db *gorm.DB, lessonRepo repository.LessonRepository, userRepo repository.UserRepository, progressRepo repository.ProgressRepository, metrics *observe.Metrics) ProgressService {
	return &progressService{
		db:           db,
		lessonRepo:   lessonRepo,
		userRepo:     userRepo,
		progressRepo: progressRepo,
		metrics:      metrics,
	}
}

// CompleteLesson はレッスンを完了済みにする。初回だけ 100 XP を付与し、2回目以降は 0。
// 記録の作成と XP の加算は同じトランザクションで行う。
func (s *progressService) CompleteLesson(ctx context.Context, userID uuid.UUID, lessonID uint) (*model.CompletionResult, error) {
	logger := middleware.GetLogger(ctx)

	if lessonID == 0 {
		return nil, model.NewAppError("INVALID_LESSON_ID", "lesson_id is required.", "lesson_id", model.ErrInvalidInput)
	}

	var result model.CompletionResult
	var created bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.lessonRepo.FindByID(ctx, tx, lessonID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Lesson not found for completion", "lesson_id", lessonID)
				return model.NewAppError("LESSON_NOT_FOUND", "Lesson not found.", "lesson_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the lesson.", "", err)
		}

		var err error
		_, created, err = s.progressRepo.GetOrCreate(ctx, tx, userID, lessonID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record lesson progress.", "", err)
		}

		if created {
			total, err := s.userRepo.IncrementXP(ctx, tx, userID, model.LessonCompletionBonusXP)
			if err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("USER_NOT_FOUND", "User not found.", "", model.ErrNotFound)
				}
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to award experience points.", "", err)
			}
			result = model.CompletionResult{XPGained: model.LessonCompletionBonusXP, TotalXP: total}
			return nil
		}

		user, err := s.userRepo.FindByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "User not found.", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the user.", "", err)
		}
		result = model.CompletionResult{XPGained: 0, TotalXP: user.ExperiencePoints}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLessonCompletion(ctx, created, result.XPGained)
	logger.Info("Lesson completed",
		"lesson_id", lessonID,
		"first_completion", created,
		"xp_gained", result.XPGained,
		"total_xp", result.TotalXP,
	)
	return &result, nil
}
