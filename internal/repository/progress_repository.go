//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	// GetOrCreate は (user, lesson) の記録を作成し、既にあればそれを返す。created は今回作成したかどうか
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonID uint) (progress *model.LessonProgress, created bool, err error)
	CompletedLessonIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]uint, error)
	Exists(ctx context.Context, db *gorm.DB, userID uuid.UUID, lessonID uint) (bool, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

// GetOrCreate は idx_user_lesson 上の INSERT ... ON CONFLICT DO NOTHING で作成を試みる。
// 同時に走った他方が先に挿入した場合は RowsAffected が 0 になり、既存行を読み直す。
func (r *gormProgressRepository) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonID uint) (*model.LessonProgress, bool, error) {
	logger := middleware.GetLogger(ctx)

	progress := &model.LessonProgress{
		UserID:    userID,
		LessonID:  lessonID,
		Completed: true,
	}
	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).
		Create(progress)
	if result.Error != nil {
		logger.Error("Error creating lesson progress", "error", result.Error, "lesson_id", lessonID)
		return nil, false, fmt.Errorf("gormProgressRepository.GetOrCreate: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return progress, true, nil
	}

	var existing model.LessonProgress
	err := tx.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 競合したのに行が見えない。上位でリトライ可能な内部エラーとして扱う
			logger.Error("Lesson progress conflict but row not visible", "lesson_id", lessonID)
		}
		return nil, false, fmt.Errorf("gormProgressRepository.GetOrCreate: %w", err)
	}
	return &existing, false, nil
}

func (r *gormProgressRepository) CompletedLessonIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]uint, error) {
	logger := middleware.GetLogger(ctx)
	var ids []uint

	err := db.WithContext(ctx).Model(&model.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Pluck("lesson_id", &ids).Error
	if err != nil {
		logger.Error("Error listing completed lessons", "error", err, "user_id", userID.String())
		return nil, fmt.Errorf("gormProgressRepository.CompletedLessonIDs: %w", err)
	}
	return ids, nil
}

func (r *gormProgressRepository) Exists(ctx context.Context, db *gorm.DB, userID uuid.UUID, lessonID uint) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64

	err := db.WithContext(ctx).Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ? AND completed = ?", userID, lessonID, true).
		Count(&count).Error
	if err != nil {
		logger.Error("Error checking lesson progress", "error", err, "lesson_id", lessonID)
		return false, fmt.Errorf("gormProgressRepository.Exists: %w", err)
	}
	return count > 0, nil
}
