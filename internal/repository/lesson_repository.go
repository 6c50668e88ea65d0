//go:generate mockery --name LessonRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, lessonID uint) (*model.Lesson, error)
	FindAllOrdered(ctx context.Context, db *gorm.DB) ([]*model.Lesson, error)
	Upsert(ctx context.Context, db *gorm.DB, lesson *model.Lesson) error
}

type gormLessonRepository struct{}

func NewGormLessonRepository() LessonRepository {
	return &gormLessonRepository{}
}

func (r *gormLessonRepository) FindByID(ctx context.Context, db *gorm.DB, lessonID uint) (*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var lesson model.Lesson

	result := db.WithContext(ctx).First(&lesson, lessonID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("Lesson not found", "lesson_id", lessonID)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding lesson by ID in DB", "error", result.Error, "lesson_id", lessonID)
		return nil, fmt.Errorf("gormLessonRepository.FindByID: %w", result.Error)
	}
	return &lesson, nil
}

func (r *gormLessonRepository) FindAllOrdered(ctx context.Context, db *gorm.DB) ([]*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var lessons []*model.Lesson

	result := db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&lessons)
	if result.Error != nil {
		logger.Error("Error listing lessons in DB", "error", result.Error)
		return nil, fmt.Errorf("gormLessonRepository.FindAllOrdered: %w", result.Error)
	}
	return lessons, nil
}

// Upsert は ID をキーにレッスンを作成または上書きする (シード用)
func (r *gormLessonRepository) Upsert(ctx context.Context, db *gorm.DB, lesson *model.Lesson) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "level", "sort_order", "topics", "updated_at"}),
	}).Create(lesson)
	if result.Error != nil {
		logger.Error("Error upserting lesson in DB", "error", result.Error, "lesson_id", lesson.ID)
		return fmt.Errorf("gormLessonRepository.Upsert: %w", result.Error)
	}
	return nil
}
