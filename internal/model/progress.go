// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LessonCompletionBonusXP はレッスン初回完了時に一度だけ付与されるXP
const LessonCompletionBonusXP = 100

// LessonProgress は (ユーザー, レッスン) の完了記録。存在すること自体が完了を意味する
type LessonProgress struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_lesson"` // 複合ユニークインデックスの一部
	LessonID  uint      `gorm:"not null;uniqueIndex:idx_user_lesson"`           // 複合ユニークインデックスの一部
	Completed bool      `gorm:"not null;default:true"`
	CreatedAt time.Time

	Lesson *Lesson `gorm:"foreignKey:LessonID" json:"-"`
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// CompleteLessonRequest はレッスン完了APIのリクエストボディ
type CompleteLessonRequest struct {
	LessonID uint `json:"lesson_id" validate:"required"`
}

// CompletionResult はレッスン完了処理の結果
type CompletionResult struct {
	XPGained int
	TotalXP  int
}

type CompleteLessonResponse struct {
	Status                string `json:"status"`
	XPGained              int    `json:"xp_gained"`
	TotalExperiencePoints int    `json:"total_experience_points"`
}
