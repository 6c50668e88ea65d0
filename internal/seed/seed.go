// Package seed は初期レッスンを DB に投入する
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/repository"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed lessons.yaml
var lessonsYAML []byte

type lessonEntry struct {
	ID     uint   `yaml:"id"`
	Title  string `yaml:"title"`
	Level  string `yaml:"level"`
	Order  int    `yaml:"order"`
	Topics any    `yaml:"topics"`
}

// Lessons は埋め込みの YAML をレッスンに変換する。
// topics は一度 JSON に直してから model.Topics の判別デコードを通す。
func Lessons() ([]*model.Lesson, error) {
	return parseLessons(lessonsYAML)
}

func parseLessons(data []byte) ([]*model.Lesson, error) {
	var entries []lessonEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("seed: parse lessons: %w", err)
	}

	lessons := make([]*model.Lesson, 0, len(entries))
	seen := make(map[uint]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == 0 {
			return nil, fmt.Errorf("seed: lesson %q has no id", e.Title)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("seed: duplicate lesson id %d", e.ID)
		}
		seen[e.ID] = struct{}{}

		raw, err := json.Marshal(e.Topics)
		if err != nil {
			return nil, fmt.Errorf("seed: lesson %d topics: %w", e.ID, err)
		}
		var topics model.Topics
		if err := json.Unmarshal(raw, &topics); err != nil {
			return nil, fmt.Errorf("seed: lesson %d topics: %w", e.ID, err)
		}

		level := e.Level
		if level == "" {
			level = "A1"
		}
		lessons = append(lessons, &model.Lesson{
			ID:     e.ID,
			Title:  e.Title,
			Level:  level,
			Order:  e.Order,
			Topics: topics,
		})
	}
	return lessons, nil
}

// Run はレッスンを1トランザクションで upsert する。何度実行しても結果は同じ
func Run(ctx context.Context, db *gorm.DB, lessonRepo repository.LessonRepository) (int, error) {
	logger := middleware.GetLogger(ctx)

	lessons, err := Lessons()
	if err != nil {
		return 0, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range lessons {
			if err := lessonRepo.Upsert(ctx, tx, l); err != nil {
				return err
			}
			logger.Debug("Lesson seeded", "lesson_id", l.ID, "title", l.Title)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed.Run: %w", err)
	}

	logger.Info("Lessons seeded", "count", len(lessons))
	return len(lessons), nil
}
