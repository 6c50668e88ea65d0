package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Lesson はシード後に変更されない。Order の昇順で並べて返す
type Lesson struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Level     string    `gorm:"size:10;not null;default:A1" json:"level"`
	Order     int       `gorm:"column:sort_order;not null;default:0;index" json:"order"`
	Topics    Topics    `gorm:"not null" json:"topics"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Topics はレッスンの演習ペイロード。JSONカラムとして保存する
type Topics struct {
	Title      string     `json:"title"`
	Activities Activities `json:"activities"`
}

// Scan implements sql.Scanner
func (t *Topics) Scan(src any) error {
	if src == nil {
		*t = Topics{}
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			*t = Topics{}
			return nil
		}
		return json.Unmarshal(data, t)
	case string:
		if data == "" {
			*t = Topics{}
			return nil
		}
		return json.Unmarshal([]byte(data), t)
	default:
		return fmt.Errorf("Topics: unsupported src type %T", src)
	}
}

// Value implements driver.Valuer
func (t Topics) Value() (driver.Value, error) {
	if t.Activities == nil {
		t.Activities = Activities{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// GormDBDataType は postgres では jsonb、それ以外は JSON を使う
func (Topics) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "JSON"
}

// LessonResponse はユーザーごとの完了フラグ付きレッスン
type LessonResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Level     string `json:"level"`
	Order     int    `json:"order"`
	Topics    Topics `json:"topics"`
	Completed bool   `json:"completed"`
}

func NewLessonResponse(l *Lesson, completed bool) *LessonResponse {
	return &LessonResponse{
		ID:        l.ID,
		Title:     l.Title,
		Level:     l.Level,
		Order:     l.Order,
		Topics:    l.Topics,
		Completed: completed,
	}
}
