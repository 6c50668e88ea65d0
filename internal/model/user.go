package model

import (
	"time"

	"github.com/google/uuid"
)

// User は学習者。ExperiencePoints はレッスン完了時にのみ加算される
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username         string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email            string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	ExperiencePoints int       `gorm:"not null;default:0" json:"experience_points"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// UserResponse はクライアントに返すユーザー情報
type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	ExperiencePoints int       `json:"experience_points"`
}

func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		ExperiencePoints: u.ExperiencePoints,
	}
}
