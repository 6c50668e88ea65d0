//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error)
	// IncrementXP は加算後の合計を返す
	IncrementXP(ctx context.Context, db *gorm.DB, userID uuid.UUID, amount int) (int, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate key error on create user",
				"error", result.Error,
				"username", user.Username,
				"email", user.Email,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating user in DB", "error", result.Error, "username", user.Username)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where("id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by ID in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("User not found by username", "username", username)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by username in DB", "error", result.Error, "username", username)
		return nil, fmt.Errorf("gormUserRepository.FindByUsername: %w", result.Error)
	}
	return &user, nil
}

// IncrementXP は SQL 側で加算するので、同一ユーザーへの同時加算でも値を失わない
func (r *gormUserRepository) IncrementXP(ctx context.Context, db *gorm.DB, userID uuid.UUID, amount int) (int, error) {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("experience_points", gorm.Expr("experience_points + ?", amount))
	if result.Error != nil {
		logger.Error("Error incrementing experience points", "error", result.Error, "user_id", userID.String())
		return 0, fmt.Errorf("gormUserRepository.IncrementXP: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, model.ErrNotFound
	}

	var total int
	if err := db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Pluck("experience_points", &total).Error; err != nil {
		logger.Error("Error reading experience points", "error", err, "user_id", userID.String())
		return 0, fmt.Errorf("gormUserRepository.IncrementXP: %w", err)
	}
	return total, nil
}

// isDuplicateKey は TranslateError 有効時の gorm.ErrDuplicatedKey と pgx の 23505 の両方を見る
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
