package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/observe"
	"go_5_superlingo/internal/repository"
	"go_5_superlingo/internal/repository/mocks"
	"go_5_superlingo/internal/service"
	"go_5_superlingo/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type progressFixture struct {
	db      *gorm.DB
	svc     service.ProgressService
	user    *model.User
	lesson  *model.Lesson
	userRep repository.UserRepository
}

func setupProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)

	userRepo := repository.NewGormUserRepository()
	lessonRepo := repository.NewGormLessonRepository()
	progressRepo := repository.NewGormProgressRepository()

	user := &model.User{ID: uuid.New(), Username: "jisoo", Email: "jisoo@example.com", PasswordHash: "hash"}
	require.NoError(t, userRepo.Create(ctx, db, user))
	lesson := &model.Lesson{ID: 1, Title: "Lesson 1 - Daily Routine", Level: "A1", Order: 1}
	require.NoError(t, lessonRepo.Upsert(ctx, db, lesson))

	return &progressFixture{
		db:      db,
		svc:     service.NewProgressService(db, lessonRepo, userRepo, progressRepo, observe.NewNoopMetrics()),
		user:    user,
		lesson:  lesson,
		userRep: userRepo,
	}
}

func Test_progressService_CompleteLesson(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 初回は100XP、2回目は0XP", func(t *testing.T) {
		f := setupProgressFixture(t)

		first, err := f.svc.CompleteLesson(ctx, f.user.ID, f.lesson.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, first.XPGained)
		assert.Equal(t, 100, first.TotalXP)

		second, err := f.svc.CompleteLesson(ctx, f.user.ID, f.lesson.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, second.XPGained)
		assert.Equal(t, 100, second.TotalXP)
	})

	t.Run("正常系: 同時に呼ばれても付与は1回だけ", func(t *testing.T) {
		f := setupProgressFixture(t)
		const workers = 8

		var wg sync.WaitGroup
		results := make([]*model.CompletionResult, workers)
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = f.svc.CompleteLesson(ctx, f.user.ID, f.lesson.ID)
			}(i)
		}
		wg.Wait()

		gained := 0
		for i := 0; i < workers; i++ {
			require.NoError(t, errs[i])
			gained += results[i].XPGained
		}
		assert.Equal(t, 100, gained)

		var count int64
		require.NoError(t, f.db.Model(&model.LessonProgress{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		user, err := f.userRep.FindByID(ctx, f.db, f.user.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, user.ExperiencePoints)
	})

	t.Run("異常系: lesson_id が0", func(t *testing.T) {
		f := setupProgressFixture(t)
		_, err := f.svc.CompleteLesson(ctx, f.user.ID, 0)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("異常系: レッスンが存在しない", func(t *testing.T) {
		f := setupProgressFixture(t)
		_, err := f.svc.CompleteLesson(ctx, f.user.ID, 42)
		assert.ErrorIs(t, err, model.ErrNotFound)

		var count int64
		require.NoError(t, f.db.Model(&model.LessonProgress{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

// XP 加算が失敗したら完了記録もロールバックされる
func Test_progressService_CompleteLesson_RollsBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)

	userID := uuid.New()
	require.NoError(t, db.Create(&model.User{ID: userID, Username: "a", Email: "a@example.com", PasswordHash: "h"}).Error)
	require.NoError(t, db.Create(&model.Lesson{ID: 1, Title: "L1", Level: "A1", Order: 1}).Error)

	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("IncrementXP", mock.Anything, mock.AnythingOfType("*gorm.DB"), userID, model.LessonCompletionBonusXP).
		Return(0, errors.New("disk full")).Once()

	svc := service.NewProgressService(db,
		repository.NewGormLessonRepository(),
		mockUserRepo,
		repository.NewGormProgressRepository(),
		observe.NewNoopMetrics(),
	)

	_, err := svc.CompleteLesson(ctx, userID, 1)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)

	var count int64
	require.NoError(t, db.Model(&model.LessonProgress{}).Count(&count).Error)
	assert.Zero(t, count)
	mockUserRepo.AssertExpectations(t)
}
