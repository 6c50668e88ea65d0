package service_test

import (
	"context"
	"errors"
	"testing"

	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/repository/mocks"
	"go_5_superlingo/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_lessonService_ListLessons(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	lessons := []*model.Lesson{
		{ID: 1, Title: "Lesson 1 - Daily Routine", Order: 1},
		{ID: 2, Title: "Lesson 2 - Favorite Food", Order: 2},
		{ID: 3, Title: "Lesson 3 - Basic Speaking", Order: 3},
	}

	tests := []struct {
		name      string
		setupMock func(lr *mocks.LessonRepository, pr *mocks.ProgressRepository)
		want      []bool
		wantErr   bool
	}{
		{
			name: "正常系: 完了済みのレッスンに completed が付く",
			setupMock: func(lr *mocks.LessonRepository, pr *mocks.ProgressRepository) {
				lr.On("FindAllOrdered", ctx, mock.Anything).Return(lessons, nil).Once()
				pr.On("CompletedLessonIDs", ctx, mock.Anything, userID).Return([]uint{2}, nil).Once()
			},
			want: []bool{false, true, false},
		},
		{
			name: "正常系: 進捗がなければすべて未完了",
			setupMock: func(lr *mocks.LessonRepository, pr *mocks.ProgressRepository) {
				lr.On("FindAllOrdered", ctx, mock.Anything).Return(lessons, nil).Once()
				pr.On("CompletedLessonIDs", ctx, mock.Anything, userID).Return([]uint{}, nil).Once()
			},
			want: []bool{false, false, false},
		},
		{
			name: "異常系: レッスン取得でDBエラー",
			setupMock: func(lr *mocks.LessonRepository, pr *mocks.ProgressRepository) {
				lr.On("FindAllOrdered", ctx, mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := mocks.NewLessonRepository(t)
			pr := mocks.NewProgressRepository(t)
			tt.setupMock(lr, pr)
			svc := service.NewLessonService(nil, lr, pr)

			got, err := svc.ListLessons(ctx, userID)
			if tt.wantErr {
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i, resp := range got {
				assert.Equal(t, lessons[i].ID, resp.ID)
				assert.Equal(t, tt.want[i], resp.Completed)
			}
		})
	}
}

func Test_lessonService_GetLesson(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("正常系", func(t *testing.T) {
		lr := mocks.NewLessonRepository(t)
		pr := mocks.NewProgressRepository(t)
		lr.On("FindByID", ctx, mock.Anything, uint(3)).Return(&model.Lesson{ID: 3, Title: "Lesson 3"}, nil).Once()
		pr.On("Exists", ctx, mock.Anything, userID, uint(3)).Return(true, nil).Once()

		got, err := service.NewLessonService(nil, lr, pr).GetLesson(ctx, userID, 3)
		require.NoError(t, err)
		assert.True(t, got.Completed)
		assert.Equal(t, "Lesson 3", got.Title)
	})

	t.Run("異常系: 存在しない", func(t *testing.T) {
		lr := mocks.NewLessonRepository(t)
		pr := mocks.NewProgressRepository(t)
		lr.On("FindByID", ctx, mock.Anything, uint(9)).Return(nil, model.ErrNotFound).Once()

		_, err := service.NewLessonService(nil, lr, pr).GetLesson(ctx, userID, 9)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("異常系: ID が0", func(t *testing.T) {
		lr := mocks.NewLessonRepository(t)
		pr := mocks.NewProgressRepository(t)

		_, err := service.NewLessonService(nil, lr, pr).GetLesson(ctx, userID, 0)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}
