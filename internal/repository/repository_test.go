package repository_test

import (
	"context"
	"testing"

	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/repository"
	"go_5_superlingo/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RepositoryTestSuite struct {
	suite.Suite

	db           *gorm.DB
	ctx          context.Context
	userRepo     repository.UserRepository
	lessonRepo   repository.LessonRepository
	progressRepo repository.ProgressRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	s.db = testutil.NewSQLiteDB(s.T())
	s.ctx = context.Background()
	s.userRepo = repository.NewGormUserRepository()
	s.lessonRepo = repository.NewGormLessonRepository()
	s.progressRepo = repository.NewGormProgressRepository()
}

func TestRepository(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) createUser(name string) *model.User {
	user := &model.User{
		ID:           uuid.New(),
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
	}
	s.Require().NoError(s.userRepo.Create(s.ctx, s.db, user))
	return user
}

func (s *RepositoryTestSuite) createLesson(id uint, order int) *model.Lesson {
	lesson := &model.Lesson{
		ID:     id,
		Title:  "Lesson",
		Level:  "A1",
		Order:  order,
		Topics: model.Topics{Title: "t", Activities: model.Activities{model.SpeakingActivity{Title: "s", Prompt: "I like pizza"}}},
	}
	s.Require().NoError(s.lessonRepo.Upsert(s.ctx, s.db, lesson))
	return lesson
}

func (s *RepositoryTestSuite) TestUserCreateAndFind() {
	user := s.createUser("alice")

	found, err := s.userRepo.FindByID(s.ctx, s.db, user.ID)
	s.Require().NoError(err)
	s.Equal("alice", found.Username)
	s.Equal(0, found.ExperiencePoints)

	found, err = s.userRepo.FindByUsername(s.ctx, s.db, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)

	_, err = s.userRepo.FindByUsername(s.ctx, s.db, "nobody")
	s.ErrorIs(err, model.ErrNotFound)

	_, err = s.userRepo.FindByID(s.ctx, s.db, uuid.New())
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *RepositoryTestSuite) TestUserCreateDuplicate() {
	s.createUser("alice")

	dup := &model.User{ID: uuid.New(), Username: "alice", Email: "other@example.com", PasswordHash: "hash"}
	err := s.userRepo.Create(s.ctx, s.db, dup)
	s.ErrorIs(err, model.ErrConflict)
}

func (s *RepositoryTestSuite) TestIncrementXP() {
	user := s.createUser("bob")

	total, err := s.userRepo.IncrementXP(s.ctx, s.db, user.ID, model.LessonCompletionBonusXP)
	s.Require().NoError(err)
	s.Equal(100, total)

	total, err = s.userRepo.IncrementXP(s.ctx, s.db, user.ID, model.LessonCompletionBonusXP)
	s.Require().NoError(err)
	s.Equal(200, total)

	_, err = s.userRepo.IncrementXP(s.ctx, s.db, uuid.New(), 100)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *RepositoryTestSuite) TestLessonOrderingAndUpsert() {
	s.createLesson(2, 2)
	s.createLesson(1, 1)
	s.createLesson(3, 3)

	lessons, err := s.lessonRepo.FindAllOrdered(s.ctx, s.db)
	s.Require().NoError(err)
	s.Require().Len(lessons, 3)
	s.Equal([]uint{1, 2, 3}, []uint{lessons[0].ID, lessons[1].ID, lessons[2].ID})

	// 同じ ID で再投入すると上書きされる
	updated := &model.Lesson{ID: 1, Title: "Renamed", Level: "A1", Order: 1}
	s.Require().NoError(s.lessonRepo.Upsert(s.ctx, s.db, updated))

	found, err := s.lessonRepo.FindByID(s.ctx, s.db, 1)
	s.Require().NoError(err)
	s.Equal("Renamed", found.Title)
	s.Empty(found.Topics.Activities)

	found, err = s.lessonRepo.FindByID(s.ctx, s.db, 2)
	s.Require().NoError(err)
	s.Require().Len(found.Topics.Activities, 1)
	s.Equal(model.SpeakingActivity{Title: "s", Prompt: "I like pizza"}, found.Topics.Activities[0])

	_, err = s.lessonRepo.FindByID(s.ctx, s.db, 99)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *RepositoryTestSuite) TestProgressGetOrCreate() {
	user := s.createUser("carol")
	lesson := s.createLesson(1, 1)

	progress, created, err := s.progressRepo.GetOrCreate(s.ctx, s.db, user.ID, lesson.ID)
	s.Require().NoError(err)
	s.True(created)
	s.True(progress.Completed)

	again, created, err := s.progressRepo.GetOrCreate(s.ctx, s.db, user.ID, lesson.ID)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(progress.ID, again.ID)

	var count int64
	s.Require().NoError(s.db.Model(&model.LessonProgress{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *RepositoryTestSuite) TestProgressQueries() {
	user := s.createUser("dave")
	other := s.createUser("erin")
	s.createLesson(1, 1)
	s.createLesson(2, 2)

	_, _, err := s.progressRepo.GetOrCreate(s.ctx, s.db, user.ID, 2)
	s.Require().NoError(err)

	ids, err := s.progressRepo.CompletedLessonIDs(s.ctx, s.db, user.ID)
	s.Require().NoError(err)
	s.Equal([]uint{2}, ids)

	ids, err = s.progressRepo.CompletedLessonIDs(s.ctx, s.db, other.ID)
	s.Require().NoError(err)
	s.Empty(ids)

	exists, err := s.progressRepo.Exists(s.ctx, s.db, user.ID, 2)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.progressRepo.Exists(s.ctx, s.db, user.ID, 1)
	s.Require().NoError(err)
	s.False(exists)
}
