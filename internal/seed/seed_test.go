package seed

import (
	"context"
	"testing"

	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/repository"
	"go_5_superlingo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessons(t *testing.T) {
	lessons, err := Lessons()
	require.NoError(t, err)
	require.Len(t, lessons, 6)

	for i, l := range lessons {
		assert.Equal(t, uint(i+1), l.ID)
		assert.Equal(t, i+1, l.Order)
		assert.Equal(t, "A1", l.Level)
		assert.Len(t, l.Topics.Activities, 2, "lesson %d", l.ID)
	}

	assert.Equal(t, "Lesson 1 - Daily Routine", lessons[0].Title)
	matching, ok := lessons[0].Topics.Activities[0].(model.MatchingActivity)
	require.True(t, ok)
	assert.Equal(t, model.Pair{Term: "Wake up", Translation: "일어나다"}, matching.Pairs[0])
	assert.Len(t, matching.Pairs, 4)

	listening, ok := lessons[1].Topics.Activities[1].(model.ListeningActivity)
	require.True(t, ok)
	assert.Equal(t, "I like pizza", listening.PromptAudioText)
	assert.Equal(t, "Pizza", listening.CorrectAnswer)
	assert.Equal(t, []string{"Taco", "Pizza", "Salad"}, listening.Options)

	ordering, ok := lessons[3].Topics.Activities[1].(model.OrderingActivity)
	require.True(t, ok)
	assert.Equal(t, "This is my mother", ordering.Prompt)
	assert.ElementsMatch(t, []string{"This", "is", "my", "mother"}, ordering.Words)

	speaking, ok := lessons[5].Topics.Activities[1].(model.SpeakingActivity)
	require.True(t, ok)
	assert.Equal(t, "My father likes to work", speaking.Prompt)
}

func TestParseLessonsRejectsDuplicateID(t *testing.T) {
	data := []byte(`
- id: 1
  title: a
  topics: {title: a, activities: []}
- id: 1
  title: b
  topics: {title: b, activities: []}
`)
	_, err := parseLessons(data)
	assert.Error(t, err)
}

func TestParseLessonsKeepsUnknownActivity(t *testing.T) {
	data := []byte(`
- id: 7
  title: Lesson 7
  topics:
    title: x
    activities:
      - type: DRAWING
        title: Draw a cat
`)
	lessons, err := parseLessons(data)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "A1", lessons[0].Level)
	require.Len(t, lessons[0].Topics.Activities, 1)
	assert.Equal(t, model.ActivityType("DRAWING"), lessons[0].Topics.Activities[0].Kind())
}

func TestRunIsIdempotent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormLessonRepository()
	ctx := context.Background()

	n, err := Run(ctx, db, repo)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = Run(ctx, db, repo)
	require.NoError(t, err)

	lessons, err := repo.FindAllOrdered(ctx, db)
	require.NoError(t, err)
	require.Len(t, lessons, 6)
	assert.Equal(t, "Lesson 6 - Level Up Review", lessons[5].Title)
	_, ok := lessons[2].Topics.Activities[0].(model.SpeakingActivity)
	assert.True(t, ok)
}
