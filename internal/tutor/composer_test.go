package tutor

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"go_5_superlingo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposer_BuildInstruction(t *testing.T) {
	c := NewComposer("")

	tests := []struct {
		name     string
		activity model.Activity
		contains []string
		excludes []string
	}{
		{
			name: "Matching lists the terms",
			activity: model.MatchingActivity{
				Title: "Match the words",
				Pairs: []model.Pair{{Term: "Wake up", Translation: "일어나다"}, {Term: "Breakfast", Translation: "아침밥"}},
			},
			contains: []string{"Wake up, Breakfast", "match", "ANSWER IN KOREAN."},
			excludes: []string{"일어나다"},
		},
		{
			name:     "Ordering embeds the sentence",
			activity: model.OrderingActivity{Title: "Order", Prompt: "I eat breakfast", Words: []string{"breakfast", "I", "eat"}},
			contains: []string{"'I eat breakfast'", "grammar", "ANSWER IN KOREAN."},
		},
		{
			name: "Listening embeds the correct answer",
			activity: model.ListeningActivity{
				Title: "Listen", PromptAudioText: "I like pizza", Options: []string{"Taco", "Pizza"}, CorrectAnswer: "Pizza",
			},
			contains: []string{"'Pizza'", "pronunciation versus the spelling", "ANSWER IN KOREAN."},
		},
		{
			name:     "Speaking embeds the sentence",
			activity: model.SpeakingActivity{Title: "Speak", Prompt: "The cat is small"},
			contains: []string{"'The cat is small'", "intonation", "break it down", "ANSWER IN KOREAN."},
		},
		{
			name:     "Unknown type falls back",
			activity: model.UnknownActivity{Type: "DRAWING"},
			contains: []string{fallbackBlock},
		},
		{
			name:     "Nil activity falls back",
			activity: nil,
			contains: []string{fallbackBlock},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.BuildInstruction(tc.activity)

			assert.True(t, strings.HasPrefix(got, basePersona+"\n"), "instruction must start with the persona")
			for _, want := range tc.contains {
				assert.Contains(t, got, want)
			}
			for _, notWant := range tc.excludes {
				assert.NotContains(t, got, notWant)
			}
		})
	}
}

func TestComposer_NativeLanguageIsConfigurable(t *testing.T) {
	c := NewComposer("Japanese")

	got := c.BuildInstruction(model.SpeakingActivity{Prompt: "I like pizza"})

	assert.Contains(t, got, "ANSWER IN JAPANESE.")
	assert.NotContains(t, got, "KOREAN")
	assert.Equal(t, "Japanese", c.NativeLanguage())
}

func TestComposer_DecodedPayload(t *testing.T) {
	raw := []byte(`{"type":"ORDERING","title":"Order the words","prompt":"This is my mother","words":["my","This","is","mother"]}`)
	activity, err := model.DecodeActivity(raw)
	require.NoError(t, err)

	got := NewComposer("Korean").BuildInstruction(activity)
	assert.Contains(t, got, "'This is my mother'")

	unknown, err := model.DecodeActivity(json.RawMessage(`{"type":"FLASHCARD","front":"x"}`))
	require.NoError(t, err)
	assert.Contains(t, NewComposer("Korean").BuildInstruction(unknown), fallbackBlock)
}

func TestComposer_ConcurrentUse(t *testing.T) {
	c := NewComposer("Korean")
	want := c.BuildInstruction(model.SpeakingActivity{Prompt: "I like pizza"})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, c.BuildInstruction(model.SpeakingActivity{Prompt: "I like pizza"}))
		}()
	}
	wg.Wait()
}

func TestUserTurn(t *testing.T) {
	assert.Equal(t, "Student said: what is 아침밥?", UserTurn("what is 아침밥?"))
}
