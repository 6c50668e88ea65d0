// Package tutor はチャットチューターに渡すシステム指示を組み立てる。
// I/O を持たない純粋関数のみで、並行に呼び出してよい。
package tutor

import (
	"fmt"
	"strings"

	"go_5_superlingo/internal/model"

	"github.com/samber/lo"
)

// DefaultNativeLanguage は学習者の母語 (返答言語) の既定値
const DefaultNativeLanguage = "Korean"

const basePersona = "You are Betterlingo, a friendly English tutor AI for beginner students. " +
	"Keep answers short and encouraging, use simple examples, and stay on the topic of the current activity."

const fallbackBlock = "Ask a simple question to find out what the student needs help with."

// Composer は返答言語を固定した指示ビルダー
type Composer struct {
	nativeLanguage string
}

func NewComposer(nativeLanguage string) *Composer {
	nativeLanguage = strings.TrimSpace(nativeLanguage)
	if nativeLanguage == "" {
		nativeLanguage = DefaultNativeLanguage
	}
	return &Composer{nativeLanguage: nativeLanguage}
}

// NativeLanguage は返答に使わせる言語名
func (c *Composer) NativeLanguage() string {
	return c.nativeLanguage
}

// BuildInstruction は基本ペルソナと演習ごとの指示を改行でつないで返す。
// nil や未知の演習は汎用の確認質問にフォールバックする。
func (c *Composer) BuildInstruction(activity model.Activity) string {
	return basePersona + "\n" + c.activityBlock(activity)
}

func (c *Composer) answerDirective() string {
	return fmt.Sprintf("ANSWER IN %s.", strings.ToUpper(c.nativeLanguage))
}

func (c *Composer) activityBlock(activity model.Activity) string {
	switch a := activity.(type) {
	case model.MatchingActivity:
		terms := lo.Map(a.Pairs, func(p model.Pair, _ int) string { return p.Term })
		return fmt.Sprintf("Student is matching vocabulary: %s. %s "+
			"First, find out which word exactly the student needs help with in THIS ACTIVITY. "+
			"Several words are given in random order and the student is trying to match each English word with its %s translation.",
			strings.Join(terms, ", "), c.answerDirective(), c.nativeLanguage)
	case model.OrderingActivity:
		return fmt.Sprintf("Student practiced sentence: '%s'. %s "+
			"First, find out what exactly the student needs help with in this activity. "+
			"Explain the grammar of the word order: why each word comes where it does and what its purpose is, with examples.",
			a.Prompt, c.answerDirective())
	case model.ListeningActivity:
		return fmt.Sprintf("Student identified word '%s'. %s "+
			"First, find out what exactly the student needs help with in this activity. "+
			"Teach them the actual pronunciation versus the spelling.",
			a.CorrectAnswer, c.answerDirective())
	case model.SpeakingActivity:
		return fmt.Sprintf("Student practiced speaking the sentence: '%s'. %s "+
			"First, find out what exactly the student needs help with in this activity. "+
			"Focus on pronunciation, intonation, or specific tricky words in that sentence. Offer to break it down for them.",
			a.Prompt, c.answerDirective())
	default:
		return fallbackBlock + " " + c.answerDirective()
	}
}

// UserTurn は学習者の発話をそのままターン本文に包む
func UserTurn(message string) string {
	return "Student said: " + message
}
