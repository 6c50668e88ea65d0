// Package speech は文字起こし結果と目標文の比較を扱う。
package speech

import (
	"strings"
	"unicode"

	"go_5_superlingo/internal/model"
)

// NoSpeechDetected は文字起こしが空だったときに返す固定マーカー。ロケールに依存させない
const NoSpeechDetected = "[No speech detected]"

// Result は Verify の結果
type Result struct {
	IsCorrect            bool
	Transcript           string // 表示用。空の場合は NoSpeechDetected
	NormalizedTranscript string
	NormalizedTarget     string
}

// Normalize は小文字化し、文字・数字・空白以外を落として前後の空白を取り除く。
// 内部の空白はそのまま残す。Normalize(Normalize(s)) == Normalize(s)
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Verify は正規化した2つの文字列が完全一致するかを判定する。
// target が空なら ErrInvalidInput。transcribed の中身でエラーになることはない。
func Verify(transcribed, target string) (Result, error) {
	if strings.TrimSpace(target) == "" {
		return Result{}, model.NewAppError("MISSING_PROMPT", "A target phrase is required.", "prompt", model.ErrInvalidInput)
	}

	normalizedTarget := Normalize(target)

	transcript := strings.TrimSpace(transcribed)
	if transcript == "" {
		return Result{
			IsCorrect:        false,
			Transcript:       NoSpeechDetected,
			NormalizedTarget: normalizedTarget,
		}, nil
	}

	normalizedTranscript := Normalize(transcript)
	return Result{
		IsCorrect:            normalizedTranscript == normalizedTarget,
		Transcript:           transcript,
		NormalizedTranscript: normalizedTranscript,
		NormalizedTarget:     normalizedTarget,
	}, nil
}
