package model

import "encoding/json"

// ChatRequest の Context はクライアントが表示中の演習 (activity の JSON)
type ChatRequest struct {
	Message     string          `json:"message" validate:"required"`
	Context     json.RawMessage `json:"context,omitempty"`
	LessonTitle string          `json:"lesson_title,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type SpeechSynthesisRequest struct {
	Text string `json:"text" validate:"required"`
}

type SpeechSynthesisResponse struct {
	AudioURL string `json:"audioUrl"`
}

type TranscribeRequest struct {
	AudioBase64 string `json:"audio_base64" validate:"required"`
	Prompt      string `json:"prompt" validate:"required"`
	Platform    string `json:"platform"` // web 以外 (ios, android, native, 空) は native として扱う
}

type TranscribeResponse struct {
	IsCorrect            bool   `json:"is_correct"`
	TranscribedText      string `json:"transcribed_text"`
	NormalizedTranscript string `json:"normalized_transcript,omitempty"`
	NormalizedTarget     string `json:"normalized_target,omitempty"`
}
