package service

import (
	"context"
	"encoding/base64"
	"strings"

	"go_5_superlingo/internal/ai"
	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/observe"
	"go_5_superlingo/internal/speech"
)

const audioDataURIPrefix = "data:audio/mpeg;base64,"

type SpeechService interface {
	Synthesize(ctx context.Context, text string) (*model.SpeechSynthesisResponse, error)
	Transcribe(ctx context.Context, req *model.TranscribeRequest) (*model.TranscribeResponse, error)
}

type speechService struct {
	synthesizer  ai.Availability[ai.Synthesizer]
	transcriber  ai.Availability[ai.Transcriber]
	voice        ai.Voice
	languageCode string
	metrics      *observe.Metrics
}

func NewSpeechService(synth ai.Availability[ai.Synthesizer], tr ai.Availability[ai.Transcriber], voice ai.Voice, languageCode string, metrics *observe.Metrics) SpeechService {
	return &speechService{
		synthesizer:  synth,
		transcriber:  tr,
		voice:        voice,
		languageCode: languageCode,
		metrics:      metrics,
	}
}

// Synthesize は MP3 を data URI にして返す
func (s *speechService) Synthesize(ctx context.Context, text string) (*model.SpeechSynthesisResponse, error) {
	logger := middleware.GetLogger(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.NewAppError("MISSING_TEXT", "text is required.", "text", model.ErrInvalidInput)
	}

	client, ok := s.synthesizer.Client()
	if !ok {
		logger.Error("Text-to-speech is not configured", "reason", s.synthesizer.Reason())
		return nil, model.NewAppError("TTS_UNAVAILABLE", "Audio generation is not available.", "", model.ErrUpstreamUnavailable)
	}

	audio, err := client.Synthesize(ctx, text, s.voice)
	if err != nil {
		logger.Error("Text-to-speech call failed", "error", err)
		s.metrics.RecordUpstreamError(ctx, "tts")
		return nil, model.NewAppError("TTS_FAILED", "Failed to generate audio.", "", model.ErrUpstreamUnavailable)
	}

	logger.Debug("Audio generated", "bytes", len(audio))
	return &model.SpeechSynthesisResponse{
		AudioURL: audioDataURIPrefix + base64.StdEncoding.EncodeToString(audio),
	}, nil
}

// Transcribe は録音を文字起こしし、目標文と比較する
func (s *speechService) Transcribe(ctx context.Context, req *model.TranscribeRequest) (*model.TranscribeResponse, error) {
	logger := middleware.GetLogger(ctx)

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, model.NewAppError("MISSING_PROMPT", "A target phrase is required.", "prompt", model.ErrInvalidInput)
	}

	audio, err := decodeAudio(req.AudioBase64)
	if err != nil {
		logger.Warn("Malformed audio payload", "error", err)
		return nil, model.NewAppError("INVALID_AUDIO", "audio_base64 is not valid base64.", "audio_base64", model.ErrInvalidInput)
	}

	client, ok := s.transcriber.Client()
	if !ok {
		logger.Error("Speech-to-text is not configured", "reason", s.transcriber.Reason())
		return nil, model.NewAppError("STT_UNAVAILABLE", "Audio transcription is not available.", "", model.ErrUpstreamUnavailable)
	}

	profile := speech.ProfileFor(req.Platform)
	transcript, err := client.Transcribe(ctx, audio, profile, s.languageCode)
	if err != nil {
		logger.Error("Speech-to-text call failed", "error", err, "platform", profile.Platform)
		s.metrics.RecordUpstreamError(ctx, "stt")
		return nil, model.NewAppError("STT_FAILED", "Failed to transcribe audio.", "", model.ErrUpstreamUnavailable)
	}

	result, err := speech.Verify(transcript, req.Prompt)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordSpeechCheck(ctx, result.IsCorrect)
	logger.Info("Pronunciation checked",
		"platform", profile.Platform,
		"normalized_transcript", result.NormalizedTranscript,
		"normalized_target", result.NormalizedTarget,
		"is_correct", result.IsCorrect,
	)
	return &model.TranscribeResponse{
		IsCorrect:            result.IsCorrect,
		TranscribedText:      result.Transcript,
		NormalizedTranscript: result.NormalizedTranscript,
		NormalizedTarget:     result.NormalizedTarget,
	}, nil
}

// decodeAudio は data URI の接頭辞が付いていても受け付ける
func decodeAudio(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if i := strings.Index(payload, ";base64,"); i >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(payload)
}
