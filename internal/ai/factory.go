package ai

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go_5_superlingo/internal/config"
)

// NewTutorFromConfig は起動時に一度だけ呼ぶ。失敗しても Unconfigured を返すだけでエラーにはしない
func NewTutorFromConfig(ctx context.Context, cfg config.TutorConfig, logger *slog.Logger) Availability[Tutor] {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	if provider == "" || provider == "genai" || provider == config.DefaultTutorProvider {
		if cfg.APIKey == "" {
			logger.Warn("Tutor is not configured: API key is empty", "provider", provider)
			return Unconfigured[Tutor]("tutor API key is not set")
		}
		tutor, err := NewGeminiTutor(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			logger.Error("Failed to create Gemini tutor", "error", err)
			return Unconfigured[Tutor](err.Error())
		}
		logger.Info("Tutor configured", "provider", "gemini", "model", cfg.Model)
		return Configured[Tutor](tutor)
	}

	tutor, err := NewAnyLLMTutor(provider, cfg.Model, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		logger.Error("Failed to create tutor", "provider", provider, "error", err)
		return Unconfigured[Tutor](err.Error())
	}
	logger.Info("Tutor configured", "provider", provider, "model", cfg.Model)
	return Configured[Tutor](tutor)
}

// SpeechClients は TTS/STT のクライアントとその後始末
type SpeechClients struct {
	Synthesizer Availability[Synthesizer]
	Transcriber Availability[Transcriber]
	closers     []io.Closer
}

func (c *SpeechClients) Close() error {
	var firstErr error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewSpeechClientsFromConfig は Application Default Credentials で Google Cloud のクライアントを作る
func NewSpeechClientsFromConfig(ctx context.Context, cfg config.SpeechConfig, logger *slog.Logger) *SpeechClients {
	clients := &SpeechClients{
		Synthesizer: Unconfigured[Synthesizer]("speech is disabled"),
		Transcriber: Unconfigured[Transcriber]("speech is disabled"),
	}
	if !cfg.Enabled {
		logger.Warn("Speech services are disabled by config")
		return clients
	}

	if synth, err := NewGoogleSynthesizer(ctx); err != nil {
		logger.Error("Failed to create text-to-speech client", "error", err)
		clients.Synthesizer = Unconfigured[Synthesizer](err.Error())
	} else {
		clients.Synthesizer = Configured[Synthesizer](synth)
		clients.closers = append(clients.closers, synth)
	}

	if tr, err := NewGoogleTranscriber(ctx); err != nil {
		logger.Error("Failed to create speech-to-text client", "error", err)
		clients.Transcriber = Unconfigured[Transcriber](err.Error())
	} else {
		clients.Transcriber = Configured[Transcriber](tr)
		clients.closers = append(clients.closers, tr)
	}

	logger.Info("Speech services initialized",
		"tts", clients.Synthesizer.IsConfigured(),
		"stt", clients.Transcriber.IsConfigured(),
	)
	return clients
}
