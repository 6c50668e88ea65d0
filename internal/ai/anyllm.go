package ai

import (
	"context"
	"fmt"
	"strings"

	"go_5_superlingo/internal/model"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/mozilla-ai/any-llm-go/providers/anthropic"
	"github.com/mozilla-ai/any-llm-go/providers/gemini"
	"github.com/mozilla-ai/any-llm-go/providers/ollama"
	anyllmoai "github.com/mozilla-ai/any-llm-go/providers/openai"
)

// finishReasonContentFilter は OpenAI 互換の「安全フィルタで停止」
const finishReasonContentFilter = "content_filter"

// AnyLLMTutor は any-llm-go 経由で Gemini 以外のプロバイダも使えるようにする
type AnyLLMTutor struct {
	backend anyllmlib.Provider
	model   string
}

// NewAnyLLMTutor の providerName は openai, anthropic, gemini, ollama のいずれか
func NewAnyLLMTutor(providerName, modelName, apiKey, baseURL string) (*AnyLLMTutor, error) {
	if modelName == "" {
		return nil, fmt.Errorf("anyllm: model must not be empty")
	}

	var opts []anyllmlib.Option
	if apiKey != "" {
		opts = append(opts, anyllmlib.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, anyllmlib.WithBaseURL(baseURL))
	}

	var (
		backend anyllmlib.Provider
		err     error
	)
	switch strings.ToLower(providerName) {
	case "openai":
		backend, err = anyllmoai.New(opts...)
	case "anthropic":
		backend, err = anthropic.New(opts...)
	case "gemini":
		backend, err = gemini.New(opts...)
	case "ollama":
		backend, err = ollama.New(opts...)
	default:
		return nil, fmt.Errorf("anyllm: unsupported provider %q", providerName)
	}
	if err != nil {
		return nil, fmt.Errorf("anyllm: create %q backend: %w", providerName, err)
	}
	return &AnyLLMTutor{backend: backend, model: modelName}, nil
}

func (t *AnyLLMTutor) Reply(ctx context.Context, req TutorRequest) (string, error) {
	temperature := req.Temperature
	params := anyllmlib.CompletionParams{
		Model: t.model,
		Messages: []anyllmlib.Message{
			{Role: anyllmlib.RoleSystem, Content: req.SystemInstruction},
			{Role: anyllmlib.RoleUser, Content: req.UserTurn},
		},
		Temperature: &temperature,
	}

	resp, err := t.backend.Completion(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anyllm: completion: %v: %w", err, model.ErrUpstreamUnavailable)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	choice := resp.Choices[0]
	return completionReplyText(choice.Message.ContentString(), choice.FinishReason)
}

func completionReplyText(content, finishReason string) (string, error) {
	if text := strings.TrimSpace(content); text != "" {
		return text, nil
	}
	if finishReason == finishReasonContentFilter {
		return "", fmt.Errorf("anyllm: response filtered: %w", model.ErrUpstreamRefused)
	}
	return "", nil
}
