package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_5_superlingo/internal/model"

	"google.golang.org/genai"
)

// GeminiTutor は genai SDK で Gemini を呼ぶ
type GeminiTutor struct {
	client *genai.Client
	model  string
}

func NewGeminiTutor(ctx context.Context, apiKey, modelName string) (*GeminiTutor, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &GeminiTutor{client: client, model: modelName}, nil
}

func (t *GeminiTutor) Reply(ctx context.Context, req TutorRequest) (string, error) {
	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(req.UserTurn), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(req.Temperature)),
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %v: %w", err, model.ErrUpstreamUnavailable)
	}
	return geminiReplyText(resp)
}

// geminiReplyText は最初の候補のテキストを返す。
// テキストが無く終了理由が STOP 以外ならブロックされたとみなす。
func geminiReplyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", nil
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" &&
			resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
			return "", fmt.Errorf("gemini: prompt blocked (%s): %w", resp.PromptFeedback.BlockReason, model.ErrUpstreamRefused)
		}
		return "", nil
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
		var b strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			return text, nil
		}
	}

	switch candidate.FinishReason {
	case "", genai.FinishReasonStop, genai.FinishReasonUnspecified:
		return "", nil
	default:
		return "", fmt.Errorf("gemini: response blocked (%s): %w", candidate.FinishReason, model.ErrUpstreamRefused)
	}
}
