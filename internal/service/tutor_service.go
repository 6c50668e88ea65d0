package service

import (
	"context"
	"errors"
	"strings"

	"go_5_superlingo/internal/ai"
	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/observe"
	"go_5_superlingo/internal/tutor"
)

// チャットの固定返答
const (
	ReplyRefused  = "I'm sorry, I can't respond to that topic."
	ReplyEmpty    = "Sorry, I didn't get that. Could you rephrase?"
	ReplyAIFailed = "Sorry, AI error."
)

type TutorService interface {
	// Chat は常に返答を返す。チューターが使えない場合だけ、返答に加えて ErrUpstreamUnavailable を返す
	Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error)
}

type tutorService struct {
	tutor       ai.Availability[ai.Tutor]
	composer    *tutor.Composer
	temperature float64
	metrics     *observe.Metrics
}

func NewTutorService(t ai.Availability[ai.Tutor], composer *tutor.Composer, temperature float64, metrics *observe.Metrics) TutorService {
	return &tutorService{
		tutor:       t,
		composer:    composer,
		temperature: temperature,
		metrics:     metrics,
	}
}

func (s *tutorService) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	logger := middleware.GetLogger(ctx)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, model.NewAppError("MISSING_MESSAGE", "message is required.", "message", model.ErrInvalidInput)
	}

	client, ok := s.tutor.Client()
	if !ok {
		logger.Error("Tutor is not configured", "reason", s.tutor.Reason())
		s.metrics.RecordTutorReply(ctx, "unconfigured")
		return &model.ChatResponse{Reply: ReplyAIFailed},
			model.NewAppError("AI_UNAVAILABLE", ReplyAIFailed, "", model.ErrUpstreamUnavailable)
	}

	// context が壊れていても会話は止めず、汎用の指示にフォールバックする
	activity, err := model.DecodeActivity(req.Context)
	if err != nil {
		logger.Warn("Failed to decode activity context, using fallback instruction", "error", err)
		activity = nil
	}

	logger.Debug("Tutor chat request",
		"lesson_title", req.LessonTitle,
		"activity_type", activityKind(activity),
	)

	reply, err := client.Reply(ctx, ai.TutorRequest{
		SystemInstruction: s.composer.BuildInstruction(activity),
		UserTurn:          tutor.UserTurn(message),
		Temperature:       s.temperature,
	})
	switch {
	case errors.Is(err, model.ErrUpstreamRefused):
		logger.Warn("Tutor refused to answer", "error", err)
		s.metrics.RecordTutorReply(ctx, "refused")
		return &model.ChatResponse{Reply: ReplyRefused}, nil
	case err != nil:
		logger.Error("Tutor call failed", "error", err)
		s.metrics.RecordTutorReply(ctx, "error")
		s.metrics.RecordUpstreamError(ctx, "chat")
		return &model.ChatResponse{Reply: ReplyAIFailed},
			model.NewAppError("AI_UNAVAILABLE", ReplyAIFailed, "", model.ErrUpstreamUnavailable)
	case strings.TrimSpace(reply) == "":
		logger.Warn("Tutor returned an empty reply")
		s.metrics.RecordTutorReply(ctx, "empty")
		return &model.ChatResponse{Reply: ReplyEmpty}, nil
	}

	s.metrics.RecordTutorReply(ctx, "ok")
	return &model.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

func activityKind(a model.Activity) string {
	if a == nil {
		return "none"
	}
	return string(a.Kind())
}
