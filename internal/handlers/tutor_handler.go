package handlers

import (
	"errors"
	"net/http"

	"go_5_superlingo/internal/middleware"
	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/service"
	"go_5_superlingo/internal/webutil"
)

// TutorHandler はチャット・音声生成・発音チェックの窓口
type TutorHandler struct {
	tutor  service.TutorService
	speech service.SpeechService
}

func NewTutorHandler(tutor service.TutorService, speech service.SpeechService) *TutorHandler {
	return &TutorHandler{tutor: tutor, speech: speech}
}

func (h *TutorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ChatRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode chat request body", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "The request body is malformed.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.tutor.Chat(r.Context(), &req)
	if err != nil {
		// AI が使えないときも返答文は返す (ステータスは 503)
		if resp != nil && errors.Is(err, model.ErrUpstreamUnavailable) {
			webutil.RespondWithJSON(w, http.StatusServiceUnavailable, resp, logger)
			return
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GenerateAudio は読み上げ音声を data URI で返す
func (h *TutorHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.SpeechSynthesisRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode audio request body", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "The request body is malformed.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.speech.Synthesize(r.Context(), req.Text)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *TutorHandler) TranscribeAudio(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.TranscribeRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode transcribe request body", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "The request body is malformed.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.speech.Transcribe(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
