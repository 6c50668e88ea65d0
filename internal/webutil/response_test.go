package webutil_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/testutil"
	"go_5_superlingo/internal/webutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrNotFound, http.StatusNotFound},
		{model.ErrInvalidInput, http.StatusBadRequest},
		{model.ErrConflict, http.StatusConflict},
		{model.ErrUnauthorized, http.StatusUnauthorized},
		{model.ErrForbidden, http.StatusForbidden},
		{model.ErrUpstreamUnavailable, http.StatusServiceUnavailable},
		{model.ErrUpstreamRefused, http.StatusServiceUnavailable},
		{fmt.Errorf("wrapped: %w", model.ErrNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, webutil.MapErrorToStatusCode(tt.err), tt.err.Error())
	}
}

func TestHandleError(t *testing.T) {
	t.Run("AppError は詳細をそのまま返す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		webutil.HandleError(rec, testutil.DiscardLogger(),
			model.NewAppError("LESSON_NOT_FOUND", "Lesson not found.", "id", model.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var body model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, model.ErrorDetail{Code: "LESSON_NOT_FOUND", Message: "Lesson not found.", Field: "id"}, body.Error)
	})

	t.Run("予期せぬエラーは詳細を隠す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		webutil.HandleError(rec, testutil.DiscardLogger(), errors.New("db password leaked"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "leaked")
		assert.Contains(t, rec.Body.String(), "INTERNAL_SERVER_ERROR")
	})
}

func TestValidateStruct(t *testing.T) {
	err := webutil.ValidateStruct(model.TranscribeRequest{Platform: "ios"})
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Detail.Code)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	for _, field := range []string{"audio_base64", "prompt"} {
		assert.Contains(t, appErr.Detail.Field, field)
	}
	assert.NotContains(t, appErr.Detail.Field, "platform")
	assert.Contains(t, appErr.Detail.Message, "audio_base64 is required.")

	assert.NoError(t, webutil.ValidateStruct(model.TranscribeRequest{AudioBase64: "AAAA", Prompt: "hi"}))
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("未知のフィールドは拒否", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"lesson_id":1,"extra":true}`))
		var dst model.CompleteLessonRequest
		assert.ErrorIs(t, webutil.DecodeJSONBody(req, &dst), model.ErrInvalidInput)
	})

	t.Run("空ボディ", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		var dst model.CompleteLessonRequest
		assert.ErrorIs(t, webutil.DecodeJSONBody(req, &dst), model.ErrInvalidInput)
	})

	t.Run("正常系", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"lesson_id":3}`))
		var dst model.CompleteLessonRequest
		require.NoError(t, webutil.DecodeJSONBody(req, &dst))
		assert.Equal(t, uint(3), dst.LessonID)
	})
}
