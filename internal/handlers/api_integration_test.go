package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go_5_superlingo/internal/ai"
	"go_5_superlingo/internal/config"
	"go_5_superlingo/internal/handlers"
	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/observe"
	"go_5_superlingo/internal/repository"
	"go_5_superlingo/internal/seed"
	"go_5_superlingo/internal/service"
	"go_5_superlingo/internal/testutil"
	"go_5_superlingo/internal/tutor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// APIIntegrationTestSuite は sqlite 上の実サービスとルーター全体を通して API を検証する
type APIIntegrationTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func (s *APIIntegrationTestSuite) SetupTest() {
	t := s.T()
	db := testutil.NewSQLiteDB(t)

	lessonRepo := repository.NewGormLessonRepository()
	userRepo := repository.NewGormUserRepository()
	progressRepo := repository.NewGormProgressRepository()

	_, err := seed.Run(context.Background(), db, lessonRepo)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Auth:   config.AuthConfig{Enabled: true},
		JWT:    config.JWTConfig{SecretKey: "integration-secret", AccessTokenTTL: time.Hour, Issuer: config.AppName},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	metrics := observe.NewNoopMetrics()

	tutorService := service.NewTutorService(ai.Unconfigured[ai.Tutor]("no api key"), tutor.NewComposer("Korean"), 0.7, metrics)
	speechService := service.NewSpeechService(
		ai.Unconfigured[ai.Synthesizer]("disabled"),
		ai.Unconfigured[ai.Transcriber]("disabled"),
		ai.Voice{LanguageCode: "en-US", Name: "en-US-Studio-O"}, "en-US", metrics,
	)

	router := handlers.NewRouter(handlers.RouterDeps{
		Config: cfg,
		Logger: testutil.DiscardLogger(),
		DB:     db,
		Auth:   handlers.NewAuthHandler(service.NewAuthService(db, userRepo, cfg)),
		Lesson: handlers.NewLessonHandler(
			service.NewLessonService(db, lessonRepo, progressRepo),
			service.NewProgressService(db, lessonRepo, userRepo, progressRepo, metrics),
		),
		Tutor: handlers.NewTutorHandler(tutorService, speechService),
	})
	s.server = httptest.NewServer(router)
}

func (s *APIIntegrationTestSuite) TearDownTest() {
	s.server.Close()
}

// login は登録とログインを済ませ、Authorization ヘッダーを返す
func (s *APIIntegrationTestSuite) login(username string) map[string]string {
	t := s.T()
	sendRequest(t, s.server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/register/",
		Body: map[string]string{"username": username, "email": username + "@example.com", "password": "password123"},
	}, httpResponseExpectations{ExpectedCode: http.StatusCreated})

	body := sendRequest(t, s.server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/login/",
		Body: map[string]string{"username": username, "password": "password123"},
	}, httpResponseExpectations{ExpectedCode: http.StatusOK})

	resp := decodeBody[model.LoginResponse](t, body)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, 0, resp.ExperiencePoints)
	return map[string]string{"Authorization": "Bearer " + resp.Token}
}

func (s *APIIntegrationTestSuite) TestLessonCompletionFlow() {
	t := s.T()
	auth := s.login("minji")

	body := sendRequest(t, s.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/lessons/", Headers: auth},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	lessons := decodeBody[[]model.LessonResponse](t, body)
	require.Len(t, lessons, 6)
	for i, l := range lessons {
		assert.Equal(t, i+1, l.Order)
		assert.False(t, l.Completed)
	}

	complete := func() model.CompleteLessonResponse {
		body := sendRequest(t, s.server, httpRequestDetails{
			Method: http.MethodPost, Path: "/api/complete-lesson/", Headers: auth,
			Body: map[string]any{"lesson_id": 1},
		}, httpResponseExpectations{ExpectedCode: http.StatusOK})
		return decodeBody[model.CompleteLessonResponse](t, body)
	}

	first := complete()
	assert.Equal(t, 100, first.XPGained)
	assert.Equal(t, 100, first.TotalExperiencePoints)

	second := complete()
	assert.Equal(t, 0, second.XPGained)
	assert.Equal(t, 100, second.TotalExperiencePoints)

	body = sendRequest(t, s.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/me", Headers: auth},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.Equal(t, 100, decodeBody[model.UserResponse](t, body).ExperiencePoints)

	body = sendRequest(t, s.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/lessons/1/", Headers: auth},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.True(t, decodeBody[model.LessonResponse](t, body).Completed)

	// 再ログインでも XP が返る
	body = sendRequest(t, s.server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/login",
		Body: map[string]string{"username": "minji", "password": "password123"},
	}, httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.Equal(t, 100, decodeBody[model.LoginResponse](t, body).ExperiencePoints)
}

func (s *APIIntegrationTestSuite) TestCompleteUnknownLesson() {
	t := s.T()
	auth := s.login("jisoo")

	sendRequest(t, s.server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/complete-lesson/", Headers: auth,
		Body: map[string]any{"lesson_id": 999},
	}, httpResponseExpectations{ExpectedCode: http.StatusNotFound, ExpectedErrorCode: "LESSON_NOT_FOUND"})

	body := sendRequest(t, s.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/me/", Headers: auth},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.Equal(t, 0, decodeBody[model.UserResponse](t, body).ExperiencePoints)
}

func (s *APIIntegrationTestSuite) TestAuthRequired() {
	t := s.T()
	sendRequest(t, s.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/lessons/"},
		httpResponseExpectations{ExpectedCode: http.StatusUnauthorized, ExpectedErrorCode: "UNAUTHORIZED"})
	sendRequest(t, s.server, httpRequestDetails{
		Method: http.MethodGet, Path: "/api/lessons/",
		Headers: map[string]string{"Authorization": "Bearer not-a-jwt"},
	}, httpResponseExpectations{ExpectedCode: http.StatusUnauthorized, ExpectedErrorCode: "INVALID_TOKEN"})
}

func (s *APIIntegrationTestSuite) TestTokenSchemeIsAccepted() {
	t := s.T()
	auth := s.login("hana")
	auth["Authorization"] = "Token " + auth["Authorization"][len("Bearer "):]

	sendRequest(t, s.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/me/", Headers: auth},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
}

func (s *APIIntegrationTestSuite) TestDuplicateRegistration() {
	t := s.T()
	s.login("yuna")
	sendRequest(t, s.server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/register/",
		Body: map[string]string{"username": "yuna", "email": "other@example.com", "password": "password123"},
	}, httpResponseExpectations{ExpectedCode: http.StatusConflict, ExpectedErrorCode: "DUPLICATE_USERNAME"})
}

func (s *APIIntegrationTestSuite) TestAIUnavailable() {
	t := s.T()
	auth := s.login("sora")

	body := sendRequest(t, s.server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/chat/", Headers: auth,
		Body: map[string]any{"message": "hello"},
	}, httpResponseExpectations{ExpectedCode: http.StatusServiceUnavailable})
	assert.Equal(t, service.ReplyAIFailed, decodeBody[model.ChatResponse](t, body).Reply)

	sendRequest(t, s.server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/generate-gemini-audio/", Headers: auth,
		Body: map[string]string{"text": "hello"},
	}, httpResponseExpectations{ExpectedCode: http.StatusServiceUnavailable, ExpectedErrorCode: "TTS_UNAVAILABLE"})

	sendRequest(t, s.server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/transcribe-audio/", Headers: auth,
		Body: map[string]string{"audio_base64": "AAAA", "prompt": "hello"},
	}, httpResponseExpectations{ExpectedCode: http.StatusServiceUnavailable, ExpectedErrorCode: "STT_UNAVAILABLE"})
}

func (s *APIIntegrationTestSuite) TestHealth() {
	resp, err := s.server.Client().Get(s.server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestAPIIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationTestSuite))
}
