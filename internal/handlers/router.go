package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_5_superlingo/internal/config"
	"go_5_superlingo/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// RouterDeps はルーター構築に必要な依存
type RouterDeps struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      *gorm.DB
	Auth    *AuthHandler
	Lesson  *LessonHandler
	Tutor   *TutorHandler
	Metrics http.Handler // nil なら /metrics を公開しない
}

// NewRouter は API のルーティングとミドルウェアを組み立てる。
// 末尾スラッシュの有無はどちらでも同じハンドラに届く。
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.LoggingMiddleware(d.Logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   d.Config.CORS.AllowedOrigins,
		AllowedMethods:   d.Config.CORS.AllowedMethods,
		AllowedHeaders:   d.Config.CORS.AllowedHeaders,
		ExposedHeaders:   d.Config.CORS.ExposedHeaders,
		AllowCredentials: d.Config.CORS.AllowCredentials,
		MaxAge:           d.Config.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	timeout := d.Config.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	r.Use(chimiddleware.Timeout(timeout))

	r.Route("/api", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			if d.Config.Auth.Enabled {
				r.Use(middleware.JWTAuthMiddleware(d.Config))
			} else {
				d.Logger.Warn("Authentication is disabled, using X-User-ID header")
				r.Use(middleware.DevUserContextMiddleware)
			}

			r.Get("/me", d.Auth.GetMe)
			r.Get("/lessons", d.Lesson.ListLessons)
			r.Get("/lessons/{id}", d.Lesson.GetLesson)
			r.Post("/complete-lesson", d.Lesson.CompleteLesson)
			r.Post("/chat", d.Tutor.Chat)
			r.Post("/generate-gemini-audio", d.Tutor.GenerateAudio)
			r.Post("/transcribe-audio", d.Tutor.TranscribeAudio)
		})
	})

	r.Get("/health", HealthCheck(d.DB))
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	return r
}

// HealthCheck は DB への ping が通れば 200 を返す
func HealthCheck(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())

		sqlDB, err := db.DB()
		if err != nil {
			logger.Error("Health check failed: could not get DB object", "error", err)
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(r.Context()); err != nil {
			logger.Error("Health check failed: could not ping DB", "error", err)
			http.Error(w, "Health check failed", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
