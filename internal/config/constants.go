// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "superlingo"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort      = ":8080"
	DefaultRequestTimeout  = 60 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultLogLevel        = "info"
	DefaultAuthEnabled     = true
	DefaultAccessTokenTTL  = 24 * time.Hour

	DefaultTutorProvider    = "gemini"
	DefaultTutorModel       = "gemini-2.5-flash"
	DefaultTutorTemperature = 0.7
	DefaultNativeLanguage   = "Korean"

	DefaultSpeechLanguage = "en-US"
	DefaultVoiceName      = "en-US-Studio-O"
)
