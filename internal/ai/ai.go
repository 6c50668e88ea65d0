// Package ai は外部のAIサービス (チャット、音声合成、音声認識) への薄いアダプタ。
// クライアントは起動時に一度だけ作り、Availability としてサービス層へ渡す。
package ai

//go:generate mockery --name Tutor --output ./mocks --outpkg mocks --case=underscore
//go:generate mockery --name Synthesizer --output ./mocks --outpkg mocks --case=underscore
//go:generate mockery --name Transcriber --output ./mocks --outpkg mocks --case=underscore

import (
	"context"

	"go_5_superlingo/internal/speech"
)

// TutorRequest はチャット1往復分の入力
type TutorRequest struct {
	SystemInstruction string
	UserTurn          string
	Temperature       float64
}

// Tutor は生成テキストを返す。ブロックされた場合は model.ErrUpstreamRefused、
// 呼び出し失敗は model.ErrUpstreamUnavailable をラップして返す。
// 空文字列はブロックされずに中身が無かったことを意味する。
type Tutor interface {
	Reply(ctx context.Context, req TutorRequest) (string, error)
}

// Voice は音声合成の声の指定
type Voice struct {
	LanguageCode string
	Name         string
}

// Synthesizer は MP3 の生バイト列を返す
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error)
}

// Transcriber は認識結果を返す。何も認識できなかった場合は空文字列
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, profile speech.AudioProfile, languageCode string) (string, error)
}

// Availability は起動時に決まるクライアントの有無。呼び出しのたびに設定を見直さない
type Availability[T any] struct {
	client T
	reason string
	ok     bool
}

func Configured[T any](client T) Availability[T] {
	return Availability[T]{client: client, ok: true}
}

func Unconfigured[T any](reason string) Availability[T] {
	return Availability[T]{reason: reason}
}

// Client は設定済みなら (client, true) を返す
func (a Availability[T]) Client() (T, bool) {
	return a.client, a.ok
}

func (a Availability[T]) IsConfigured() bool {
	return a.ok
}

// Reason は未設定の理由。設定済みなら空
func (a Availability[T]) Reason() string {
	return a.reason
}
