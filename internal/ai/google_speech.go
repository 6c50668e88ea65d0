package ai

import (
	"context"
	"fmt"
	"strings"

	"go_5_superlingo/internal/model"
	"go_5_superlingo/internal/speech"

	stt "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	tts "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// GoogleSynthesizer は Cloud Text-to-Speech で MP3 を生成する
type GoogleSynthesizer struct {
	client *tts.Client
}

// NewGoogleSynthesizer は Application Default Credentials を使う
func NewGoogleSynthesizer(ctx context.Context) (*GoogleSynthesizer, error) {
	client, err := tts.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("texttospeech: new client: %w", err)
	}
	return &GoogleSynthesizer{client: client}, nil
}

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: voice.LanguageCode,
			Name:         voice.Name,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("texttospeech: synthesize: %v: %w", err, model.ErrUpstreamUnavailable)
	}
	return resp.GetAudioContent(), nil
}

func (s *GoogleSynthesizer) Close() error {
	return s.client.Close()
}

// GoogleTranscriber は Cloud Speech-to-Text の同期認識を使う
type GoogleTranscriber struct {
	client *stt.Client
}

func NewGoogleTranscriber(ctx context.Context) (*GoogleTranscriber, error) {
	client, err := stt.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech: new client: %w", err)
	}
	return &GoogleTranscriber{client: client}, nil
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, profile speech.AudioProfile, languageCode string) (string, error) {
	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: recognitionConfig(profile, languageCode),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech: recognize: %v: %w", err, model.ErrUpstreamUnavailable)
	}

	return joinTranscripts(resp.GetResults()), nil
}

// joinTranscripts は各区間の第1候補をつなぐ。長い発話は複数の result に分かれて返る
func joinTranscripts(results []*speechpb.SpeechRecognitionResult) string {
	parts := make([]string, 0, len(results))
	for _, result := range results {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if text := strings.TrimSpace(alts[0].GetTranscript()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func (t *GoogleTranscriber) Close() error {
	return t.client.Close()
}

// recognitionConfig は web では WEBM_OPUS (サンプルレートはヘッダから)、それ以外は LINEAR16/16kHz
func recognitionConfig(profile speech.AudioProfile, languageCode string) *speechpb.RecognitionConfig {
	cfg := &speechpb.RecognitionConfig{
		LanguageCode:    languageCode,
		SampleRateHertz: profile.SampleRateHertz,
	}
	switch profile.Encoding {
	case speech.EncodingWebmOpus:
		cfg.Encoding = speechpb.RecognitionConfig_WEBM_OPUS
	default:
		cfg.Encoding = speechpb.RecognitionConfig_LINEAR16
	}
	return cfg
}
