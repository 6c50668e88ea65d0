package speech

import "strings"

type Encoding string

const (
	EncodingWebmOpus Encoding = "WEBM_OPUS"
	EncodingLinear16 Encoding = "LINEAR16"
)

// AudioProfile はクライアントの録音形式。SampleRateHertz が 0 ならヘッダから推定させる
type AudioProfile struct {
	Platform        string
	Encoding        Encoding
	SampleRateHertz int32
}

var (
	WebProfile    = AudioProfile{Platform: "web", Encoding: EncodingWebmOpus}
	NativeProfile = AudioProfile{Platform: "native", Encoding: EncodingLinear16, SampleRateHertz: 16000}
)

// ProfileFor はプラットフォーム名からプロファイルを選ぶ。web 以外はすべて native
func ProfileFor(platform string) AudioProfile {
	if strings.EqualFold(strings.TrimSpace(platform), WebProfile.Platform) {
		return WebProfile
	}
	return NativeProfile
}
