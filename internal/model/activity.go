package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type ActivityType string

const (
	ActivityMatching  ActivityType = "MATCHING"
	ActivityOrdering  ActivityType = "ORDERING"
	ActivityListening ActivityType = "LISTENING"
	ActivitySpeaking  ActivityType = "SPEAKING"
)

// Activity はレッスン内の1つの演習。実装はこのパッケージ内の型に限られる
type Activity interface {
	Kind() ActivityType
	activity()
}

// Pair は JSON 上では ["term", "translation"] の配列。
// 読み込み時は先頭要素 (term) だけあればよく、訳が無ければ空のまま
type Pair struct {
	Term        string
	Translation string
}

func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Term, p.Translation})
}

func (p *Pair) UnmarshalJSON(data []byte) error {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("pair: %w", err)
	}
	if len(arr) == 0 {
		return errors.New("pair: empty")
	}
	var term, translation string
	if err := json.Unmarshal(arr[0], &term); err != nil {
		return fmt.Errorf("pair term: %w", err)
	}
	if len(arr) > 1 {
		// 訳が文字列でなくても term は使える
		_ = json.Unmarshal(arr[1], &translation)
	}
	p.Term, p.Translation = term, translation
	return nil
}

type MatchingActivity struct {
	Title string `json:"title"`
	Pairs []Pair `json:"pairs"`
}

// UnmarshalJSON は読めないペアを捨てて残りを使う
func (a *MatchingActivity) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title string            `json:"title"`
		Pairs []json.RawMessage `json:"pairs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pairs := make([]Pair, 0, len(raw.Pairs))
	for _, rp := range raw.Pairs {
		var pair Pair
		if err := json.Unmarshal(rp, &pair); err != nil {
			continue
		}
		pairs = append(pairs, pair)
	}
	a.Title, a.Pairs = raw.Title, pairs
	return nil
}

type OrderingActivity struct {
	Title  string   `json:"title"`
	Prompt string   `json:"prompt"`
	Words  []string `json:"words"`
}

type ListeningActivity struct {
	Title           string   `json:"title"`
	PromptAudioText string   `json:"prompt_audio_text"`
	Options         []string `json:"options"`
	CorrectAnswer   string   `json:"correct_answer"`
}

type SpeakingActivity struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// UnknownActivity は未知の type を持つ演習。元のJSONをそのまま保持する
type UnknownActivity struct {
	Type string
	Raw  json.RawMessage
}

func (MatchingActivity) Kind() ActivityType  { return ActivityMatching }
func (OrderingActivity) Kind() ActivityType  { return ActivityOrdering }
func (ListeningActivity) Kind() ActivityType { return ActivityListening }
func (SpeakingActivity) Kind() ActivityType  { return ActivitySpeaking }
func (a UnknownActivity) Kind() ActivityType { return ActivityType(a.Type) }

func (MatchingActivity) activity()  {}
func (OrderingActivity) activity()  {}
func (ListeningActivity) activity() {}
func (SpeakingActivity) activity()  {}
func (UnknownActivity) activity()   {}

func (a MatchingActivity) MarshalJSON() ([]byte, error) {
	type alias MatchingActivity
	return json.Marshal(struct {
		Type ActivityType `json:"type"`
		alias
	}{ActivityMatching, alias(a)})
}

func (a OrderingActivity) MarshalJSON() ([]byte, error) {
	type alias OrderingActivity
	return json.Marshal(struct {
		Type ActivityType `json:"type"`
		alias
	}{ActivityOrdering, alias(a)})
}

func (a ListeningActivity) MarshalJSON() ([]byte, error) {
	type alias ListeningActivity
	return json.Marshal(struct {
		Type ActivityType `json:"type"`
		alias
	}{ActivityListening, alias(a)})
}

func (a SpeakingActivity) MarshalJSON() ([]byte, error) {
	type alias SpeakingActivity
	return json.Marshal(struct {
		Type ActivityType `json:"type"`
		alias
	}{ActivitySpeaking, alias(a)})
}

func (a UnknownActivity) MarshalJSON() ([]byte, error) {
	if len(a.Raw) > 0 {
		return a.Raw, nil
	}
	return json.Marshal(map[string]string{"type": a.Type})
}

// DecodeActivity は "type" タグ (大文字で完全一致) で演習の型を決める。
// null や空入力は (nil, nil)、未知のタグは UnknownActivity を返し、エラーにはしない。
func DecodeActivity(data []byte) (Activity, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("activity: %w", err)
	}

	switch ActivityType(head.Type) {
	case ActivityMatching:
		var a MatchingActivity
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("activity %s: %w", head.Type, err)
		}
		return a, nil
	case ActivityOrdering:
		var a OrderingActivity
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("activity %s: %w", head.Type, err)
		}
		return a, nil
	case ActivityListening:
		var a ListeningActivity
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("activity %s: %w", head.Type, err)
		}
		return a, nil
	case ActivitySpeaking:
		var a SpeakingActivity
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("activity %s: %w", head.Type, err)
		}
		return a, nil
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return UnknownActivity{Type: head.Type, Raw: raw}, nil
	}
}

// Activities は JSON 配列として保存される演習リスト
type Activities []Activity

func (as *Activities) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("activities: %w", err)
	}
	out := make(Activities, 0, len(raws))
	for i, raw := range raws {
		a, err := DecodeActivity(raw)
		if err != nil {
			return fmt.Errorf("activities[%d]: %w", i, err)
		}
		if a == nil {
			continue
		}
		out = append(out, a)
	}
	*as = out
	return nil
}
