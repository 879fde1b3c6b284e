package config

// Config is the on-disk coaching configuration: a set of context profiles
// with per-feature scoring weights.
type Config struct {
	Profiles []Profile `json:"profiles"`
}

// Profile is one named practice context and its feature weights.
type Profile struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Weights Weights `json:"weights"`
}

// Weights holds the seven feature weights; they must sum to 1.
type Weights struct {
	EyeContact        float64 `json:"eye_contact"`
	Posture           float64 `json:"posture"`
	BodyLanguage      float64 `json:"body_language"`
	FacialExpression  float64 `json:"facial_expression"`
	VoiceQuality      float64 `json:"voice_quality"`
	SpeechClarity     float64 `json:"speech_clarity"`
	ContentEngagement float64 `json:"content_engagement"`
}
