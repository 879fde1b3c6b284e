package fusion

import "math"

// VisionMetrics is the landmark scorer's contribution to one cycle.
type VisionMetrics struct {
	EyeContact        float64 // 0..100
	EmotionLabel      Emotion
	EmotionConfidence float64 // 0..1
	PostureScore      float64 // 0..100
	ShoulderAlignment float64 // 0..100
	HeadPosition      float64 // 0..100
	GestureVariety    float64 // 0..100
	HandVisibility    float64 // 0..100
}

// AudioMetrics is the audio extractor's contribution to one cycle.
type AudioMetrics struct {
	PitchHz         float64 // >= 0
	PitchVariation  float64 // 0..100
	VolumeDb        float64 // <= 0
	VolumeVariation float64 // 0..100
	Clarity         float64 // 0..100
	Energy          float64 // >= 0
}

// SpeechMetrics is the speech-pattern analyzer's contribution to one cycle.
type SpeechMetrics struct {
	WordsPerMinute    float64 // >= 0
	FillerCount       float64 // >= 0
	FillerPercentage  float64 // 0..100
	ClarityScore      float64 // 0..100
	FluencyScore      float64 // 0..100
	ArticulationScore float64 // 0..100
}

// RawMetrics is the combined per-cycle snapshot consumed by the engine.
// Every field is defensively clamped to its documented range on entry; an
// out-of-range value is an extractor bug and must not propagate.
type RawMetrics struct {
	Vision VisionMetrics
	Audio  AudioMetrics
	Speech SpeechMetrics
}

// FeatureSet holds the seven normalized high-level features on 0..100.
type FeatureSet struct {
	EyeContact        float64
	Posture           float64
	BodyLanguage      float64
	FacialExpression  float64
	VoiceQuality      float64
	SpeechClarity     float64
	ContentEngagement float64
}

// FusedState is the engine output for one cycle, rounded to integers.
type FusedState struct {
	EyeContact        int `json:"eyeContact"`
	Posture           int `json:"posture"`
	BodyLanguage      int `json:"bodyLanguage"`
	FacialExpression  int `json:"facialExpression"`
	VoiceQuality      int `json:"voiceQuality"`
	SpeechClarity     int `json:"speechClarity"`
	ContentEngagement int `json:"contentEngagement"`
	OverallScore      int `json:"overallScore"`
	Confidence        int `json:"confidence"`
}

// =====================================================================================================================

// Emotion is the closed taxonomy reported by the face detector's blendshape
// classifier.
type Emotion int

const (
	EmotionNeutral Emotion = iota
	EmotionHappy
	EmotionSad
	EmotionSurprised
	EmotionAngry
	EmotionFear
	EmotionDisgust
	EmotionContempt
)

var emotionNames = map[string]Emotion{
	"neutral": EmotionNeutral, "happy": EmotionHappy, "sad": EmotionSad,
	"surprised": EmotionSurprised, "angry": EmotionAngry,
	"fear": EmotionFear, "disgust": EmotionDisgust, "contempt": EmotionContempt,
}

// ParseEmotion maps a detector label onto the taxonomy. Unrecognized labels
// fall back to neutral rather than failing.
func ParseEmotion(label string) Emotion {
	if e, ok := emotionNames[label]; ok {
		return e
	}
	return EmotionNeutral
}

func (e Emotion) String() string {
	for name, v := range emotionNames {
		if v == e {
			return name
		}
	}
	return "neutral"
}

// expressiveness weights how much a held emotion counts as an engaged
// expression. A flat neutral face is still credited partially.
func (e Emotion) expressiveness() float64 {
	if e == EmotionNeutral {
		return 0.6
	}
	return 1.0
}

// =====================================================================================================================

// sanitize replaces NaN/Inf with 0 and clamps into [lo, hi].
func sanitize(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
