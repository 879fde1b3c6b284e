package worker

import (
	"time"

	"go.uber.org/zap"

	"github.com/persona-ai/goPersonaCoach/business/fusion"
	"github.com/persona-ai/goPersonaCoach/foundation/landmark"
	"github.com/persona-ai/goPersonaCoach/foundation/store"
)

// Settings wires the worker's collaborators.
type Settings struct {
	Config
	Logger *zap.SugaredLogger
	Feed   Feed
	Sink   Sink
	Store  *store.Store

	// Profile overrides the built-in weights for Config.Context when set.
	Profile *fusion.WeightProfile
}

// Config is the per-session worker configuration.
type Config struct {
	SessionID     string
	Context       fusion.Context
	SampleRate    int
	CycleInterval time.Duration
}

// =====================================================================================================================

// Feed delivers the inbound media frames for one session: landmark frames
// from the vision detector, PCM windows from capture, and transcript events
// from the speech-to-text engine.
type Feed interface {
	ReadFrame() (Frame, error)
}

// Sink receives the per-cycle fused scores and display transcripts.
type Sink interface {
	SendScores(fusion.FusedState) error
	SendTranscript(text string, isFinal bool) error
}

// Frame is one inbound feed message. Kind selects which fields are set;
// unset modality fields are simply absent, never an error.
type Frame struct {
	Kind string `json:"kind"` // "video", "audio", or "transcript"

	// Video
	FaceLandmarks     []landmark.Point `json:"faceLandmarks,omitempty"`
	PoseLandmarks     []landmark.Point `json:"poseLandmarks,omitempty"`
	Gestures          []GestureLabel   `json:"gestures,omitempty"`
	Emotion           string           `json:"emotion,omitempty"`
	EmotionConfidence float64          `json:"emotionConfidence,omitempty"`

	// Audio
	Samples []float64 `json:"samples,omitempty"`

	// Transcript
	Text      string    `json:"text,omitempty"`
	IsFinal   bool      `json:"isFinal,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// GestureLabel is one classified gesture with detector confidence.
type GestureLabel struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

const (
	videoTopic      = "video"
	audioTopic      = "audio"
	transcriptTopic = "transcript"
)
