// Package fusion combines the per-channel extractor outputs into the stable
// communication-quality scores shown to the user. It normalizes the raw
// metrics onto a common scale, aggregates them into seven features, applies
// the active context weight profile, estimates confidence, detects the
// zero-signal state, and smooths the result across cycles.
package fusion

import (
	"math"
	"sync"

	"github.com/persona-ai/goPersonaCoach/foundation/thresholds"
)

// Feature aggregation sub-weights. These are fixed model internals, not
// configuration.
const (
	postureMainWeight  = 0.5
	postureAlignWeight = 0.3
	postureHeadWeight  = 0.2

	bodyGestureWeight = 0.4
	bodyHandsWeight   = 0.3
	bodyPostureWeight = 0.3

	voicePitchVarWeight  = 0.35
	voiceVolumeVarWeight = 0.25
	voiceClarityWeight   = 0.25
	voiceEnergyWeight    = 0.15

	clarityScoreWeight  = 0.4
	clarityArticWeight  = 0.3
	clarityFillerWeight = 0.3

	engagementPaceWeight    = 0.5
	engagementFluencyWeight = 0.5
)

// Confidence penalties per weak channel.
const (
	penaltyNoVision    = 20
	penaltyQuietAudio  = 15
	penaltyNoSpeech    = 10
	penaltyFlatEmotion = 10
)

// Engine owns the only piece of cross-cycle fused state for a session. All
// methods are safe for concurrent use, but per-session fusion calls are
// expected to be sequential: the previous-frame memory is replaced in place.
type Engine struct {
	mu      sync.Mutex
	profile WeightProfile

	hasPrev bool
	prev    FeatureSet
	prevAll float64
}

// NewEngine returns an engine scoring for the given context.
func NewEngine(ctx Context) (*Engine, error) {
	p, err := ProfileFor(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{profile: p}, nil
}

// SetContext swaps the active weight profile. Smoothing memory is kept, so
// a context change between cycles does not jolt the display.
func (e *Engine) SetContext(p WeightProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile = p
	return nil
}

// Reset clears the previous-frame memory only; the next cycle passes
// through unsmoothed.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hasPrev = false
	e.prev = FeatureSet{}
	e.prevAll = 0
}

// Fuse runs one cycle. It never fails: malformed inputs are clamped at the
// boundary and missing signal is expressed through the zero state and the
// confidence score.
func (e *Engine) Fuse(raw RawMetrics) FusedState {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw = clampRaw(raw)

	if isZeroState(raw) {
		// Going to zero is immediate: the previous state is overwritten so
		// a returning subject ramps up from zero, not from stale scores.
		e.hasPrev = true
		e.prev = FeatureSet{}
		e.prevAll = 0
		return FusedState{}
	}

	features := aggregate(raw)
	overall := e.profile.apply(features)
	confidence := confidenceScore(raw)

	if e.hasPrev {
		alpha := thresholds.BaseSmoothingAlpha * confidence / 100
		features = FeatureSet{
			EyeContact:        lerp(features.EyeContact, e.prev.EyeContact, alpha),
			Posture:           lerp(features.Posture, e.prev.Posture, alpha),
			BodyLanguage:      lerp(features.BodyLanguage, e.prev.BodyLanguage, alpha),
			FacialExpression:  lerp(features.FacialExpression, e.prev.FacialExpression, alpha),
			VoiceQuality:      lerp(features.VoiceQuality, e.prev.VoiceQuality, alpha),
			SpeechClarity:     lerp(features.SpeechClarity, e.prev.SpeechClarity, alpha),
			ContentEngagement: lerp(features.ContentEngagement, e.prev.ContentEngagement, alpha),
		}
		overall = lerp(overall, e.prevAll, alpha)
	}

	e.hasPrev = true
	e.prev = features
	e.prevAll = overall

	return FusedState{
		EyeContact:        round(features.EyeContact),
		Posture:           round(features.Posture),
		BodyLanguage:      round(features.BodyLanguage),
		FacialExpression:  round(features.FacialExpression),
		VoiceQuality:      round(features.VoiceQuality),
		SpeechClarity:     round(features.SpeechClarity),
		ContentEngagement: round(features.ContentEngagement),
		OverallScore:      round(overall),
		Confidence:        round(confidence),
	}
}

// =====================================================================================================================
// Zero state and confidence

func isZeroState(raw RawMetrics) bool {
	noVision := raw.Vision.EyeContact < thresholds.ZeroStateVision &&
		raw.Vision.PostureScore < thresholds.ZeroStateVision
	noAudio := raw.Audio.VolumeDb < thresholds.ZeroStateVolumeDb &&
		raw.Audio.Energy < thresholds.ZeroStateEnergy
	noSpeech := raw.Speech.WordsPerMinute == 0

	// Vision pairs with either silent modality; audio+speech alone never
	// zeroes the state (an off-camera speaker still gets voice scores).
	return (noVision && noAudio) || (noVision && noSpeech)
}

func confidenceScore(raw RawMetrics) float64 {
	confidence := 100.0

	if raw.Vision.EyeContact < thresholds.ZeroStateVision &&
		raw.Vision.PostureScore < thresholds.ZeroStateVision {
		confidence -= penaltyNoVision
	}
	if raw.Audio.VolumeDb < thresholds.ZeroStateVolumeDb {
		confidence -= penaltyQuietAudio
	}
	if raw.Speech.WordsPerMinute == 0 {
		confidence -= penaltyNoSpeech
	}
	if raw.Vision.EmotionConfidence < thresholds.EmotionConfidenceFloor {
		confidence -= penaltyFlatEmotion
	}

	return sanitize(confidence, 0, 100)
}

// =====================================================================================================================
// Normalization and aggregation

func aggregate(raw RawMetrics) FeatureSet {
	v, a, s := raw.Vision, raw.Audio, raw.Speech

	// Loudness blends the dB level with signal energy so a close quiet mic
	// and a distant loud one score comparably.
	loudness := 0.5*normalizeDb(a.VolumeDb) + 0.5*sanitize(a.Energy/200*100, 0, 100)

	wpmScore := normalizeWpm(s.WordsPerMinute)
	fillerScore := sanitize(100-2*s.FillerPercentage, 0, 100)

	expression := v.EmotionConfidence * 100 * v.EmotionLabel.expressiveness()

	return FeatureSet{
		EyeContact: v.EyeContact,
		Posture: postureMainWeight*v.PostureScore +
			postureAlignWeight*v.ShoulderAlignment +
			postureHeadWeight*v.HeadPosition,
		BodyLanguage: bodyGestureWeight*v.GestureVariety +
			bodyHandsWeight*v.HandVisibility +
			bodyPostureWeight*v.PostureScore,
		FacialExpression: sanitize(expression, 0, 100),
		VoiceQuality: voicePitchVarWeight*a.PitchVariation +
			voiceVolumeVarWeight*a.VolumeVariation +
			voiceClarityWeight*a.Clarity +
			voiceEnergyWeight*loudness,
		SpeechClarity: clarityScoreWeight*s.ClarityScore +
			clarityArticWeight*s.ArticulationScore +
			clarityFillerWeight*fillerScore,
		ContentEngagement: engagementPaceWeight*wpmScore +
			engagementFluencyWeight*s.FluencyScore,
	}
}

// normalizeDb maps the -60..0 dB range linearly onto 0..100.
func normalizeDb(db float64) float64 {
	return sanitize((db-thresholds.SilenceFloorDb)/-thresholds.SilenceFloorDb*100, 0, 100)
}

// normalizeWpm peaks at 100 inside the ideal band and degrades toward both
// extremes.
func normalizeWpm(wpm float64) float64 {
	switch {
	case wpm <= 0:
		return 0
	case wpm >= thresholds.IdealWpmLow && wpm <= thresholds.IdealWpmHigh:
		return 100
	case wpm < thresholds.IdealWpmLow:
		return sanitize(100*wpm/thresholds.IdealWpmLow, 0, 100)
	default:
		over := wpm - thresholds.IdealWpmHigh
		return sanitize(100-over*0.6, 20, 100)
	}
}

func clampRaw(raw RawMetrics) RawMetrics {
	v := &raw.Vision
	v.EyeContact = sanitize(v.EyeContact, 0, 100)
	v.EmotionConfidence = sanitize(v.EmotionConfidence, 0, 1)
	v.PostureScore = sanitize(v.PostureScore, 0, 100)
	v.ShoulderAlignment = sanitize(v.ShoulderAlignment, 0, 100)
	v.HeadPosition = sanitize(v.HeadPosition, 0, 100)
	v.GestureVariety = sanitize(v.GestureVariety, 0, 100)
	v.HandVisibility = sanitize(v.HandVisibility, 0, 100)

	a := &raw.Audio
	a.PitchHz = sanitize(a.PitchHz, 0, 2000)
	a.PitchVariation = sanitize(a.PitchVariation, 0, 100)
	a.VolumeDb = clampDb(a.VolumeDb)
	a.VolumeVariation = sanitize(a.VolumeVariation, 0, 100)
	a.Clarity = sanitize(a.Clarity, 0, 100)
	a.Energy = sanitize(a.Energy, 0, 1e6)

	s := &raw.Speech
	s.WordsPerMinute = sanitize(s.WordsPerMinute, 0, 1000)
	s.FillerCount = sanitize(s.FillerCount, 0, 1e6)
	s.FillerPercentage = sanitize(s.FillerPercentage, 0, 100)
	s.ClarityScore = sanitize(s.ClarityScore, 0, 100)
	s.FluencyScore = sanitize(s.FluencyScore, 0, 100)
	s.ArticulationScore = sanitize(s.ArticulationScore, 0, 100)

	return raw
}

// clampDb keeps volume in (-inf, 0] but replaces NaN with the silence floor.
func clampDb(db float64) float64 {
	if math.IsNaN(db) || math.IsInf(db, -1) {
		return thresholds.SilenceFloorDb
	}
	if db > 0 {
		return 0
	}
	return db
}

func lerp(current, previous, alpha float64) float64 {
	return alpha*current + (1-alpha)*previous
}

func round(v float64) int {
	return int(math.Round(sanitize(v, 0, 100)))
}
