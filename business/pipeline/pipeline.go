// Package pipeline drives one analysis cycle: it fans the current frame out
// to the four per-channel analyzers in parallel, joins their outputs into a
// single raw-metrics snapshot, and hands that to the fusion engine. One
// Pipeline instance belongs to one session and its Cycle calls must be
// sequential; independent sessions run independent pipelines.
package pipeline

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/persona-ai/goPersonaCoach/business/fusion"
	"github.com/persona-ai/goPersonaCoach/foundation/audiofeat"
	"github.com/persona-ai/goPersonaCoach/foundation/landmark"
	"github.com/persona-ai/goPersonaCoach/foundation/speechrate"
	"github.com/persona-ai/goPersonaCoach/foundation/textcontent"
)

// ErrNotStarted is returned when Cycle is called before Start. That is a
// caller bug, not a runtime condition, and fails hard.
var ErrNotStarted = errors.New("pipeline: cycle called before start")

// Input is everything captured for one analysis cycle. Absent modalities
// stay nil/empty and degrade to zero scores.
type Input struct {
	FaceLandmarks     []landmark.Point
	PoseLandmarks     []landmark.Point
	Gestures          []string
	Emotion           fusion.Emotion
	EmotionConfidence float64

	AudioSamples []float64

	FinalUtterances []string
	Transcript      string
}

// Pipeline owns the four analyzers and the fusion engine for one session.
type Pipeline struct {
	scorer  *landmark.Scorer
	audio   *audiofeat.Extractor
	speech  *speechrate.Analyzer
	content *textcontent.Analyzer
	engine  *fusion.Engine

	started     bool
	lastSpeech  speechrate.Metrics
	lastContent textcontent.Metrics
}

// New builds a pipeline scoring for the given context at the feed's audio
// sample rate.
func New(ctx fusion.Context, sampleRate int) (*Pipeline, error) {
	engine, err := fusion.NewEngine(ctx)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		scorer:  landmark.NewScorer(),
		audio:   audiofeat.NewExtractor(sampleRate),
		speech:  speechrate.NewAnalyzer(),
		content: textcontent.NewAnalyzer(),
		engine:  engine,
	}, nil
}

// Start resets all per-session state and arms the pipeline.
func (p *Pipeline) Start() {
	p.scorer.Reset()
	p.audio.Reset()
	p.speech.Reset()
	p.content.Reset()
	p.engine.Reset()
	p.lastSpeech = speechrate.Metrics{}
	p.lastContent = textcontent.Metrics{}
	p.started = true
}

// Stop disarms the pipeline; analyzer windows are dropped on the next Start.
func (p *Pipeline) Stop() {
	p.started = false
}

// SetContext swaps the active scoring profile between cycles.
func (p *Pipeline) SetContext(ctx fusion.Context) error {
	profile, err := fusion.ProfileFor(ctx)
	if err != nil {
		return err
	}
	return p.engine.SetContext(profile)
}

// SetProfile installs a custom weight profile, e.g. one loaded from a
// profile configuration file.
func (p *Pipeline) SetProfile(profile fusion.WeightProfile) error {
	return p.engine.SetContext(profile)
}

// Cycle analyzes one captured frame. The four channel analyzers run
// concurrently; they share no state. Fusion runs strictly after the join.
func (p *Pipeline) Cycle(ctx context.Context, in Input) (fusion.FusedState, error) {
	if !p.started {
		return fusion.FusedState{}, ErrNotStarted
	}

	var (
		scores   landmark.Scores
		features audiofeat.Features
	)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		scores = p.scorer.Score(in.FaceLandmarks, in.PoseLandmarks, in.Gestures)
		return nil
	})

	g.Go(func() error {
		features = p.audio.Extract(in.AudioSamples)
		return nil
	})

	g.Go(func() error {
		for _, u := range in.FinalUtterances {
			p.lastSpeech = p.speech.Ingest(u)
		}
		return nil
	})

	g.Go(func() error {
		if in.Transcript != "" {
			p.lastContent = p.content.Analyze(in.Transcript)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fusion.FusedState{}, err
	}

	raw := fusion.RawMetrics{
		Vision: fusion.VisionMetrics{
			EyeContact:        scores.EyeContact,
			EmotionLabel:      in.Emotion,
			EmotionConfidence: in.EmotionConfidence,
			PostureScore:      scores.Posture,
			ShoulderAlignment: scores.ShoulderAlignment,
			HeadPosition:      scores.HeadPosition,
			GestureVariety:    scores.GestureVariety,
			HandVisibility:    scores.HandVisibility,
		},
		Audio: fusion.AudioMetrics{
			PitchHz:         features.PitchHz,
			PitchVariation:  features.PitchVariation,
			VolumeDb:        features.VolumeDb,
			VolumeVariation: features.VolumeVariation,
			Clarity:         features.Clarity,
			Energy:          features.Energy,
		},
		Speech: fusion.SpeechMetrics{
			WordsPerMinute:    p.lastSpeech.WordsPerMinute,
			FillerCount:       float64(p.lastSpeech.FillerCount),
			FillerPercentage:  p.lastSpeech.FillerPercentage,
			ClarityScore:      p.lastSpeech.ClarityScore,
			FluencyScore:      p.lastSpeech.FluencyScore,
			ArticulationScore: p.lastSpeech.ArticulationScore,
		},
	}

	return p.engine.Fuse(raw), nil
}

// SpeechSummary returns the most recent speech metrics for reporting.
func (p *Pipeline) SpeechSummary() speechrate.Metrics {
	return p.lastSpeech
}

// ContentSummary returns the most recent content metrics for reporting.
func (p *Pipeline) ContentSummary() textcontent.Metrics {
	return p.lastContent
}
