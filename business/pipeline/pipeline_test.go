package pipeline_test

import (
	"context"
	"math"
	"testing"

	"github.com/persona-ai/goPersonaCoach/business/fusion"
	"github.com/persona-ai/goPersonaCoach/business/pipeline"
)

const sampleRate = 16000

func newTestPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	p, err := pipeline.New(fusion.ContextJobSeekers, sampleRate)
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	return p
}

func TestCycleBeforeStart(t *testing.T) {
	p := newTestPipeline(t)

	if _, err := p.Cycle(context.Background(), pipeline.Input{}); err != pipeline.ErrNotStarted {
		t.Fatalf("err = %v, want ErrNotStarted", err)
	}

	p.Start()
	p.Stop()
	if _, err := p.Cycle(context.Background(), pipeline.Input{}); err != pipeline.ErrNotStarted {
		t.Fatalf("err after stop = %v, want ErrNotStarted", err)
	}
}

func TestSilentCycle(t *testing.T) {
	p := newTestPipeline(t)
	p.Start()

	// No landmarks, silent audio, no transcript: the zero state.
	got, err := p.Cycle(context.Background(), pipeline.Input{
		AudioSamples: make([]float64, 1024),
	})
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if got != (fusion.FusedState{}) {
		t.Fatalf("silent cycle = %+v, want zero state", got)
	}
}

func TestSpeechOnlyCycle(t *testing.T) {
	p := newTestPipeline(t)
	p.Start()

	samples := make([]float64, 2048)
	for i := range samples {
		samples[i] = 0.3 * math.Sin(2*math.Pi*180*float64(i)/sampleRate)
	}

	got, err := p.Cycle(context.Background(), pipeline.Input{
		AudioSamples:    samples,
		FinalUtterances: []string{"the prototype is ready for the next review"},
		Transcript:      "the prototype is ready for the next review",
	})
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}

	if got == (fusion.FusedState{}) {
		t.Fatal("audible speech must not collapse to the zero state")
	}
	if got.SpeechClarity == 0 {
		t.Fatalf("speech clarity = 0 with a clean utterance, got %+v", got)
	}
	if got.Confidence <= 0 || got.Confidence > 100 {
		t.Fatalf("confidence = %d out of range", got.Confidence)
	}

	if p.SpeechSummary().WordsPerMinute == 0 {
		t.Fatal("speech summary should retain the ingested utterance")
	}
	if p.ContentSummary().CoherenceScore == 0 {
		t.Fatal("content summary should retain the analyzed transcript")
	}
}

func TestSpeechMetricsPersistAcrossCycles(t *testing.T) {
	p := newTestPipeline(t)
	p.Start()

	in := pipeline.Input{
		FinalUtterances: []string{"working through the quarterly figures now"},
	}
	if _, err := p.Cycle(context.Background(), in); err != nil {
		t.Fatalf("first cycle: %v", err)
	}
	wpm := p.SpeechSummary().WordsPerMinute
	if wpm == 0 {
		t.Fatal("expected nonzero wpm after an utterance")
	}

	// A cycle with no new utterance keeps the last speech metrics.
	if _, err := p.Cycle(context.Background(), pipeline.Input{}); err != nil {
		t.Fatalf("second cycle: %v", err)
	}
	if got := p.SpeechSummary().WordsPerMinute; got != wpm {
		t.Fatalf("wpm = %.1f after idle cycle, want %.1f retained", got, wpm)
	}
}

func TestStartResetsState(t *testing.T) {
	p := newTestPipeline(t)
	p.Start()

	if _, err := p.Cycle(context.Background(), pipeline.Input{
		FinalUtterances: []string{"some earlier session speech here"},
	}); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	p.Stop()
	p.Start()

	if got := p.SpeechSummary().WordsPerMinute; got != 0 {
		t.Fatalf("wpm = %.1f after restart, want 0", got)
	}
}

func TestSetContext(t *testing.T) {
	p := newTestPipeline(t)

	if err := p.SetContext(fusion.ContextStudents); err != nil {
		t.Fatalf("set context: %v", err)
	}
	if err := p.SetContext("standup-meetings"); err == nil {
		t.Fatal("unknown context should fail")
	}

	custom, _ := fusion.ProfileFor(fusion.ContextRemoteWorkers)
	if err := p.SetProfile(custom); err != nil {
		t.Fatalf("set profile: %v", err)
	}
}
