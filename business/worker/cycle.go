package worker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/persona-ai/goPersonaCoach/business/fusion"
	"github.com/persona-ai/goPersonaCoach/business/pipeline"
	"github.com/persona-ai/goPersonaCoach/business/report"
	"github.com/persona-ai/goPersonaCoach/foundation/state"
	"github.com/persona-ai/goPersonaCoach/foundation/store"
)

// cycleOperation owns the analysis pipeline. It accumulates the latest
// inbound frames between ticks and runs one fusion cycle per tick. Fusion
// calls stay strictly sequential because only this goroutine makes them.
func (w *Worker) cycleOperation() {
	w.logger.Infow("worker: cycleOperation: G started")
	defer w.logger.Infow("worker: cycleOperation: G completed")

	ticker := time.NewTicker(w.config.CycleInterval)
	defer ticker.Stop()

	var (
		in         pipeline.Input
		transcript strings.Builder
		haveVideo  bool
	)

	w.logger.Infow("worker: cycleOperation: G listening")
	for {
		select {
		case frame := <-w.videoSub.GetChannel():
			if !w.state.Get(state.Vision) {
				continue
			}
			in.FaceLandmarks = frame.FaceLandmarks
			in.PoseLandmarks = frame.PoseLandmarks
			in.Gestures = gestureLabels(frame.Gestures)
			in.Emotion = fusion.ParseEmotion(frame.Emotion)
			in.EmotionConfidence = frame.EmotionConfidence
			haveVideo = true

		case frame := <-w.audioSub.GetChannel():
			if !w.state.Get(state.Audio) {
				continue
			}
			in.AudioSamples = append(in.AudioSamples, frame.Samples...)

		case frame := <-w.transcriptSub.GetChannel():
			if !w.state.Get(state.Speech) || !frame.IsFinal {
				continue
			}
			in.FinalUtterances = append(in.FinalUtterances, frame.Text)
			if transcript.Len() > 0 {
				transcript.WriteString(" ")
			}
			transcript.WriteString(frame.Text)
			in.Transcript = transcript.String()

		case <-ticker.C:
			fused, err := w.pipe.Cycle(context.Background(), in)
			if err != nil {
				w.Shutdown(err)
				return
			}
			w.averager.Add(fused)

			select {
			case w.scoresCh <- fused:
			default:
				// Score display lagging is not worth stalling analysis.
			}

			// Frame data is consumed by the cycle; vision frames persist
			// until replaced so a slow detector does not strobe the scores.
			if !haveVideo {
				in.FaceLandmarks = nil
				in.PoseLandmarks = nil
			}
			haveVideo = false
			in.Gestures = nil
			in.AudioSamples = nil
			in.FinalUtterances = nil

		case <-w.shut:
			w.logger.Infow("worker: cycleOperation: received shut signal")
			w.persistSession(transcript.String())
			return
		}
	}
}

func (w *Worker) persistSession(transcript string) {
	if w.sessions == nil {
		return
	}

	avg := w.averager.Mean()
	scores, _ := json.Marshal(avg)
	speech, _ := json.Marshal(w.pipe.SpeechSummary())
	content, _ := json.Marshal(w.pipe.ContentSummary())

	rec := store.Record{
		SessionID:       w.config.SessionID,
		Category:        string(w.config.Context),
		DurationSeconds: time.Since(w.startedAt).Seconds(),
		Transcript:      transcript,
		Scores:          scores,
		SpeechAnalysis:  speech,
		ContentAnalysis: content,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.sessions.Save(ctx, rec); err != nil {
		w.logger.Errorw("worker: cycleOperation: persist session", "ERROR", err)
		return
	}

	strengths, areas, tips := report.Feedback(avg)
	w.logger.Infow("worker: cycleOperation: session persisted",
		"sessionID", w.config.SessionID,
		"overallScore", avg.OverallScore,
		"strengths", strengths,
		"areasToImprove", areas,
		"tips", tips,
	)
}

func gestureLabels(gestures []GestureLabel) []string {
	labels := make([]string, 0, len(gestures))
	for _, g := range gestures {
		if g.Label != "" {
			labels = append(labels, g.Label)
		}
	}
	return labels
}
