package report_test

import (
	"testing"
	"time"

	"github.com/persona-ai/goPersonaCoach/business/fusion"
	"github.com/persona-ai/goPersonaCoach/business/report"
)

func TestAverager(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var a report.Averager
		if got := a.Mean(); got != (fusion.FusedState{}) {
			t.Fatalf("empty averager mean = %+v, want zero state", got)
		}
	})

	t.Run("mean of two cycles", func(t *testing.T) {
		var a report.Averager
		a.Add(fusion.FusedState{EyeContact: 60, OverallScore: 70, Confidence: 100})
		a.Add(fusion.FusedState{EyeContact: 80, OverallScore: 80, Confidence: 90})

		got := a.Mean()
		if got.EyeContact != 70 || got.OverallScore != 75 || got.Confidence != 95 {
			t.Fatalf("mean = %+v, want eye 70, overall 75, confidence 95", got)
		}
		if a.Count() != 2 {
			t.Fatalf("count = %d, want 2", a.Count())
		}
	})

	t.Run("floor keeps bars visible", func(t *testing.T) {
		var a report.Averager
		a.Add(fusion.FusedState{OverallScore: 40})
		a.Add(fusion.FusedState{OverallScore: 40})

		// Fields that averaged to zero are floored at 1 for the chart.
		got := a.Mean()
		if got.EyeContact != 1 || got.Posture != 1 {
			t.Fatalf("zero-average fields = %+v, want floor 1", got)
		}
		if got.OverallScore != 40 {
			t.Fatalf("overall = %d, want 40", got.OverallScore)
		}
	})
}

func TestFeedback(t *testing.T) {
	t.Run("strong session", func(t *testing.T) {
		strengths, areas, tips := report.Feedback(fusion.FusedState{
			EyeContact: 85, FacialExpression: 78, Posture: 82,
			VoiceQuality: 75, SpeechClarity: 80,
		})
		if len(strengths) != 4 {
			t.Fatalf("strengths = %v, want all four", strengths)
		}
		if len(areas) != 1 || areas[0] != "Fine-tuning your natural style" {
			t.Fatalf("areas = %v, want the default", areas)
		}
		if len(tips) == 0 {
			t.Fatal("every session gets at least one tip")
		}
	})

	t.Run("weak session", func(t *testing.T) {
		strengths, areas, tips := report.Feedback(fusion.FusedState{
			EyeContact: 30, FacialExpression: 40, Posture: 35,
			VoiceQuality: 45, SpeechClarity: 50,
		})
		if len(strengths) != 1 || strengths[0] != "Consistent delivery" {
			t.Fatalf("strengths = %v, want the default", strengths)
		}
		if len(areas) != 4 {
			t.Fatalf("areas = %v, want all four", areas)
		}
		if len(tips) != len(areas) {
			t.Fatalf("tips %v should pair with areas %v", tips, areas)
		}
	})
}

func TestProgress(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2026, 4, 1+n, 18, 0, 0, 0, time.UTC)
	}

	t.Run("streak and dedication", func(t *testing.T) {
		var p report.Progress
		avg := fusion.FusedState{OverallScore: 60}

		p.Complete(avg, day(0))
		if p.Streak != 1 || p.SessionsCompleted != 1 {
			t.Fatalf("after first session: %+v", p)
		}

		// A second session the same day counts nothing extra.
		p.Complete(avg, day(0).Add(2*time.Hour))
		if p.Streak != 1 || p.SessionsCompleted != 1 {
			t.Fatalf("same-day session advanced progress: %+v", p)
		}

		p.Complete(avg, day(1))
		earned := p.Complete(avg, day(2))
		if p.Streak != 3 {
			t.Fatalf("streak = %d after three consecutive days, want 3", p.Streak)
		}
		if !containsBadge(earned, report.BadgeThreeDayStreak) {
			t.Fatalf("earned = %v, want streak badge", earned)
		}

		// Day five of practice: the dedication badge.
		p.Complete(avg, day(3))
		earned = p.Complete(avg, day(4))
		if !containsBadge(earned, report.BadgeDedicatedLearner) {
			t.Fatalf("earned = %v, want dedication badge on session 5", earned)
		}
	})

	t.Run("broken streak restarts", func(t *testing.T) {
		var p report.Progress
		avg := fusion.FusedState{OverallScore: 60}

		p.Complete(avg, day(0))
		p.Complete(avg, day(1))
		p.Complete(avg, day(4))
		if p.Streak != 1 {
			t.Fatalf("streak = %d after a gap, want 1", p.Streak)
		}
	})

	t.Run("score badges", func(t *testing.T) {
		var p report.Progress

		earned := p.Complete(fusion.FusedState{OverallScore: 90, FacialExpression: 85}, day(0))
		if !containsBadge(earned, report.BadgeStarPerformer) {
			t.Fatalf("earned = %v, want star performer above 85", earned)
		}
		if !containsBadge(earned, report.BadgeExpressionMaster) {
			t.Fatalf("earned = %v, want expression master above 80", earned)
		}

		// Badges are one-shot: a repeat performance earns nothing new.
		earned = p.Complete(fusion.FusedState{OverallScore: 90, FacialExpression: 85}, day(1))
		if containsBadge(earned, report.BadgeStarPerformer) {
			t.Fatalf("earned = %v, star performer awarded twice", earned)
		}
	})
}

func containsBadge(badges []string, want string) bool {
	for _, b := range badges {
		if b == want {
			return true
		}
	}
	return false
}
