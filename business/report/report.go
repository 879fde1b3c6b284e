// Package report builds the end-of-session summary: averaged scores,
// rule-based coaching feedback, and achievement/streak progress.
package report

import (
	"time"

	"github.com/persona-ai/goPersonaCoach/business/fusion"
)

// Summary is the session report handed to display and persistence.
type Summary struct {
	SessionID       string
	Category        string
	Duration        time.Duration
	AverageScores   fusion.FusedState
	Strengths       []string
	AreasToImprove  []string
	Tips            []string
	NewBadges       []string
	TranscriptWords int
}

// Averager accumulates fused states over a session and produces their mean.
type Averager struct {
	count int
	sums  [9]float64
}

func (a *Averager) Add(s fusion.FusedState) {
	a.count++
	for i, v := range stateValues(s) {
		a.sums[i] += float64(v)
	}
}

// Mean returns the averaged state. Each field keeps a floor of 1 so a chart
// of the results never renders an invisible zero bar for a session that had
// some activity.
func (a *Averager) Mean() fusion.FusedState {
	if a.count == 0 {
		return fusion.FusedState{}
	}
	var vals [9]int
	for i, sum := range a.sums {
		v := int(sum/float64(a.count) + 0.5)
		if v < 1 {
			v = 1
		}
		vals[i] = v
	}
	return fusion.FusedState{
		EyeContact:        vals[0],
		Posture:           vals[1],
		BodyLanguage:      vals[2],
		FacialExpression:  vals[3],
		VoiceQuality:      vals[4],
		SpeechClarity:     vals[5],
		ContentEngagement: vals[6],
		OverallScore:      vals[7],
		Confidence:        vals[8],
	}
}

func (a *Averager) Count() int {
	return a.count
}

func stateValues(s fusion.FusedState) [9]int {
	return [9]int{
		s.EyeContact, s.Posture, s.BodyLanguage, s.FacialExpression,
		s.VoiceQuality, s.SpeechClarity, s.ContentEngagement,
		s.OverallScore, s.Confidence,
	}
}

// =====================================================================================================================
// Feedback rules

const (
	strengthCutoff = 70
	improveCutoff  = 60
	eyeCutoff      = 50
)

// Feedback derives strengths, improvement areas, and tips from the averaged
// session scores. Every session gets at least one strength and one tip.
func Feedback(avg fusion.FusedState) (strengths, areas, tips []string) {
	if avg.EyeContact > strengthCutoff {
		strengths = append(strengths, "Good eye engagement")
	}
	if avg.FacialExpression > strengthCutoff {
		strengths = append(strengths, "Excellent expression variety")
	}
	if avg.Posture > strengthCutoff {
		strengths = append(strengths, "Confident posture")
	}
	if avg.VoiceQuality > strengthCutoff {
		strengths = append(strengths, "Strong vocal delivery")
	}

	if avg.FacialExpression < improveCutoff {
		areas = append(areas, "Facial expressions")
		tips = append(tips, "Try to be more expressive when speaking")
	}
	if avg.EyeContact < eyeCutoff {
		areas = append(areas, "Eye engagement")
		tips = append(tips, "Consider making more eye contact to maintain audience engagement")
	}
	if avg.Posture < eyeCutoff {
		areas = append(areas, "Posture")
		tips = append(tips, "Keep your shoulders level and your head centered over them")
	}
	if avg.SpeechClarity < improveCutoff {
		areas = append(areas, "Speech clarity")
		tips = append(tips, "Slow down slightly and cut filler words like 'um' and 'like'")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Consistent delivery")
	}
	if len(areas) == 0 {
		areas = append(areas, "Fine-tuning your natural style")
		tips = append(tips, "Continue practicing to build on your strengths")
	}
	return strengths, areas, tips
}

// =====================================================================================================================
// Progress and badges

const (
	BadgeStarPerformer    = "Star Performer"
	BadgeDedicatedLearner = "Dedicated Learner"
	BadgeThreeDayStreak   = "3-Day Streak"
	BadgeExpressionMaster = "Expression Master"

	starPerformerScore    = 85
	expressionMasterScore = 80
	dedicatedSessions     = 5
	streakBadgeDays       = 3
)

// Progress tracks completed sessions, the daily streak, and earned badges
// across a user's practice history.
type Progress struct {
	SessionsCompleted int
	Streak            int
	LastSessionDate   time.Time
	Badges            []string
}

// Complete records a finished session and returns any newly earned badges.
// At most one session per calendar day advances the streak.
func (p *Progress) Complete(avg fusion.FusedState, now time.Time) []string {
	today := now.Truncate(24 * time.Hour)
	last := p.LastSessionDate.Truncate(24 * time.Hour)

	if p.LastSessionDate.IsZero() || !today.Equal(last) {
		p.SessionsCompleted++
		switch {
		case p.LastSessionDate.IsZero():
			p.Streak = 1
		case today.Sub(last) == 24*time.Hour:
			p.Streak++
		default:
			p.Streak = 1
		}
		p.LastSessionDate = now
	}

	var earned []string
	award := func(badge string) {
		for _, b := range p.Badges {
			if b == badge {
				return
			}
		}
		p.Badges = append(p.Badges, badge)
		earned = append(earned, badge)
	}

	if avg.OverallScore > starPerformerScore {
		award(BadgeStarPerformer)
	}
	if p.SessionsCompleted == dedicatedSessions {
		award(BadgeDedicatedLearner)
	}
	if p.Streak >= streakBadgeDays {
		award(BadgeThreeDayStreak)
	}
	if avg.FacialExpression > expressionMasterScore {
		award(BadgeExpressionMaster)
	}
	return earned
}
