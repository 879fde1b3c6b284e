// Package speechrate derives delivery metrics from finalized transcript
// chunks: words per minute, filler rate, pace, clarity, and articulation
// over a rolling 60-second word window.
package speechrate

import (
	"regexp"
	"strings"
	"time"

	"github.com/persona-ai/goPersonaCoach/foundation/lexicon"
	"github.com/persona-ai/goPersonaCoach/foundation/thresholds"
)

// Metrics is the analyzer output after ingesting one finalized utterance.
type Metrics struct {
	WordsPerMinute     float64
	SyllablesPerMinute float64
	FillerCount        int
	FillerPercentage   float64
	PaceScore          float64
	ClarityScore       float64
	FluencyScore       float64
	ArticulationScore  float64
}

const (
	windowDuration = 60 * time.Second

	clarityFloor    = 25.0
	articulationCap = 95.0
)

// Hesitation sounds and hedge phrases not caught by exact lexicon lookup.
var fillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^u+m+$`),
	regexp.MustCompile(`^u+h+$`),
	regexp.MustCompile(`^e+r+m*$`),
	regexp.MustCompile(`^h+m+$`),
}

var vowelRuns = regexp.MustCompile(`[aeiouy]+`)

type timedWord struct {
	word     string
	isFiller bool
	at       time.Time
}

// Analyzer owns the rolling word window for one session. Not safe for
// concurrent use.
type Analyzer struct {
	words []timedWord
	now   func() time.Time
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{now: time.Now}
}

// Ingest records one finalized utterance and returns the metrics over the
// retained window. Interim transcripts must not be passed here.
func (a *Analyzer) Ingest(utterance string) Metrics {
	now := a.now()
	lang := lexicon.Detect(utterance)

	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(utterance)))
	for i, tok := range tokens {
		w := strings.Trim(tok, `.,!?;:"'()`)
		if w == "" {
			continue
		}
		a.words = append(a.words, timedWord{
			word:     w,
			isFiller: isFiller(lang, w, nextToken(tokens, i)),
			at:       now,
		})
	}

	a.prune(now)
	return a.metrics(now)
}

// Reset clears the rolling window; call at session start.
func (a *Analyzer) Reset() {
	a.words = nil
}

func (a *Analyzer) prune(now time.Time) {
	cutoff := now.Add(-windowDuration)
	keep := a.words[:0]
	for _, w := range a.words {
		if w.at.After(cutoff) {
			keep = append(keep, w)
		}
	}
	a.words = keep
}

func (a *Analyzer) metrics(now time.Time) Metrics {
	if len(a.words) == 0 {
		return Metrics{}
	}

	elapsed := now.Sub(a.words[0].at)
	if elapsed < time.Second {
		elapsed = time.Second
	}
	minutes := elapsed.Minutes()

	fillerCount := 0
	syllables := 0
	distinct := map[string]bool{}
	for _, w := range a.words {
		if w.isFiller {
			fillerCount++
		}
		syllables += countSyllables(w.word)
		distinct[w.word] = true
	}

	total := len(a.words)
	wpm := float64(total) / minutes
	fillerPct := float64(fillerCount) / float64(total) * 100

	pace := paceScore(wpm)
	clarity := clamp(100-2*fillerPct, clarityFloor, 100)
	diversity := float64(len(distinct)) / float64(total)

	// Articulation starts from a base and earns bounded credit for varied
	// vocabulary, a clean filler rate, and controlled pace. Capped short of
	// 100: perfect articulation is not a reachable state.
	articulation := 60.0
	articulation += clamp(diversity*40, 0, 15)
	articulation += clamp((100-fillerPct*4)/10, 0, 10)
	articulation += clamp(pace/10, 0, 10)
	articulation = clamp(articulation, 0, articulationCap)

	fluency := clamp(0.5*pace+0.5*clarity, 0, 100)

	return Metrics{
		WordsPerMinute:     wpm,
		SyllablesPerMinute: float64(syllables) / minutes,
		FillerCount:        fillerCount,
		FillerPercentage:   fillerPct,
		PaceScore:          pace,
		ClarityScore:       clarity,
		FluencyScore:       fluency,
		ArticulationScore:  articulation,
	}
}

// paceScore peaks inside the ideal delivery band and degrades symmetrically
// toward too-slow and too-fast extremes.
func paceScore(wpm float64) float64 {
	switch {
	case wpm >= thresholds.IdealWpmLow && wpm <= thresholds.IdealWpmHigh:
		return 100
	case wpm < thresholds.IdealWpmLow:
		if wpm <= 0 {
			return 0
		}
		deficit := thresholds.IdealWpmLow - wpm
		if wpm < thresholds.SlowWpm {
			return clamp(80-(thresholds.SlowWpm-wpm)*1.2, 0, 80)
		}
		return clamp(100-deficit, 0, 100)
	default:
		excess := wpm - thresholds.IdealWpmHigh
		if wpm > thresholds.FastWpm {
			return clamp(50-(wpm-thresholds.FastWpm)*0.5, 0, 50)
		}
		return clamp(100-excess, 50, 100)
	}
}

// =====================================================================================================================

func isFiller(lang lexicon.Language, word, next string) bool {
	if lexicon.IsFiller(lang, word) {
		return true
	}
	if lang != lexicon.English {
		return false
	}
	// Hedge phrase: "you know".
	if word == "you" && next == "know" {
		return true
	}
	for _, p := range fillerPatterns {
		if p.MatchString(word) {
			return true
		}
	}
	return false
}

func nextToken(tokens []string, i int) string {
	if i+1 < len(tokens) {
		return strings.Trim(tokens[i+1], `.,!?;:"'()`)
	}
	return ""
}

// countSyllables estimates syllables by counting vowel runs with a silent
// trailing-e correction; every word counts at least one.
func countSyllables(word string) int {
	n := len(vowelRuns.FindAllString(word, -1))
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && n > 1 {
		n--
	}
	if n < 1 {
		return 1
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
