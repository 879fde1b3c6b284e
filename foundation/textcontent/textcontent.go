// Package textcontent analyzes an accumulating transcript for lexical
// keywords (TF-IDF), inter-sentence coherence, lexicon-based sentiment with
// negation handling, named entities, vocabulary richness, and readability.
package textcontent

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/persona-ai/goPersonaCoach/foundation/lexicon"
)

// Keyword is one ranked transcript term.
type Keyword struct {
	Word  string
	Score float64
}

// Metrics is the analyzer output for one transcript snapshot.
type Metrics struct {
	Keywords           []Keyword
	CoherenceScore     float64
	SentimentScore     float64
	SentimentLabel     string
	NamedEntities      []string
	VocabularyRichness float64
	ReadabilityScore   float64
	EngagementScore    float64
}

const (
	minTranscriptLen = 10
	maxDocHistory    = 20
	topKeywords      = 5

	// Coherence special case: a transcript with a single sentence has no
	// pairs to compare and is reported as moderately coherent.
	singleSentenceCoherence = 70.0

	sentimentPositiveCut = 15.0
	sentimentNegativeCut = -15.0
	negationWindow       = 3
	negationDampen       = -0.75

	idealSentenceLength = 17.5
	idealWordLength     = 5.0
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?।]+`)
	tokenStrip    = regexp.MustCompile(`[^\p{L}\p{N}'-]+`)
	numericOnly   = regexp.MustCompile(`^[0-9]+$`)

	multiWordEntity  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	singleWordEntity = regexp.MustCompile(`\b[A-Z][a-z]{2,}\b`)

	// Capitalized words that are ordinary sentence openers, not entities.
	entityExclusions = map[string]bool{
		"The": true, "This": true, "That": true, "These": true, "Those": true,
		"And": true, "But": true, "However": true, "Also": true, "Then": true,
		"When": true, "Where": true, "What": true, "Which": true, "While": true,
		"First": true, "Second": true, "Next": true, "Finally": true,
		"Yes": true, "Okay": true, "Well": true, "Now": true, "Here": true,
	}
)

// Analyzer owns the bounded document history used for inverse-document
// frequency. Not safe for concurrent use; one per session.
type Analyzer struct {
	docHistory [][]string
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze computes content metrics for the transcript snapshot and records
// its tokens in the document history. Transcripts shorter than the minimum
// yield neutral defaults.
func (a *Analyzer) Analyze(transcript string) Metrics {
	transcript = strings.TrimSpace(transcript)
	if len(transcript) < minTranscriptLen {
		return Metrics{SentimentLabel: "neutral"}
	}

	lang := lexicon.Detect(transcript)
	tokens := tokenize(lang, transcript)
	sentences := splitSentences(transcript)

	keywords := a.rankKeywords(tokens)

	a.docHistory = append(a.docHistory, tokens)
	if len(a.docHistory) > maxDocHistory {
		a.docHistory = a.docHistory[len(a.docHistory)-maxDocHistory:]
	}

	sentiment := sentimentScore(transcript)
	coherence := coherenceScore(lang, sentences)
	richness := vocabularyRichness(tokens)
	readability := readabilityScore(sentences)

	m := Metrics{
		Keywords:           keywords,
		CoherenceScore:     coherence,
		SentimentScore:     sentiment,
		SentimentLabel:     sentimentLabel(sentiment),
		NamedEntities:      namedEntities(transcript),
		VocabularyRichness: richness,
		ReadabilityScore:   readability,
	}
	m.EngagementScore = clamp(0.35*coherence+0.35*richness+0.3*readability, 0, 100)
	return m
}

// Reset discards the document history and IDF state.
func (a *Analyzer) Reset() {
	a.docHistory = nil
}

// =====================================================================================================================
// Tokenization

func tokenize(lang lexicon.Language, text string) []string {
	raw := tokenStrip.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, "'-")
		if len([]rune(t)) <= 2 {
			continue
		}
		if numericOnly.MatchString(t) || lexicon.IsStopword(lang, t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// =====================================================================================================================
// TF-IDF keywords

func (a *Analyzer) rankKeywords(tokens []string) []Keyword {
	if len(tokens) == 0 {
		return nil
	}

	tf := map[string]float64{}
	for _, t := range tokens {
		tf[t]++
	}
	for t := range tf {
		tf[t] /= float64(len(tokens))
	}

	n := float64(len(a.docHistory))
	ranked := make([]Keyword, 0, len(tf))
	for term, f := range tf {
		df := 0.0
		for _, doc := range a.docHistory {
			for _, w := range doc {
				if w == term {
					df++
					break
				}
			}
		}
		idf := math.Log((n+1)/(df+1)) + 1
		ranked = append(ranked, Keyword{Word: term, Score: f * idf})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Word < ranked[j].Word
	})
	if len(ranked) > topKeywords {
		ranked = ranked[:topKeywords]
	}
	return ranked
}

// =====================================================================================================================
// Coherence

// coherenceScore averages token-set cosine similarity across consecutive
// sentence pairs, then maps the average through a non-linear curve matching
// how coherent the text feels rather than raw overlap.
func coherenceScore(lang lexicon.Language, sentences []string) float64 {
	if len(sentences) <= 1 {
		return singleSentenceCoherence
	}

	sets := make([]map[string]bool, len(sentences))
	for i, s := range sentences {
		set := map[string]bool{}
		for _, t := range tokenize(lang, s) {
			set[t] = true
		}
		sets[i] = set
	}

	var total float64
	pairs := 0
	for i := 1; i < len(sets); i++ {
		total += cosineSimilarity(sets[i-1], sets[i])
		pairs++
	}
	avg := total / float64(pairs)

	switch {
	case avg < 0.1:
		return 25 + avg*250 // 25..50
	case avg < 0.3:
		return 50 + (avg-0.1)*125 // 50..75
	default:
		return math.Min(95, 75+(avg-0.3)*28.5) // 75..95
	}
}

func cosineSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for t := range a {
		if b[t] {
			common++
		}
	}
	return float64(common) / math.Sqrt(float64(len(a)*len(b)))
}

// =====================================================================================================================
// Sentiment

// sentimentScore walks the words accumulating signed lexicon magnitudes.
// Intensity modifiers scale the following sentiment word; a negation opens a
// 3-word window in which sentiment words are inverted and dampened.
func sentimentScore(text string) float64 {
	words := strings.Fields(strings.ToLower(text))

	var score float64
	multiplier := 1.0
	negated := 0

	for _, raw := range words {
		w := strings.Trim(raw, `.,!?;:"'()`)
		if w == "" {
			continue
		}

		if m, ok := lexicon.ModifierOf(w); ok {
			if lexicon.IsNegation(w) {
				negated = negationWindow
				multiplier = 1.0
			} else {
				multiplier *= m
			}
			continue
		}

		p := lexicon.PolarityOf(w)
		if p != 0 {
			v := p * multiplier
			if negated > 0 {
				v *= negationDampen
			}
			score += v
			multiplier = 1.0
		}
		if negated > 0 {
			negated--
		}
	}

	return clamp(score*3, -100, 100)
}

func sentimentLabel(score float64) string {
	switch {
	case score > sentimentPositiveCut:
		return "positive"
	case score < sentimentNegativeCut:
		return "negative"
	default:
		return "neutral"
	}
}

// =====================================================================================================================
// Entities, richness, readability

func namedEntities(text string) []string {
	seen := map[string]bool{}
	var entities []string

	for _, m := range multiWordEntity.FindAllString(text, -1) {
		if !seen[m] {
			seen[m] = true
			entities = append(entities, m)
		}
	}

	sentences := splitSentences(text)
	for _, s := range sentences {
		words := strings.Fields(s)
		for i, w := range words {
			w = strings.Trim(w, `.,!?;:"'()`)
			if i == 0 || !singleWordEntity.MatchString(w) || entityExclusions[w] {
				continue
			}
			if w != singleWordEntity.FindString(w) {
				continue
			}
			if !seen[w] {
				seen[w] = true
				entities = append(entities, w)
			}
		}
	}
	return entities
}

func vocabularyRichness(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	distinct := map[string]bool{}
	for _, t := range tokens {
		distinct[t] = true
	}
	ratio := float64(len(distinct)) / float64(len(tokens))
	return clamp(ratio*150, 0, 100)
}

// readabilityScore scores distance from the ideal spoken sentence and word
// lengths, weighted toward sentence structure.
func readabilityScore(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}

	totalWords := 0
	totalChars := 0
	for _, s := range sentences {
		words := strings.Fields(s)
		totalWords += len(words)
		for _, w := range words {
			totalChars += len([]rune(w))
		}
	}
	if totalWords == 0 {
		return 0
	}

	avgSentence := float64(totalWords) / float64(len(sentences))
	avgWord := float64(totalChars) / float64(totalWords)

	sentenceScore := clamp(100-math.Abs(avgSentence-idealSentenceLength)*4, 0, 100)
	wordScore := clamp(100-math.Abs(avgWord-idealWordLength)*15, 0, 100)

	return clamp(0.6*sentenceScore+0.4*wordScore, 0, 100)
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
