package textcontent_test

import (
	"testing"

	"github.com/persona-ai/goPersonaCoach/foundation/textcontent"
)

func TestShortTranscript(t *testing.T) {
	a := textcontent.NewAnalyzer()

	m := a.Analyze("hi")
	if m.SentimentLabel != "neutral" {
		t.Fatalf("short transcript label = %q, want neutral", m.SentimentLabel)
	}
	if m.CoherenceScore != 0 || len(m.Keywords) != 0 {
		t.Fatalf("short transcript should yield defaults, got %+v", m)
	}
}

func TestKeywords(t *testing.T) {
	a := textcontent.NewAnalyzer()

	m := a.Analyze("growth is our focus this quarter growth in users growth in revenue growth in retention growth everywhere")
	if len(m.Keywords) == 0 {
		t.Fatal("expected ranked keywords")
	}
	if m.Keywords[0].Word != "growth" {
		t.Fatalf("top keyword = %q, want growth", m.Keywords[0].Word)
	}
	if len(m.Keywords) > 5 {
		t.Fatalf("keyword list length = %d, want <= 5", len(m.Keywords))
	}
}

func TestCoherence(t *testing.T) {
	t.Run("single sentence", func(t *testing.T) {
		a := textcontent.NewAnalyzer()
		m := a.Analyze("The roadmap covers the next two quarters")
		if m.CoherenceScore != 70 {
			t.Fatalf("single-sentence coherence = %.1f, want 70", m.CoherenceScore)
		}
	})

	t.Run("overlapping beats disjoint", func(t *testing.T) {
		overlapping := textcontent.NewAnalyzer().
			Analyze("The project timeline looks solid. The project timeline needs review.")
		disjoint := textcontent.NewAnalyzer().
			Analyze("Bananas ripen quickly. Quantum computing fascinates researchers.")

		if disjoint.CoherenceScore != 25 {
			t.Fatalf("disjoint coherence = %.1f, want 25", disjoint.CoherenceScore)
		}
		if overlapping.CoherenceScore <= disjoint.CoherenceScore {
			t.Fatalf("overlapping %.1f should beat disjoint %.1f",
				overlapping.CoherenceScore, disjoint.CoherenceScore)
		}
	})
}

func TestSentiment(t *testing.T) {
	a := textcontent.NewAnalyzer()

	t.Run("positive", func(t *testing.T) {
		m := a.Analyze("the demo was absolutely excellent and very impressive")
		if m.SentimentLabel != "positive" {
			t.Fatalf("label = %q (score %.1f), want positive", m.SentimentLabel, m.SentimentScore)
		}
	})

	t.Run("negative", func(t *testing.T) {
		m := a.Analyze("the launch was a terrible awful disaster")
		if m.SentimentLabel != "negative" {
			t.Fatalf("label = %q (score %.1f), want negative", m.SentimentLabel, m.SentimentScore)
		}
	})

	t.Run("negation inverts", func(t *testing.T) {
		plain := a.Analyze("the outcome was good overall this time").SentimentScore
		negated := a.Analyze("this is not good at all for the team").SentimentScore

		if negated >= 0 {
			t.Fatalf("negated sentiment = %.1f, want < 0", negated)
		}
		if negated >= plain {
			t.Fatalf("negated %.1f should score below plain %.1f", negated, plain)
		}
	})
}

func TestNamedEntities(t *testing.T) {
	a := textcontent.NewAnalyzer()

	m := a.Analyze("We met Priya Sharma at the Google office in Hyderabad yesterday")

	want := []string{"Priya Sharma", "Google", "Hyderabad"}
	for _, w := range want {
		if !contains(m.NamedEntities, w) {
			t.Fatalf("entities %v missing %q", m.NamedEntities, w)
		}
	}
	if contains(m.NamedEntities, "The") || contains(m.NamedEntities, "We") {
		t.Fatalf("entities %v include a sentence opener", m.NamedEntities)
	}
}

func TestVocabularyRichness(t *testing.T) {
	varied := textcontent.NewAnalyzer().
		Analyze("customer adoption accelerated across enterprise healthcare retail logistics segments").VocabularyRichness
	repetitive := textcontent.NewAnalyzer().
		Analyze("plan plan plan plan plan plan plan plan plan plan").VocabularyRichness

	if varied <= repetitive {
		t.Fatalf("varied richness %.1f should beat repetitive %.1f", varied, repetitive)
	}
}

func TestMetricRanges(t *testing.T) {
	a := textcontent.NewAnalyzer()

	transcripts := []string{
		"The pilot went well. Most teams adopted the workflow within a week. Feedback was largely positive.",
		"um so basically we kind of maybe tried some stuff and it sort of worked",
		"बाजार में प्रतिस्पर्धा बढ़ रही है। हमें अपनी रणनीति बदलनी होगी।",
	}

	for _, tr := range transcripts {
		m := a.Analyze(tr)
		for name, v := range map[string]float64{
			"coherence":   m.CoherenceScore,
			"richness":    m.VocabularyRichness,
			"readability": m.ReadabilityScore,
			"engagement":  m.EngagementScore,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("%s = %.1f out of range for %q", name, v, tr)
			}
		}
		if m.SentimentScore < -100 || m.SentimentScore > 100 {
			t.Fatalf("sentiment = %.1f out of range", m.SentimentScore)
		}
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
