// Package lexicon holds the language-tagged word tables shared by the speech
// and content analyzers: filler words, stopwords, and the sentiment lexicon,
// plus Unicode script-range language detection.
package lexicon

import "unicode"

// Language tags the three supported lexicon sets.
type Language int

const (
	English Language = iota
	Hindi
	Telugu
)

func (l Language) String() string {
	switch l {
	case Hindi:
		return "hindi"
	case Telugu:
		return "telugu"
	}
	return "english"
}

// Detect picks the language from the scripts present in the text. The first
// Devanagari or Telugu rune decides; otherwise Latin text is English.
func Detect(text string) Language {
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			return Hindi
		}
		if unicode.Is(unicode.Telugu, r) {
			return Telugu
		}
	}
	return English
}

// =====================================================================================================================
// Filler words

var fillers = map[Language]map[string]bool{
	English: toSet("um", "uh", "er", "ah", "like", "hmm", "mhm", "erm",
		"actually", "basically", "literally", "okay", "right", "well", "so",
		"anyway", "whatever", "totally", "seriously"),
	Hindi: toSet("मतलब", "वो", "अच्छा", "हाँ", "तो", "बस", "यानी", "ऐसे",
		"क्या", "अरे", "हम्म"),
	Telugu: toSet("అంటే", "మరి", "అదే", "సరే", "ఇంకా", "అలా", "ఏంటి",
		"హా", "ఊ"),
}

// IsFiller reports whether the exact word is a filler in the given language.
func IsFiller(lang Language, word string) bool {
	return fillers[lang][word]
}

// =====================================================================================================================
// Stopwords

var stopwords = map[Language]map[string]bool{
	English: toSet("the", "a", "an", "and", "or", "but", "if", "then", "else",
		"when", "at", "by", "for", "with", "about", "against", "between",
		"into", "through", "during", "before", "after", "above", "below",
		"to", "from", "up", "down", "in", "out", "on", "off", "over", "under",
		"again", "further", "once", "here", "there", "all", "any", "both",
		"each", "few", "more", "most", "other", "some", "such", "not", "only",
		"own", "same", "than", "too", "very", "can", "will", "just", "should",
		"now", "this", "that", "these", "those", "was", "were", "are", "is",
		"be", "been", "being", "have", "has", "had", "having", "does", "did",
		"doing", "would", "could", "ought", "you", "your", "yours", "she",
		"her", "his", "him", "they", "them", "their", "what", "which", "who",
		"whom", "its", "our", "ours", "it's", "don't", "didn't", "won't"),
	Hindi: toSet("का", "के", "की", "है", "हैं", "में", "से", "को", "पर",
		"और", "यह", "वह", "एक", "ने", "कि", "भी", "नहीं", "हो", "था", "थी"),
	Telugu: toSet("మరియు", "ఒక", "ఆ", "ఈ", "కి", "లో", "నుండి", "కూడా",
		"కాదు", "ఉంది", "అది", "ఇది"),
}

// IsStopword reports whether the word should be dropped during tokenization.
func IsStopword(lang Language, word string) bool {
	return stopwords[lang][word]
}

// =====================================================================================================================
// Sentiment lexicon (polarity words and intensity modifiers)

// Polarity maps sentiment-bearing words to a signed magnitude.
var polarity = map[string]float64{
	"amazing": 3, "awesome": 3, "excellent": 3, "fantastic": 3,
	"outstanding": 3, "wonderful": 3, "brilliant": 3, "perfect": 3,
	"great": 2.5, "love": 2.5, "impressive": 2.5, "delighted": 2.5,
	"good": 2, "happy": 2, "glad": 2, "nice": 2, "positive": 2,
	"confident": 2, "excited": 2, "success": 2, "successful": 2,
	"improve": 1.5, "improved": 1.5, "helpful": 1.5, "strong": 1.5,
	"better": 1.5, "growth": 1.5, "opportunity": 1.5, "win": 1.5,
	"fine": 1, "okay": 1, "interesting": 1, "useful": 1,
	"bad": -2, "poor": -2, "sad": -2, "unhappy": -2, "negative": -2,
	"problem": -1.5, "difficult": -1.5, "hard": -1, "weak": -1.5,
	"worse": -2, "fail": -2, "failed": -2, "failure": -2.5, "wrong": -1.5,
	"terrible": -3, "horrible": -3, "awful": -3, "worst": -3,
	"hate": -2.5, "disaster": -3, "useless": -2.5, "broken": -1.5,
	"worried": -1.5, "nervous": -1.5, "afraid": -2, "angry": -2,
}

// Modifier maps intensity words to a multiplier. Negations carry a negative
// multiplier and additionally open a 3-word negation window.
var modifiers = map[string]float64{
	"very": 1.5, "really": 1.5, "extremely": 2, "incredibly": 2,
	"absolutely": 1.8, "totally": 1.5, "quite": 1.2, "so": 1.3,
	"highly": 1.5, "truly": 1.4,
	"slightly": 0.5, "somewhat": 0.7, "barely": 0.4, "hardly": 0.4,
	"not": -0.75, "never": -0.75, "no": -0.75, "nothing": -0.75,
	"neither": -0.75, "nor": -0.75, "cannot": -0.75, "can't": -0.75,
	"don't": -0.75, "doesn't": -0.75, "isn't": -0.75, "wasn't": -0.75,
	"won't": -0.75, "didn't": -0.75,
}

// PolarityOf returns the signed sentiment magnitude for a word, 0 when the
// word carries none.
func PolarityOf(word string) float64 {
	return polarity[word]
}

// ModifierOf returns the intensity multiplier for a word and whether the word
// is a modifier at all. A negative multiplier marks a negation.
func ModifierOf(word string) (float64, bool) {
	m, ok := modifiers[word]
	return m, ok
}

// IsNegation reports whether the word inverts subsequent sentiment.
func IsNegation(word string) bool {
	m, ok := modifiers[word]
	return ok && m < 0
}

func toSet(words ...string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}
