package sentiment

import (
	"strings"

	"moodlog/internal/entity"
)

// Glyphs displayed next to each sentiment category.
const (
	GlyphPositive = "😊"
	GlyphNeutral  = "😐"
	GlyphNegative = "😔"
)

// Classification thresholds applied to the polarity score. Scores exactly on
// a boundary classify as Neutral.
const (
	positiveThreshold = 0.15
	negativeThreshold = -0.15
)

// Classify maps free text to a sentiment category and its display glyph.
// It never fails: text without any scored word (including empty or
// whitespace-only input) is Neutral.
func Classify(text string) (string, string) {
	category := categoryFor(Score(text))
	return category, GlyphFor(category)
}

func categoryFor(score float64) string {
	switch {
	case score > positiveThreshold:
		return entity.SentimentPositive
	case score < negativeThreshold:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}

// GlyphFor returns the display glyph for a stored category.
func GlyphFor(category string) string {
	switch category {
	case entity.SentimentPositive:
		return GlyphPositive
	case entity.SentimentNegative:
		return GlyphNegative
	default:
		return GlyphNeutral
	}
}

// Score computes a polarity score in [-1, 1] for the text using the valence
// lexicon. Each scored token contributes its valence (in [-5, 5]); a negator
// directly before a token inverts it. The total is normalised by the number
// of scored tokens so that single strong words still land past the
// classification thresholds.
func Score(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var total float64
	var scored int
	negated := false

	for _, token := range tokens {
		if _, ok := negators[token]; ok {
			negated = true
			continue
		}
		valence, ok := lexicon[token]
		if !ok {
			negated = false
			continue
		}
		if negated {
			valence = -valence
			negated = false
		}
		total += valence
		scored++
	}

	if scored == 0 {
		return 0
	}

	score := total / (maxValence * float64(scored))
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}

func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r == '\'':
			return false
		default:
			return true
		}
	})
}
