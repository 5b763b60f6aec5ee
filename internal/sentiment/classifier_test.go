package sentiment

import (
	"testing"

	"moodlog/internal/entity"
)

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		glyph    string
	}{
		{
			name:     "positive text",
			text:     "I love this!",
			expected: entity.SentimentPositive,
			glyph:    GlyphPositive,
		},
		{
			name:     "neutral text",
			text:     "It is what it is.",
			expected: entity.SentimentNeutral,
			glyph:    GlyphNeutral,
		},
		{
			name:     "negative text",
			text:     "This is terrible.",
			expected: entity.SentimentNegative,
			glyph:    GlyphNegative,
		},
		{
			name:     "empty text",
			text:     "",
			expected: entity.SentimentNeutral,
			glyph:    GlyphNeutral,
		},
		{
			name:     "whitespace only",
			text:     "   \t\n ",
			expected: entity.SentimentNeutral,
			glyph:    GlyphNeutral,
		},
		{
			name:     "negated positive",
			text:     "I am not happy about today",
			expected: entity.SentimentNegative,
			glyph:    GlyphNegative,
		},
		{
			name:     "untrimmed input",
			text:     "  wonderful day  ",
			expected: entity.SentimentPositive,
			glyph:    GlyphPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, glyph := Classify(tt.text)
			if category != tt.expected {
				t.Errorf("expected category %s, got %s", tt.expected, category)
			}
			if glyph != tt.glyph {
				t.Errorf("expected glyph %s, got %s", tt.glyph, glyph)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "strongly positive", text: "ecstatic overjoyed amazing wonderful"},
		{name: "strongly negative", text: "devastated miserable hopeless nightmare"},
		{name: "mixed", text: "good day but terrible night"},
		{name: "unknown words", text: "lorem ipsum dolor sit amet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(tt.text)
			if score < -1 || score > 1 {
				t.Errorf("score %f out of range [-1, 1]", score)
			}
		})
	}
}

func TestThresholdBoundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{score: 0.151, expected: entity.SentimentPositive},
		{score: 0.15, expected: entity.SentimentNeutral},
		{score: 0, expected: entity.SentimentNeutral},
		{score: -0.15, expected: entity.SentimentNeutral},
		{score: -0.151, expected: entity.SentimentNegative},
		{score: 1, expected: entity.SentimentPositive},
		{score: -1, expected: entity.SentimentNegative},
	}

	for _, tt := range tests {
		if got := categoryFor(tt.score); got != tt.expected {
			t.Errorf("score %f: expected %s, got %s", tt.score, tt.expected, got)
		}
	}
}

func TestScoreNeutralWithoutSignal(t *testing.T) {
	if score := Score(""); score != 0 {
		t.Errorf("expected zero score for empty text, got %f", score)
	}
	if score := Score("the quick brown fox"); score != 0 {
		t.Errorf("expected zero score without lexicon hits, got %f", score)
	}
}
