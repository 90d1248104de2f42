package applywizard

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestReviewShowsCollectedValues(t *testing.T) {
	t.Parallel()

	s := NewReviewStep("Anita Desai", "anita@example.com", "Ramesh Kumar", "Transfer of a 2019 hatchback")
	out := s.View()

	assert.Contains(t, out, "Anita Desai")
	assert.Contains(t, out, "anita@example.com")
	assert.Contains(t, out, "Ramesh Kumar")
	assert.Contains(t, out, "Transfer of a 2019 hatchback")
	assert.NotContains(t, out, "...")
}

func TestReviewTruncatesLongDetailsOnRunes(t *testing.T) {
	t.Parallel()

	// 250 multi-byte runes; a byte-boundary cut would split one
	details := strings.Repeat("नमस्ते", 50)
	s := NewReviewStep("Anita Desai", "anita@example.com", "Ramesh Kumar", details)
	out := s.View()

	assert.True(t, utf8.ValidString(out), "truncation must not split a rune")
	assert.Contains(t, out, "...")
}
