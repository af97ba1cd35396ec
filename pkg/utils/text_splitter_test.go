package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("kurzer Text", 100, 20)
	assert.Equal(t, []string{"kurzer Text"}, chunks)

	chunks = SplitText("", 100, 20)
	assert.Equal(t, []string{""}, chunks)
}

func TestSplitTextCutsAtWhitespace(t *testing.T) {
	text := strings.Repeat("wort ", 100) // 500 runes
	chunks := SplitText(text, 120, 20)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		// The boundary backs up to a space, so no word is split.
		for _, w := range strings.Fields(c) {
			assert.Equal(t, "wort", w)
		}
		assert.LessOrEqual(t, len([]rune(c)), 120)
	}
}

func TestSplitTextOverlapPreservesContext(t *testing.T) {
	words := make([]string, 100)
	for i := range words {
		words[i] = fmt.Sprintf("w%02d", i)
	}
	text := strings.Join(words, " ") + " "

	chunks := SplitText(text, 40, 20)
	require.Greater(t, len(chunks), 1)

	// With a 20 rune overlap the second chunk restarts inside the first:
	// every word it opens with already appeared at the end of chunk one.
	assert.Equal(t, "w00", strings.Fields(chunks[0])[0])
	firstOfSecond := strings.Fields(chunks[1])[0]
	assert.Contains(t, chunks[0], firstOfSecond)
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"single line", "Kapitel Eins", "Kapitel Eins"},
		{"leading blank lines", "\n\n  Einleitung  \nMehr Text", "Einleitung"},
		{"empty", "", "Untitled"},
		{"only whitespace", "  \n\t\n", "Untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstLine(tt.text))
		})
	}
}
