package preprocess

import (
	"regexp"
	"strings"
)

var (
	emailPattern          = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	ibanPattern           = regexp.MustCompile(`\b[A-Z]{2}\d{2}(?:\s?[A-Z0-9]{4}){3,7}(?:\s?[A-Z0-9]{1,4})?\b`)
	phonePattern          = regexp.MustCompile(`\+\d{1,3}\s?\d{2,3}\s?\d{3,6}[-\s]?\d{0,4}`)
	trailingDigitsPattern = regexp.MustCompile(`\[TELEFONNUMMER ENTFERNT\]\s*\d+`)
	strayHyphenPattern    = regexp.MustCompile(`(^|[^\p{L}\p{N}])-|-($|[^\p{L}\p{N}])`)
	nonAlphaPattern       = regexp.MustCompile(`[^a-zA-ZäöüÄÖÜß\s-]`)
	whitespacePattern     = regexp.MustCompile(`\s+`)
)

// TextPreprocessor normalizes query and document text before embedding and
// keyword matching: redaction, lowercasing, stop-word removal. Lemmatization
// is intentionally absent; stop-word lists carry inflected forms instead.
type TextPreprocessor struct {
	stopWords map[string]struct{}
}

// NewTextPreprocessor builds a preprocessor for the given language
// ("de" or "en"); unknown languages get the German list.
func NewTextPreprocessor(language string) *TextPreprocessor {
	words := germanStopWords
	if language == "en" {
		words = englishStopWords
	}

	stopWords := make(map[string]struct{}, len(words))
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
	return &TextPreprocessor{stopWords: stopWords}
}

// DeleteSensitiveData replaces email addresses, IBANs and phone numbers
// with redaction markers. Applied to both inbound queries and stored chunk
// text.
func (p *TextPreprocessor) DeleteSensitiveData(text string) string {
	text = emailPattern.ReplaceAllString(text, "[EMAIL ENTFERNT]")
	text = ibanPattern.ReplaceAllString(text, "[IBAN ENTFERNT]")
	text = phonePattern.ReplaceAllString(text, "[TELEFONNUMMER ENTFERNT]")
	text = trailingDigitsPattern.ReplaceAllString(text, "[TELEFONNUMMER ENTFERNT]")
	return text
}

// Preprocess normalizes text into lowercase tokens, optionally removing
// stop words.
func (p *TextPreprocessor) Preprocess(text string, removeStopWords bool) []string {
	text = strayHyphenPattern.ReplaceAllString(text, "$1$2")
	text = nonAlphaPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	fields := strings.Fields(strings.ToLower(text))
	if !removeStopWords {
		return fields
	}

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, isStop := p.stopWords[f]; isStop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Process combines redaction and preprocessing; this is the form queries
// take before the knowledge-match gate and the embedding call.
func (p *TextPreprocessor) Process(text string) []string {
	return p.Preprocess(p.DeleteSensitiveData(text), true)
}
