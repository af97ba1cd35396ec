package utils

import "strings"

// SplitText splits a long string into chunks of approximately chunkSize
// characters with an overlap preserving context at boundaries. Chunks are
// cut at the last whitespace before the boundary when one is close, so
// words survive intact.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		slice := runes[i:end]
		if end < len(runes) {
			// Back up to a whitespace boundary if one is nearby.
			for j := len(slice) - 1; j > len(slice)-30 && j > 0; j-- {
				if slice[j] == ' ' || slice[j] == '\n' {
					slice = slice[:j]
					break
				}
			}
		}

		chunks = append(chunks, strings.TrimSpace(string(slice)))

		if end == len(runes) {
			break
		}
	}

	return chunks
}

// FirstLine returns the first non-empty line of text, used as a chunk
// title for documents without an outline.
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return "Untitled"
}
