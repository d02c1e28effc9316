// Package textstats splits response text into words, sentences and
// paragraphs for marker extraction.
package textstats

import (
	"regexp"
	"strings"
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Words splits text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// Sentences splits text on runs of '.', '!' and '?', discarding empty pieces.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceBoundary.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Paragraphs splits text on blank lines and markdown headings.
// Fenced code blocks are kept whole.
func Paragraphs(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var paras []string
	var current []string
	flush := func() {
		if t := strings.TrimSpace(strings.Join(current, "\n")); t != "" {
			paras = append(paras, t)
		}
		current = nil
	}

	inFence := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if inFence {
			current = append(current, line)
			continue
		}

		// Headings start a new paragraph
		if strings.HasPrefix(trimmed, "#") {
			flush()
		}
		if trimmed == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paras
}

// ParagraphBreaks counts the breaks between paragraphs.
func ParagraphBreaks(text string) int {
	n := len(Paragraphs(text))
	if n == 0 {
		return 0
	}
	return n - 1
}
