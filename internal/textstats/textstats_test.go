package textstats

import (
	"strings"
	"testing"
)

func TestWords_Empty(t *testing.T) {
	if got := Words("   \n\t "); len(got) != 0 {
		t.Errorf("expected no words, got %v", got)
	}
}

func TestSentences_SplitsOnRuns(t *testing.T) {
	got := Sentences("Hello there... How are you?! Fine.")
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %q", len(got), got)
	}
	if got[1] != "How are you" {
		t.Errorf("expected 'How are you', got %q", got[1])
	}
}

func TestSentences_NoTerminator(t *testing.T) {
	got := Sentences("no punctuation here")
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(got))
	}
}

func TestSentences_OnlyPunctuation(t *testing.T) {
	if got := Sentences("?!..."); len(got) != 0 {
		t.Errorf("expected no sentences, got %q", got)
	}
}

func TestParagraphs_EmptyInput(t *testing.T) {
	if result := Paragraphs(""); result != nil {
		t.Errorf("expected nil, got %v", result)
	}
}

func TestParagraphs_SingleBlock(t *testing.T) {
	text := "One line.\nAnother line."
	result := Paragraphs(text)
	if len(result) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(result))
	}
	if result[0] != text {
		t.Errorf("expected %q, got %q", text, result[0])
	}
}

func TestParagraphs_SplitsOnBlankLines(t *testing.T) {
	text := "First paragraph.\n\nSecond paragraph.\n\n\nThird paragraph."
	result := Paragraphs(text)
	if len(result) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(result))
	}
	if !strings.Contains(result[2], "Third") {
		t.Errorf("expected third paragraph, got %q", result[2])
	}
	if ParagraphBreaks(text) != 2 {
		t.Errorf("expected 2 breaks, got %d", ParagraphBreaks(text))
	}
}

func TestParagraphs_SplitsOnHeadings(t *testing.T) {
	text := "Intro text\n# Heading\nBody"
	result := Paragraphs(text)
	if len(result) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(result))
	}
	if !strings.HasPrefix(result[1], "# Heading") {
		t.Errorf("second paragraph should start with heading, got %q", result[1])
	}
}

func TestParagraphs_KeepsCodeFenceWhole(t *testing.T) {
	text := "Look:\n\n```go\nfunc a() {}\n\nfunc b() {}\n```\n\nDone."
	result := Paragraphs(text)
	if len(result) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %q", len(result), result)
	}
	if !strings.Contains(result[1], "func b") {
		t.Errorf("fenced block was split: %q", result[1])
	}
}
