package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != pendingStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined pending style for cursor rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	target := []rune("ab")
	input := []rune("ax")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for mistyped rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	target := []rune("one two")
	input := []rune("o")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[1].s != currentWordStyle.Render("n") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	target := []rune("a b")
	input := []rune("ax")

	runes := buildStyledRunes(target, input, len(input))
	if runes[1].s != incorrectStyle.Render("·") {
		t.Fatalf("expected dot marker for wrong space")
	}
}

func TestBuildStyledRunesThaiZeroWidthMarks(t *testing.T) {
	// สี has a combining vowel that renders in the same cell.
	target := []rune("สี")
	runes := buildStyledRunes(target, nil, 0)
	if runes[0].width != 1 {
		t.Fatalf("expected width 1 for base consonant, got %d", runes[0].width)
	}
	if runes[1].width != 0 {
		t.Fatalf("expected zero width for combining vowel, got %d", runes[1].width)
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	target := []rune("aaa bbb")
	runes := buildStyledRunes(target, nil, -1)
	wrapped := wrapStyledRunes(runes, 5)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), wrapped)
	}
}

func TestWrapStyledRunesNoWidthPassthrough(t *testing.T) {
	target := []rune("abc")
	runes := buildStyledRunes(target, nil, -1)
	if wrapStyledRunes(runes, 0) != renderStyledRunes(runes) {
		t.Fatalf("expected passthrough when width is zero")
	}
}
