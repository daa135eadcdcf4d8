package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Char", "Accuracy", "Correct"}
	rows := [][]string{
		{"a", "97.50%", "12"},
		{"<space>", "8.00%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	width := displayWidth(lines[0])
	for i, line := range lines {
		if displayWidth(line) != width {
			t.Fatalf("line %d misaligned: %q", i, line)
		}
	}
}

func TestPadCellThai(t *testing.T) {
	// Five runes, four terminal cells: the vowel mark is combining.
	grade := "ดีมาก"
	if w := displayWidth(grade); w != 4 {
		t.Fatalf("expected display width 4, got %d", w)
	}
	padded := padCell(grade, 6, false)
	if padded != grade+"  " {
		t.Fatalf("unexpected padding: %q", padded)
	}
}
