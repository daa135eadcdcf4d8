package scoring

import (
	"testing"

	"github.com/siriwatk/sornpim/internal/model"
)

func TestWPMZeroTime(t *testing.T) {
	if got := WPM(50, 50, 0, 0, model.LangThai); got != 0 {
		t.Fatalf("expected 0 WPM for zero time (th), got %d", got)
	}
	if got := WPM(50, 50, 0, 0, model.LangEnglish); got != 0 {
		t.Fatalf("expected 0 WPM for zero time (en), got %d", got)
	}
	if got := WPM(50, 50, 0, -3, model.LangEnglish); got != 0 {
		t.Fatalf("expected 0 WPM for negative time, got %d", got)
	}
}

func TestWPMLatin(t *testing.T) {
	// 100 correct chars in 60s: 100/5 = 20 words per minute.
	if got := WPM(100, 100, 0, 60, model.LangEnglish); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	// Errors do not change the Latin formula; only correct chars count.
	if got := WPM(100, 120, 20, 60, model.LangEnglish); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
}

func TestWPMThai(t *testing.T) {
	// 120 typed chars, 1 error in 60s: 120/4 - 10 = 20 net units.
	if got := WPM(119, 120, 1, 60, model.LangThai); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	// Heavy error penalty floors at zero, never negative.
	if got := WPM(10, 40, 5, 60, model.LangThai); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestAccuracyBounds(t *testing.T) {
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 for no input, got %d", got)
	}
	for correct := 0; correct <= 50; correct += 10 {
		got := Accuracy(correct, 50)
		if got < 0 || got > 100 {
			t.Fatalf("accuracy out of bounds: %d", got)
		}
	}
	if got := Accuracy(50, 50); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := Accuracy(1, 3); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
}

func TestEvaluateFirstMatchWins(t *testing.T) {
	criteria := []model.ScoringCriterion{
		{MinWPM: 20, MaxErrors: 1, MinAccuracy: 95, Grade: "ยอดเยี่ยม!", Score: 10},
		{MinWPM: 18, MaxErrors: 2, MinAccuracy: 90, Grade: "ดีมาก", Score: 9},
		{MinWPM: 16, MaxErrors: 3, MinAccuracy: 85, Grade: "ดี", Score: 8},
	}
	grade, score := Evaluate(21, 96, 1, criteria)
	if grade != "ยอดเยี่ยม!" || score != 10 {
		t.Fatalf("expected top row, got %q/%d", grade, score)
	}
	// Accuracy below the top row's floor drops to the next row.
	grade, score = Evaluate(21, 92, 1, criteria)
	if grade != "ดีมาก" || score != 9 {
		t.Fatalf("expected second row, got %q/%d", grade, score)
	}
	grade, score = Evaluate(5, 50, 9, criteria)
	if grade != FallbackGrade || score != 0 {
		t.Fatalf("expected fallback, got %q/%d", grade, score)
	}
}

func TestEvaluateSynthesizesGradeLabel(t *testing.T) {
	criteria := []model.ScoringCriterion{{MinWPM: 0, MaxErrors: 99, Score: 7}}
	grade, score := Evaluate(10, 80, 2, criteria)
	if grade != "7 คะแนน" || score != 7 {
		t.Fatalf("expected synthesized label, got %q/%d", grade, score)
	}
}

func TestDefaultCriteriaShapes(t *testing.T) {
	timed := DefaultCriteria(true)
	if len(timed) != 11 {
		t.Fatalf("expected 11 timed rows, got %d", len(timed))
	}
	if timed[0].MinWPM != 20 || timed[0].Score != 10 || timed[10].MinWPM != 0 || timed[10].Score != 0 {
		t.Fatalf("unexpected timed table edges: %+v %+v", timed[0], timed[10])
	}
	untimed := DefaultCriteria(false)
	if len(untimed) != 11 {
		t.Fatalf("expected 11 untimed rows, got %d", len(untimed))
	}
	if untimed[0].MaxErrors != 0 || untimed[0].Score != 10 || untimed[10].MaxErrors != 10 || untimed[10].Score != 0 {
		t.Fatalf("unexpected untimed table edges: %+v %+v", untimed[0], untimed[10])
	}
}

func TestDefaultTimedCriteriaIgnoreErrors(t *testing.T) {
	// Timed tables grade on speed alone; errors already lower Thai WPM.
	grade, score := Evaluate(20, 90, 3, DefaultCriteria(true))
	if score != 10 {
		t.Fatalf("expected top score despite errors, got %q/%d", grade, score)
	}
}

func TestGradingMonotonicWPM(t *testing.T) {
	criteria := DefaultCriteria(true)
	prev := -1
	for wpm := 0; wpm <= 30; wpm++ {
		_, score := Evaluate(wpm, 100, 0, criteria)
		if score < prev {
			t.Fatalf("score decreased at wpm %d: %d < %d", wpm, score, prev)
		}
		prev = score
	}
}
