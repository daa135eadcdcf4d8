package keyboard

import (
	"testing"

	"github.com/siriwatk/sornpim/internal/model"
)

func TestResolveLowercaseLatin(t *testing.T) {
	g := Resolve("hello", "he", true, false)
	if g.Char != "l" {
		t.Fatalf("expected next char l, got %q", g.Char)
	}
	if len(g.Keys) != 1 || g.Keys[0] != "l" {
		t.Fatalf("expected single key l, got %v", g.Keys)
	}
	if g.Finger != "rightRing" {
		t.Fatalf("expected rightRing, got %q", g.Finger)
	}
	if g.Lang != model.LangEnglish {
		t.Fatalf("expected en, got %s", g.Lang)
	}
}

func TestResolveUppercaseUsesOppositeShift(t *testing.T) {
	// Q sits under the left hand, so the right shift is recommended.
	g := Resolve("Quick", "", true, false)
	if len(g.Keys) != 2 || g.Keys[0] != "q" || g.Keys[1] != RightShiftKey {
		t.Fatalf("expected [q ShiftRight], got %v", g.Keys)
	}
	// P sits under the right hand, so the left shift is recommended.
	g = Resolve("Push", "", true, false)
	if len(g.Keys) != 2 || g.Keys[0] != "p" || g.Keys[1] != LeftShiftKey {
		t.Fatalf("expected [p Shift], got %v", g.Keys)
	}
}

func TestResolveCapsLockInvertsShift(t *testing.T) {
	g := Resolve("Quick", "", true, true)
	if len(g.Keys) != 1 {
		t.Fatalf("expected no shift with caps lock, got %v", g.Keys)
	}
	g = Resolve("quick", "", true, true)
	if len(g.Keys) != 2 || g.Keys[1] != RightShiftKey {
		t.Fatalf("expected shift for lowercase under caps lock, got %v", g.Keys)
	}
}

func TestResolveThaiShifted(t *testing.T) {
	// ฎ is the shifted value of the e key on the Kedmanee layout.
	g := Resolve("ฎ", "", false, false)
	if g.Lang != model.LangThai {
		t.Fatalf("expected th, got %s", g.Lang)
	}
	if len(g.Keys) != 2 || g.Keys[0] != "e" || g.Keys[1] != RightShiftKey {
		t.Fatalf("expected [e ShiftRight], got %v", g.Keys)
	}
	// ก is unshifted on the d key.
	g = Resolve("กข", "", false, false)
	if len(g.Keys) != 1 || g.Keys[0] != "d" {
		t.Fatalf("expected [d], got %v", g.Keys)
	}
}

func TestResolveSegmentBoundarySpace(t *testing.T) {
	g := Resolve("done", "done", true, false)
	if g.Char != " " {
		t.Fatalf("expected space prompt, got %q", g.Char)
	}
	if len(g.Keys) != 1 || g.Keys[0] != SpaceKey {
		t.Fatalf("expected [Space], got %v", g.Keys)
	}
	if g.Finger != "thumb" {
		t.Fatalf("expected thumb, got %q", g.Finger)
	}
}

func TestResolveExhausted(t *testing.T) {
	g := Resolve("done", "done", false, false)
	if g.Char != "" || len(g.Keys) != 0 || g.Finger != "" {
		t.Fatalf("expected empty guidance, got %+v", g)
	}
}

func TestRecommendedShiftKeyDefault(t *testing.T) {
	if RecommendedShiftKey("h") != LeftShiftKey {
		t.Fatalf("right-hand key should use left shift")
	}
	if RecommendedShiftKey("unknown") != LeftShiftKey {
		t.Fatalf("unknown key should default to left shift")
	}
}
