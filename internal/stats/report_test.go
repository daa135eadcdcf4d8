package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/siriwatk/sornpim/internal/model"
	"github.com/siriwatk/sornpim/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "sornpim.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestBuildReport(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(0, 0)
	for i := 0; i < 3; i++ {
		result := model.Result{
			WPM:            10 + i,
			Accuracy:       90,
			TotalCorrect:   50,
			TotalTyped:     55,
			TotalErrors:    5,
			Grade:          "ดี",
			Score:          6,
			ElapsedSeconds: 60,
			FinishedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.UpsertResult(ctx, "guest", "lvl-1", result); err != nil {
			t.Fatalf("upsert result: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, "guest", model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(report.Attempts))
	}
	if report.Attempts[0].WPM != 11 || report.Attempts[1].WPM != 12 {
		t.Fatalf("expected the two newest attempts, got %+v", report.Attempts)
	}
	stats, ok := report.Progress["lvl-1"]
	if !ok {
		t.Fatalf("expected progress entry for lvl-1")
	}
	if stats.PlayCount != 3 {
		t.Fatalf("expected play count 3, got %d", stats.PlayCount)
	}
}

func TestAttemptsByLevel(t *testing.T) {
	attempts := []model.Attempt{
		{LevelID: "a", WPM: 1},
		{LevelID: "b", WPM: 2},
		{LevelID: "a", WPM: 3},
	}
	grouped := AttemptsByLevel(attempts)
	if len(grouped["a"]) != 2 || len(grouped["b"]) != 1 {
		t.Fatalf("unexpected grouping: %+v", grouped)
	}
	if grouped["a"][1].WPM != 3 {
		t.Fatalf("expected order preserved, got %+v", grouped["a"])
	}
}

func TestRenderProgress(t *testing.T) {
	levels := []model.Level{
		{ID: "l1", Name: "Home Row"},
		{ID: "l2", Name: "Top Row"},
	}
	report := Report{
		Progress: map[string]model.LevelStats{
			"l1": {PlayCount: 3, WPM: 18, Accuracy: 95, Grade: "ดีมาก", Score: 8},
		},
	}
	cfg := model.GateConfig{RequiredPlays: 3, RequiredScore: 5}

	var buf bytes.Buffer
	if err := RenderProgress(&buf, levels, "l1", report, true, cfg); err != nil {
		t.Fatalf("render progress: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Home Row") || !strings.Contains(out, "Top Row") {
		t.Fatalf("expected level names in output: %q", out)
	}
	lines := strings.Split(out, "\n")
	var l1, l2 string
	for _, line := range lines {
		if strings.Contains(line, "Home Row") {
			l1 = line
		}
		if strings.Contains(line, "Top Row") {
			l2 = line
		}
	}
	if !strings.Contains(l1, "open") {
		t.Fatalf("expected first level open: %q", l1)
	}
	if !strings.Contains(l2, "open") {
		t.Fatalf("expected second level unlocked by l1 stats: %q", l2)
	}
	if !strings.Contains(l1, "ดีมาก") {
		t.Fatalf("expected grade in output: %q", l1)
	}
}

func TestRenderProgressLocked(t *testing.T) {
	levels := []model.Level{
		{ID: "l1", Name: "Home Row"},
		{ID: "l2", Name: "Top Row"},
	}
	cfg := model.GateConfig{RequiredPlays: 3, RequiredScore: 5}

	var buf bytes.Buffer
	if err := RenderProgress(&buf, levels, "l1", Report{}, true, cfg); err != nil {
		t.Fatalf("render progress: %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Top Row") && !strings.Contains(line, "locked") {
			t.Fatalf("expected second level locked: %q", line)
		}
	}
}
