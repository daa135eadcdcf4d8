package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/siriwatk/sornpim/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "sornpim.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func sampleResult(wpm int, at time.Time) model.Result {
	return model.Result{
		WPM:            wpm,
		Accuracy:       95,
		TotalErrors:    2,
		TotalCorrect:   93,
		TotalTyped:     95,
		Grade:          "ดีมาก",
		Score:          9,
		ElapsedSeconds: 60,
		FinishedAt:     at,
	}
}

func TestGetLatestResultMissing(t *testing.T) {
	st := openTestStore(t)
	stats, err := st.GetLatestResult(context.Background(), "u1", "lvl-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stats != nil {
		t.Fatalf("expected nil for never-played level, got %+v", stats)
	}
}

func TestUpsertIncrementsPlayCount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0).UTC()

	if err := st.UpsertResult(ctx, "u1", "lvl-1", sampleResult(12, base)); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := st.UpsertResult(ctx, "u1", "lvl-1", sampleResult(18, base.Add(time.Hour))); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	stats, err := st.GetLatestResult(ctx, "u1", "lvl-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stats == nil {
		t.Fatalf("expected stats after upserts")
	}
	if stats.PlayCount != 2 {
		t.Fatalf("expected play count 2, got %d", stats.PlayCount)
	}
	if stats.WPM != 18 {
		t.Fatalf("expected latest wpm 18, got %d", stats.WPM)
	}
	if !stats.LastPlayed.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected last played: %v", stats.LastPlayed)
	}
}

func TestProgressIsPerUser(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0).UTC()

	if err := st.UpsertResult(ctx, "u1", "lvl-1", sampleResult(12, now)); err != nil {
		t.Fatalf("upsert u1: %v", err)
	}
	if err := st.UpsertResult(ctx, "u2", "lvl-1", sampleResult(20, now)); err != nil {
		t.Fatalf("upsert u2: %v", err)
	}
	if err := st.UpsertResult(ctx, "u1", "lvl-2", sampleResult(14, now)); err != nil {
		t.Fatalf("upsert lvl-2: %v", err)
	}

	progress, err := st.ListProgress(ctx, "u1")
	if err != nil {
		t.Fatalf("list progress: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("expected 2 levels for u1, got %d", len(progress))
	}
	if progress["lvl-1"].WPM != 12 {
		t.Fatalf("u2's result leaked into u1: %+v", progress["lvl-1"])
	}
}

func TestListAttemptsHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0).UTC()

	for i := 0; i < 5; i++ {
		result := sampleResult(10+i, base.Add(time.Duration(i)*time.Minute))
		levelID := "lvl-1"
		if i == 2 {
			levelID = "lvl-2"
		}
		if err := st.UpsertResult(ctx, "u1", levelID, result); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	attempts, err := st.ListAttempts(ctx, "u1", model.StatsConfig{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 5 {
		t.Fatalf("expected 5 attempts, got %d", len(attempts))
	}
	for i := 1; i < len(attempts); i++ {
		if attempts[i].FinishedAt.Before(attempts[i-1].FinishedAt) {
			t.Fatalf("attempts out of order at %d", i)
		}
	}

	filtered, err := st.ListAttempts(ctx, "u1", model.StatsConfig{Level: "lvl-2"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].WPM != 12 {
		t.Fatalf("unexpected filtered attempts: %+v", filtered)
	}

	last, err := st.ListAttempts(ctx, "u1", model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 || last[1].WPM != 14 {
		t.Fatalf("unexpected last window: %+v", last)
	}
}
