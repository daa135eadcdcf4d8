package stats

import (
	"context"

	"github.com/siriwatk/sornpim/internal/model"
	"github.com/siriwatk/sornpim/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Attempts []model.Attempt
	Progress map[string]model.LevelStats
}

// BuildReport loads and prepares a user's data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, userID string, cfg model.StatsConfig) (Report, error) {
	attempts, err := st.ListAttempts(ctx, userID, cfg)
	if err != nil {
		return Report{}, err
	}
	progress, err := st.ListProgress(ctx, userID)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Attempts: attempts,
		Progress: progress,
	}, nil
}

// AttemptsByLevel groups attempts on their level id, preserving order.
func AttemptsByLevel(attempts []model.Attempt) map[string][]model.Attempt {
	grouped := make(map[string][]model.Attempt)
	for _, a := range attempts {
		grouped[a.LevelID] = append(grouped[a.LevelID], a)
	}
	return grouped
}
