// Package progress decides which curriculum levels are unlocked.
package progress

import "github.com/siriwatk/sornpim/internal/model"

// Unlocked reports whether the user may attempt levelID. order is the
// flattened curriculum, firstLevelID the designated entry level. An
// unauthenticated user sees everything unlocked; otherwise a level opens
// when the immediately preceding level has been played at least
// cfg.RequiredPlays times with a score strictly above cfg.RequiredScore.
// Pure function, safe to call on every render.
func Unlocked(levelID, firstLevelID string, order []model.Level, progressMap map[string]model.LevelStats, authenticated bool, cfg model.GateConfig) bool {
	if !authenticated {
		return true
	}
	if levelID == firstLevelID {
		return true
	}
	idx := -1
	for i, level := range order {
		if level.ID == levelID {
			idx = i
			break
		}
	}
	if idx <= 0 {
		// Unknown id, or a level at position zero that is not the
		// designated first level.
		return false
	}
	prev, ok := progressMap[order[idx-1].ID]
	if !ok {
		return false
	}
	return prev.PlayCount >= cfg.RequiredPlays && prev.Score > cfg.RequiredScore
}
