package stats

import (
	"fmt"
	"io"

	"github.com/siriwatk/sornpim/internal/model"
	"github.com/siriwatk/sornpim/internal/progress"
)

// RenderProgress prints a per-level progress table in curriculum order.
func RenderProgress(w io.Writer, levels []model.Level, firstLevelID string, report Report, authenticated bool, cfg model.GateConfig) error {
	if len(levels) == 0 {
		_, err := fmt.Fprintln(w, "No levels found.")
		return err
	}
	byLevel := AttemptsByLevel(report.Attempts)

	headers := []string{"Level", "Status", "Plays", "WPM", "Acc", "Errors", "Grade", "Score", "Trend"}
	rows := make([][]string, 0, len(levels))
	for _, lvl := range levels {
		status := "locked"
		if progress.Unlocked(lvl.ID, firstLevelID, levels, report.Progress, authenticated, cfg) {
			status = "open"
		}
		row := []string{lvl.Name, status, "0", "-", "-", "-", "-", "-", ""}
		if st, ok := report.Progress[lvl.ID]; ok {
			row[2] = fmt.Sprintf("%d", st.PlayCount)
			row[3] = fmt.Sprintf("%d", st.WPM)
			row[4] = fmt.Sprintf("%d%%", st.Accuracy)
			row[5] = fmt.Sprintf("%d", st.TotalErrors)
			row[6] = st.Grade
			row[7] = fmt.Sprintf("%d", st.Score)
		}
		if attempts := byLevel[lvl.ID]; len(attempts) > 1 {
			wpms := make([]float64, len(attempts))
			for i, a := range attempts {
				wpms[i] = float64(a.WPM)
			}
			row[8] = Sparkline(wpms)
		}
		rows = append(rows, row)
	}

	if _, err := fmt.Fprintln(w, "Progress"); err != nil {
		return err
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
