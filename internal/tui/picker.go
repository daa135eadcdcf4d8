package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/siriwatk/sornpim/internal/model"
	"github.com/siriwatk/sornpim/internal/progress"
)

func buildPicker(levels []model.Level, firstLevelID string, progressMap map[string]model.LevelStats, authed bool, gateCfg model.GateConfig) table.Model {
	columns := []table.Column{
		{Title: "ด่าน", Width: 30},
		{Title: "เวลา", Width: 6},
		{Title: "เล่น", Width: 5},
		{Title: "คะแนน", Width: 7},
		{Title: "ผล", Width: 14},
		{Title: "สถานะ", Width: 8},
	}
	rows := make([]table.Row, 0, len(levels))
	for _, lvl := range levels {
		timeCol := "-"
		if lvl.Timed() {
			timeCol = formatClock(lvl.TimeLimit)
		}
		plays, score, grade := "0", "-", "-"
		if st, ok := progressMap[lvl.ID]; ok {
			plays = fmt.Sprintf("%d", st.PlayCount)
			score = fmt.Sprintf("%d", st.Score)
			if st.Grade != "" {
				grade = st.Grade
			}
		}
		status := "ล็อก"
		if progress.Unlocked(lvl.ID, firstLevelID, levels, progressMap, authed, gateCfg) {
			status = "เปิด"
		}
		rows = append(rows, table.Row{lvl.Name, timeCol, plays, score, grade, status})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(pickerHeight(len(levels), 0)),
	)
	t.SetStyles(pickerStyles())
	return t
}

func pickerHeight(levelCount, termHeight int) int {
	height := levelCount + 1
	if termHeight > 6 && height > termHeight-6 {
		height = termHeight - 6
	}
	if height < 2 {
		height = 2
	}
	return height
}

func pickerStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	return styles
}
