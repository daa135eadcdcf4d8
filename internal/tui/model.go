// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/siriwatk/sornpim/internal/keyboard"
	"github.com/siriwatk/sornpim/internal/model"
	"github.com/siriwatk/sornpim/internal/progress"
	"github.com/siriwatk/sornpim/internal/scoring"
	"github.com/siriwatk/sornpim/internal/session"
)

type screen int

const (
	screenPicker screen = iota
	screenTyping
	screenResult
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	guideStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	resultStyle      = lipgloss.NewStyle().
				Padding(1, 2).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A"))
)

// tickMsg carries the generation of the chain that armed it. Leaving the
// typing screen bumps the generation, so a tick already in flight from an
// abandoned attempt is dropped instead of re-arming a second chain.
type tickMsg struct {
	gen int
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	levels       []model.Level
	firstLevelID string
	progressMap  map[string]model.LevelStats
	authed       bool
	gateCfg      model.GateConfig
	maxLineChars int

	engine *session.Engine
	screen screen
	picker table.Model

	width  int
	height int

	notice  string
	ticking bool
	tickGen int
}

// NewModel constructs a typing TUI model starting on the level picker.
func NewModel(levels []model.Level, firstLevelID string, progressMap map[string]model.LevelStats, authed bool, gateCfg model.GateConfig, maxLineChars int, recorder session.Recorder) *Model {
	m := &Model{
		levels:       levels,
		firstLevelID: firstLevelID,
		progressMap:  progressMap,
		authed:       authed,
		gateCfg:      gateCfg,
		maxLineChars: maxLineChars,
		engine:       session.New(model.Level{}, maxLineChars, recorder, nil),
		screen:       screenPicker,
	}
	m.picker = buildPicker(levels, firstLevelID, progressMap, authed, gateCfg)
	return m
}

// StartLevel skips the picker and opens the given level directly.
func (m *Model) StartLevel(level model.Level) {
	m.engine.SwitchLevel(level)
	m.tickGen++
	m.ticking = false
	m.screen = screenTyping
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetHeight(pickerHeight(len(m.levels), msg.Height))
		return m, nil
	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		if m.screen != screenTyping {
			m.ticking = false
			return m, nil
		}
		m.engine.Tick()
		if m.engine.Finished() {
			m.stopTicking()
			m.screen = screenResult
			return m, nil
		}
		return m, tickCmd(m.tickGen)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.screen {
	case screenPicker:
		return m.handlePickerKey(msg)
	case screenTyping:
		return m.handleTypingKey(msg)
	default:
		return m.handleResultKey(msg)
	}
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "q", msg.Type == tea.KeyEsc:
		return m, tea.Quit
	case msg.Type == tea.KeyEnter:
		idx := m.picker.Cursor()
		if idx < 0 || idx >= len(m.levels) {
			return m, nil
		}
		level := m.levels[idx]
		if !progress.Unlocked(level.ID, m.firstLevelID, m.levels, m.progressMap, m.authed, m.gateCfg) {
			m.notice = "ด่านนี้ยังไม่ปลดล็อก ฝึกด่านก่อนหน้าให้ผ่านก่อน"
			return m, nil
		}
		m.notice = ""
		m.StartLevel(level)
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.leaveTyping()
		return m, nil
	case tea.KeyCtrlP:
		m.engine.TogglePause()
		if !m.engine.Paused() && !m.ticking && m.engine.Started() {
			m.ticking = true
			return m, tickCmd(m.tickGen)
		}
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		typed := []rune(m.engine.TypedText())
		if len(typed) > 0 {
			m.engine.Input(string(typed[:len(typed)-1]))
		}
		return m, nil
	case tea.KeySpace:
		return m.typeRunes([]rune{' '})
	case tea.KeyRunes:
		return m.typeRunes(msg.Runes)
	default:
		return m, nil
	}
}

func (m *Model) typeRunes(runes []rune) (tea.Model, tea.Cmd) {
	for _, r := range runes {
		m.engine.Input(m.engine.TypedText() + string(r))
	}
	if m.engine.Finished() {
		m.stopTicking()
		m.screen = screenResult
		return m, nil
	}
	if m.engine.Started() && !m.engine.Paused() && !m.ticking {
		m.ticking = true
		return m, tickCmd(m.tickGen)
	}
	return m, nil
}

// stopTicking invalidates any tick still in flight.
func (m *Model) stopTicking() {
	m.tickGen++
	m.ticking = false
}

func (m *Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "q":
		return m, tea.Quit
	case msg.Type == tea.KeyEnter:
		// Retry the same level.
		m.refreshProgress()
		m.engine.Reset()
		m.stopTicking()
		m.screen = screenTyping
		return m, nil
	case msg.Type == tea.KeyEsc:
		m.leaveTyping()
		return m, nil
	}
	return m, nil
}

func (m *Model) leaveTyping() {
	m.refreshProgress()
	m.engine.Reset()
	m.stopTicking()
	m.screen = screenPicker
	m.picker = buildPicker(m.levels, m.firstLevelID, m.progressMap, m.authed, m.gateCfg)
	if m.height > 0 {
		m.picker.SetHeight(pickerHeight(len(m.levels), m.height))
	}
}

// refreshProgress folds the just-finished result into the in-memory
// progress map so lock states update without rereading the store.
func (m *Model) refreshProgress() {
	result, ok := m.engine.Result()
	if !ok {
		return
	}
	levelID := m.engine.Level().ID
	st := m.progressMap[levelID]
	st.PlayCount++
	st.Score = result.Score
	st.WPM = result.WPM
	st.Accuracy = result.Accuracy
	st.TotalErrors = result.TotalErrors
	st.Grade = result.Grade
	st.LastPlayed = result.FinishedAt
	if m.progressMap == nil {
		m.progressMap = map[string]model.LevelStats{}
	}
	m.progressMap[levelID] = st
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case screenPicker:
		return m.viewPicker()
	case screenTyping:
		return m.viewTyping()
	default:
		return m.viewResult()
	}
}

func (m *Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("สอนพิมพ์ — เลือกด่าน"))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(warnStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("enter เริ่ม · q ออก"))
	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewTyping() string {
	target := []rune(m.engine.TextToType())
	input := []rune(m.engine.TypedText())
	cursorIndex := -1
	if len(input) < len(target) {
		cursorIndex = len(input)
	}
	styled := buildStyledRunes(target, input, cursorIndex)

	contentWidth := len(target)
	if m.width > 0 {
		contentWidth = int(float64(m.width) * 0.70)
	}
	if contentWidth < 1 {
		contentWidth = 1
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.engine.Level().Name))
	b.WriteString("\n\n")
	b.WriteString(wrapStyledRunes(styled, contentWidth))
	b.WriteString("\n\n")
	b.WriteString(m.renderGuidance())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderGuidance() string {
	if m.engine.Paused() {
		return guideStyle.Render("หยุดชั่วคราว · ctrl+p เพื่อพิมพ์ต่อ")
	}
	g := m.engine.Guidance(false)
	if g.Char == "" {
		return ""
	}
	label := g.Char
	if label == " " {
		label = "เว้นวรรค"
	}
	parts := []string{fmt.Sprintf("พิมพ์ %s", label)}
	if len(g.Keys) > 0 {
		parts = append(parts, fmt.Sprintf("ปุ่ม %s", strings.Join(g.Keys, " + ")))
	}
	if name := keyboard.FingerName(g.Finger); name != "" {
		parts = append(parts, fmt.Sprintf("ใช้%s", name))
	}
	return guideStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("ช่วงที่ %d/%d", m.engine.SegmentIndex()+1, len(m.engine.Segments())),
	}
	if remaining, timed := m.engine.Remaining(); timed {
		segments = append(segments, fmt.Sprintf("เหลือ %s", formatClock(remaining)))
	} else {
		segments = append(segments, fmt.Sprintf("เวลา %s", formatClock(m.engine.Elapsed())))
	}
	correct, typed, errors := m.engine.Totals()
	if typed > 0 {
		segments = append(segments, fmt.Sprintf("ถูก %d ผิด %d", correct, errors))
	}
	segments = append(segments, "esc กลับ · ctrl+p พัก")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) viewResult() string {
	result, ok := m.engine.Result()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.engine.Level().Name))
	b.WriteString("\n\n")
	if result.TimedOut {
		b.WriteString(warnStyle.Render("หมดเวลา"))
		b.WriteString("\n")
	}
	lines := []string{
		fmt.Sprintf("ความเร็ว %d คำ/นาที", result.WPM),
		fmt.Sprintf("ความแม่นยำ %d%%", result.Accuracy),
		fmt.Sprintf("พิมพ์ผิด %d ครั้ง", result.TotalErrors),
		fmt.Sprintf("ผล: %s (%d คะแนน)", result.Grade, result.Score),
		fmt.Sprintf("ใช้เวลา %s", formatClock(result.ElapsedSeconds)),
	}
	b.WriteString(strings.Join(lines, "\n"))
	if criteria := m.renderCriteria(); criteria != "" {
		b.WriteString("\n\n")
		b.WriteString(criteria)
	}
	if err := m.engine.WriteErr(); err != nil {
		b.WriteString("\n\n")
		b.WriteString(warnStyle.Render("บันทึกผลไม่สำเร็จ"))
		logErrf("failed to save result: %v\n", err)
	}
	card := resultStyle.Render(b.String())
	card += "\n" + footerStyle.Render("enter เล่นอีกครั้ง · esc เลือกด่าน · q ออก")
	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// renderCriteria shows the level's grading table with the achieved row
// marked, so the next target is visible from the result screen.
func (m *Model) renderCriteria() string {
	result, ok := m.engine.Result()
	if !ok {
		return ""
	}
	criteria := scoring.LevelCriteria(m.engine.Level())
	var b strings.Builder
	b.WriteString(footerStyle.Render("เกณฑ์การให้คะแนน"))
	for _, c := range criteria {
		var cond string
		switch {
		case c.MinWPM > 0:
			cond = fmt.Sprintf("≥%d คำ/นาที", c.MinWPM)
		case c.MaxErrors >= 0:
			cond = fmt.Sprintf("ผิด ≤%d", c.MaxErrors)
		default:
			cond = "อื่น ๆ"
		}
		label := c.Grade
		if label == "" {
			label = fmt.Sprintf("%d คะแนน", c.Score)
		}
		line := fmt.Sprintf("%s  %s (%d)", cond, label, c.Score)
		style := footerStyle
		if c.Score == result.Score && label == result.Grade {
			style = guideStyle
			line = "» " + line
		}
		b.WriteString("\n")
		b.WriteString(style.Render(line))
	}
	return b.String()
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
