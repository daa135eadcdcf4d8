// Package session implements the typing session state machine: segment
// cursor, counters, timer, pause/finish/time-up transitions, and result
// finalization.
package session

import (
	"context"
	"time"

	"github.com/siriwatk/sornpim/internal/keyboard"
	"github.com/siriwatk/sornpim/internal/model"
	"github.com/siriwatk/sornpim/internal/scoring"
	"github.com/siriwatk/sornpim/internal/textseg"
)

// Recorder persists a finished session's result. Implementations must not
// block for long; failures are logged by the caller and never roll back the
// finished state.
type Recorder interface {
	UpsertResult(ctx context.Context, levelID string, result model.Result) error
}

// Engine owns all mutable state of one level attempt. It is not safe for
// concurrent use; drive it from a single event loop.
type Engine struct {
	level        model.Level
	maxLineChars int
	recorder     Recorder
	now          func() time.Time

	segments []string
	segIndex int
	typed    []rune

	started  bool
	paused   bool
	finished bool
	timedOut bool

	startedAt time.Time
	elapsed   int
	remaining int // meaningful only when the level is timed

	totalCorrect int
	totalTyped   int
	totalErrors  int

	result   model.Result
	writeErr error
}

// New builds an engine for the given level. maxLineChars <= 0 selects the
// default segment width. recorder may be nil when results should not be
// persisted (e.g. anonymous play); now may be nil to use time.Now.
func New(level model.Level, maxLineChars int, recorder Recorder, now func() time.Time) *Engine {
	if maxLineChars <= 0 {
		maxLineChars = textseg.DefaultMaxLineChars
	}
	if now == nil {
		now = time.Now
	}
	e := &Engine{
		level:        level,
		maxLineChars: maxLineChars,
		recorder:     recorder,
		now:          now,
	}
	e.Reset()
	return e
}

// Reset returns to Idle with zeroed counters and a fresh segment sequence.
func (e *Engine) Reset() {
	e.segments = textseg.Segment(e.level.Text, e.maxLineChars)
	e.segIndex = 0
	e.typed = nil
	e.started = false
	e.paused = false
	e.finished = false
	e.timedOut = false
	e.startedAt = time.Time{}
	e.elapsed = 0
	e.remaining = e.level.TimeLimit
	e.totalCorrect = 0
	e.totalTyped = 0
	e.totalErrors = 0
	e.result = model.Result{}
	e.writeErr = nil
}

// SwitchLevel discards the attempt in progress and resets for a new level.
func (e *Engine) SwitchLevel(level model.Level) {
	e.level = level
	e.Reset()
}

// Start begins the session explicitly. No-op unless Idle.
func (e *Engine) Start() {
	if e.started || e.finished {
		return
	}
	e.started = true
	e.paused = false
	e.startedAt = e.now()
}

// TogglePause flips between Running and Paused. No-op unless started.
func (e *Engine) TogglePause() {
	if !e.started || e.finished {
		return
	}
	e.paused = !e.paused
}

// Tick advances the timer by one second. The caller must deliver ticks only
// while Running; stale ticks after pause or finish are ignored here as well.
func (e *Engine) Tick() {
	if !e.started || e.paused || e.finished {
		return
	}
	e.elapsed++
	if e.level.Timed() {
		e.remaining--
		if e.remaining <= 0 {
			e.remaining = 0
			e.timeUp()
		}
	}
}

// Input feeds the full current buffer value. The first non-empty input
// starts an idle session. Over-length input, and input while paused or
// finished, is silently rejected.
func (e *Engine) Input(value string) {
	if !e.started && value != "" {
		e.Start()
	}
	if e.paused || e.finished {
		return
	}
	segment := []rune(e.currentSegment())
	input := []rune(value)

	// Full segment plus the separator space advances to the next segment.
	if len(input) == len(segment)+1 && input[len(input)-1] == ' ' && e.segIndex+1 < len(e.segments) {
		correct, errors := tally(input[:len(segment)], segment)
		e.totalCorrect += correct + 1 // separator space counts as correct
		e.totalTyped += len(segment) + 1
		e.totalErrors += errors
		e.segIndex++
		e.typed = nil
		return
	}

	if len(input) > len(segment) {
		return
	}

	e.typed = input

	// Completing the last segment finishes the session at the boundary.
	if len(input) == len(segment) && e.segIndex == len(e.segments)-1 {
		correct, errors := tally(input, segment)
		e.totalCorrect += correct
		e.totalTyped += len(segment)
		e.totalErrors += errors
		e.finalize(false)
	}
}

// timeUp truncates the attempt mid-segment. Guarded so that a tick and a
// completing keystroke in the same moment finalize exactly once.
func (e *Engine) timeUp() {
	if e.finished {
		return
	}
	segment := []rune(e.currentSegment())
	partial := e.typed
	if len(partial) > len(segment) {
		partial = partial[:len(segment)]
	}
	correct, errors := tally(partial, segment[:len(partial)])
	completed := 0
	for i := 0; i < e.segIndex; i++ {
		completed += len([]rune(e.segments[i])) + 1
	}
	e.totalCorrect += correct
	e.totalTyped = completed + len(partial)
	e.totalErrors += errors
	e.finalize(true)
}

// finalize computes the result record once and requests persistence.
func (e *Engine) finalize(timedOut bool) {
	if e.finished {
		return
	}
	e.finished = true
	e.started = false
	e.timedOut = timedOut

	elapsed := e.wallElapsed()
	lang := textseg.DetectLanguage(e.level.Text)
	wpm := scoring.WPM(e.totalCorrect, e.totalTyped, e.totalErrors, elapsed, lang)
	accuracy := scoring.Accuracy(e.totalCorrect, e.totalTyped)
	grade, score := scoring.Evaluate(wpm, accuracy, e.totalErrors, scoring.LevelCriteria(e.level))

	e.result = model.Result{
		WPM:            wpm,
		Accuracy:       accuracy,
		TotalErrors:    e.totalErrors,
		TotalCorrect:   e.totalCorrect,
		TotalTyped:     e.totalTyped,
		Grade:          grade,
		Score:          score,
		ElapsedSeconds: int(elapsed),
		TimedOut:       timedOut,
		FinishedAt:     e.now(),
	}

	if e.recorder != nil {
		e.writeErr = e.recorder.UpsertResult(context.Background(), e.level.ID, e.result)
	}
}

// wallElapsed measures actual elapsed seconds, clamped to be non-negative
// and, for timed levels, to the time limit.
func (e *Engine) wallElapsed() float64 {
	if e.startedAt.IsZero() {
		return float64(e.elapsed)
	}
	elapsed := e.now().Sub(e.startedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	if e.level.Timed() && elapsed > float64(e.level.TimeLimit) {
		elapsed = float64(e.level.TimeLimit)
	}
	return elapsed
}

func (e *Engine) currentSegment() string {
	if e.segIndex < 0 || e.segIndex >= len(e.segments) {
		return ""
	}
	return e.segments[e.segIndex]
}

// tally compares typed runes position-wise against the expected runes.
func tally(input, expected []rune) (correct, errors int) {
	for i, r := range input {
		if i < len(expected) && r == expected[i] {
			correct++
		} else {
			errors++
		}
	}
	return correct, errors
}

// Level returns the active level.
func (e *Engine) Level() model.Level { return e.level }

// Segments returns the derived segment sequence.
func (e *Engine) Segments() []string { return e.segments }

// SegmentIndex returns the 0-based cursor into the segment sequence.
func (e *Engine) SegmentIndex() int { return e.segIndex }

// TextToType returns the active segment.
func (e *Engine) TextToType() string { return e.currentSegment() }

// TypedText returns the buffer for the active segment.
func (e *Engine) TypedText() string { return string(e.typed) }

// Started reports whether the session is Running or Paused.
func (e *Engine) Started() bool { return e.started }

// Paused reports whether input is currently rejected by pause.
func (e *Engine) Paused() bool { return e.paused }

// Finished reports whether the session reached a terminal state.
func (e *Engine) Finished() bool { return e.finished }

// TimedOut reports whether the terminal state was forced by the countdown.
func (e *Engine) TimedOut() bool { return e.timedOut }

// Elapsed returns whole seconds ticked while Running.
func (e *Engine) Elapsed() int { return e.elapsed }

// Remaining returns the countdown value and whether the level is timed.
func (e *Engine) Remaining() (int, bool) {
	return e.remaining, e.level.Timed()
}

// Totals returns the cumulative correct, typed, and error counters.
func (e *Engine) Totals() (correct, typed, errors int) {
	return e.totalCorrect, e.totalTyped, e.totalErrors
}

// Result returns the finalized record; ok is false before Finished.
func (e *Engine) Result() (model.Result, bool) {
	return e.result, e.finished
}

// WriteErr returns the persistence error from finalization, if any.
func (e *Engine) WriteErr() error { return e.writeErr }

// Guidance resolves the keyboard highlight for the current position.
func (e *Engine) Guidance(capsLock bool) keyboard.Guidance {
	if e.finished {
		return keyboard.Guidance{}
	}
	return keyboard.Resolve(e.currentSegment(), string(e.typed), e.segIndex+1 < len(e.segments), capsLock)
}
