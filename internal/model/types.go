// Package model defines shared data structures.
package model

import "time"

// Lang identifies a keyboard script.
type Lang string

// Supported scripts.
const (
	LangThai    Lang = "th"
	LangEnglish Lang = "en"
)

// Level is one unit of curriculum content.
type Level struct {
	ID        string
	Name      string
	Text      string
	TimeLimit int // seconds, 0 means untimed
	Criteria  []ScoringCriterion
}

// Timed reports whether the level has a time limit.
func (l Level) Timed() bool {
	return l.TimeLimit > 0
}

// Session groups levels inside a unit.
type Session struct {
	ID     string
	Name   string
	Levels []Level
}

// Unit groups sessions inside a language.
type Unit struct {
	ID       string
	Name     string
	Sessions []Session
}

// Language is the top of the curriculum tree.
type Language struct {
	ID    string
	Name  string
	Units []Unit
}

// NoErrorLimit marks a criterion row that does not cap errors.
const NoErrorLimit = -1

// ScoringCriterion is one row of a level's grading table.
// Tables are ordered strictest-first; the first matching row wins.
type ScoringCriterion struct {
	MinWPM      int
	MaxErrors   int // NoErrorLimit means not required
	MinAccuracy int // 0 means not required
	Grade       string
	Score       int // 0..10
}

// Result is the immutable record of one finished session.
type Result struct {
	WPM            int
	Accuracy       int
	TotalErrors    int
	TotalCorrect   int
	TotalTyped     int
	Grade          string
	Score          int
	ElapsedSeconds int
	TimedOut       bool
	FinishedAt     time.Time
}

// LevelStats is the latest persisted outcome for a (user, level) pair.
type LevelStats struct {
	PlayCount   int
	Score       int
	WPM         int
	Accuracy    int
	TotalErrors int
	Grade       string
	LastPlayed  time.Time
}

// Attempt is one historical finished session, kept for learning curves.
type Attempt struct {
	ID             int64
	LevelID        string
	WPM            int
	Accuracy       int
	TotalErrors    int
	Grade          string
	Score          int
	ElapsedSeconds int
	TimedOut       bool
	FinishedAt     time.Time
}

// GateConfig holds the progression thresholds.
type GateConfig struct {
	RequiredPlays int
	RequiredScore int // previous level must score strictly above this
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Level       string
	Last        int
	CurveWindow int
}
