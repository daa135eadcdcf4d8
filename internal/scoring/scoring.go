// Package scoring computes typing speed, accuracy, and grades.
package scoring

import (
	"fmt"
	"math"

	"github.com/siriwatk/sornpim/internal/model"
)

// FallbackGrade is used when no criterion matches.
const FallbackGrade = "ต้องฝึกเพิ่ม"

// WPM computes words per minute for a finished stretch of typing.
// Thai text uses net typing units: (typed/4 - errors*10) floored at zero.
// Latin text uses the common correct/5 convention. Zero or negative elapsed
// time yields zero.
func WPM(correctChars, typedChars, errors int, elapsedSeconds float64, lang model.Lang) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	minutes := elapsedSeconds / 60
	if lang == model.LangThai {
		netUnits := math.Max(0, float64(typedChars)/4-float64(errors)*10)
		return int(math.Round(netUnits / minutes))
	}
	return int(math.Round(float64(correctChars) / 5 / minutes))
}

// Accuracy returns the percentage of correct characters, rounded. Zero
// typed characters yields zero.
func Accuracy(correctChars, typedChars int) int {
	if typedChars <= 0 {
		return 0
	}
	return int(math.Round(float64(correctChars) / float64(typedChars) * 100))
}

// DefaultCriteria synthesizes a grading table for levels without one.
// Timed levels grade on WPM thresholds, untimed levels on error counts.
func DefaultCriteria(timed bool) []model.ScoringCriterion {
	grades := [11]string{
		"ดีเยี่ยม", "ดีมาก", "ดี", "พอใช้",
		"ต้องฝึกเพิ่ม", "ต้องฝึกเพิ่ม", "ต้องฝึกเพิ่ม", "ต้องฝึกเพิ่ม",
		"ต้องฝึกเพิ่ม", "ต้องฝึกเพิ่ม", "ไม่ผ่าน",
	}
	out := make([]model.ScoringCriterion, 0, len(grades))
	for i, grade := range grades {
		c := model.ScoringCriterion{Grade: grade, Score: 10 - i}
		if timed {
			c.MinWPM = 2 * (10 - i)
			c.MaxErrors = model.NoErrorLimit
		} else {
			c.MaxErrors = i
		}
		out = append(out, c)
	}
	return out
}

// Evaluate walks the criteria top to bottom and returns the grade and score
// of the first matching row. A row matches when wpm >= MinWPM, errors <=
// MaxErrors (when capped), and accuracy >= MinAccuracy (when set). A
// matching row without a grade label gets one synthesized from its score.
// No match yields the fallback grade and score zero.
func Evaluate(wpm, accuracy, errors int, criteria []model.ScoringCriterion) (string, int) {
	for _, c := range criteria {
		if wpm < c.MinWPM {
			continue
		}
		if c.MaxErrors >= 0 && errors > c.MaxErrors {
			continue
		}
		if c.MinAccuracy > 0 && accuracy < c.MinAccuracy {
			continue
		}
		grade := c.Grade
		if grade == "" {
			grade = fmt.Sprintf("%d คะแนน", c.Score)
		}
		return grade, c.Score
	}
	return FallbackGrade, 0
}

// LevelCriteria returns the level's own table or a synthesized default.
func LevelCriteria(level model.Level) []model.ScoringCriterion {
	if len(level.Criteria) > 0 {
		return level.Criteria
	}
	return DefaultCriteria(level.Timed())
}
