// Package curriculum loads and flattens the level tree.
package curriculum

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/siriwatk/sornpim/internal/model"
)

// Curriculum is the immutable level tree supplied at startup.
type Curriculum struct {
	firstLevel string
	languages  []model.Language
	flat       []model.Level
}

type fileCurriculum struct {
	FirstLevel string         `toml:"first-level"`
	Languages  []fileLanguage `toml:"language"`
}

type fileLanguage struct {
	ID    string     `toml:"id"`
	Name  string     `toml:"name"`
	Units []fileUnit `toml:"unit"`
}

type fileUnit struct {
	ID       string        `toml:"id"`
	Name     string        `toml:"name"`
	Sessions []fileSession `toml:"session"`
}

type fileSession struct {
	ID     string      `toml:"id"`
	Name   string      `toml:"name"`
	Levels []fileLevel `toml:"level"`
}

type fileLevel struct {
	ID        string          `toml:"id"`
	Name      string          `toml:"name"`
	Text      string          `toml:"text"`
	TimeLimit int             `toml:"time-limit"`
	Criteria  []fileCriterion `toml:"criteria"`
}

type fileCriterion struct {
	MinWPM      int    `toml:"min-wpm"`
	MaxErrors   *int   `toml:"max-errors"`
	MinAccuracy int    `toml:"min-accuracy"`
	Grade       string `toml:"grade"`
	Score       int    `toml:"score"`
}

// Load reads a curriculum file. An empty path or a missing file falls back
// to the embedded default curriculum.
func Load(path string) (*Curriculum, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default()
		}
		return nil, fmt.Errorf("failed to read curriculum: %w", err)
	}
	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse curriculum %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates curriculum TOML.
func Parse(data string) (*Curriculum, error) {
	var file fileCurriculum
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode curriculum: %w", err)
	}

	languages := make([]model.Language, 0, len(file.Languages))
	for _, fl := range file.Languages {
		lang := model.Language{ID: fl.ID, Name: fl.Name}
		for _, fu := range fl.Units {
			unit := model.Unit{ID: fu.ID, Name: fu.Name}
			for _, fs := range fu.Sessions {
				session := model.Session{ID: fs.ID, Name: fs.Name}
				for _, flv := range fs.Levels {
					level := model.Level{
						ID:        flv.ID,
						Name:      flv.Name,
						Text:      flv.Text,
						TimeLimit: flv.TimeLimit,
					}
					for _, fc := range flv.Criteria {
						maxErrors := model.NoErrorLimit
						if fc.MaxErrors != nil {
							maxErrors = *fc.MaxErrors
						}
						level.Criteria = append(level.Criteria, model.ScoringCriterion{
							MinWPM:      fc.MinWPM,
							MaxErrors:   maxErrors,
							MinAccuracy: fc.MinAccuracy,
							Grade:       fc.Grade,
							Score:       fc.Score,
						})
					}
					session.Levels = append(session.Levels, level)
				}
				unit.Sessions = append(unit.Sessions, session)
			}
			lang.Units = append(lang.Units, unit)
		}
		languages = append(languages, lang)
	}

	c := &Curriculum{
		firstLevel: file.FirstLevel,
		languages:  languages,
		flat:       flatten(languages),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func flatten(languages []model.Language) []model.Level {
	var out []model.Level
	for _, lang := range languages {
		for _, unit := range lang.Units {
			for _, session := range unit.Sessions {
				out = append(out, session.Levels...)
			}
		}
	}
	return out
}

func (c *Curriculum) validate() error {
	if len(c.flat) == 0 {
		return fmt.Errorf("curriculum has no levels")
	}
	seen := make(map[string]struct{}, len(c.flat))
	for _, level := range c.flat {
		if level.ID == "" {
			return fmt.Errorf("level %q has no id", level.Name)
		}
		if level.Text == "" {
			return fmt.Errorf("level %s has no text", level.ID)
		}
		if level.TimeLimit < 0 {
			return fmt.Errorf("level %s has a negative time limit", level.ID)
		}
		if _, ok := seen[level.ID]; ok {
			return fmt.Errorf("duplicate level id %s", level.ID)
		}
		seen[level.ID] = struct{}{}
	}
	if c.firstLevel != "" {
		if _, ok := seen[c.firstLevel]; !ok {
			return fmt.Errorf("first-level %s is not a level in the curriculum", c.firstLevel)
		}
	}
	return nil
}

// Languages returns the full tree.
func (c *Curriculum) Languages() []model.Language {
	return c.languages
}

// Flatten returns the levels in stable depth-first order. This order is the
// dependency chain the progression gate walks.
func (c *Curriculum) Flatten() []model.Level {
	return c.flat
}

// Find returns a level by id, or false when it does not exist.
func (c *Curriculum) Find(id string) (model.Level, bool) {
	for _, level := range c.flat {
		if level.ID == id {
			return level, true
		}
	}
	return model.Level{}, false
}

// FirstLevelID returns the designated entry level, defaulting to the first
// level in flattened order.
func (c *Curriculum) FirstLevelID() string {
	if c.firstLevel != "" {
		return c.firstLevel
	}
	return c.flat[0].ID
}
