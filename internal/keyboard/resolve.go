package keyboard

import (
	"github.com/siriwatk/sornpim/internal/model"
	"github.com/siriwatk/sornpim/internal/textseg"
)

// Guidance describes what to show for the next expected character.
type Guidance struct {
	Char   string   // next character, " " when waiting for the separator
	Keys   []string // key labels to highlight, base key first
	Finger string   // finger tag for the base key, empty when unknown
	Lang   model.Lang
}

// Resolve computes guidance for the current typing position. segment is the
// active segment, typed the input so far. hasNext signals that another
// segment follows, so a fully typed segment prompts for the separator
// space. capsLock flips the shift requirement for Latin letters.
func Resolve(segment, typed string, hasNext, capsLock bool) Guidance {
	segRunes := []rune(segment)
	pos := len([]rune(typed))
	mainLang := textseg.DetectLanguage(segment)

	if pos >= len(segRunes) {
		if pos == len(segRunes) && hasNext {
			return Guidance{
				Char:   " ",
				Keys:   []string{SpaceKey},
				Finger: keyToFinger[SpaceKey],
				Lang:   mainLang,
			}
		}
		return Guidance{Lang: mainLang}
	}

	char := segRunes[pos]
	lang := mainLang
	if char != ' ' {
		if textseg.IsThaiRune(char) {
			lang = model.LangThai
		} else {
			lang = model.LangEnglish
		}
	}

	baseKey, ok := charToKey(lang, false)[char]
	needsShift := false
	if !ok {
		baseKey, ok = charToKey(lang, true)[char]
		needsShift = ok
	}

	g := Guidance{Char: string(char), Lang: lang}
	if !ok {
		return g
	}
	g.Keys = []string{baseKey}
	g.Finger = keyToFinger[baseKey]

	upper := lang == model.LangEnglish && char >= 'A' && char <= 'Z'
	lower := lang == model.LangEnglish && char >= 'a' && char <= 'z'
	if needsShift || (upper && !capsLock) || (lower && capsLock) {
		g.Keys = append(g.Keys, RecommendedShiftKey(baseKey))
	}
	return g
}
