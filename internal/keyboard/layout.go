// Package keyboard resolves which physical keys to highlight for the next
// expected character on a Thai/English QWERTY (Kedmanee) layout.
package keyboard

import "github.com/siriwatk/sornpim/internal/model"

// SpaceKey and the shift key labels used in highlight sets.
const (
	SpaceKey      = "Space"
	LeftShiftKey  = "Shift"
	RightShiftKey = "ShiftRight"
)

type layout struct {
	unshifted map[string]rune
	shifted   map[string]rune
}

var layouts = map[model.Lang]layout{
	model.LangEnglish: {
		unshifted: map[string]rune{
			"`": '`', "1": '1', "2": '2', "3": '3', "4": '4', "5": '5', "6": '6', "7": '7', "8": '8', "9": '9', "0": '0', "-": '-', "=": '=',
			"q": 'q', "w": 'w', "e": 'e', "r": 'r', "t": 't', "y": 'y', "u": 'u', "i": 'i', "o": 'o', "p": 'p', "[": '[', "]": ']', "\\": '\\',
			"a": 'a', "s": 's', "d": 'd', "f": 'f', "g": 'g', "h": 'h', "j": 'j', "k": 'k', "l": 'l', ";": ';', "'": '\'',
			"z": 'z', "x": 'x', "c": 'c', "v": 'v', "b": 'b', "n": 'n', "m": 'm', ",": ',', ".": '.', "/": '/',
			SpaceKey: ' ',
		},
		shifted: map[string]rune{
			"`": '~', "1": '!', "2": '@', "3": '#', "4": '$', "5": '%', "6": '^', "7": '&', "8": '*', "9": '(', "0": ')', "-": '_', "=": '+',
			"q": 'Q', "w": 'W', "e": 'E', "r": 'R', "t": 'T', "y": 'Y', "u": 'U', "i": 'I', "o": 'O', "p": 'P', "[": '{', "]": '}', "\\": '|',
			"a": 'A', "s": 'S', "d": 'D', "f": 'F', "g": 'G', "h": 'H', "j": 'J', "k": 'K', "l": 'L', ";": ':', "'": '"',
			"z": 'Z', "x": 'X', "c": 'C', "v": 'V', "b": 'B', "n": 'N', "m": 'M', ",": '<', ".": '>', "/": '?',
			SpaceKey: ' ',
		},
	},
	model.LangThai: {
		unshifted: map[string]rune{
			"`": '_', "1": 'ๅ', "2": '/', "3": '-', "4": 'ภ', "5": 'ถ', "6": 'ุ', "7": 'ึ', "8": 'ค', "9": 'ต', "0": 'จ', "-": 'ข', "=": 'ช',
			"q": 'ๆ', "w": 'ไ', "e": 'ำ', "r": 'พ', "t": 'ะ', "y": 'ั', "u": 'ี', "i": 'ร', "o": 'น', "p": 'ย', "[": 'บ', "]": 'ล', "\\": 'ฃ',
			"a": 'ฟ', "s": 'ห', "d": 'ก', "f": 'ด', "g": 'เ', "h": '้', "j": '่', "k": 'า', "l": 'ส', ";": 'ว', "'": 'ง',
			"z": 'ผ', "x": 'ป', "c": 'แ', "v": 'อ', "b": 'ิ', "n": 'ื', "m": 'ท', ",": 'ม', ".": 'ใ', "/": 'ฝ',
			SpaceKey: ' ',
		},
		shifted: map[string]rune{
			"`": '+', "1": '%', "2": '๑', "3": '๒', "4": '๓', "5": '๔', "6": 'ู', "7": '฿', "8": '๕', "9": '๖', "0": '๗', "-": '๘', "=": '๙',
			"q": '๐', "w": '"', "e": 'ฎ', "r": 'ฑ', "t": 'ธ', "y": 'ํ', "u": '๊', "i": 'ณ', "o": 'ฯ', "p": 'ญ', "[": 'ฐ', "]": ',', "\\": 'ฅ',
			"a": 'ฤ', "s": 'ฆ', "d": 'ฏ', "f": 'โ', "g": 'ฌ', "h": '็', "j": '๋', "k": 'ษ', "l": 'ศ', ";": 'ซ', "'": '.',
			"z": '(', "x": ')', "c": 'ฉ', "v": 'ฮ', "b": 'ฺ', "n": '์', "m": '?', ",": 'ฒ', ".": 'ฬ', "/": 'ฦ',
			SpaceKey: ' ',
		},
	},
}

// keyToFinger maps a key label to the finger that should press it.
var keyToFinger = map[string]string{
	"`": "leftPinky", "1": "leftPinky", "q": "leftPinky", "a": "leftPinky", "z": "leftPinky",
	"2": "leftRing", "w": "leftRing", "s": "leftRing", "x": "leftRing",
	"3": "leftMiddle", "e": "leftMiddle", "d": "leftMiddle", "c": "leftMiddle",
	"4": "leftIndex", "r": "leftIndex", "f": "leftIndex", "v": "leftIndex",
	"5": "leftIndex", "t": "leftIndex", "g": "leftIndex", "b": "leftIndex",
	"6": "rightIndex", "y": "rightIndex", "h": "rightIndex", "n": "rightIndex",
	"7": "rightIndex", "u": "rightIndex", "j": "rightIndex", "m": "rightIndex",
	"8": "rightMiddle", "i": "rightMiddle", "k": "rightMiddle", ",": "rightMiddle",
	"9": "rightRing", "o": "rightRing", "l": "rightRing", ".": "rightRing",
	"0": "rightPinky", "-": "rightPinky", "=": "rightPinky", "p": "rightPinky",
	"[": "rightPinky", "]": "rightPinky", "\\": "rightPinky", ";": "rightPinky",
	"'": "rightPinky", "/": "rightPinky",
	LeftShiftKey: "leftPinky", RightShiftKey: "rightPinky",
	SpaceKey: "thumb",
}

// fingerNames maps finger tags to display names.
var fingerNames = map[string]string{
	"leftPinky":   "นิ้วก้อยซ้าย",
	"leftRing":    "นิ้วนางซ้าย",
	"leftMiddle":  "นิ้วกลางซ้าย",
	"leftIndex":   "นิ้วชี้ซ้าย",
	"rightIndex":  "นิ้วชี้ขวา",
	"rightMiddle": "นิ้วกลางขวา",
	"rightRing":   "นิ้วนางขวา",
	"rightPinky":  "นิ้วก้อยขวา",
	"thumb":       "นิ้วโป้ง",
}

// leftZoneKeys names the keys pressed by the left hand. Keys outside this
// set belong to the right hand.
var leftZoneKeys = map[string]struct{}{
	"`": {}, "1": {}, "2": {}, "3": {}, "4": {}, "5": {},
	"q": {}, "w": {}, "e": {}, "r": {}, "t": {},
	"a": {}, "s": {}, "d": {}, "f": {}, "g": {},
	"z": {}, "x": {}, "c": {}, "v": {}, "b": {},
	LeftShiftKey: {},
}

// FingerName returns the display name for a finger tag, or the tag itself
// when no translation exists.
func FingerName(tag string) string {
	if name, ok := fingerNames[tag]; ok {
		return name
	}
	return tag
}

// RecommendedShiftKey picks the shift key on the opposite hand from the
// base key, so the letter and the shift are never pressed together by the
// same hand.
func RecommendedShiftKey(baseKey string) string {
	if _, ok := leftZoneKeys[baseKey]; ok {
		return RightShiftKey
	}
	return LeftShiftKey
}

// charToKey builds the reverse lookup from character to key label.
func charToKey(lang model.Lang, shifted bool) map[rune]string {
	l, ok := layouts[lang]
	if !ok {
		return nil
	}
	src := l.unshifted
	if shifted {
		src = l.shifted
	}
	out := make(map[rune]string, len(src))
	for key, ch := range src {
		out[ch] = key
	}
	return out
}
