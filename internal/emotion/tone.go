package emotion

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ToneAction selects what ToAliases does with Fitzpatrick skin-tone
// modifiers (U+1F3FB..U+1F3FF).
type ToneAction int

const (
	// ToneRemove drops the modifier: "👦🏿" becomes ":boy:".
	ToneRemove ToneAction = iota
	// ToneParse keeps the first modifier as a suffix: ":boy|type_6:".
	ToneParse
	// ToneIgnore writes the alias and leaves the raw modifier after it.
	ToneIgnore
)

const (
	textSelector      = '\uFE0E'
	variationSelector = '\uFE0F'
)

var toneTypes = [...]string{"type_1_2", "type_3", "type_4", "type_5", "type_6"}

func isSelector(r rune) bool {
	return r == textSelector || r == variationSelector
}

func isFitzpatrick(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

func toneType(r rune) string {
	return toneTypes[r-0x1F3FB]
}

func toneModifier(typ string) (rune, bool) {
	for i, t := range toneTypes {
		if t == typ {
			return rune(0x1F3FB + i), true
		}
	}
	return 0, false
}

// ParseToneAction parses "remove", "parse" or "ignore". An empty string is
// ToneRemove.
func ParseToneAction(s string) (ToneAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "remove":
		return ToneRemove, nil
	case "parse":
		return ToneParse, nil
	case "ignore":
		return ToneIgnore, nil
	}
	return ToneRemove, fmt.Errorf("unknown tone action %q", s)
}

func (a ToneAction) String() string {
	switch a {
	case ToneParse:
		return "parse"
	case ToneIgnore:
		return "ignore"
	default:
		return "remove"
	}
}

func (a ToneAction) alias(name string, tones []rune) string {
	if len(tones) == 0 {
		return ":" + name + ":"
	}
	switch a {
	case ToneParse:
		return ":" + name + "|" + toneType(tones[0]) + ":"
	case ToneIgnore:
		return ":" + name + ":" + string(tones)
	default:
		return ":" + name + ":"
	}
}

// applyTone places mod after the first code point of glyph. The modifier
// takes over from any presentation selector.
func applyTone(glyph string, mod rune) string {
	glyph = stripSelectors(glyph)
	_, size := utf8.DecodeRuneInString(glyph)
	return glyph[:size] + string(mod) + glyph[size:]
}

func stripSelectors(s string) string {
	if !strings.ContainsFunc(s, isSelector) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isSelector(r) {
			return -1
		}
		return r
	}, s)
}
