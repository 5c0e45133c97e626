package emotion

import (
	"strings"

	"github.com/kyokomi/emoji/v2"
)

// AliasTable maps alias names (without colons) to glyphs and back.
type AliasTable interface {
	// Glyph returns the glyph for alias.
	Glyph(alias string) (string, bool)
	// Entries returns every glyph the table knows with all of its aliases.
	Entries() map[string][]string
}

// EmojiTable is the AliasTable backed by kyokomi/emoji.
type EmojiTable struct {
	codes map[string]string
	rev   map[string][]string
}

// NewEmojiTable loads the kyokomi/emoji code maps, trimming the colons
// around every shortcode.
func NewEmojiTable() *EmojiTable {
	codeMap := emoji.CodeMap()
	codes := make(map[string]string, len(codeMap))
	for k, v := range codeMap {
		codes[trimColons(k)] = v
	}

	revMap := emoji.RevCodeMap()
	rev := make(map[string][]string, len(revMap))
	for glyph, aliases := range revMap {
		names := make([]string, 0, len(aliases))
		for _, a := range aliases {
			names = append(names, trimColons(a))
		}
		rev[glyph] = names
	}
	return &EmojiTable{codes: codes, rev: rev}
}

func (t *EmojiTable) Glyph(alias string) (string, bool) {
	g, ok := t.codes[alias]
	return g, ok
}

func (t *EmojiTable) Entries() map[string][]string {
	return t.rev
}

// MapTable is an AliasTable over a plain alias to glyph map.
type MapTable map[string]string

func (m MapTable) Glyph(alias string) (string, bool) {
	g, ok := m[alias]
	return g, ok
}

func (m MapTable) Entries() map[string][]string {
	rev := make(map[string][]string, len(m))
	for alias, glyph := range m {
		rev[glyph] = append(rev[glyph], alias)
	}
	return rev
}

func trimColons(code string) string {
	return strings.TrimPrefix(strings.TrimSuffix(code, ":"), ":")
}
