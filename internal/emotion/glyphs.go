package emotion

import (
	"strings"
	"unicode/utf8"
)

// glyphNode is a code point trie over glyphs with presentation selectors
// and skin-tone modifiers removed. Matching skips those runes so every
// variant of a cluster lands on the same alias.
type glyphNode struct {
	next  map[rune]*glyphNode
	alias string
}

func buildGlyphs(table AliasTable) *glyphNode {
	root := &glyphNode{}
	for glyph, aliases := range table.Entries() {
		if strings.ContainsFunc(glyph, isFitzpatrick) {
			continue
		}
		key := stripSelectors(glyph)
		if key == "" || isASCII(key) {
			continue
		}
		for _, a := range aliases {
			root.insert(key, a)
		}
	}
	return root
}

func (n *glyphNode) insert(key, alias string) {
	node := n
	for _, r := range key {
		child, ok := node.next[r]
		if !ok {
			if node.next == nil {
				node.next = make(map[rune]*glyphNode)
			}
			child = &glyphNode{}
			node.next[r] = child
		}
		node = child
	}
	if node.alias == "" || preferAlias(alias, node.alias) {
		node.alias = alias
	}
}

// match finds the longest glyph at the start of s. It returns the alias,
// the skin-tone modifiers consumed along the way and the byte length of the
// cluster, or size == 0 when nothing matches.
func (n *glyphNode) match(s string) (alias string, tones []rune, size int) {
	node := n
	var seen []rune
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		if node != n && (isSelector(r) || isFitzpatrick(r)) {
			if isFitzpatrick(r) {
				seen = append(seen, r)
			}
			i += w
			if node.alias != "" {
				alias, tones, size = node.alias, seen, i
			}
			continue
		}
		child, ok := node.next[r]
		if !ok {
			break
		}
		node = child
		i += w
		if node.alias != "" {
			alias, tones, size = node.alias, seen, i
		}
	}
	return alias, tones, size
}

// preferAlias orders aliases of one glyph: catalog entries first, then the
// shorter name, then lexical order.
func preferAlias(a, b string) bool {
	if ka, kb := IsKnown(a), IsKnown(b); ka != kb {
		return ka
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
