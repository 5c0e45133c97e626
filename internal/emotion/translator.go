// Package emotion converts between emoji aliases such as ":smile:", Unicode
// glyphs and the HTML image tags the forum renders emoji with.
//
// Every conversion is a pure function of its input. A Translator holds only
// read-only tables and is safe for concurrent use.
package emotion

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

var (
	// aliasPattern gates Render: no colon-delimited span, nothing to do.
	aliasPattern = regexp.MustCompile(`:.+:`)
	// bracketPattern matches the legacy numeric emotion tokens like [em01].
	bracketPattern = regexp.MustCompile(`\[em\d+]`)
)

// Translator converts emoji between alias, glyph and image-tag forms.
type Translator struct {
	table  AliasTable
	glyphs *glyphNode
	tone   ToneAction
}

// Option configures a Translator.
type Option func(*Translator)

// WithTable replaces the kyokomi/emoji alias table.
func WithTable(table AliasTable) Option {
	return func(t *Translator) {
		t.table = table
	}
}

// WithTone sets the skin-tone policy used by ToAliases.
func WithTone(action ToneAction) Option {
	return func(t *Translator) {
		t.tone = action
	}
}

// New builds a Translator. Without options it uses the kyokomi/emoji table
// and ToneRemove.
func New(opts ...Option) *Translator {
	t := &Translator{tone: ToneRemove}
	for _, opt := range opts {
		opt(t)
	}
	if t.table == nil {
		t.table = NewEmojiTable()
	}
	t.glyphs = buildGlyphs(t.table)
	return t
}

// Tone returns the skin-tone policy.
func (t *Translator) Tone() ToneAction {
	return t.tone
}

// IsKnown reports whether name is a catalog entry.
func (t *Translator) IsKnown(name string) bool {
	return IsKnown(name)
}

// ToUnicode replaces every resolvable ":alias:" in text with its glyph and
// puts the plain hearts into emoji presentation.
func (t *Translator) ToUnicode(text string) string {
	return normalizeHearts(replaceAliases(text, t.resolve))
}

// ToAliases replaces every known glyph in text with its canonical alias.
// Skin-tone modifiers are handled according to the Translator's ToneAction.
func (t *Translator) ToAliases(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		alias, tones, n := t.glyphs.match(text[i:])
		if n == 0 {
			_, w := utf8.DecodeRuneInString(text[i:])
			b.WriteString(text[i : i+w])
			i += w
			continue
		}
		b.WriteString(t.tone.alias(alias, tones))
		i += n
	}
	return b.String()
}

// Strip removes [em<digits>] tokens and every catalog alias from content.
func (t *Translator) Strip(content string) string {
	return Strip(content)
}

// Render turns catalog aliases in content into image tags served from
// assetBaseURL. Other resolvable aliases become glyphs.
func (t *Translator) Render(content, assetBaseURL string) string {
	if !aliasPattern.MatchString(content) {
		return content
	}
	ret := replaceAliases(content, func(name string) (string, bool) {
		if IsKnown(name) {
			return imageTag(assetBaseURL, name), true
		}
		return t.resolve(name)
	})
	return normalizeHearts(ret)
}

// resolve looks up an alias, accepting the "|type_N" suffix ToneParse
// writes.
func (t *Translator) resolve(name string) (string, bool) {
	if glyph, ok := t.table.Glyph(name); ok {
		return glyph, true
	}
	base, typ, found := strings.Cut(name, "|")
	if !found {
		return "", false
	}
	glyph, ok := t.table.Glyph(base)
	if !ok {
		return "", false
	}
	mod, ok := toneModifier(typ)
	if !ok {
		return "", false
	}
	return applyTone(glyph, mod), true
}

// Strip removes [em<digits>] tokens and every catalog alias from content.
// Unknown aliases stay. Removal repeats until nothing changes so a token
// joined up by an earlier removal goes as well. Every repeated pass removes
// at least two bytes, so there are at most len(content)/2+1 linear passes:
// quadratic only for tokens nested inside each other.
func Strip(content string) string {
	for {
		next := bracketPattern.ReplaceAllLiteralString(content, "")
		next = replaceAliases(next, func(name string) (string, bool) {
			return "", IsKnown(name)
		})
		if next == content {
			return next
		}
		content = next
	}
}

// replaceAliases rewrites each ":name:" span that resolve accepts. A
// rejected span hands its closing colon on as the opening of the next one.
func replaceAliases(text string, resolve func(name string) (string, bool)) string {
	if strings.Count(text, ":") < 2 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for {
		open := strings.IndexByte(text[i:], ':')
		if open < 0 {
			break
		}
		open += i
		end := strings.IndexByte(text[open+1:], ':')
		if end < 0 {
			break
		}
		end += open + 1
		if name := text[open+1 : end]; name != "" {
			if repl, ok := resolve(name); ok {
				b.WriteString(text[i:open])
				b.WriteString(repl)
				i = end + 1
				continue
			}
		}
		b.WriteString(text[i:end])
		i = end
	}
	b.WriteString(text[i:])
	return b.String()
}

// normalizeHearts appends U+FE0F to every "❤" and "♥" that lacks it.
func normalizeHearts(s string) string {
	if !strings.ContainsAny(s, "❤♥") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 6)
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+w])
		i += w
		if r == '❤' || r == '♥' {
			if next, _ := utf8.DecodeRuneInString(s[i:]); next != variationSelector {
				b.WriteRune(variationSelector)
			}
		}
	}
	return b.String()
}

func imageTag(assetBaseURL, name string) string {
	ext := ".png"
	if name == animatedEmoji {
		ext = ".gif"
	}
	return `<img alt="` + name + `" class="emoji" width="18" src="` + assetBaseURL +
		"/emoji/graphics/" + name + ext + `" title="` + name + `" />`
}

var defaultTranslator = sync.OnceValue(func() *Translator {
	return New()
})

// Default returns the shared Translator over the kyokomi/emoji table.
func Default() *Translator {
	return defaultTranslator()
}

// ToUnicode converts aliases with the default Translator.
func ToUnicode(text string) string {
	return Default().ToUnicode(text)
}

// ToAliases converts glyphs with the default Translator.
func ToAliases(text string) string {
	return Default().ToAliases(text)
}

// Render renders catalog aliases as image tags with the default Translator.
func Render(content, assetBaseURL string) string {
	return Default().Render(content, assetBaseURL)
}
