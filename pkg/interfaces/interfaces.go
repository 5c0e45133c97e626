package interfaces

// Translator converts emoji between aliases, glyphs and image tags.
// Implementations must be safe for concurrent use.
type Translator interface {
	IsKnown(name string) bool
	ToUnicode(text string) string
	ToAliases(text string) string
	Strip(content string) string
	Render(content, assetBaseURL string) string
}
