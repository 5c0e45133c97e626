package emotion

import "slices"

// animatedEmoji is the one catalog entry shipped as a GIF.
const animatedEmoji = "huaji"

var catalogIndex = func() map[string]struct{} {
	idx := make(map[string]struct{}, len(catalog))
	for _, name := range catalog {
		idx[name] = struct{}{}
	}
	return idx
}()

// IsKnown reports whether name is a catalog entry. The match is exact and
// case-sensitive.
func IsKnown(name string) bool {
	_, ok := catalogIndex[name]
	return ok
}

// Catalog returns a copy of the catalog in its compiled-in order.
func Catalog() []string {
	return slices.Clone(catalog[:])
}
