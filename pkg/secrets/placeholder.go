package secrets

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	tokenPrefix = "{{slinky:"
	tokenSuffix = "}}"
)

// TokenPattern matches placeholder tokens; group 1 is the placeholder name.
var TokenPattern = regexp.MustCompile(`\{\{slinky:([A-Z_][A-Z0-9_]*)\}\}`)

// Token renders the placeholder token for name.
func Token(name string) string {
	return tokenPrefix + name + tokenSuffix
}

// TokenNames returns the distinct placeholder names referenced in data, in
// order of first appearance.
func TokenNames(data []byte) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range TokenPattern.FindAllSubmatch(data, -1) {
		name := string(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

var nonIdent = regexp.MustCompile(`[^A-Z0-9_]+`)

// identifier turns an assignment name into an upper-case identifier.
func identifier(name string) string {
	id := nonIdent.ReplaceAllString(strings.ToUpper(name), "_")
	id = strings.Trim(id, "_")
	if id == "" {
		return ""
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "_" + id
	}
	return id
}

// namer hands out placeholder names unique within one file.
type namer struct {
	used     map[string]bool
	counters map[Category]int
}

// newNamer reserves taken, the names of tokens already in the file, so a new
// secret never reuses the placeholder of one redacted earlier.
func newNamer(taken ...string) *namer {
	n := &namer{used: make(map[string]bool), counters: make(map[Category]int)}
	for _, name := range taken {
		n.used[name] = true
	}
	return n
}

// next derives a name from lhs when present, else from the category and a
// per-category counter. Collisions get _2, _3, ... appended.
func (n *namer) next(lhs string, category Category) string {
	base := identifier(lhs)
	if base == "" {
		n.counters[category]++
		base = fmt.Sprintf("%s_%d", strings.ToUpper(string(category)), n.counters[category])
	}

	name := base
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	n.used[name] = true
	return name
}

// Mask renders a preview that never reveals more than the first and last
// three characters, and nothing at all for short values.
func Mask(value string) string {
	r := []rune(value)
	if len(r) < 12 {
		return "********"
	}
	return string(r[:3]) + "********" + string(r[len(r)-3:])
}
