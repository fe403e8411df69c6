package packages

import (
	"strings"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Find returns the package called name.
func Find(all []types.Package, name string) (types.Package, bool) {
	for _, p := range all {
		if p.Name == name {
			return p, true
		}
	}
	return types.Package{}, false
}

// Select picks packages by name, in the order requested. No names selects
// everything. Trailing slashes left by shell completion are ignored and
// duplicates are dropped.
func Select(all []types.Package, names []string) ([]types.Package, error) {
	if len(names) == 0 {
		return all, nil
	}

	var (
		selected []types.Package
		missing  []string
		seen     = make(map[string]bool)
	)
	for _, raw := range names {
		name := strings.TrimRight(raw, "/")
		if seen[name] {
			continue
		}
		seen[name] = true

		p, ok := Find(all, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		selected = append(selected, p)
	}

	if len(missing) > 0 {
		available := make([]string, 0, len(all))
		for _, p := range all {
			available = append(available, p.Name)
		}
		return nil, errors.Newf(errors.ErrPackageNotFound, "package not found: %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing).
			WithDetail("available", available)
	}
	return selected, nil
}
