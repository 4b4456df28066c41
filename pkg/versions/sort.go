// Package versions orders the versions available for a package.
package versions

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"hub-install-api/pkg/hub"
)

// SortNewestFirst returns a copy of available ordered newest first.
//
// Versions that parse as semver come first, highest first. Versions that do
// not parse follow, most recently published first. Ties keep their input order.
func SortNewestFirst(available []hub.Version) []hub.Version {
	type entry struct {
		v      hub.Version
		parsed *semver.Version
	}

	entries := make([]entry, 0, len(available))
	for _, v := range available {
		parsed, err := semver.NewVersion(v.Version)
		if err != nil {
			parsed = nil
		}
		entries = append(entries, entry{v: v, parsed: parsed})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.parsed != nil && b.parsed != nil:
			if c := a.parsed.Compare(b.parsed); c != 0 {
				return c > 0
			}
			return a.v.TS > b.v.TS
		case a.parsed != nil:
			return true
		case b.parsed != nil:
			return false
		default:
			return a.v.TS > b.v.TS
		}
	})

	sorted := make([]hub.Version, 0, len(entries))
	for _, e := range entries {
		sorted = append(sorted, e.v)
	}
	return sorted
}

// Latest returns the newest version, or false when there is none.
func Latest(available []hub.Version) (hub.Version, bool) {
	sorted := SortNewestFirst(available)
	if len(sorted) == 0 {
		return hub.Version{}, false
	}
	return sorted[0], true
}
