package types

import "strings"

// SplitBullets splits text on BulletMarker, trimming each unit and dropping
// empty ones. Text before the first marker counts as a unit.
func SplitBullets(desc string) []string {
	parts := strings.Split(desc, BulletMarker)
	units := make([]string, 0, len(parts))
	for _, part := range parts {
		if unit := strings.TrimSpace(part); unit != "" {
			units = append(units, unit)
		}
	}
	return units
}

// HasBullets reports whether desc is written as a bullet list.
func HasBullets(desc string) bool {
	return strings.Contains(desc, BulletMarker)
}
