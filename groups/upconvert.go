package groups

import "strings"

// v1/v2 kerning group name prefixes, renamed to the v3 public.kernN.* form
// on load.
const (
	legacyLeftPrefix  = "@MMK_L_"
	legacyRightPrefix = "@MMK_R_"
)

// UpconvertV1 renames every @MMK_L_*/@MMK_R_* group to its v3
// public.kern1.*/public.kern2.* equivalent, preserving membership and the
// group's position in iteration order.
func UpconvertV1(g *Groups) *Groups {
	out := New()
	for _, name := range g.names {
		newName := name
		switch {
		case strings.HasPrefix(name, legacyLeftPrefix):
			newName = Kern1Prefix + strings.TrimPrefix(name, legacyLeftPrefix)
		case strings.HasPrefix(name, legacyRightPrefix):
			newName = Kern2Prefix + strings.TrimPrefix(name, legacyRightPrefix)
		}
		out.Set(newName, g.members[name])
	}
	return out
}
