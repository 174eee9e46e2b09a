package rig

import "strings"

// vendorPrefixes are rig-vendor bone name prefixes, longest first so "mixamorig:" wins over "mixamorig".
var vendorPrefixes = []string{
	"mixamorig:",
	"mixamorig_",
	"mixamorig",
}

// CanonicalName lowercases a bone name and strips a known rig-vendor prefix.
//
// Parameters:
//   - name: the bone name as authored
//
// Returns:
//   - string: the canonical key, e.g. "mixamorig:LeftArm" becomes "leftarm"
func CanonicalName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range vendorPrefixes {
		if rest, ok := strings.CutPrefix(key, p); ok && rest != "" {
			return rest
		}
	}
	return key
}
