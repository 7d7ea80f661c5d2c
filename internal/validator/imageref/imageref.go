// Package imageref implements the image-reference format sub-engine
// (spec.md §4.6 FROM): tag and digest grammar validation, kept local
// rather than delegated to a registry-aware reference library because
// the grammar pinned by spec.md (a permissive historical tag/digest
// charset) predates and diverges from the stricter public surface
// distribution/reference now exposes.
package imageref

import "regexp"

// tagPattern is spec.md §4.6's exact FROM tag grammar.
var tagPattern = regexp.MustCompile(`^[\w][\w.\-]{0,127}$`)

// digestAlgorithmPattern and digestHexPattern are spec.md §4.6's
// `algorithm:hex` digest grammar.
var (
	digestAlgorithmPattern = regexp.MustCompile(`^[A-Fa-f0-9_+.\-]+$`)
	digestHexPattern       = regexp.MustCompile(`^[A-Fa-f0-9]+$`)
)

// ValidTag reports whether s is an acceptable FROM image tag.
func ValidTag(s string) bool {
	return tagPattern.MatchString(s)
}

// ValidDigest reports whether s is an acceptable FROM image digest, i.e.
// `algorithm:hex` with both halves matching their respective grammars.
func ValidDigest(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return digestAlgorithmPattern.MatchString(s[:i]) && digestHexPattern.MatchString(s[i+1:])
		}
	}
	return false
}
