// Package assets classifies stored image paths and builds preview URLs.
// The resolver is pure: the asset base comes in at construction time,
// never from ambient configuration.
package assets

import "strings"

// Resolver turns stored image paths into displayable URLs against a
// configured asset base. An empty Base is allowed; Resolve then returns
// paths unchanged and Hosted always reports false.
type Resolver struct {
	Base string
}

// NewResolver returns a resolver for the given asset base.
func NewResolver(base string) Resolver {
	return Resolver{Base: base}
}

// Resolve returns the URL to use for preview rendering. Absolute
// http(s) URLs and, with no base configured, all paths pass through
// unchanged; anything else has its leading slashes stripped and is
// concatenated onto the base exactly, with no path normalization.
func (r Resolver) Resolve(path string) string {
	if r.Base == "" || isAbsolute(path) {
		return path
	}
	return r.Base + strings.TrimLeft(path, "/")
}

// Hosted reports whether a path already looks like a hosted asset:
// it starts with the configured base or is an absolute http(s) URL.
// This is a superset check; it never verifies the object exists. With
// no base configured it is always false.
func (r Resolver) Hosted(path string) bool {
	if r.Base == "" {
		return false
	}
	return strings.HasPrefix(path, r.Base) || isAbsolute(path)
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
