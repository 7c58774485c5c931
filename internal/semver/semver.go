// Package semver provides semantic version comparison for model listings.
//
// Purpose:
//
//	Order and filter model versions semver-aware for `model list --sort
//	version` and `--version` constraint filtering, tolerating the loose
//	version strings models carry in practice.
//
// Dependencies:
//   - github.com/Masterminds/semver/v3: Version and constraint parsing
package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version.
type Version struct {
	v *mm.Version
}

// Constraint is a semantic version constraint.
//
// Examples:
// - ">=1.2.0 <2.0.0"
// - "^1.0.0"
// - "~1.4"
type Constraint struct {
	c *mm.Constraints
}

// ParseVersion parses a version string. Loose forms like "1.2" or "v1.2.3"
// are accepted.
func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

// ParseConstraint parses a version constraint.
func ParseConstraint(raw string) (Constraint, error) {
	c, err := mm.NewConstraint(raw)
	if err != nil {
		return Constraint{}, fmt.Errorf("semver: parse constraint %q: %w", raw, err)
	}
	return Constraint{c: c}, nil
}

// Satisfies reports whether v satisfies c.
func Satisfies(v Version, c Constraint) bool {
	if v.v == nil || c.c == nil {
		return false
	}
	return c.c.Check(v.v)
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// CompareStrings compares two raw version strings semver-aware. Strings that
// do not parse sort before valid versions, among themselves lexically.
func CompareStrings(a, b string) int {
	va, errA := ParseVersion(a)
	vb, errB := ParseVersion(b)

	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	default:
		return Compare(va, vb)
	}
}

// SatisfiesString reports whether the raw version string satisfies c.
// Unparseable versions satisfy nothing.
func SatisfiesString(raw string, c Constraint) bool {
	v, err := ParseVersion(raw)
	if err != nil {
		return false
	}
	return Satisfies(v, c)
}
