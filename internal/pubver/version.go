// Package pubver parses and bumps pubspec versions of the form
// major.minor.patch[-prerelease][+build] and rewrites them in place inside
// pubspec.yaml using text substitution, so comments and formatting survive.
package pubver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a pubspec version. Build is the platform build number
// (versionCode on Android, CFBundleVersion on iOS).
type Version struct {
	Major      int
	Minor      int
	Patch      int
	PreRelease string
	Build      int
	HasBuild   bool
}

// Part names the component to bump.
type Part string

const (
	PartMajor Part = "major"
	PartMinor Part = "minor"
	PartPatch Part = "patch"
	PartBuild Part = "build"
)

// Parts lists the accepted bump targets.
var Parts = []Part{PartMajor, PartMinor, PartPatch, PartBuild}

var (
	// ErrInvalidVersion is returned for strings that are not pubspec versions.
	ErrInvalidVersion = errors.New("invalid version format")

	// ErrNoVersion is returned by Rewrite when the manifest has no version line.
	ErrNoVersion = errors.New("no version field in pubspec")

	versionRegex = regexp.MustCompile(
		`^(\d+)\.(\d+)\.(\d+)` +
			`(?:-([0-9A-Za-z\-\.]+))?` +
			`(?:\+(\d+))?$`,
	)

	// versionLineRegex matches the top-level version key; the first group
	// is the version value without surrounding quotes.
	versionLineRegex = regexp.MustCompile(`(?m)^version:[ \t]*["']?([^\s"'#]+)["']?`)
)

// maxVersionLength bounds the input handed to the regex.
const maxVersionLength = 128

// Parse parses "1.2.3", "1.2.3+4" or "1.2.3-beta.1+4".
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return Version{}, fmt.Errorf("%w: exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	m := versionRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	v := Version{PreRelease: m[4]}
	var err error
	if v.Major, err = strconv.Atoi(m[1]); err != nil {
		return Version{}, fmt.Errorf("%w: invalid major version: %s", ErrInvalidVersion, err)
	}
	if v.Minor, err = strconv.Atoi(m[2]); err != nil {
		return Version{}, fmt.Errorf("%w: invalid minor version: %s", ErrInvalidVersion, err)
	}
	if v.Patch, err = strconv.Atoi(m[3]); err != nil {
		return Version{}, fmt.Errorf("%w: invalid patch version: %s", ErrInvalidVersion, err)
	}
	if m[5] != "" {
		if v.Build, err = strconv.Atoi(m[5]); err != nil {
			return Version{}, fmt.Errorf("%w: invalid build number: %s", ErrInvalidVersion, err)
		}
		v.HasBuild = true
	}
	return v, nil
}

// String renders the version in pubspec form.
func (v Version) String() string {
	var sb strings.Builder
	sb.Grow(16)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	if v.HasBuild {
		sb.WriteByte('+')
		sb.WriteString(strconv.Itoa(v.Build))
	}
	return sb.String()
}

// ParsePart converts a label to a Part.
func ParsePart(s string) (Part, error) {
	for _, p := range Parts {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid bump part %q: expected one of major, minor, patch, build", s)
}

// Bump returns v with part incremented.
//
//   - "build": 1.2.3+4 -> 1.2.3+5 (adds +1 when absent)
//   - "patch": 1.2.3+4 -> 1.2.4+5
//   - "minor": 1.2.3+4 -> 1.3.0+5
//   - "major": 1.2.3+4 -> 2.0.0+5
//
// Semantic bumps clear the pre-release label and advance the build number
// only when one is present, since stores reject a repeated build number.
func Bump(v Version, part Part) (Version, error) {
	next := v
	switch part {
	case PartBuild:
		next.Build++
		next.HasBuild = true
		return next, nil
	case PartPatch:
		next.Patch++
	case PartMinor:
		next.Minor++
		next.Patch = 0
	case PartMajor:
		next.Major++
		next.Minor = 0
		next.Patch = 0
	default:
		return Version{}, fmt.Errorf("invalid bump part %q", part)
	}
	next.PreRelease = ""
	if next.HasBuild {
		next.Build++
	}
	return next, nil
}

// Find returns the version declared in pubspec content.
func Find(content []byte) (Version, error) {
	m := versionLineRegex.FindSubmatch(content)
	if m == nil {
		return Version{}, ErrNoVersion
	}
	return Parse(string(m[1]))
}

// Rewrite replaces the declared version in content with next, leaving every
// other byte untouched. It returns the updated content and the previous
// version.
func Rewrite(content []byte, next Version) ([]byte, Version, error) {
	loc := versionLineRegex.FindSubmatchIndex(content)
	if loc == nil {
		return nil, Version{}, ErrNoVersion
	}

	prev, err := Parse(string(content[loc[2]:loc[3]]))
	if err != nil {
		return nil, Version{}, err
	}

	updated := make([]byte, 0, len(content)+8)
	updated = append(updated, content[:loc[2]]...)
	updated = append(updated, next.String()...)
	updated = append(updated, content[loc[3]:]...)
	return updated, prev, nil
}
