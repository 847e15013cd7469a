package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cutover-io/cutover/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// BumpLevel selects which semantic version component increments
type BumpLevel string

const (
	BumpMajor BumpLevel = "major"
	BumpMinor BumpLevel = "minor"
	BumpPatch BumpLevel = "patch"
)

// ParseBumpLevel validates and converts a string into a BumpLevel
func ParseBumpLevel(s string) (BumpLevel, error) {
	switch BumpLevel(s) {
	case BumpMajor, BumpMinor, BumpPatch:
		return BumpLevel(s), nil
	default:
		return "", goerr.New("unknown bump level", goerr.V("level", s), goerr.T(types.ErrTagParse))
	}
}

// SemVer is a parsed semantic version tag. Components are never negative.
type SemVer struct {
	Major int
	Minor int
	Patch int
}

// tagPrefixes are stripped before parsing a version out of a tag name
var tagPrefixes = []string{"rc-", "version-", "patch-", "v"}

func stripTagPrefix(tag string) string {
	for _, p := range tagPrefixes {
		if strings.HasPrefix(tag, p) {
			return strings.TrimPrefix(tag, p)
		}
	}
	return tag
}

// isDigits reports whether s is non-empty and made of ASCII digits only.
// strconv.Atoi alone is too lenient here: it accepts a leading sign.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseSemVer parses a tag of the form X.Y.Z, tolerating the known tag
// prefixes (rc-, version-, patch-, v). Malformed input is a parse error
// carrying the offending string.
func ParseSemVer(tag string) (SemVer, error) {
	body := stripTagPrefix(tag)

	parts := strings.Split(body, ".")
	if len(parts) != 3 {
		return SemVer{}, goerr.New("semver tag must have three components",
			goerr.V("tag", tag), goerr.T(types.ErrTagParse))
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || !isDigits(p) || (len(p) > 1 && p[0] == '0') {
			return SemVer{}, goerr.New("semver component must be a non-negative integer",
				goerr.V("tag", tag), goerr.V("component", p), goerr.T(types.ErrTagParse))
		}
		nums[i] = n
	}

	return SemVer{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String renders the version as X.Y.Z
func (v SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the next version for the given level, resetting lower
// components to zero
func (v SemVer) Bump(level BumpLevel) SemVer {
	switch level {
	case BumpMajor:
		return SemVer{Major: v.Major + 1}
	case BumpMinor:
		return SemVer{Major: v.Major, Minor: v.Minor + 1}
	default:
		return SemVer{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Compare returns -1, 0 or 1 comparing v against other in the
// (major, minor, patch) total order
func (v SemVer) Compare(other SemVer) int {
	for _, d := range []int{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

// CalVerDateFormat is the Go layout of calendar version dates (yyyy.MM.dd)
const CalVerDateFormat = "2006.01.02"

// CalVer is a parsed calendar version tag: a date stamp plus a same-day
// sequence counter. The date is always injected by the caller so the model
// stays deterministic under test.
type CalVer struct {
	Date     string
	Sequence int
}

// ParseCalVer parses a tag of the form <date>_<seq> with the known tag
// prefixes tolerated, e.g. rc-2024.03.01_0
func ParseCalVer(tag string) (CalVer, error) {
	body := stripTagPrefix(tag)

	date, seq, ok := strings.Cut(body, "_")
	if !ok {
		return CalVer{}, goerr.New("calver tag must have a _<sequence> suffix",
			goerr.V("tag", tag), goerr.T(types.ErrTagParse))
	}

	// time.Parse tolerates unpadded components, so round-trip to demand
	// the exact yyyy.MM.dd shape.
	parsed, err := time.Parse(CalVerDateFormat, date)
	if err != nil || parsed.Format(CalVerDateFormat) != date {
		return CalVer{}, goerr.New("calver date must be yyyy.MM.dd",
			goerr.V("tag", tag), goerr.V("date", date), goerr.T(types.ErrTagParse))
	}

	n, err := strconv.Atoi(seq)
	if err != nil || !isDigits(seq) {
		return CalVer{}, goerr.New("calver sequence must be a non-negative integer",
			goerr.V("tag", tag), goerr.V("sequence", seq), goerr.T(types.ErrTagParse))
	}

	return CalVer{Date: date, Sequence: n}, nil
}

// String renders the version as <date>_<seq>
func (v CalVer) String() string {
	return fmt.Sprintf("%s_%d", v.Date, v.Sequence)
}

// Compare returns -1, 0 or 1 comparing v against other in the
// (date, sequence) total order. Dates compare lexicographically, which
// matches chronological order for the fixed yyyy.MM.dd layout.
func (v CalVer) Compare(other CalVer) int {
	if c := strings.Compare(v.Date, other.Date); c != 0 {
		return c
	}
	switch {
	case v.Sequence < other.Sequence:
		return -1
	case v.Sequence > other.Sequence:
		return 1
	default:
		return 0
	}
}
