package model

import "strings"

// Commit is the hosting provider's view of a single commit
type Commit struct {
	SHA     string
	Message string
	HTMLURL string
}

// Ref is a created git reference (branch or tag)
type Ref struct {
	Ref string
	SHA string
}

// Comparison is the provider's diff summary between two commits
type Comparison struct {
	AheadBy      int
	BehindBy     int
	TotalCommits int
	HTMLURL      string
}

// Release is a named, tagged release known to the hosting provider.
// The core treats it as read-only input except when constructing a new one.
type Release struct {
	ID              int64
	TagName         string
	Name            string
	Body            string
	Prerelease      bool
	TargetCommitish string
	HTMLURL         string
}

// IsReleaseCandidate reports whether the release carries the RC tag
// naming convention
func (r *Release) IsReleaseCandidate() bool {
	return r != nil && (strings.HasPrefix(r.TagName, "rc-") || strings.HasPrefix(r.TagName, "rc/"))
}

// ReleaseParams carries the fields for creating or updating a release
type ReleaseParams struct {
	TagName         string
	Name            string
	Body            string
	Prerelease      bool
	TargetCommitish string
}

// CandidateInfo is the derived target state of a new release candidate,
// computed before any remote mutation and never modified afterwards
type CandidateInfo struct {
	RCBranch     string
	RCReleaseTag string
	ReleaseName  string
}

// PatchInfo is the derived target state of a patch run
type PatchInfo struct {
	WorkingRef  string
	PatchTag    string
	ReleaseName string
	Sequence    int
}

// CreateRCResult carries the stable identifying facts of a freshly created
// release candidate so callers can persist or react without re-querying
type CreateRCResult struct {
	RunID         string
	Name          string
	TagName       string
	Branch        string
	HTMLURL       string
	ComparisonURL string
	PreviousTag   string
	Steps         []Step
}

// PromoteOptions carries the caller-side decisions of a promote run.
// Force is the caller's explicit confirmation to promote a release that
// does not follow the RC naming convention.
type PromoteOptions struct {
	Force   bool
	Merge   bool
	Cleanup bool
}

// PromoteResult is the outcome of a successful promote run
type PromoteResult struct {
	RunID   string
	TagName string
	Name    string
	HTMLURL string
	Merged  bool
	Steps   []Step
}

// PatchResult is the outcome of a successful patch run
type PatchResult struct {
	RunID    string
	PatchTag string
	HTMLURL  string
	Steps    []Step
}
