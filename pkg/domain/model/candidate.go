package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/cutover-io/cutover/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// NextCandidate computes the branch name, release tag and title of the next
// release candidate. Pure: the current date is injected as a yyyy.MM.dd
// string so calver results are deterministic under test.
//
// Calver projects ignore latestRelease and bump entirely; the same-day
// sequence always starts at 0 and a re-cut on the same day surfaces as a
// ref conflict at branch creation.
func NextCandidate(project *Project, latestRelease *Release, bump BumpLevel, today string) (*CandidateInfo, error) {
	if project.Strategy == StrategyCalVer {
		if _, err := time.Parse(CalVerDateFormat, today); err != nil {
			return nil, goerr.Wrap(err, "injected date must be yyyy.MM.dd",
				goerr.V("date", today), goerr.T(types.ErrTagParse))
		}
		return &CandidateInfo{
			RCBranch:     "rc/" + today,
			RCReleaseTag: fmt.Sprintf("rc-%s_0", today),
			ReleaseName:  "Version " + today,
		}, nil
	}

	next := SemVer{Patch: 1}
	if latestRelease != nil {
		latest, err := ParseSemVer(latestRelease.TagName)
		if err != nil {
			return nil, goerr.Wrap(err, "latest release tag is not a valid semver tag",
				goerr.V("tag", latestRelease.TagName))
		}
		next = latest.Bump(bump)
	}

	return &CandidateInfo{
		RCBranch:     "rc/" + next.String(),
		RCReleaseTag: "rc-" + next.String(),
		ReleaseName:  "Version " + next.String(),
	}, nil
}

// patchNamePattern extracts the patch sequence a previous patch run
// recorded in the release title
var patchNamePattern = regexp.MustCompile(`\(patch (\d+)\)$`)

// NextPatch computes the working ref, tag and title for the next patch on
// top of an existing release. Patch tags use the patch- prefix with a
// monotonically increasing _<n> suffix, distinct from RC numbering; the
// sequence is read back from the release title so repeated patches keep
// counting up. Pure.
func NextPatch(project *Project, target *Release) (*PatchInfo, error) {
	var version string
	switch project.Strategy {
	case StrategyCalVer:
		v, err := ParseCalVer(target.TagName)
		if err != nil {
			return nil, err
		}
		version = v.String()
	default:
		v, err := ParseSemVer(target.TagName)
		if err != nil {
			return nil, err
		}
		version = v.String()
	}

	seq := 0
	if m := patchNamePattern.FindStringSubmatch(target.Name); m != nil {
		prev, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, goerr.Wrap(err, "malformed patch sequence in release title",
				goerr.V("name", target.Name), goerr.T(types.ErrTagParse))
		}
		seq = prev + 1
	}

	return &PatchInfo{
		WorkingRef:  fmt.Sprintf("patch/%s_%d", version, seq),
		PatchTag:    fmt.Sprintf("patch-%s_%d", version, seq),
		ReleaseName: fmt.Sprintf("Version %s (patch %d)", version, seq),
		Sequence:    seq,
	}, nil
}
