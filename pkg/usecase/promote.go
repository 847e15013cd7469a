package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cutover-io/cutover/pkg/domain/model"
	"github.com/cutover-io/cutover/pkg/domain/types"
)

// PromoteRC converts the latest release candidate into a full release,
// optionally merging its branch back into the mainline and deleting it.
// Precondition violations are detected before any remote call is made.
func (w *workflow) PromoteRC(ctx context.Context, project *model.Project, latestRelease *model.Release, opts model.PromoteOptions, sink model.StepSink) (*model.PromoteResult, error) {
	if latestRelease == nil {
		return nil, goerr.New("nothing to promote: the repository has no release",
			goerr.V("project", project.Slug()),
			goerr.T(types.ErrTagPrecondition),
		)
	}
	if opts.Cleanup && !opts.Merge {
		return nil, goerr.New("branch cleanup requires merging into the mainline first",
			goerr.T(types.ErrTagPrecondition),
		)
	}
	if (!latestRelease.Prerelease || !latestRelease.IsReleaseCandidate()) && !opts.Force {
		return nil, goerr.New("latest release is not a release candidate; confirm promotion explicitly",
			goerr.V("tag", latestRelease.TagName),
			goerr.V("link", latestRelease.HTMLURL),
			goerr.T(types.ErrTagPrecondition),
		)
	}

	runID := uuid.NewString()
	logger := runLogger(ctx, runID, "promote", project)
	log := model.NewStepLog(sink)

	logger.Info("starting promote run",
		"tag", latestRelease.TagName,
		"merge", opts.Merge,
		"cleanup", opts.Cleanup,
	)

	release, err := w.hosting.UpdateRelease(ctx, project, latestRelease.ID, &model.ReleaseParams{
		Name:       promotedName(project, latestRelease),
		Prerelease: false,
	})
	if err != nil {
		return nil, w.fail(log, err)
	}
	log.Success(
		fmt.Sprintf("Promoted %q to a full release", release.TagName),
		release.Name,
		release.HTMLURL,
	)

	merged := false
	if opts.Merge {
		rcBranch := candidateBranch(latestRelease)
		commit, err := w.hosting.Merge(ctx, project, project.Mainline, rcBranch,
			fmt.Sprintf("Merge %s into %s", rcBranch, project.Mainline))
		if err != nil {
			return nil, w.fail(log, err)
		}
		merged = true
		log.Success(
			fmt.Sprintf("Merged %q into %q", rcBranch, project.Mainline),
			shortSHA(commit.SHA),
			commit.HTMLURL,
		)

		if opts.Cleanup {
			if err := w.hosting.DeleteRef(ctx, project, rcBranch); err != nil {
				return nil, w.fail(log, err)
			}
			log.Success(fmt.Sprintf("Deleted branch %q", rcBranch), "", "")
		}
	}

	logger.Info("promote run complete",
		"release", release.Name,
		"merged", merged,
	)
	w.notify(ctx, fmt.Sprintf("[%s] promoted %s to a full release: %s",
		project.Slug(), release.Name, release.HTMLURL))

	return &model.PromoteResult{
		RunID:   runID,
		TagName: release.TagName,
		Name:    release.Name,
		HTMLURL: release.HTMLURL,
		Merged:  merged,
		Steps:   log.Steps(),
	}, nil
}

// promotedName derives the full-release title from the candidate tag,
// falling back to the existing title when the tag does not parse under the
// project's strategy (force-promoted foreign tags).
func promotedName(project *model.Project, release *model.Release) string {
	switch project.Strategy {
	case model.StrategyCalVer:
		if v, err := model.ParseCalVer(release.TagName); err == nil {
			return "Version " + v.Date
		}
	default:
		if v, err := model.ParseSemVer(release.TagName); err == nil {
			return "Version " + v.String()
		}
	}
	return release.Name
}

// candidateBranch resolves the branch a candidate release was cut on. RC
// releases always target their rc/ branch; anything else falls back to the
// branch spelled by the tag.
func candidateBranch(release *model.Release) string {
	if strings.HasPrefix(release.TargetCommitish, "rc/") {
		return release.TargetCommitish
	}
	return "rc/" + stripRCPrefix(release.TagName)
}

func stripRCPrefix(tag string) string {
	return strings.TrimPrefix(strings.TrimPrefix(tag, "rc-"), "rc/")
}
