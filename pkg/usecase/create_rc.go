package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cutover-io/cutover/pkg/domain/model"
	"github.com/cutover-io/cutover/pkg/domain/types"
)

// CreateRC cuts a new release-candidate branch from the mainline, compares
// it against the previous release and publishes a prerelease. Steps run
// strictly in order; each step's input depends on the previous step's
// output, and the first failure aborts the run.
func (w *workflow) CreateRC(ctx context.Context, project *model.Project, latestRelease *model.Release, bump model.BumpLevel, sink model.StepSink) (*model.CreateRCResult, error) {
	runID := uuid.NewString()
	logger := runLogger(ctx, runID, "create-rc", project)
	log := model.NewStepLog(sink)

	info, err := model.NextCandidate(project, latestRelease, bump, w.today())
	if err != nil {
		return nil, err
	}

	logger.Info("starting create-rc run",
		"branch", info.RCBranch,
		"tag", info.RCReleaseTag,
		"bump", bump,
	)

	commit, err := w.hosting.GetLatestCommit(ctx, project, project.Mainline)
	if err != nil {
		return nil, w.fail(log, err)
	}
	log.Success(
		fmt.Sprintf("Fetched latest commit from %q", project.Mainline),
		fmt.Sprintf("%s: %s", shortSHA(commit.SHA), firstLine(commit.Message)),
		commit.HTMLURL,
	)

	ref, err := w.hosting.CreateRef(ctx, project, info.RCBranch, commit.SHA)
	if err != nil {
		if types.IsConflict(err) {
			return nil, w.fail(log, goerr.Wrap(err, "release-candidate branch already exists",
				goerr.V("branch", info.RCBranch),
				goerr.V("link", branchURL(project, info.RCBranch)),
			))
		}
		return nil, w.fail(log, err)
	}
	log.Success(
		fmt.Sprintf("Created release branch %q", info.RCBranch),
		shortSHA(ref.SHA),
		branchURL(project, info.RCBranch),
	)

	base := project.Mainline
	previousTag := ""
	if latestRelease != nil {
		base = latestRelease.TagName
		previousTag = latestRelease.TagName
	}
	comparison, err := w.hosting.GetComparison(ctx, project, base, info.RCBranch)
	if err != nil {
		return nil, w.fail(log, err)
	}
	log.Success(
		fmt.Sprintf("Compared %s...%s", base, info.RCBranch),
		fmt.Sprintf("%d commits since %s", comparison.AheadBy, base),
		comparison.HTMLURL,
	)

	release, err := w.hosting.CreateRelease(ctx, project, &model.ReleaseParams{
		TagName:         info.RCReleaseTag,
		Name:            info.ReleaseName,
		Body:            candidateBody(info, base, comparison),
		Prerelease:      true,
		TargetCommitish: info.RCBranch,
	})
	if err != nil {
		return nil, w.fail(log, err)
	}
	log.Success(
		fmt.Sprintf("Created release candidate %q", release.Name),
		release.TagName,
		release.HTMLURL,
	)

	logger.Info("create-rc run complete",
		"release", release.Name,
		"url", release.HTMLURL,
	)
	w.notify(ctx, fmt.Sprintf("[%s] cut release candidate %s: %s",
		project.Slug(), release.Name, release.HTMLURL))

	return &model.CreateRCResult{
		RunID:         runID,
		Name:          release.Name,
		TagName:       release.TagName,
		Branch:        info.RCBranch,
		HTMLURL:       release.HTMLURL,
		ComparisonURL: comparison.HTMLURL,
		PreviousTag:   previousTag,
		Steps:         log.Steps(),
	}, nil
}

func candidateBody(info *model.CandidateInfo, base string, comparison *model.Comparison) string {
	return fmt.Sprintf("Release candidate %s cut from %s.\n\n%d commits since %s: %s",
		info.RCReleaseTag, info.RCBranch, comparison.AheadBy, base, comparison.HTMLURL)
}
