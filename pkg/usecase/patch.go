package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cutover-io/cutover/pkg/domain/model"
	"github.com/cutover-io/cutover/pkg/domain/types"
)

// Patch applies a follow-up fix release on top of an existing full release:
// it tags the current head of the release branch with the next patch
// sequence and updates the release in place. A colliding patch tag is
// terminal; the run never retries.
func (w *workflow) Patch(ctx context.Context, project *model.Project, targetRelease *model.Release, sink model.StepSink) (*model.PatchResult, error) {
	if targetRelease == nil {
		return nil, goerr.New("no release to patch",
			goerr.V("project", project.Slug()),
			goerr.T(types.ErrTagPrecondition),
		)
	}
	if targetRelease.Prerelease {
		return nil, goerr.New("cannot patch a release candidate; promote it first",
			goerr.V("tag", targetRelease.TagName),
			goerr.V("link", targetRelease.HTMLURL),
			goerr.T(types.ErrTagPrecondition),
		)
	}

	info, err := model.NextPatch(project, targetRelease)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := runLogger(ctx, runID, "patch", project)
	log := model.NewStepLog(sink)

	branch := targetRelease.TargetCommitish
	if branch == "" {
		branch = project.Mainline
	}

	logger.Info("starting patch run",
		"target", targetRelease.TagName,
		"branch", branch,
		"patch_tag", info.PatchTag,
	)

	commit, err := w.hosting.GetLatestCommit(ctx, project, branch)
	if err != nil {
		return nil, w.fail(log, err)
	}
	log.Success(
		fmt.Sprintf("Fetched target branch %q", branch),
		fmt.Sprintf("%s: %s", shortSHA(commit.SHA), firstLine(commit.Message)),
		commit.HTMLURL,
	)

	ref, err := w.hosting.CreateRef(ctx, project, info.WorkingRef, commit.SHA)
	if err != nil {
		if types.IsConflict(err) {
			return nil, w.fail(log, goerr.Wrap(err, "patch working branch already exists",
				goerr.V("branch", info.WorkingRef),
				goerr.V("link", branchURL(project, info.WorkingRef)),
			))
		}
		return nil, w.fail(log, err)
	}
	log.Success(
		fmt.Sprintf("Created patch branch %q", info.WorkingRef),
		shortSHA(ref.SHA),
		branchURL(project, info.WorkingRef),
	)

	if _, err := w.hosting.CreateTag(ctx, project, info.PatchTag, commit.SHA); err != nil {
		if types.IsConflict(err) {
			return nil, w.fail(log, goerr.Wrap(err, "patch tag already exists",
				goerr.V("tag", info.PatchTag),
			))
		}
		return nil, w.fail(log, err)
	}
	log.Success(
		fmt.Sprintf("Tagged %q", info.PatchTag),
		shortSHA(commit.SHA),
		"",
	)

	release, err := w.hosting.UpdateRelease(ctx, project, targetRelease.ID, &model.ReleaseParams{
		Name: info.ReleaseName,
		Body: fmt.Sprintf("%s\n\nPatch %d: %s at %s.",
			targetRelease.Body, info.Sequence, info.PatchTag, shortSHA(commit.SHA)),
		Prerelease: false,
	})
	if err != nil {
		return nil, w.fail(log, err)
	}
	log.Success(
		fmt.Sprintf("Updated release to %q", release.Name),
		info.PatchTag,
		release.HTMLURL,
	)

	if err := w.hosting.DeleteRef(ctx, project, info.WorkingRef); err != nil {
		return nil, w.fail(log, err)
	}
	log.Success(fmt.Sprintf("Deleted patch branch %q", info.WorkingRef), "", "")

	logger.Info("patch run complete",
		"release", release.Name,
		"patch_tag", info.PatchTag,
	)
	w.notify(ctx, fmt.Sprintf("[%s] patched %s as %s: %s",
		project.Slug(), targetRelease.TagName, info.PatchTag, release.HTMLURL))

	return &model.PatchResult{
		RunID:    runID,
		PatchTag: info.PatchTag,
		HTMLURL:  release.HTMLURL,
		Steps:    log.Steps(),
	}, nil
}
