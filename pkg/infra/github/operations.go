package github

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cutover-io/cutover/pkg/domain/model"
)

// GetLatestCommit returns the head commit of a branch
func (c *client) GetLatestCommit(ctx context.Context, project *model.Project, branch string) (*model.Commit, error) {
	commit, _, err := c.githubClient.Repositories.GetCommit(ctx, project.Owner, project.Repo, branch, nil)
	if err != nil {
		return nil, translate(err, "failed to get latest commit",
			goerr.V("project", project.Slug()), goerr.V("branch", branch))
	}

	return &model.Commit{
		SHA:     commit.GetSHA(),
		Message: commit.GetCommit().GetMessage(),
		HTMLURL: commit.GetHTMLURL(),
	}, nil
}

// CreateRef creates a branch ref pointing at the given commit
func (c *client) CreateRef(ctx context.Context, project *model.Project, branch, sha string) (*model.Ref, error) {
	ref, _, err := c.githubClient.Git.CreateRef(ctx, project.Owner, project.Repo, github.CreateRef{
		Ref: "refs/heads/" + branch,
		SHA: sha,
	})
	if err != nil {
		return nil, translate(err, "failed to create ref",
			goerr.V("project", project.Slug()), goerr.V("branch", branch), goerr.V("sha", sha))
	}

	return &model.Ref{Ref: ref.GetRef(), SHA: ref.GetObject().GetSHA()}, nil
}

// DeleteRef removes a branch ref
func (c *client) DeleteRef(ctx context.Context, project *model.Project, branch string) error {
	if _, err := c.githubClient.Git.DeleteRef(ctx, project.Owner, project.Repo, "refs/heads/"+branch); err != nil {
		return translate(err, "failed to delete ref",
			goerr.V("project", project.Slug()), goerr.V("branch", branch))
	}
	return nil
}

// GetComparison returns the commit comparison between base and head
func (c *client) GetComparison(ctx context.Context, project *model.Project, base, head string) (*model.Comparison, error) {
	cmp, _, err := c.githubClient.Repositories.CompareCommits(ctx, project.Owner, project.Repo, base, head, nil)
	if err != nil {
		return nil, translate(err, "failed to compare commits",
			goerr.V("project", project.Slug()), goerr.V("base", base), goerr.V("head", head))
	}

	return &model.Comparison{
		AheadBy:      cmp.GetAheadBy(),
		BehindBy:     cmp.GetBehindBy(),
		TotalCommits: cmp.GetTotalCommits(),
		HTMLURL:      cmp.GetHTMLURL(),
	}, nil
}

// CreateRelease creates a new release
func (c *client) CreateRelease(ctx context.Context, project *model.Project, params *model.ReleaseParams) (*model.Release, error) {
	rel, _, err := c.githubClient.Repositories.CreateRelease(ctx, project.Owner, project.Repo, toRepositoryRelease(params))
	if err != nil {
		return nil, translate(err, "failed to create release",
			goerr.V("project", project.Slug()), goerr.V("tag", params.TagName))
	}

	return toRelease(rel), nil
}

// UpdateRelease edits an existing release in place
func (c *client) UpdateRelease(ctx context.Context, project *model.Project, id int64, params *model.ReleaseParams) (*model.Release, error) {
	rel, _, err := c.githubClient.Repositories.EditRelease(ctx, project.Owner, project.Repo, id, toRepositoryRelease(params))
	if err != nil {
		return nil, translate(err, "failed to update release",
			goerr.V("project", project.Slug()), goerr.V("release_id", id))
	}

	return toRelease(rel), nil
}

// GetLatestRelease returns the most recent release, or (nil, nil) when the
// repository has none
func (c *client) GetLatestRelease(ctx context.Context, project *model.Project) (*model.Release, error) {
	rel, _, err := c.githubClient.Repositories.GetLatestRelease(ctx, project.Owner, project.Repo)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, translate(err, "failed to get latest release",
			goerr.V("project", project.Slug()))
	}

	return toRelease(rel), nil
}

// CreateTag creates a lightweight tag pointing at the given commit
func (c *client) CreateTag(ctx context.Context, project *model.Project, tag, sha string) (*model.Ref, error) {
	ref, _, err := c.githubClient.Git.CreateRef(ctx, project.Owner, project.Repo, github.CreateRef{
		Ref: "refs/tags/" + tag,
		SHA: sha,
	})
	if err != nil {
		return nil, translate(err, "failed to create tag",
			goerr.V("project", project.Slug()), goerr.V("tag", tag), goerr.V("sha", sha))
	}

	return &model.Ref{Ref: ref.GetRef(), SHA: ref.GetObject().GetSHA()}, nil
}

// Merge merges head into base and returns the merge commit
func (c *client) Merge(ctx context.Context, project *model.Project, base, head, message string) (*model.Commit, error) {
	commit, _, err := c.githubClient.Repositories.Merge(ctx, project.Owner, project.Repo, &github.RepositoryMergeRequest{
		Base:          github.Ptr(base),
		Head:          github.Ptr(head),
		CommitMessage: github.Ptr(message),
	})
	if err != nil {
		return nil, translate(err, "failed to merge branch",
			goerr.V("project", project.Slug()), goerr.V("base", base), goerr.V("head", head))
	}

	return &model.Commit{
		SHA:     commit.GetSHA(),
		Message: commit.GetCommit().GetMessage(),
		HTMLURL: commit.GetHTMLURL(),
	}, nil
}

// toRepositoryRelease converts release params, leaving unset string fields
// nil so an update does not erase them on the provider side
func toRepositoryRelease(params *model.ReleaseParams) *github.RepositoryRelease {
	rel := &github.RepositoryRelease{
		Prerelease: github.Ptr(params.Prerelease),
	}
	if params.TagName != "" {
		rel.TagName = github.Ptr(params.TagName)
	}
	if params.Name != "" {
		rel.Name = github.Ptr(params.Name)
	}
	if params.Body != "" {
		rel.Body = github.Ptr(params.Body)
	}
	if params.TargetCommitish != "" {
		rel.TargetCommitish = github.Ptr(params.TargetCommitish)
	}
	return rel
}

func toRelease(rel *github.RepositoryRelease) *model.Release {
	return &model.Release{
		ID:              rel.GetID(),
		TagName:         rel.GetTagName(),
		Name:            rel.GetName(),
		Body:            rel.GetBody(),
		Prerelease:      rel.GetPrerelease(),
		TargetCommitish: rel.GetTargetCommitish(),
		HTMLURL:         rel.GetHTMLURL(),
	}
}
