package interfaces

import (
	"context"

	"github.com/cutover-io/cutover/pkg/domain/model"
)

// HostingClient defines the remote version-control hosting operations the
// workflows depend on. Each method is a single remote round-trip; provider
// errors surface verbatim as tagged errors with the HTTP status attached.
type HostingClient interface {
	// GetLatestCommit returns the head commit of a branch
	GetLatestCommit(ctx context.Context, project *model.Project, branch string) (*model.Commit, error)

	// CreateRef creates a branch ref pointing at the given commit.
	// An existing ref of the same name is a conflict, never a silent success.
	CreateRef(ctx context.Context, project *model.Project, branch, sha string) (*model.Ref, error)

	// DeleteRef removes a branch ref
	DeleteRef(ctx context.Context, project *model.Project, branch string) error

	// GetComparison returns the commit comparison between base and head
	GetComparison(ctx context.Context, project *model.Project, base, head string) (*model.Comparison, error)

	// CreateRelease creates a new release for an existing tag or target
	CreateRelease(ctx context.Context, project *model.Project, params *model.ReleaseParams) (*model.Release, error)

	// UpdateRelease edits an existing release in place
	UpdateRelease(ctx context.Context, project *model.Project, id int64, params *model.ReleaseParams) (*model.Release, error)

	// GetLatestRelease returns the most recent release, or (nil, nil) when
	// the repository has none
	GetLatestRelease(ctx context.Context, project *model.Project) (*model.Release, error)

	// CreateTag creates a lightweight tag pointing at the given commit.
	// An existing tag of the same name is a conflict.
	CreateTag(ctx context.Context, project *model.Project, tag, sha string) (*model.Ref, error)

	// Merge merges head into base and returns the merge commit
	Merge(ctx context.Context, project *model.Project, base, head, message string) (*model.Commit, error)
}
