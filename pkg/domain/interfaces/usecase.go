package interfaces

import (
	"context"

	"github.com/cutover-io/cutover/pkg/domain/model"
)

// WorkflowUseCase defines the three release workflow entry points. Callers
// supply the current release state; the orchestrators never look entities
// up themselves.
type WorkflowUseCase interface {
	// CreateRC cuts a new release-candidate branch, compares it against the
	// previous release and publishes a prerelease
	CreateRC(ctx context.Context, project *model.Project, latestRelease *model.Release, bump model.BumpLevel, sink model.StepSink) (*model.CreateRCResult, error)

	// PromoteRC converts the latest release candidate into a full release
	PromoteRC(ctx context.Context, project *model.Project, latestRelease *model.Release, opts model.PromoteOptions, sink model.StepSink) (*model.PromoteResult, error)

	// Patch applies a follow-up fix release on top of an existing
	// non-prerelease release
	Patch(ctx context.Context, project *model.Project, targetRelease *model.Release, sink model.StepSink) (*model.PatchResult, error)
}

// Notifier announces terminal workflow outcomes to an external channel
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
