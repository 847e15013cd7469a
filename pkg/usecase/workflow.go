package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cutover-io/cutover/pkg/domain/interfaces"
	"github.com/cutover-io/cutover/pkg/domain/model"
	"github.com/cutover-io/cutover/pkg/utils/async"
)

type workflow struct {
	hosting          interfaces.HostingClient
	notifier         interfaces.Notifier
	keepStepsOnError bool
	today            func() string
}

// Option is a functional option for the workflow service
type Option func(*workflow)

// WithNotifier announces terminal workflow outcomes through the notifier
func WithNotifier(n interfaces.Notifier) Option {
	return func(w *workflow) {
		w.notifier = n
	}
}

// WithKeepStepsOnError controls whether a failed run's partial step log is
// attached to the returned error (as the "steps" value). Enabled by default;
// streaming sinks receive the steps either way.
func WithKeepStepsOnError(keep bool) Option {
	return func(w *workflow) {
		w.keepStepsOnError = keep
	}
}

// WithToday injects the current-date provider used for calendar versioning.
// The returned string must be yyyy.MM.dd.
func WithToday(today func() string) Option {
	return func(w *workflow) {
		w.today = today
	}
}

// New creates the workflow service driving all three release workflows
// through the hosting client
func New(hosting interfaces.HostingClient, opts ...Option) interfaces.WorkflowUseCase {
	w := &workflow{
		hosting:          hosting,
		keepStepsOnError: true,
		today: func() string {
			return time.Now().UTC().Format(model.CalVerDateFormat)
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// fail records the terminal failure on the step log (so streaming sinks see
// it) and returns the error, with the partial step trail attached when the
// retention policy keeps it. No rollback of already-applied remote side
// effects is attempted.
func (w *workflow) fail(log *model.StepLog, err error) error {
	log.Failure("Workflow aborted", err.Error())
	if w.keepStepsOnError {
		return goerr.Wrap(err, "workflow aborted", goerr.V("steps", log.Steps()))
	}
	return err
}

// notify announces a successful run without blocking or failing it
func (w *workflow) notify(ctx context.Context, message string) {
	if w.notifier == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		return w.notifier.Notify(ctx, message)
	})
}

// branchURL builds the browsable URL for a branch. The facade does not
// return one for rejected ref creations, so conflicts build it here.
func branchURL(project *model.Project, branch string) string {
	return fmt.Sprintf("https://github.com/%s/%s/tree/%s", project.Owner, project.Repo, branch)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func runLogger(ctx context.Context, runID, name string, project *model.Project) *slog.Logger {
	return ctxlog.From(ctx).With(
		"run_id", runID,
		"workflow", name,
		"project", project.Slug(),
	)
}
