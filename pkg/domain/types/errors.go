package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify workflow failures. Orchestrators attach exactly one
// tag per terminal error so callers can map them to exit codes or HTTP
// status without string matching.
var (
	// ErrTagParse marks a malformed version tag. Local, never retried.
	ErrTagParse = goerr.NewTag("parse")

	// ErrTagConflict marks a remote rejection because the target ref, tag
	// or release already exists. The error carries the colliding name and
	// a link for manual inspection.
	ErrTagConflict = goerr.NewTag("conflict")

	// ErrTagPrecondition marks a workflow invoked with state that violates
	// its precondition. No remote call has been attempted.
	ErrTagPrecondition = goerr.NewTag("precondition")

	// ErrTagRemote marks any other provider-side failure, propagated
	// unchanged. Retry policy belongs to the transport, not the core.
	ErrTagRemote = goerr.NewTag("remote")
)

// IsConflict reports whether err is tagged as a remote conflict
func IsConflict(err error) bool { return goerr.HasTag(err, ErrTagConflict) }

// IsPrecondition reports whether err is tagged as a precondition violation
func IsPrecondition(err error) bool { return goerr.HasTag(err, ErrTagPrecondition) }

// IsParse reports whether err is tagged as a version parse failure
func IsParse(err error) bool { return goerr.HasTag(err, ErrTagParse) }
