package model

// StepIcon marks a progress step as succeeded or failed
type StepIcon string

const (
	IconSuccess StepIcon = "success"
	IconFailure StepIcon = "failure"
)

// Step is one entry in a workflow run's audit trail
type Step struct {
	Message   string   `json:"message"`
	Secondary string   `json:"secondaryMessage,omitempty"`
	Link      string   `json:"link,omitempty"`
	Icon      StepIcon `json:"icon,omitempty"`
}

// StepSink receives each step as it is appended, before the run completes.
// Implementations must not block for long; a step is delivered exactly once
// and in causal order.
type StepSink interface {
	OnStep(step Step)
}

// StepSinkFunc adapts a function to the StepSink interface
type StepSinkFunc func(step Step)

func (f StepSinkFunc) OnStep(step Step) { f(step) }

// StepLog is the append-only ordered log of one workflow run. Each run owns
// its own log; it is never shared between runs and is immutable once the
// orchestrator returns.
type StepLog struct {
	steps []Step
	sink  StepSink
}

// NewStepLog creates an empty log. sink may be nil for buffered-only use.
func NewStepLog(sink StepSink) *StepLog {
	return &StepLog{sink: sink}
}

// Append records a step and forwards it to the sink if one is attached
func (l *StepLog) Append(step Step) {
	l.steps = append(l.steps, step)
	if l.sink != nil {
		l.sink.OnStep(step)
	}
}

// Success appends a success step
func (l *StepLog) Success(message, secondary, link string) {
	l.Append(Step{Message: message, Secondary: secondary, Link: link, Icon: IconSuccess})
}

// Failure appends a failure step
func (l *StepLog) Failure(message, secondary string) {
	l.Append(Step{Message: message, Secondary: secondary, Icon: IconFailure})
}

// Steps returns the recorded steps in causal order
func (l *StepLog) Steps() []Step {
	return l.steps
}
