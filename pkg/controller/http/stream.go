package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cutover-io/cutover/pkg/domain/model"
)

// eventStream delivers workflow steps incrementally as server-sent events.
// Events: "step" per appended step, then exactly one terminal "finish"
// (with an updated flag) or "error" (with a message). Steps already flushed
// stay with the client even when the run later fails.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newEventStream(w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, goerr.New("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	return &eventStream{w: w, flusher: flusher}, nil
}

func (s *eventStream) emit(event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload)
	s.flusher.Flush()
}

// StepSink returns the sink forwarding each appended step to the client
func (s *eventStream) StepSink() model.StepSink {
	return model.StepSinkFunc(func(step model.Step) {
		s.emit("step", step)
	})
}

// Finish emits the terminal success event
func (s *eventStream) Finish(updated bool) {
	s.emit("finish", map[string]bool{"updated": updated})
}

// Error emits the terminal failure event. Server-side failures are reported
// to the error tracker like their buffered counterparts.
func (s *eventStream) Error(err error) {
	if statusFromError(err) >= http.StatusInternalServerError {
		reportServerError(err)
	}
	s.emit("error", map[string]string{"message": err.Error()})
}
