package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cutover-io/cutover/pkg/domain/interfaces"
	"github.com/cutover-io/cutover/pkg/domain/model"
)

// WorkflowHandler exposes the release workflows over HTTP. It resolves the
// project from the registry and looks up the current release state before
// invoking an orchestrator; the orchestrators themselves never look
// entities up.
type WorkflowHandler struct {
	workflowUC interfaces.WorkflowUseCase
	hosting    interfaces.HostingClient
	registry   *model.Registry
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(workflowUC interfaces.WorkflowUseCase, hosting interfaces.HostingClient, registry *model.Registry) *WorkflowHandler {
	return &WorkflowHandler{
		workflowUC: workflowUC,
		hosting:    hosting,
		registry:   registry,
	}
}

// workflowRequest is the shared request body of all workflow endpoints
type workflowRequest struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Bump    string `json:"bump,omitempty"`
	Force   bool   `json:"force,omitempty"`
	Merge   bool   `json:"merge,omitempty"`
	Cleanup bool   `json:"cleanup,omitempty"`
}

// workflowResponse is the buffered response of a completed run
type workflowResponse struct {
	Steps  []model.Step `json:"steps"`
	Result any          `json:"result"`
}

// wantsStream reports whether the caller asked for incremental SSE delivery
func wantsStream(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

// resolve decodes the request and resolves the project and its latest
// release. All failures here happen before any workflow step runs.
func (h *WorkflowHandler) resolve(w http.ResponseWriter, r *http.Request) (*workflowRequest, *model.Project, *model.Release, bool) {
	var req workflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid JSON body"), http.StatusBadRequest)
		return nil, nil, nil, false
	}

	project, err := h.registry.Lookup(req.Owner, req.Repo)
	if err != nil {
		writeError(w, err, statusFromError(err))
		return nil, nil, nil, false
	}

	latest, err := h.hosting.GetLatestRelease(r.Context(), project)
	if err != nil {
		writeError(w, err, statusFromError(err))
		return nil, nil, nil, false
	}

	return &req, project, latest, true
}

// CreateRC handles POST {base}/workflows/create-rc
func (h *WorkflowHandler) CreateRC(w http.ResponseWriter, r *http.Request) {
	req, project, latest, ok := h.resolve(w, r)
	if !ok {
		return
	}

	bump := model.BumpPatch
	if req.Bump != "" {
		var err error
		if bump, err = model.ParseBumpLevel(req.Bump); err != nil {
			writeError(w, err, http.StatusBadRequest)
			return
		}
	}

	h.run(w, r, func(sink model.StepSink) ([]model.Step, any, error) {
		result, err := h.workflowUC.CreateRC(r.Context(), project, latest, bump, sink)
		if err != nil {
			return nil, nil, err
		}
		return result.Steps, result, nil
	})
}

// Promote handles POST {base}/workflows/promote
func (h *WorkflowHandler) Promote(w http.ResponseWriter, r *http.Request) {
	req, project, latest, ok := h.resolve(w, r)
	if !ok {
		return
	}

	opts := model.PromoteOptions{Force: req.Force, Merge: req.Merge, Cleanup: req.Cleanup}

	h.run(w, r, func(sink model.StepSink) ([]model.Step, any, error) {
		result, err := h.workflowUC.PromoteRC(r.Context(), project, latest, opts, sink)
		if err != nil {
			return nil, nil, err
		}
		return result.Steps, result, nil
	})
}

// Patch handles POST {base}/workflows/patch
func (h *WorkflowHandler) Patch(w http.ResponseWriter, r *http.Request) {
	_, project, latest, ok := h.resolve(w, r)
	if !ok {
		return
	}

	h.run(w, r, func(sink model.StepSink) ([]model.Step, any, error) {
		result, err := h.workflowUC.Patch(r.Context(), project, latest, sink)
		if err != nil {
			return nil, nil, err
		}
		return result.Steps, result, nil
	})
}

// run executes one workflow through either delivery adapter: SSE when the
// caller accepts an event stream, one buffered JSON document otherwise.
// Both adapters share the same orchestrator; only delivery differs.
func (h *WorkflowHandler) run(w http.ResponseWriter, r *http.Request, invoke func(model.StepSink) ([]model.Step, any, error)) {
	logger := ctxlog.From(r.Context())

	if wantsStream(r) {
		stream, err := newEventStream(w)
		if err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		_, _, err = invoke(stream.StepSink())
		if err != nil {
			logger.Error("workflow run failed", "error", err)
			stream.Error(err)
			return
		}
		stream.Finish(true)
		return
	}

	steps, result, err := invoke(nil)
	if err != nil {
		logger.Error("workflow run failed", "error", err)
		writeError(w, err, statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(&workflowResponse{Steps: steps, Result: result}); err != nil {
		logger.Error("Failed to encode workflow response", "error", err)
	}
}
