package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cutover-io/cutover/pkg/domain/interfaces"
	"github.com/cutover-io/cutover/pkg/domain/model"
	"github.com/cutover-io/cutover/pkg/domain/types"
)

// config holds internal HTTP server configuration
type config struct {
	addr       string
	routerMode types.RouterMode
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithRouterMode selects the deployment shape the workflow routes are
// mounted for. Resolved once here; handlers never inspect it again.
func WithRouterMode(mode types.RouterMode) Option {
	return func(c *config) {
		c.routerMode = mode
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server exposing the release workflow
// endpoints and a health check
func NewServer(
	ctx context.Context,
	workflowUC interfaces.WorkflowUseCase,
	hosting interfaces.HostingClient,
	registry *model.Registry,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr:       "localhost:8080",
		routerMode: types.RouterRecommended,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	handler := NewWorkflowHandler(workflowUC, hosting, registry)
	base := strings.TrimSuffix(cfg.routerMode.BasePath(), "/")
	router.Post(base+"/workflows/create-rc", handler.CreateRC)
	router.Post(base+"/workflows/promote", handler.Promote)
	router.Post(base+"/workflows/patch", handler.Patch)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
