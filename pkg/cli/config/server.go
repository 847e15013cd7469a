package config

import (
	"github.com/urfave/cli/v3"

	"github.com/cutover-io/cutover/pkg/domain/types"
)

// Server holds server configuration
type Server struct {
	Addr       string
	RouterMode string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("CUTOVER_ADDR"),
		},
		&cli.StringFlag{
			Name:        "router-mode",
			Usage:       "Router deployment shape (out-of-the-box, recommended)",
			Value:       string(types.RouterRecommended),
			Destination: &c.RouterMode,
			Sources:     cli.EnvVars("CUTOVER_ROUTER_MODE"),
		},
	}
}

// Mode resolves the router mode once at configuration load
func (c *Server) Mode() (types.RouterMode, error) {
	return types.ParseRouterMode(c.RouterMode)
}
