package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/cutover-io/cutover/pkg/domain/model"
)

// Registry holds the project registry file location
type Registry struct {
	Path string
}

// Flags returns CLI flags for the project registry
func (c *Registry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the project registry TOML file",
			Value:       "cutover.toml",
			Destination: &c.Path,
			Sources:     cli.EnvVars("CUTOVER_CONFIG"),
		},
	}
}

// Load parses and validates the registry file
func (c *Registry) Load() (*model.Registry, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read project registry", goerr.V("path", c.Path))
	}

	var registry model.Registry
	if err := toml.Unmarshal(data, &registry); err != nil {
		return nil, goerr.Wrap(err, "failed to parse project registry", goerr.V("path", c.Path))
	}

	if len(registry.Projects) == 0 {
		return nil, goerr.New("project registry is empty", goerr.V("path", c.Path))
	}
	for i := range registry.Projects {
		if err := registry.Projects[i].Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid project entry", goerr.V("path", c.Path))
		}
	}

	return &registry, nil
}
