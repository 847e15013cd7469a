package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/cutover-io/cutover/pkg/cli/config"
	"github.com/cutover-io/cutover/pkg/domain/model"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cutover.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRegistry_Load(t *testing.T) {
	path := writeRegistry(t, `
[[projects]]
owner = "acme"
repo = "webapp"
strategy = "semver"

[[projects]]
owner = "acme"
repo = "reports"
strategy = "calver"
mainline = "trunk"
`)

	cfg := &config.Registry{Path: path}
	registry, err := cfg.Load()
	gt.NoError(t, err)
	gt.Value(t, len(registry.Projects)).Equal(2)

	webapp, err := registry.Lookup("acme", "webapp")
	gt.NoError(t, err)
	gt.Value(t, webapp.Strategy).Equal(model.StrategySemVer)
	// mainline defaults when omitted
	gt.Value(t, webapp.Mainline).Equal("main")

	reports, err := registry.Lookup("acme", "reports")
	gt.NoError(t, err)
	gt.Value(t, reports.Strategy).Equal(model.StrategyCalVer)
	gt.Value(t, reports.Mainline).Equal("trunk")
}

func TestRegistry_LookupUnknown(t *testing.T) {
	path := writeRegistry(t, `
[[projects]]
owner = "acme"
repo = "webapp"
strategy = "semver"
`)

	cfg := &config.Registry{Path: path}
	registry, err := cfg.Load()
	gt.NoError(t, err)

	_, err = registry.Lookup("acme", "missing")
	gt.Error(t, err)
}

func TestRegistry_InvalidStrategy(t *testing.T) {
	path := writeRegistry(t, `
[[projects]]
owner = "acme"
repo = "webapp"
strategy = "romver"
`)

	cfg := &config.Registry{Path: path}
	_, err := cfg.Load()
	gt.Error(t, err)
}

func TestRegistry_Empty(t *testing.T) {
	path := writeRegistry(t, "")

	cfg := &config.Registry{Path: path}
	_, err := cfg.Load()
	gt.Error(t, err)
}

func TestRegistry_MissingFile(t *testing.T) {
	cfg := &config.Registry{Path: filepath.Join(t.TempDir(), "nope.toml")}
	_, err := cfg.Load()
	gt.Error(t, err)
}
