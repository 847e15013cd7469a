package model

import (
	"github.com/cutover-io/cutover/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// VersioningStrategy selects how a project computes its next version
type VersioningStrategy string

const (
	StrategySemVer VersioningStrategy = "semver"
	StrategyCalVer VersioningStrategy = "calver"
)

// ParseVersioningStrategy validates and converts a string
func ParseVersioningStrategy(s string) (VersioningStrategy, error) {
	switch VersioningStrategy(s) {
	case StrategySemVer, StrategyCalVer:
		return VersioningStrategy(s), nil
	default:
		return "", goerr.New("unknown versioning strategy", goerr.V("strategy", s))
	}
}

// Project identifies a hosting repository and its release configuration.
// Immutable once a workflow run starts.
type Project struct {
	Owner    string             `toml:"owner"`
	Repo     string             `toml:"repo"`
	Strategy VersioningStrategy `toml:"strategy"`
	Mainline string             `toml:"mainline"`
}

// Validate checks required fields and defaults the mainline branch
func (p *Project) Validate() error {
	if p.Owner == "" || p.Repo == "" {
		return goerr.New("project requires owner and repo",
			goerr.V("owner", p.Owner), goerr.V("repo", p.Repo))
	}
	if _, err := ParseVersioningStrategy(string(p.Strategy)); err != nil {
		return err
	}
	if p.Mainline == "" {
		p.Mainline = "main"
	}
	return nil
}

// Slug returns the owner/repo identifier used in logs and lookups
func (p *Project) Slug() string {
	return p.Owner + "/" + p.Repo
}

// Registry holds the set of projects the service manages
type Registry struct {
	Projects []Project `toml:"projects"`
}

// Lookup finds a project by owner and repo. Unknown projects are a
// precondition violation so no workflow attempts remote calls for them.
func (r *Registry) Lookup(owner, repo string) (*Project, error) {
	for i := range r.Projects {
		if r.Projects[i].Owner == owner && r.Projects[i].Repo == repo {
			return &r.Projects[i], nil
		}
	}
	return nil, goerr.New("project not registered",
		goerr.V("owner", owner), goerr.V("repo", repo),
		goerr.T(types.ErrTagPrecondition))
}
