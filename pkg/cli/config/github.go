package config

import (
	"os"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/cutover-io/cutover/pkg/domain/interfaces"
	githubinfra "github.com/cutover-io/cutover/pkg/infra/github"
)

// GitHub holds hosting client configuration. Either a personal access
// token or the full GitHub App triple (app ID, installation ID, private
// key file) must be supplied.
type GitHub struct {
	Token          string
	AppID          string
	InstallationID string
	PrivateKeyFile string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("CUTOVER_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("CUTOVER_GITHUB_APP_ID"),
		},
		&cli.StringFlag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("CUTOVER_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key-file",
			Usage:       "Path to the GitHub App private key PEM file",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("CUTOVER_GITHUB_PRIVATE_KEY_FILE"),
		},
	}
}

// Build constructs the hosting client from whichever credential set is
// configured, preferring the token
func (c *GitHub) Build() (interfaces.HostingClient, error) {
	if c.Token != "" {
		return githubinfra.NewTokenClient(c.Token), nil
	}

	if c.AppID == "" || c.InstallationID == "" || c.PrivateKeyFile == "" {
		return nil, goerr.New("GitHub credentials required: set a token or the App ID, installation ID and private key file")
	}

	appID, err := strconv.ParseInt(c.AppID, 10, 64)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub App ID", goerr.V("app_id", c.AppID))
	}

	installationID, err := strconv.ParseInt(c.InstallationID, 10, 64)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub installation ID", goerr.V("installation_id", c.InstallationID))
	}

	privateKey, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read private key file", goerr.V("path", c.PrivateKeyFile))
	}

	return githubinfra.NewClient(appID, installationID, privateKey)
}
