package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/cutover-io/cutover/pkg/domain/interfaces"
	"github.com/cutover-io/cutover/pkg/infra/notify"
)

// Slack holds Slack notification configuration. Optional; both fields must
// be set together.
type Slack struct {
	Token   string
	Channel string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token for workflow notifications",
			Destination: &c.Token,
			Sources:     cli.EnvVars("CUTOVER_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel to notify",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("CUTOVER_SLACK_CHANNEL"),
		},
	}
}

// Build returns the notifier, or nil when notifications are not configured
func (c *Slack) Build() (interfaces.Notifier, error) {
	if c.Token == "" && c.Channel == "" {
		return nil, nil
	}
	if c.Token == "" || c.Channel == "" {
		return nil, goerr.New("slack-token and slack-channel must be set together")
	}
	return notify.NewSlack(c.Token, c.Channel), nil
}
