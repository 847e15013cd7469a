package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/cutover-io/cutover/pkg/domain/types"
)

// Sentry holds error reporting configuration. Optional.
type Sentry struct {
	DSN string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("CUTOVER_SENTRY_DSN"),
		},
	}
}

// Init initializes Sentry when a DSN is configured and returns a flush
// function to be deferred by the caller. Without a DSN both are no-ops.
func (c *Sentry) Init() (func(), error) {
	if c.DSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:     c.DSN,
		Release: types.AppName + "@" + types.Version,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize Sentry")
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}
