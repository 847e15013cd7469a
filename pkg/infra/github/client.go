package github

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cutover-io/cutover/pkg/domain/interfaces"
	"github.com/cutover-io/cutover/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a hosting client authenticated as a GitHub App
// installation
func NewClient(appID, installationID int64, privateKey []byte) (interfaces.HostingClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport")
	}

	return &client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
	}, nil
}

// NewTokenClient creates a hosting client authenticated with a personal
// access token
func NewTokenClient(token string) interfaces.HostingClient {
	return &client{
		githubClient: github.NewClient(nil).WithAuthToken(token),
	}
}

// NewWithClient wraps an already configured go-github client. Used by tests
// to point the facade at a stub server.
func NewWithClient(gh *github.Client) interfaces.HostingClient {
	return &client{githubClient: gh}
}

// translate maps a go-github error onto the workflow error taxonomy. A 422
// "already exists" rejection is the provider's sole concurrency guard and
// becomes a conflict; everything else stays a remote error carrying its
// HTTP status.
func translate(err error, msg string, values ...goerr.Option) error {
	var ghErr *github.ErrorResponse
	status := 0
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		status = ghErr.Response.StatusCode
	}

	opts := append([]goerr.Option{goerr.V("status", status)}, values...)
	if status == http.StatusUnprocessableEntity && ghErr != nil &&
		strings.Contains(strings.ToLower(ghErr.Message), "already exists") {
		opts = append(opts, goerr.T(types.ErrTagConflict))
	} else {
		opts = append(opts, goerr.T(types.ErrTagRemote))
	}

	return goerr.Wrap(err, msg, opts...)
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil &&
		ghErr.Response.StatusCode == http.StatusNotFound
}
