package notify

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/cutover-io/cutover/pkg/domain/interfaces"
)

type slackNotifier struct {
	client  *slack.Client
	channel string
}

// NewSlack creates a notifier that posts workflow outcomes to a Slack
// channel
func NewSlack(token, channel string) interfaces.Notifier {
	return &slackNotifier{
		client:  slack.New(token),
		channel: channel,
	}
}

// Notify posts a message to the configured channel
func (n *slackNotifier) Notify(ctx context.Context, message string) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack message", goerr.V("channel", n.channel))
	}
	return nil
}
