package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/quantronics/arxiv-digest/internal/digest"
)

// slackClient is the slice of the Slack Web API the publisher uses.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackPublisher posts the digest to a Slack channel in mrkdwn format.
type SlackPublisher struct {
	client          slackClient
	channel         string
	includeAbstract bool
}

func NewSlackPublisher(token, channel string, includeAbstract bool) *SlackPublisher {
	return &SlackPublisher{
		client:          slack.New(token),
		channel:         channel,
		includeAbstract: includeAbstract,
	}
}

// Publish sends the mrkdwn rendering of the digest via chat.postMessage.
// Provider errors (invalid_auth, channel_not_found, ...) come back in the
// error; HTTP-level failures carry their status code.
func (p *SlackPublisher) Publish(ctx context.Context, d *digest.Digest) error {
	msg := d.Render(digest.Mrkdwn, p.includeAbstract)

	_, _, err := p.client.PostMessageContext(ctx, p.channel, slack.MsgOptionText(msg, false))
	if err != nil {
		var statusErr slack.StatusCodeError
		if errors.As(err, &statusErr) {
			return fmt.Errorf("slack: post to %s failed with status %d: %w", p.channel, statusErr.Code, err)
		}
		return fmt.Errorf("slack: post to %s failed: %w", p.channel, err)
	}
	return nil
}
