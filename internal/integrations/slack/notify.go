package slackbot

import (
	"context"
	"fmt"
	"log"

	"github.com/slack-go/slack"

	"labeleval/internal/config"
	"labeleval/internal/httpx"
)

// Notifier posts run summaries to the report channel.
type Notifier struct {
	api       *slack.Client
	channelID string
}

// NewNotifier returns nil when Slack posting is not configured.
func NewNotifier(cfg config.Config, opts ...slack.Option) *Notifier {
	if !cfg.SlackConfigured() {
		return nil
	}
	options := append([]slack.Option{slack.OptionHTTPClient(httpx.Client())}, opts...)
	return &Notifier{
		api:       slack.New(cfg.SlackBotToken, options...),
		channelID: cfg.ReportChannelID,
	}
}

// Post sends text to the report channel. A nil Notifier is a no-op.
func (n *Notifier) Post(ctx context.Context, text string) error {
	if n == nil {
		return nil
	}
	_, ts, err := n.api.PostMessageContext(ctx, n.channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("post summary to %s: %w", n.channelID, err)
	}
	log.Printf("Posted evaluation summary to %s (ts=%s)", n.channelID, ts)
	return nil
}
