package slack

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Mirror copies bot notifications to a Slack incoming webhook
type Mirror struct {
	webhookURL string
	channel    string
	http       *http.Client
}

// NewMirror creates a Slack mirror. channel may be empty to use the
// webhook's default channel.
func NewMirror(webhookURL, channel string, httpClient *http.Client) *Mirror {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Mirror{
		webhookURL: webhookURL,
		channel:    channel,
		http:       httpClient,
	}
}

// Notify posts the notification as a Slack message
func (m *Mirror) Notify(ctx context.Context, n *model.Notification) error {
	msg := buildMessage(n)
	msg.Channel = m.channel

	if err := slack.PostWebhookCustomHTTPContext(ctx, m.webhookURL, m.http, msg); err != nil {
		return goerr.Wrap(err, "failed to post to Slack webhook", goerr.V("id", n.ID))
	}

	ctxlog.From(ctx).Debug("Mirrored notification to Slack", "id", n.ID, "task_id", n.TaskID)
	return nil
}

func buildMessage(n *model.Notification) *slack.WebhookMessage {
	text := fmt.Sprintf("*%s* %s", n.Type, n.Message)
	return &slack.WebhookMessage{
		Text: text,
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
				slack.NewContextBlock("",
					slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("task `%s`", n.TaskID), false, false),
					slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("activity `%s`", n.ID), false, false),
				),
			},
		},
	}
}
