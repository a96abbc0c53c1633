package config

import (
	"time"

	"github.com/m-mizutani/xlrbot/pkg/infra/slack"
	"github.com/m-mizutani/xlrbot/pkg/utils/httputil"
	"github.com/urfave/cli/v3"
)

// Slack holds the optional Slack mirror configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to mirror notifications to (disabled if empty)",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("XLRBOT_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel override for mirrored notifications",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("XLRBOT_SLACK_CHANNEL"),
		},
	}
}

// Mirror returns the Slack mirror, or nil when not configured
func (c *Slack) Mirror() *slack.Mirror {
	if c.WebhookURL == "" {
		return nil
	}
	return slack.NewMirror(c.WebhookURL, c.Channel, httputil.NewClient(10*time.Second))
}
