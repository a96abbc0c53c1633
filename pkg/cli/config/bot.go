package config

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/xlrbot/pkg/infra/bot"
	"github.com/m-mizutani/xlrbot/pkg/infra/botconf"
	"github.com/m-mizutani/xlrbot/pkg/utils/httputil"
	"github.com/urfave/cli/v3"
)

// Bot holds bot endpoint configuration
type Bot struct {
	URL          string
	ResourcePath []string
	Timeout      time.Duration
	RateLimit    float64
}

// Flags returns CLI flags for bot configuration
func (c *Bot) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bot-url",
			Usage:       "Base URL of the bot; overrides bot.url of " + botconf.FileName,
			Destination: &c.URL,
			Sources:     cli.EnvVars("XLRBOT_BOT_URL"),
		},
		&cli.StringSliceFlag{
			Name:        "resource-path",
			Usage:       "Directories searched for " + botconf.FileName,
			Value:       botconf.DefaultSearchPath,
			Destination: &c.ResourcePath,
			Sources:     cli.EnvVars("XLRBOT_RESOURCE_PATH"),
		},
		&cli.DurationFlag{
			Name:        "bot-timeout",
			Usage:       "Timeout of a single notification POST",
			Value:       10 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("XLRBOT_BOT_TIMEOUT"),
		},
		&cli.Float64Flag{
			Name:        "bot-rate-limit",
			Usage:       "Maximum notifications per second (0 disables limiting)",
			Destination: &c.RateLimit,
			Sources:     cli.EnvVars("XLRBOT_BOT_RATE_LIMIT"),
		},
	}
}

// ResolveURL returns the bot URL. It is resolved once at startup.
func (c *Bot) ResolveURL(ctx context.Context) string {
	logger := ctxlog.From(ctx)

	if c.URL != "" {
		logger.Debug("Using bot URL", "url", c.URL, "source", "flag")
		return c.URL
	}

	settings := botconf.Load(ctx, c.ResourcePath)
	logger.Debug("Using bot URL", "url", settings.BotURL, "source", settings.Source)
	return settings.BotURL
}

// NewClient builds the bot client with bounded timeouts
func (c *Bot) NewClient(ctx context.Context) *bot.Client {
	burst := int(c.RateLimit)
	return bot.NewClient(c.ResolveURL(ctx),
		bot.WithHTTPClient(httputil.NewClient(c.Timeout)),
		bot.WithRateLimit(c.RateLimit, burst),
	)
}
