package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/domain/interfaces"
	"github.com/m-mizutani/xlrbot/pkg/infra/xlr"
	"github.com/m-mizutani/xlrbot/pkg/utils/httputil"
	"github.com/urfave/cli/v3"
)

// XLR holds XL Release API configuration
type XLR struct {
	URL      string
	Username string
	Password string `masq:"secret"`
	Timeout  time.Duration
}

// Flags returns CLI flags for XL Release configuration
func (c *XLR) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "xlr-url",
			Usage:       "Base URL of XL Release",
			Value:       "http://localhost:5516",
			Destination: &c.URL,
			Sources:     cli.EnvVars("XLRBOT_XLR_URL"),
		},
		&cli.StringFlag{
			Name:        "xlr-username",
			Usage:       "XL Release user for the release API",
			Destination: &c.Username,
			Sources:     cli.EnvVars("XLRBOT_XLR_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "xlr-password",
			Usage:       "XL Release password",
			Destination: &c.Password,
			Sources:     cli.EnvVars("XLRBOT_XLR_PASSWORD"),
		},
		&cli.DurationFlag{
			Name:        "xlr-timeout",
			Usage:       "Timeout of a release lookup",
			Value:       10 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("XLRBOT_XLR_TIMEOUT"),
		},
	}
}

// NewClient builds the release lookup gateway
func (c *XLR) NewClient() (interfaces.ReleaseAPI, error) {
	client, err := xlr.NewClient(c.URL,
		xlr.WithBasicAuth(c.Username, c.Password),
		xlr.WithHTTPClient(httputil.NewClient(c.Timeout)),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create XL Release client")
	}
	return client, nil
}
