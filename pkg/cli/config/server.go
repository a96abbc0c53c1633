package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr         string
	HookSecret   string `masq:"secret"`
	AsyncProcess bool
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8081",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("XLRBOT_ADDR"),
		},
		&cli.StringFlag{
			Name:        "hook-secret",
			Usage:       "Shared secret for HMAC-SHA256 signatures of host events (disabled if empty)",
			Destination: &c.HookSecret,
			Sources:     cli.EnvVars("XLRBOT_HOOK_SECRET"),
		},
		&cli.BoolFlag{
			Name:        "async-process",
			Usage:       "Acknowledge host events with 202 and process them in the background",
			Destination: &c.AsyncProcess,
			Sources:     cli.EnvVars("XLRBOT_ASYNC_PROCESS"),
		},
	}
}
