package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/cli/config"
	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdNotify() *cli.Command {
	var (
		botCfg       config.Bot
		id           string
		activityType string
		message      string
		taskID       string
	)

	flags := append(botCfg.Flags(),
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Activity log entry id",
			Value:       "Applications/manual/notification",
			Destination: &id,
		},
		&cli.StringFlag{
			Name:        "type",
			Usage:       "Activity type",
			Value:       string(types.ActivityTaskStarted),
			Destination: &activityType,
		},
		&cli.StringFlag{
			Name:        "message",
			Aliases:     []string{"m"},
			Usage:       "Message text",
			Required:    true,
			Destination: &message,
		},
		&cli.StringFlag{
			Name:        "task-id",
			Usage:       "Task id the notification refers to",
			Required:    true,
			Destination: &taskID,
		},
	)

	return &cli.Command{
		Name:  "notify",
		Usage: "Send a single notification to the bot (connectivity check)",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client := botCfg.NewClient(ctx)

			n := &model.Notification{
				ID:      id,
				Type:    types.ActivityType(activityType),
				Message: message,
				TaskID:  types.TaskID(taskID),
			}

			if err := client.Notify(ctx, n); err != nil {
				fmt.Fprintf(color.Output, "%s %s\n", color.RedString("✗"), client.Endpoint())
				return goerr.Wrap(err, "notification not delivered")
			}

			fmt.Fprintf(color.Output, "%s %s (task %s)\n",
				color.GreenString("✓"), client.Endpoint(), color.CyanString(taskID))
			return nil
		},
	}
}
