package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/cli/config"
	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/domain/types"
	"github.com/m-mizutani/xlrbot/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdResolve() *cli.Command {
	var (
		xlrCfg    config.XLR
		entryID   string
		releaseID string
	)

	flags := append(xlrCfg.Flags(),
		&cli.StringFlag{
			Name:        "entry-id",
			Usage:       "Activity log entry id to correlate",
			Destination: &entryID,
		},
		&cli.StringFlag{
			Name:        "release-id",
			Usage:       "Release id to look up, e.g. Applications/Release42",
			Destination: &releaseID,
		},
	)

	return &cli.Command{
		Name:  "resolve",
		Usage: "Look up the current task of a release",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			releaseAPI, err := xlrCfg.NewClient()
			if err != nil {
				return err
			}

			switch {
			case entryID != "":
				entry := &model.ActivityLogEntry{ID: entryID}
				rid, err := entry.ReleaseID()
				if err != nil {
					return goerr.Wrap(err, "invalid --entry-id", goerr.V("entry_id", entryID))
				}
				taskID, err := usecase.NewCorrelate(releaseAPI).TaskID(ctx, entry)
				if err != nil {
					return err
				}
				printTask(rid, taskID)

			case releaseID != "":
				release, err := releaseAPI.GetRelease(ctx, types.ReleaseID(releaseID))
				if err != nil {
					return err
				}
				var taskID types.TaskID
				if task := release.ActiveTask(); task != nil {
					taskID = task.ID
				}
				printTask(release.ID, taskID)

			default:
				return goerr.New("either --entry-id or --release-id is required")
			}

			return nil
		},
	}
}

func printTask(releaseID types.ReleaseID, taskID types.TaskID) {
	if taskID == "" {
		fmt.Fprintf(color.Output, "%s %s has no current task\n", color.YellowString("-"), releaseID)
		return
	}
	fmt.Fprintf(color.Output, "%s %s → %s\n", color.GreenString("✓"), releaseID, color.CyanString(taskID.String()))
}
