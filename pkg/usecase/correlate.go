package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/domain/interfaces"
	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/domain/types"
)

// ErrNoCurrentTask is returned when the owning release has no active task
var ErrNoCurrentTask = goerr.New("release has no current task")

type correlateUseCase struct {
	releaseAPI interfaces.ReleaseAPI
}

// NewCorrelate creates a new instance of CorrelateUseCase
func NewCorrelate(releaseAPI interfaces.ReleaseAPI) interfaces.CorrelateUseCase {
	return &correlateUseCase{
		releaseAPI: releaseAPI,
	}
}

// TaskID resolves the entry to the current task of its release
func (uc *correlateUseCase) TaskID(ctx context.Context, entry *model.ActivityLogEntry) (types.TaskID, error) {
	releaseID, err := entry.ReleaseID()
	if err != nil {
		return "", err
	}

	release, err := uc.releaseAPI.GetRelease(ctx, releaseID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to look up release",
			goerr.V("release_id", releaseID),
			goerr.V("entry_id", entry.ID),
		)
	}
	if release == nil {
		return "", goerr.New("release lookup returned nothing", goerr.V("release_id", releaseID))
	}

	task := release.ActiveTask()
	if task == nil {
		return "", goerr.Wrap(ErrNoCurrentTask, "cannot correlate entry",
			goerr.V("release_id", releaseID),
			goerr.V("entry_id", entry.ID),
		)
	}

	return task.ID, nil
}
