package interfaces

import (
	"context"

	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/domain/types"
)

// ActivityUseCase handles CI creation events of the host
type ActivityUseCase interface {
	// HandleEvent runs the filter/correlator for every CI of the event in
	// list order. Failures are reported in the result, never returned.
	HandleEvent(ctx context.Context, event model.CIEvent) *model.EventReport
}

// CorrelateUseCase resolves activity log entries to their owning task
type CorrelateUseCase interface {
	// TaskID returns the current task of the release owning the entry
	TaskID(ctx context.Context, entry *model.ActivityLogEntry) (types.TaskID, error)
}
