package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/xlrbot/pkg/domain/interfaces"
	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/utils/async"
	"github.com/m-mizutani/xlrbot/pkg/utils/errutil"
)

type activityUseCase struct {
	correlate interfaces.CorrelateUseCase
	notifier  interfaces.Notifier
	mirrors   []interfaces.Notifier
}

// ActivityOption configures the activity use case
type ActivityOption func(*activityUseCase)

// WithMirror adds a secondary notifier that receives a copy of every
// notification. Mirror failures do not affect the bot delivery result.
func WithMirror(n interfaces.Notifier) ActivityOption {
	return func(uc *activityUseCase) {
		uc.mirrors = append(uc.mirrors, n)
	}
}

// NewActivity creates a new instance of ActivityUseCase
func NewActivity(correlate interfaces.CorrelateUseCase, notifier interfaces.Notifier, opts ...ActivityOption) interfaces.ActivityUseCase {
	uc := &activityUseCase{
		correlate: correlate,
		notifier:  notifier,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// HandleEvent processes every CI of the event in list order
func (uc *activityUseCase) HandleEvent(ctx context.Context, event model.CIEvent) *model.EventReport {
	items := event.Items()
	report := &model.EventReport{
		Kind:    event.Kind(),
		Items:   len(items),
		Results: make([]model.ItemResult, 0, len(items)),
	}

	for _, ci := range items {
		report.Add(uc.handleCI(ctx, ci))
	}

	ctxlog.From(ctx).Debug("Handled CI event",
		"kind", report.Kind,
		"items", report.Items,
		"notified", report.Notified,
	)
	return report
}

func (uc *activityUseCase) handleCI(ctx context.Context, ci model.ConfigurationItem) model.ItemResult {
	logger := ctxlog.From(ctx)
	result := model.ItemResult{ID: ci.ID, Type: ci.TypeName()}

	entry, ok := ci.ActivityLogEntry()
	if !ok {
		logger.Debug("Ignoring creation of CI type", "type", ci.TypeName(), "id", ci.ID)
		result.Outcome = model.OutcomeIgnoredCIType
		return result
	}

	if !entry.ActivityType.Notifiable() {
		logger.Debug("Ignoring ALE of type", "activity_type", entry.ActivityType, "id", entry.ID)
		result.Outcome = model.OutcomeIgnoredActivity
		return result
	}

	logger.Debug("Posting notification for ALE",
		"id", entry.ID,
		"activity_type", entry.ActivityType,
		"message", entry.Message,
	)

	var n *model.Notification
	err := async.Guard(ctx, func(ctx context.Context) error {
		taskID, err := uc.correlate.TaskID(ctx, entry)
		if err != nil {
			return err
		}
		n = &model.Notification{
			ID:      entry.ID,
			Type:    entry.ActivityType,
			Message: entry.Message,
			TaskID:  taskID,
		}
		return nil
	})
	if err != nil || n == nil || n.TaskID == "" {
		logger.Debug("Unable to determine task id, skipping notification", "id", entry.ID, "error", err)
		result.Outcome = model.OutcomeCorrelationFailed
		return result
	}
	result.TaskID = n.TaskID

	if err := async.Guard(ctx, func(ctx context.Context) error {
		return uc.notifier.Notify(ctx, n)
	}); err != nil {
		logger.Debug("Failed to push event to bot", "id", entry.ID, "error", err)
		errutil.Report(ctx, err)
		result.Outcome = model.OutcomeDeliveryFailed
	} else {
		result.Outcome = model.OutcomeNotified
	}

	for _, mirror := range uc.mirrors {
		if err := async.Guard(ctx, func(ctx context.Context) error {
			return mirror.Notify(ctx, n)
		}); err != nil {
			logger.Debug("Failed to mirror notification", "id", entry.ID, "error", err)
		}
	}

	return result
}
