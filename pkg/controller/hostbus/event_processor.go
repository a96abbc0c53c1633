package hostbus

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/domain/interfaces"
	"github.com/m-mizutani/xlrbot/pkg/domain/model"
)

// ErrMalformedEvent is returned when a payload cannot be decoded
var ErrMalformedEvent = goerr.New("malformed host event")

// EventProcessor is the subscription surface towards the host bus. Each of
// the three creation event shapes has its own entry point; all of them end
// up in the activity use case.
type EventProcessor struct {
	activityUC interfaces.ActivityUseCase
}

// NewEventProcessor creates a new host bus event processor
func NewEventProcessor(activityUC interfaces.ActivityUseCase) *EventProcessor {
	return &EventProcessor{
		activityUC: activityUC,
	}
}

// CreateCi handles the creation of a single CI
func (p *EventProcessor) CreateCi(ctx context.Context, cmd *model.CreateCiCommand) *model.EventReport {
	return p.activityUC.HandleEvent(ctx, cmd)
}

// CreateCis handles the creation of an ordered list of CIs
func (p *EventProcessor) CreateCis(ctx context.Context, cmd *model.CreateCisCommand) *model.EventReport {
	return p.activityUC.HandleEvent(ctx, cmd)
}

// OnCiEvent handles a generic CI carrying event
func (p *EventProcessor) OnCiEvent(ctx context.Context, event *model.CiEvent) *model.EventReport {
	return p.activityUC.HandleEvent(ctx, event)
}

// Decode parses a raw payload of the given kind
func Decode(kind model.EventKind, payload []byte) (model.CIEvent, error) {
	var event model.CIEvent
	switch kind {
	case model.EventKindCreateCi:
		event = &model.CreateCiCommand{}
	case model.EventKindCreateCis:
		event = &model.CreateCisCommand{}
	case model.EventKindCiEvent:
		event = &model.CiEvent{}
	default:
		return nil, goerr.Wrap(ErrMalformedEvent, "unsupported event kind", goerr.V("kind", kind))
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(event); err != nil {
		return nil, goerr.Wrap(ErrMalformedEvent, err.Error(), goerr.V("kind", kind))
	}

	if cmd, ok := event.(*model.CreateCiCommand); ok && cmd.CI.Type == "" {
		return nil, goerr.Wrap(ErrMalformedEvent, "missing ci", goerr.V("kind", kind))
	}

	return event, nil
}

// ProcessEvent decodes a raw payload and routes it to the matching entry point
func (p *EventProcessor) ProcessEvent(ctx context.Context, kind model.EventKind, payload []byte) (*model.EventReport, error) {
	logger := ctxlog.From(ctx)

	event, err := Decode(kind, payload)
	if err != nil {
		logger.Warn("Rejecting host event", "kind", kind, "error", err)
		return nil, err
	}

	switch e := event.(type) {
	case *model.CreateCiCommand:
		return p.CreateCi(ctx, e), nil
	case *model.CreateCisCommand:
		return p.CreateCis(ctx, e), nil
	case *model.CiEvent:
		return p.OnCiEvent(ctx, e), nil
	default:
		return nil, goerr.Wrap(ErrMalformedEvent, "unexpected event type", goerr.V("kind", kind))
	}
}
