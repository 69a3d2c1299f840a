package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep    EventType = "step"
	EventVerdict EventType = "verdict"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent is emitted after each consumed symbol.
type StepEvent struct {
	EventBase
	Step     Step `json:"step"`
	Position int  `json:"position"`
}

// VerdictEvent is emitted once a run has produced its verdict.
type VerdictEvent struct {
	EventBase
	Verdict *Verdict `json:"verdict"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep    func(context.Context, *StepEvent)
	OnVerdict func(context.Context, *VerdictEvent)
}

// ComposeHooks fans every event out to each non-nil hook in order.
func ComposeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	var steps []func(context.Context, *StepEvent)
	var verdicts []func(context.Context, *VerdictEvent)
	for _, h := range hooks {
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
		if h.OnVerdict != nil {
			verdicts = append(verdicts, h.OnVerdict)
		}
	}
	if len(steps) > 0 {
		out.OnStep = func(ctx context.Context, e *StepEvent) {
			for _, fn := range steps {
				fn(ctx, e)
			}
		}
	}
	if len(verdicts) > 0 {
		out.OnVerdict = func(ctx context.Context, e *VerdictEvent) {
			for _, fn := range verdicts {
				fn(ctx, e)
			}
		}
	}
	return out
}
