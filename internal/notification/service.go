package notification

import (
	"context"
	"log/slog"

	"github.com/workhub/leave-management/internal/core/events"
)

// Service turns leave lifecycle events into notifications. Delivery is a
// structured log line; swapping in mail or chat delivery means implementing
// another notify func, the subscriptions stay the same.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// RegisterSubscribers hooks the service onto the event bus.
func (s *Service) RegisterSubscribers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeLeaveApplied, s.onLeaveApplied)
	bus.Subscribe(events.EventTypeLeaveApproved, s.onLeaveStatusChanged)
	bus.Subscribe(events.EventTypeLeaveRejected, s.onLeaveStatusChanged)
}

func (s *Service) onLeaveApplied(ctx context.Context, event events.Event) error {
	applied, ok := event.(*events.LeaveAppliedEvent)
	if !ok {
		s.logger.Warn("notification: unexpected event payload", "event_type", event.EventType())
		return nil
	}

	s.logger.Info("notification: leave application received",
		"request_id", applied.RequestID,
		"employee_id", applied.EmployeeID,
		"leave_type", applied.LeaveType,
		"applied_days", applied.AppliedDays)
	return nil
}

func (s *Service) onLeaveStatusChanged(ctx context.Context, event events.Event) error {
	changed, ok := event.(*events.LeaveStatusChangedEvent)
	if !ok {
		s.logger.Warn("notification: unexpected event payload", "event_type", event.EventType())
		return nil
	}

	s.logger.Info("notification: leave decision recorded",
		"request_id", changed.RequestID,
		"employee_id", changed.EmployeeID,
		"leave_type", changed.LeaveType,
		"previous_status", changed.PreviousStatus,
		"new_status", changed.NewStatus,
		"counters_changed", changed.CountersChanged)
	return nil
}
