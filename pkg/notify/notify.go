// Package notify delivers fire-and-forget user notifications about ledger operations.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/events"
	"github.com/amirasaad/opsledger/pkg/eventbus"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier delivers a message. Delivery failures are never reported to the caller.
type Notifier interface {
	Notify(ctx context.Context, message string, level Level)
}

// LogNotifier writes notifications to a slog logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs through logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, message string, level Level) {
	lvl := slog.LevelInfo
	switch level {
	case LevelWarning:
		lvl = slog.LevelWarn
	case LevelError:
		lvl = slog.LevelError
	}
	n.logger.Log(ctx, lvl, message, "level", string(level))
}

// BusNotifier publishes notifications as events so that remote clients can display them.
type BusNotifier struct {
	bus    eventbus.Bus
	logger *slog.Logger
}

// NewBusNotifier returns a notifier that emits Notification events on bus.
func NewBusNotifier(bus eventbus.Bus, logger *slog.Logger) *BusNotifier {
	return &BusNotifier{bus: bus, logger: logger}
}

func (n *BusNotifier) Notify(ctx context.Context, message string, level Level) {
	evt := events.Notification{Level: string(level), Message: message, OccurredAt: time.Now().UTC()}
	if err := n.bus.Emit(ctx, evt); err != nil {
		n.logger.Warn("failed to publish notification", "error", err)
	}
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, message string, level Level) {
	for _, n := range m {
		n.Notify(ctx, message, level)
	}
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(context.Context, string, Level) {}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*BusNotifier)(nil)
	_ Notifier = Multi(nil)
	_ Notifier = Nop{}
)
