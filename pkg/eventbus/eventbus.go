// Package eventbus defines the contract for publishing and consuming domain events.
package eventbus

import (
	"context"

	"github.com/amirasaad/opsledger/pkg/domain/events"
)

// HandlerFunc handles one event.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus routes events to the handlers registered for their type.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
