package events

import (
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/google/uuid"
)

// CategoriesChanged is emitted after status or visibility of accounts changed.
type CategoriesChanged struct {
	ClientID    *uuid.UUID
	CategoryIDs []uuid.UUID
	Status      *common.Status
	IsVisible   *bool
	OccurredAt  time.Time
}

// CategoriesRemoved is emitted after a client and its accounts were deleted.
type CategoriesRemoved struct {
	ClientID       uuid.UUID
	CategoryIDs    []uuid.UUID
	HistoryRemoved bool
	OccurredAt     time.Time
}

func (e CategoriesChanged) Type() string { return EventTypeCategoriesChanged }
func (e CategoriesRemoved) Type() string { return EventTypeCategoriesRemoved }
