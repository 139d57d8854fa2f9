package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/client"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/domain/events"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/google/uuid"
)

// SyncResult lists the accounts a cascade touched.
type SyncResult struct {
	ClientID    uuid.UUID
	CategoryIDs []uuid.UUID
	Status      common.Status
	IsVisible   bool
}

// flagChange decides the new flags from the current client.
type flagChange func(c *client.Client) (repository.CategoryFlags, error)

// SetStatus sets the status of the client and of every linked account in one commit.
// Any of the three statuses is accepted; there is no transition table.
func (s *Service) SetStatus(ctx context.Context, clientID uuid.UUID, clientName string, status common.Status) (*SyncResult, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidStatus, status)
	}
	return s.cascade(ctx, "SetStatus", client.ActionStatusChanged, clientID, clientName, func(*client.Client) (repository.CategoryFlags, error) {
		return repository.CategoryFlags{Status: &status}, nil
	})
}

// SetVisibility shows or hides the client and every linked account in one commit.
func (s *Service) SetVisibility(ctx context.Context, clientID uuid.UUID, clientName string, visible bool) (*SyncResult, error) {
	return s.cascade(ctx, "SetVisibility", client.ActionVisibilityChanged, clientID, clientName, func(*client.Client) (repository.CategoryFlags, error) {
		return repository.CategoryFlags{IsVisible: &visible}, nil
	})
}

// ToggleVisibility flips the visibility of the client and applies the new value to every
// linked account.
func (s *Service) ToggleVisibility(ctx context.Context, clientID uuid.UUID, clientName string) (*SyncResult, error) {
	return s.cascade(ctx, "ToggleVisibility", client.ActionVisibilityChanged, clientID, clientName, func(c *client.Client) (repository.CategoryFlags, error) {
		visible := !c.IsVisible
		return repository.CategoryFlags{IsVisible: &visible}, nil
	})
}

func (s *Service) cascade(ctx context.Context, op string, action client.Action, clientID uuid.UUID, clientName string, change flagChange) (*SyncResult, error) {
	logger := s.logger.With("clientID", clientID, "op", op)
	logger.Info(op + " started")

	ctx = context.WithoutCancel(ctx)
	var (
		result *SyncResult
		flags  repository.CategoryFlags
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}

		c, err := clients.Get(ctx, clientID)
		if err != nil {
			return err
		}
		if flags, err = change(c); err != nil {
			return err
		}
		linked, err := categories.FindLinked(ctx, s.linkQuery(c, clientName))
		if err != nil {
			return err
		}
		ids := categoryIDs(linked)

		if err := clients.Update(ctx, clientID, repository.ClientUpdate{Status: flags.Status, IsVisible: flags.IsVisible}); err != nil {
			return err
		}
		if err := categories.UpdateFlags(ctx, ids, flags); err != nil {
			return err
		}
		if err := s.record(ctx, uow, clientID, action, flagChanges(c, flags)); err != nil {
			return err
		}

		result = &SyncResult{ClientID: clientID, CategoryIDs: ids, Status: c.Status, IsVisible: c.IsVisible}
		if flags.Status != nil {
			result.Status = *flags.Status
		}
		if flags.IsVisible != nil {
			result.IsVisible = *flags.IsVisible
		}
		return nil
	})
	if err != nil {
		logger.Error(op+" failed", "error", err)
		return nil, err
	}

	s.emit(ctx, events.CategoriesChanged{
		ClientID:    &clientID,
		CategoryIDs: result.CategoryIDs,
		Status:      flags.Status,
		IsVisible:   flags.IsVisible,
		OccurredAt:  s.now(),
	})
	logger.Info(op+" successful", "categories", len(result.CategoryIDs))
	return result, nil
}

func flagChanges(c *client.Client, flags repository.CategoryFlags) map[string]client.FieldChange {
	out := map[string]client.FieldChange{}
	if flags.Status != nil {
		out["status"] = client.FieldChange{From: string(c.Status), To: string(*flags.Status)}
	}
	if flags.IsVisible != nil {
		out["isVisible"] = client.FieldChange{From: strconv.FormatBool(c.IsVisible), To: strconv.FormatBool(*flags.IsVisible)}
	}
	return out
}

// SetCategoryVisibility shows or hides a single account.
func (s *Service) SetCategoryVisibility(ctx context.Context, categoryID uuid.UUID, visible bool) (*category.Category, error) {
	logger := s.logger.With("categoryID", categoryID)

	ctx = context.WithoutCancel(ctx)
	var cat *category.Category
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		if cat, err = categories.Get(ctx, categoryID); err != nil {
			return err
		}
		if err := categories.UpdateFlags(ctx, []uuid.UUID{categoryID}, repository.CategoryFlags{IsVisible: &visible}); err != nil {
			return err
		}
		cat.IsVisible = visible
		return nil
	})
	if err != nil {
		logger.Error("SetCategoryVisibility failed", "error", err)
		return nil, err
	}

	s.emit(ctx, events.CategoriesChanged{
		ClientID:    cat.ClientID,
		CategoryIDs: []uuid.UUID{categoryID},
		IsVisible:   &visible,
		OccurredAt:  s.now(),
	})
	return cat, nil
}
