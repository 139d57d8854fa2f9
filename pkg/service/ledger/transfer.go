package ledger

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/events"
	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/amirasaad/opsledger/pkg/notify"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/amirasaad/opsledger/pkg/retry"
	"github.com/google/uuid"
)

// TransferCommand moves Amount from SourceID to TargetID.
type TransferCommand struct {
	SourceID    uuid.UUID
	TargetID    uuid.UUID
	Amount      money.Amount
	Description string
}

// TransferResult describes a committed transfer.
type TransferResult struct {
	TransferID   uuid.UUID
	Source       *category.Category
	Target       *category.Category
	Transactions []*history.Transaction
	Attempts     int
}

// Transfer validates the command and commits it atomically. It fails fast without
// touching storage on invalid input. A conflicting concurrent write makes the whole
// read-decide-write step run again; after the last retry the caller gets an error
// matching domain.ErrConflict and may try again later.
//
// Once submitted, the commit is not interrupted by cancellation of ctx.
func (s *Service) Transfer(ctx context.Context, cmd TransferCommand) (*TransferResult, error) {
	logger := s.logger.With(
		"sourceID", cmd.SourceID,
		"targetID", cmd.TargetID,
		"amount", cmd.Amount,
	)
	logger.Info("Transfer started")

	if err := s.validate(cmd); err != nil {
		logger.Warn("Transfer failed: validation", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	description := strings.TrimSpace(cmd.Description)

	commitCtx := context.WithoutCancel(ctx)
	var result *TransferResult
	err := retry.Do(ctx, s.policy, retry.IsConflict, func(attempt int) error {
		res, err := s.commitTransfer(commitCtx, cmd, description)
		if err != nil {
			if retry.IsConflict(err) {
				logger.Warn("Transfer conflict, retrying", "attempt", attempt)
			}
			return err
		}
		res.Attempts = attempt
		result = res
		return nil
	})
	if err != nil {
		logger.Error("Transfer failed", "error", err)
		s.notifier.Notify(commitCtx, fmt.Sprintf("Transfer failed: %v", err), notify.LevelError)
		return nil, err
	}

	s.publish(commitCtx, result)
	s.notifier.Notify(commitCtx, fmt.Sprintf("Transferred %s from %s to %s",
		s.codec.Format(cmd.Amount), result.Source.Title, result.Target.Title), notify.LevelSuccess)
	logger.Info("Transfer successful", "transferID", result.TransferID, "attempts", result.Attempts)
	return result, nil
}

func (s *Service) validate(cmd TransferCommand) error {
	if err := history.ValidateTransfer(cmd.Amount, cmd.Description); err != nil {
		return err
	}
	if cmd.SourceID == cmd.TargetID && !s.allowSelfTransfer {
		return ErrSelfTransfer
	}
	return nil
}

// commitTransfer runs one attempt. It reads both accounts fresh, so a retry always
// decides on current balances.
func (s *Service) commitTransfer(ctx context.Context, cmd TransferCommand, description string) (*TransferResult, error) {
	transferID := uuid.New()
	var result *TransferResult
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		source, err := categories.Get(ctx, cmd.SourceID)
		if err != nil {
			return err
		}
		target := source
		if cmd.TargetID != cmd.SourceID {
			if target, err = categories.Get(ctx, cmd.TargetID); err != nil {
				return err
			}
		}

		records := []*history.Transaction{
			history.NewDebit(transferID, source.ID.String(), source.Title, target.Title, cmd.Amount, description),
			history.NewCredit(transferID, target.ID.String(), source.Title, target.Title, cmd.Amount, description),
		}
		if source.Row == category.RowPerson {
			records = append(records, history.NewSystemCredit(transferID, source.Title, cmd.Amount, description))
		}
		if err := txs.Append(ctx, records...); err != nil {
			return err
		}

		// Rows are written in id order so that two opposite transfers cannot deadlock.
		first, firstDelta, second, secondDelta := source, cmd.Amount.Neg(), target, cmd.Amount
		if bytes.Compare(target.ID[:], source.ID[:]) < 0 {
			first, firstDelta, second, secondDelta = target, cmd.Amount, source, cmd.Amount.Neg()
		}
		if err := applyDelta(ctx, categories, first, firstDelta); err != nil {
			return err
		}
		if err := applyDelta(ctx, categories, second, secondDelta); err != nil {
			return err
		}

		result = &TransferResult{
			TransferID:   transferID,
			Source:       source,
			Target:       target,
			Transactions: records,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func applyDelta(ctx context.Context, repo repository.CategoryRepository, c *category.Category, delta money.Amount) error {
	balance, err := c.Balance.Add(delta)
	if err != nil {
		return err
	}
	return repo.SetBalance(ctx, c, balance)
}

// publish emits the committed records and balances. Delivery failures are logged only.
func (s *Service) publish(ctx context.Context, res *TransferResult) {
	if s.bus == nil {
		return
	}
	now := time.Now().UTC()
	txs := make([]history.Transaction, 0, len(res.Transactions))
	for _, tx := range res.Transactions {
		txs = append(txs, *tx)
	}
	changes := []events.BalanceChange{{CategoryID: res.Source.ID, Balance: res.Source.Balance, Version: res.Source.Version}}
	if res.Target != res.Source {
		changes = append(changes, events.BalanceChange{CategoryID: res.Target.ID, Balance: res.Target.Balance, Version: res.Target.Version})
	}

	for _, evt := range []events.Event{
		events.TransactionsAppended{TransferID: res.TransferID, Transactions: txs, OccurredAt: now},
		events.BalanceChanged{TransferID: res.TransferID, Changes: changes, OccurredAt: now},
	} {
		if err := s.bus.Emit(ctx, evt); err != nil {
			s.logger.Warn("failed to publish event", "type", evt.Type(), "error", err)
		}
	}
}
