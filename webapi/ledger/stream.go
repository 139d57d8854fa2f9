package ledger

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	ledgersvc "github.com/amirasaad/opsledger/pkg/service/ledger"
	webcommon "github.com/amirasaad/opsledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	heartbeatInterval = 15 * time.Second

	// streamStartTimeout releases a subscription whose body writer was never started.
	streamStartTimeout = 30 * time.Second
)

// Stream returns a handler that streams the history of one account as server-sent
// events: one "snapshot" event, then "added" and "removed" events as transfers commit
// or records are deleted. Query: limit bounds the snapshot.
func Stream(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		if limit < 0 {
			return webcommon.ProblemDetailsJSON(c, "Invalid paging",
				fiber.NewError(fiber.StatusBadRequest, "limit must be a non-negative integer"))
		}
		ctx, cancel := context.WithCancel(context.Background())
		sub, err := svc.Subscribe(ctx, c.Params("id"), limit)
		if err != nil {
			cancel()
			return webcommon.ProblemDetailsJSON(c, "Failed to subscribe", err)
		}
		lease := &streamLease{cancel: cancel}
		go lease.watch(ctx, c.Context().Done(), streamStartTimeout)

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer cancel()
			defer sub.Cancel()
			if !lease.start() {
				return
			}
			if err := streamChanges(w, sub, heartbeatInterval); err != nil {
				log.Debugf("History stream for %s ended: %v", sub.CategoryID, err)
			}
		})
		return nil
	}
}

// streamLease ends a subscription when its body writer never runs: the writer must
// start before the timeout, and the subscription also ends when the server shuts down.
type streamLease struct {
	mu       sync.Mutex
	started  bool
	released bool
	cancel   context.CancelFunc
}

// start claims the subscription for the writer. It reports false once the lease expired.
func (l *streamLease) start() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return false
	}
	l.started = true
	return true
}

func (l *streamLease) expire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return false
	}
	l.released = true
	l.cancel()
	return true
}

func (l *streamLease) watch(ctx context.Context, done <-chan struct{}, timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			l.cancel()
			return
		case <-timer.C:
			if l.expire() {
				return
			}
		}
	}
}

// streamChanges writes the subscription to w until it ends or a write fails.
func streamChanges(w *bufio.Writer, sub *ledgersvc.Subscription, heartbeat time.Duration) error {
	if err := writeEvent(w, "snapshot", toTransactionResponses(sub.Snapshot)); err != nil {
		return err
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()
	for {
		select {
		case change, ok := <-sub.Changes():
			if !ok {
				if err := sub.Err(); err != nil {
					_ = writeEvent(w, "error", fiber.Map{"detail": err.Error()})
					return err
				}
				return nil
			}
			tx := change.Transaction
			resp := ChangeResponse{Kind: string(change.Kind), Transaction: toTransactionResponse(&tx)}
			if err := writeEvent(w, string(change.Kind), resp); err != nil {
				return err
			}
		case <-ticker.C:
			if _, err := w.WriteString(": ping\n\n"); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
}

func writeEvent(w *bufio.Writer, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload); err != nil {
		return err
	}
	return w.Flush()
}
