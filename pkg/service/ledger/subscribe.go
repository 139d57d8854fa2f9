package ledger

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/amirasaad/opsledger/pkg/domain"
	"github.com/amirasaad/opsledger/pkg/domain/events"
	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/eventbus"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/google/uuid"
)

var (
	// ErrSubscriberLagging closes a subscription whose consumer fell a full buffer behind.
	ErrSubscriberLagging = domain.NewError(domain.ErrUnavailable, "subscriber is not keeping up")
	// ErrSubscriptionsDisabled is returned when the service runs without an event bus.
	ErrSubscriptionsDisabled = domain.NewError(domain.ErrUnavailable, "live history is not available")
)

// ChangeKind tells what happened to a history record.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
)

// Change is one update delivered to a subscription. Removed changes carry only the
// record id and account id.
type Change struct {
	Kind        ChangeKind
	Transaction history.Transaction
}

// Subscription streams the history of one account. Snapshot holds the records that
// existed when the subscription started, newest first; Changes delivers what happened
// afterwards, in commit order, without repeating snapshot records.
type Subscription struct {
	CategoryID string
	Snapshot   []*history.Transaction

	ch      chan Change
	done    chan struct{}
	mu      sync.Mutex
	ready   bool
	pending []Change
	closed  bool
	err     error
	feed    *feed
}

// Changes returns the channel of changes. It is closed when the subscription ends.
func (s *Subscription) Changes() <-chan Change {
	return s.ch
}

// Err returns ErrSubscriberLagging when the feed closed the subscription, nil otherwise.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Cancel ends the subscription. It is safe to call more than once and never touches storage.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	s.closeLocked(nil)
	s.mu.Unlock()
	s.feed.remove(s)
}

func (s *Subscription) closeLocked(err error) {
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	s.pending = nil
	close(s.ch)
	close(s.done)
}

func (s *Subscription) deliver(c Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if !s.ready {
		if len(s.pending) >= cap(s.ch) {
			s.closeLocked(ErrSubscriberLagging)
			return
		}
		s.pending = append(s.pending, c)
		return
	}
	s.sendLocked(c)
}

func (s *Subscription) sendLocked(c Change) {
	select {
	case s.ch <- c:
	default:
		s.closeLocked(ErrSubscriberLagging)
	}
}

// activate installs the snapshot and flushes the changes that arrived while it was loading,
// dropping additions the snapshot already contains.
func (s *Subscription) activate(snapshot []*history.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Snapshot = snapshot
	s.ready = true
	if s.closed {
		return
	}
	seen := make(map[uuid.UUID]struct{}, len(snapshot))
	for _, tx := range snapshot {
		seen[tx.ID] = struct{}{}
	}
	pending := s.pending
	s.pending = nil
	for _, c := range pending {
		if _, ok := seen[c.Transaction.ID]; ok && c.Kind == ChangeAdded {
			continue
		}
		s.sendLocked(c)
		if s.closed {
			return
		}
	}
}

// feed fans history events out to the subscriptions of each account.
type feed struct {
	buffer int
	logger *slog.Logger
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
}

func newFeed(buffer int, logger *slog.Logger) *feed {
	if buffer <= 0 {
		buffer = 64
	}
	return &feed{buffer: buffer, logger: logger, subs: make(map[string]map[*Subscription]struct{})}
}

func (f *feed) register(bus eventbus.Bus) {
	bus.Register(events.EventTypeTransactionsAppended, f.handle)
	bus.Register(events.EventTypeTransactionsRemoved, f.handle)
}

func (f *feed) add(categoryID string) *Subscription {
	s := &Subscription{
		CategoryID: categoryID,
		ch:         make(chan Change, f.buffer),
		done:       make(chan struct{}),
		feed:       f,
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs[categoryID] == nil {
		f.subs[categoryID] = make(map[*Subscription]struct{})
	}
	f.subs[categoryID][s] = struct{}{}
	return s
}

func (f *feed) remove(s *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set := f.subs[s.CategoryID]
	delete(set, s)
	if len(set) == 0 {
		delete(f.subs, s.CategoryID)
	}
}

func (f *feed) subscribers(categoryID string) []*Subscription {
	f.mu.RLock()
	defer f.mu.RUnlock()
	set := f.subs[categoryID]
	out := make([]*Subscription, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

// count returns the number of live subscriptions. Used by tests.
func (f *feed) count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, set := range f.subs {
		n += len(set)
	}
	return n
}

func (f *feed) handle(_ context.Context, evt events.Event) error {
	switch e := evt.(type) {
	case events.TransactionsAppended:
		f.appended(e)
	case *events.TransactionsAppended:
		f.appended(*e)
	case events.TransactionsRemoved:
		f.removed(e)
	case *events.TransactionsRemoved:
		f.removed(*e)
	default:
		f.logger.Debug("feed ignored event", "type", evt.Type())
	}
	return nil
}

func (f *feed) appended(e events.TransactionsAppended) {
	for _, tx := range e.Transactions {
		for _, s := range f.subscribers(tx.CategoryID) {
			s.deliver(Change{Kind: ChangeAdded, Transaction: tx})
		}
	}
}

func (f *feed) removed(e events.TransactionsRemoved) {
	for _, ref := range e.Removed {
		for _, s := range f.subscribers(ref.CategoryID) {
			s.deliver(Change{Kind: ChangeRemoved, Transaction: history.Transaction{ID: ref.ID, CategoryID: ref.CategoryID}})
		}
	}
}

// Subscribe starts streaming the history of categoryID. limit bounds the snapshot
// (0 for all records). The subscription ends when ctx is done, when Cancel is called,
// or when the consumer lags a full buffer behind.
func (s *Service) Subscribe(ctx context.Context, categoryID string, limit int) (*Subscription, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, ErrCategoryIDRequired
	}
	if s.feed == nil {
		return nil, ErrSubscriptionsDisabled
	}

	sub := s.feed.add(categoryID)
	snapshot, err := s.History(ctx, categoryID, repository.Page{Limit: limit})
	if err != nil {
		sub.Cancel()
		return nil, err
	}
	sub.activate(snapshot)

	go func() {
		select {
		case <-ctx.Done():
			sub.Cancel()
		case <-sub.done:
			s.feed.remove(sub)
		}
	}()
	s.logger.Debug("Subscribe successful", "categoryID", categoryID, "snapshot", len(snapshot))
	return sub, nil
}
