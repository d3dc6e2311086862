// Package store holds the current snapshot of events and the connected
// wallet's tickets and POAPs, and mediates the mutating actions.
package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/modules/events/datagateway"
	"github.com/gaze-network/event-horizon/modules/events/internal/dispatcher"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gaze-network/event-horizon/modules/events/internal/metrics"
	"github.com/gaze-network/event-horizon/modules/events/internal/transform"
	"github.com/gaze-network/event-horizon/pkg/logger"
	"github.com/gaze-network/event-horizon/pkg/logger/slogx"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Wallet reports the connected address.
type Wallet interface {
	Address() (string, bool)
}

type Config struct {
	// GasReserve in MIST is added to the ticket price when checking the
	// balance before a purchase.
	GasReserve uint64
}

type Store struct {
	chain      datagateway.ChainReader
	dispatcher *dispatcher.Dispatcher
	wallet     Wallet
	journal    datagateway.ActionJournal
	config     Config
	now        func() time.Time

	// seq is the sequence number of the latest issued refresh.
	seq      atomic.Uint64
	inflight atomic.Int32

	mu       sync.RWMutex
	events   []entity.Event
	filtered []entity.Event
	tickets  []entity.Ticket
	poaps    []entity.Poap
	criteria entity.FilterCriteria
}

func New(chain datagateway.ChainReader, dispatcher *dispatcher.Dispatcher, wallet Wallet, journal datagateway.ActionJournal, config Config) *Store {
	return &Store{
		chain:      chain,
		dispatcher: dispatcher,
		wallet:     wallet,
		journal:    journal,
		config:     config,
		now:        time.Now,
		events:     []entity.Event{},
		filtered:   []entity.Event{},
		tickets:    []entity.Ticket{},
		poaps:      []entity.Poap{},
	}
}

// begin enters the loading state. The returned func must be deferred.
func (s *Store) begin() (end func()) {
	s.inflight.Add(1)
	metrics.InflightOperations.Inc()
	return func() {
		s.inflight.Add(-1)
		metrics.InflightOperations.Dec()
	}
}

// Loading reports whether a refresh or an action is in flight.
func (s *Store) Loading() bool {
	return s.inflight.Load() > 0
}

// Refresh reloads events, tickets and POAPs and replaces the snapshot. The
// results are dropped if another refresh was issued in the meantime.
func (s *Store) Refresh(ctx context.Context) error {
	defer s.begin()()
	seq := s.seq.Add(1)
	start := time.Now()

	var (
		rawEvents  []entity.RawEvent
		rawTickets []entity.RawTicket
		rawPoaps   []entity.RawPoap
	)
	owner, connected := s.wallet.Address()

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		rawEvents, err = s.chain.GetEvents(gctx)
		return errors.Wrap(err, "can't get events")
	})
	if connected {
		group.Go(func() (err error) {
			rawTickets, err = s.chain.GetUserTickets(gctx, owner)
			return errors.Wrap(err, "can't get user tickets")
		})
		group.Go(func() (err error) {
			rawPoaps, err = s.chain.GetUserPoaps(gctx, owner)
			return errors.Wrap(err, "can't get user poaps")
		})
	}
	if err := group.Wait(); err != nil {
		metrics.RecordRefresh(metrics.RefreshFailure, time.Since(start).Seconds())
		return errors.WithStack(err)
	}

	events := transform.Events(rawEvents)
	tickets := transform.Tickets(rawTickets, events)
	poaps := transform.Poaps(rawPoaps, events, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if latest := s.seq.Load(); seq != latest {
		metrics.RecordRefresh(metrics.RefreshStale, time.Since(start).Seconds())
		logger.DebugContext(ctx, "Dropped stale refresh", slog.Uint64("seq", seq), slog.Uint64("latest", latest))
		return nil
	}
	s.events = events
	s.filtered = filterEvents(events, s.criteria)
	s.tickets = tickets
	s.poaps = poaps

	metrics.Events.Set(float64(len(events)))
	metrics.RecordRefresh(metrics.RefreshSuccess, time.Since(start).Seconds())
	logger.DebugContext(ctx, "Refreshed store",
		slog.Int("events", len(events)),
		slog.Int("tickets", len(tickets)),
		slog.Int("poaps", len(poaps)),
		slogx.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *Store) Events() []entity.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.events)
}

func (s *Store) FilteredEvents() []entity.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.filtered)
}

func (s *Store) UserTickets() []entity.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.tickets)
}

func (s *Store) UserPoaps() []entity.Poap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.poaps)
}

// Criteria returns the last applied filter criteria.
func (s *Store) Criteria() entity.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// GetEventByID returns the event with id, or false when absent.
func (s *Store) GetEventByID(id string) (entity.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(s.events, func(e entity.Event) bool {
		return e.ID == id
	})
}

func (s *Store) userTicket(id string) (entity.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(s.tickets, func(t entity.Ticket) bool {
		return t.ID == id
	})
}

func clone[T any](s []T) []T {
	return append(make([]T, 0, len(s)), s...)
}
