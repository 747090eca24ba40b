// Package session owns one position book and applies commands to it one at
// a time, logging, counting and journaling each of them.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/tradebrain/config"
	"github.com/rustyeddy/tradebrain/journal"
	"github.com/rustyeddy/tradebrain/metrics"
	"github.com/rustyeddy/tradebrain/pkg/id"
	"github.com/rustyeddy/tradebrain/position"
	"go.uber.org/zap"
)

type Session struct {
	mu sync.Mutex

	id         string
	instrument string
	book       *position.Book

	log     *zap.Logger
	metrics *metrics.Metrics
	journal journal.Journal
	now     func() time.Time
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

func WithJournal(j journal.Journal) Option {
	return func(s *Session) { s.journal = j }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New seeds a book from cfg and records the session in the journal.
func New(cfg config.SessionConfig, opts ...Option) (*Session, error) {
	s := &Session{
		instrument: cfg.Instrument,
		book:       position.NewBook(),
		log:        zap.NewNop(),
		metrics:    metrics.New(nil),
		journal:    journal.Discard,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	started := s.now().UTC()
	s.id = id.NewAt(started)
	s.log = s.log.With(zap.String("session", s.id), zap.String("instrument", s.instrument))

	s.book.SetRiskPerTrade(cfg.RiskPerTrade)
	s.book.SetStockPrice(cfg.StockPrice)

	err := s.journal.RecordSession(journal.SessionRecord{
		SessionID:    s.id,
		Instrument:   s.instrument,
		Started:      started,
		RiskPerTrade: cfg.RiskPerTrade,
	})
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}

	s.log.Info("session started",
		zap.Float64("risk_per_trade", cfg.RiskPerTrade),
		zap.Float64("stock_price", cfg.StockPrice),
	)
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Instrument() string {
	return s.instrument
}

// Snapshot returns the derived state without applying anything.
func (s *Session) Snapshot() (position.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Snapshot()
}

// Apply runs one command. A rejected command leaves the book untouched and
// returns the error; an accepted one returns the new snapshot.
func (s *Session) Apply(cmd Command) (position.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := cmd.Name()
	s.metrics.Commands.WithLabelValues(name).Inc()

	trade, err := cmd.apply(s.book)
	if err != nil {
		s.reject(name, err)
		return position.Snapshot{}, err
	}

	snap, err := s.book.Snapshot()
	if err != nil {
		s.reject(name, err)
		return position.Snapshot{}, err
	}

	now := s.now().UTC()
	if trade != nil {
		err := s.journal.RecordExecution(journal.ExecutionRecord{
			ExecutionID: id.NewAt(now),
			SessionID:   s.id,
			Instrument:  s.instrument,
			Time:        now,
			Command:     name,
			Operation:   string(trade.Operation),
			SharesCount: trade.SharesCount,
			StockPrice:  trade.StockPrice,
			RiskLine:    trade.RiskLine,
			NetShares:   snap.NetShares,
		})
		if err != nil {
			s.log.Error("journal execution", zap.String("command", name), zap.Error(err))
			return snap, fmt.Errorf("journal execution: %w", err)
		}
	}

	err = s.journal.RecordSnapshot(s.snapshotRecord(name, now, snap))
	if err != nil {
		s.log.Error("journal snapshot", zap.String("command", name), zap.Error(err))
		return snap, fmt.Errorf("journal snapshot: %w", err)
	}

	s.observe(snap)

	fields := []zap.Field{
		zap.String("command", name),
		zap.Int64("net_shares", snap.NetShares),
		zap.Stringer("direction", snap.Direction),
	}
	if trade != nil {
		fields = append(fields,
			zap.String("operation", string(trade.Operation)),
			zap.Int64("shares", trade.SharesCount),
			zap.Float64("price", trade.StockPrice),
			zap.Float64("risk_line", trade.RiskLine),
		)
	}
	s.log.Info("command applied", fields...)

	return snap, nil
}

// Run applies cmds in order. A rejected command does not stop the run; the
// rejections are joined into the returned error together with their step.
func (s *Session) Run(ctx context.Context, cmds []Command) (position.Snapshot, error) {
	var errs []error
	for n, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.Apply(cmd); err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", n+1, cmd.Name(), err))
		}
	}

	snap, err := s.Snapshot()
	if err != nil {
		errs = append(errs, err)
	}
	return snap, errors.Join(errs...)
}

// SnapshotRecord flattens snap into the journal's row shape.
func (s *Session) SnapshotRecord(command string, snap position.Snapshot) journal.SnapshotRecord {
	return s.snapshotRecord(command, s.now().UTC(), snap)
}

func (s *Session) snapshotRecord(command string, at time.Time, snap position.Snapshot) journal.SnapshotRecord {
	return journal.SnapshotRecord{
		SessionID:      s.id,
		Time:           at,
		Command:        command,
		NetShares:      snap.NetShares,
		AveragePrice:   snap.AveragePrice,
		RealizedPL:     snap.RealizedProfit,
		UnrealizedPL:   snap.UnrealizedProfit,
		BERT:           snap.BreakEvenAdjusted,
		StopsPercent:   snap.Protection.StopsPercent,
		TargetsPercent: snap.Protection.TargetsPercent,
		StockPrice:     snap.StockPrice,
	}
}

func (s *Session) reject(name string, err error) {
	kind := ErrorKind(err)
	s.metrics.CommandErrors.WithLabelValues(name, kind).Inc()
	s.log.Warn("command rejected",
		zap.String("command", name),
		zap.String("kind", kind),
		zap.Error(err),
	)
}

func (s *Session) observe(snap position.Snapshot) {
	s.metrics.NetShares.Set(float64(snap.NetShares))
	s.metrics.Executions.Set(float64(snap.ExecutionsCount))
	s.metrics.Realized.Set(snap.RealizedProfit)
	s.metrics.Unrealized.Set(snap.UnrealizedProfit)
	s.metrics.StockPrice.Set(snap.StockPrice)
	s.metrics.ProtectedRatio.WithLabelValues("stops").Set(float64(snap.Protection.StopsPercent))
	s.metrics.ProtectedRatio.WithLabelValues("targets").Set(float64(snap.Protection.TargetsPercent))
}

// ErrorKind maps a book error to a short label for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, position.ErrMissingInput):
		return "missing_input"
	case errors.Is(err, position.ErrMissingData):
		return "missing_data"
	case errors.Is(err, position.ErrInvalidRiskLine):
		return "invalid_risk_line"
	case errors.Is(err, position.ErrDegenerateRiskLine):
		return "degenerate_risk_line"
	case errors.Is(err, position.ErrDegenerateAverage):
		return "degenerate_average"
	default:
		return "other"
	}
}
