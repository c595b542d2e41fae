package telegram

import (
	"context"
	"log"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// RunningState is the lifecycle phase of a Poller.
type RunningState int32

const (
	// StateStopped means no polling loop is live. The initial state.
	StateStopped RunningState = iota
	// StateRunning means the loop goroutine is active.
	StateRunning
	// StateStopRequested means Stop was called and the loop will exit
	// at its next state boundary.
	StateStopRequested
)

func (s RunningState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateStopRequested:
		return "stop_requested"
	default:
		return "unknown"
	}
}

// DefaultPollTimeout is the long-poll timeout, in seconds, applied when
// PollConfig.Timeout is zero.
const DefaultPollTimeout = 60

// observerBuffer is the capacity of the error channel returned by
// Poller.Errors.
const observerBuffer = 16

// pollGrace pads the HTTP deadline past the long-poll timeout so the
// server can answer a full-length poll before the client gives up.
// Variable so tests can shrink it.
var pollGrace = 5 * time.Second

// PollConfig carries the per-run settings of a Poller. It is read once
// at Start and never consulted again, so mutating it mid-run has no
// effect.
type PollConfig struct {
	// Offset seeds the cursor on the very first Start of a Poller. On
	// later starts of the same instance the cursor carries over from
	// the previous run and Offset is ignored; use ResetOffset for an
	// explicit rewind.
	Offset int64

	// Limit caps the updates per batch, 1-100. Zero keeps the server
	// default.
	Limit int

	// Timeout is the long-poll timeout in seconds. Zero selects
	// DefaultPollTimeout.
	Timeout int

	// AllowedUpdates narrows which categories the server delivers.
	// Empty keeps the server's previous setting.
	AllowedUpdates []UpdateType

	// Backoff decides the wait between failed acquire attempts. Nil
	// selects DefaultBackoff.
	Backoff BackoffPolicy

	// Tracer, when non-nil, records a span tree per poll cycle.
	Tracer *Tracer
}

// UpdateFetcher is the engine's one transport dependency: a single
// long poll returning the next batch of updates. *BotAPI implements it.
type UpdateFetcher interface {
	GetUpdatesWithContext(ctx context.Context, config UpdateConfig) ([]Update, error)
}

// Poller drives the acquire/dispatch/advance cycle against an
// UpdateFetcher on one supervised background goroutine.
//
// Usage:
//
//	bot, _ := telegram.NewBotAPI(token)
//
//	poller := telegram.NewPoller(bot)
//	poller.Handle(telegram.UpdateTypeMessage, func(u telegram.Update) error {
//	    _, err := bot.Send(telegram.NewMessage(u.Message.Chat.ID, u.Message.Text))
//	    return err
//	})
//
//	if err := poller.Start(telegram.PollConfig{Timeout: 30}); err != nil {
//	    log.Fatal(err)
//	}
//	defer poller.Stop()
//
// The loop owns the cursor: it advances only after a batch has been
// fully dispatched, so a crash between acquire and advance re-delivers
// the batch instead of losing it. Stop is cooperative and takes effect
// at the next state boundary; an in-flight long poll is never cut
// short, which bounds stop latency by the poll timeout. Failures are
// classified and emitted on Errors; only fatal ones (revoked or invalid
// token) end the loop by themselves.
type Poller struct {
	fetcher    UpdateFetcher
	dispatcher *Dispatcher

	cursor  cursor
	state   atomic.Int32
	errs    chan BotError
	dropped atomic.Int64

	mu     sync.Mutex // guards Start/Stop/ResetOffset and the fields below
	cancel context.CancelFunc
	done   chan struct{}
	seeded bool
}

// NewPoller creates a stopped poller around fetcher. Register handlers,
// then call Start.
func NewPoller(fetcher UpdateFetcher) *Poller {
	done := make(chan struct{})
	close(done) // Done is immediately ready while nothing has run yet
	return &Poller{
		fetcher:    fetcher,
		dispatcher: NewDispatcher(),
		errs:       make(chan BotError, observerBuffer),
		done:       done,
	}
}

// Handle registers a handler for one update category. Safe to call
// while the loop is running; the next dispatch sees it.
func (p *Poller) Handle(t UpdateType, h Handler) {
	p.dispatcher.Handle(t, h)
}

// HandleAll registers a handler invoked for every update, after the
// category handlers.
func (p *Poller) HandleAll(h Handler) {
	p.dispatcher.HandleAll(h)
}

// Start launches the polling loop. It returns ErrAlreadyRunning when a
// loop is live or still winding down; otherwise it returns nil
// immediately and the loop runs until Stop or a fatal error.
func (p *Poller) Start(cfg PollConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Status() != StateStopped {
		return ErrAlreadyRunning
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultPollTimeout
	}
	if cfg.Backoff == nil {
		cfg.Backoff = DefaultBackoff()
	}
	if !p.seeded {
		p.cursor.reset(cfg.Offset)
		p.seeded = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	p.state.Store(int32(StateRunning))

	go p.run(ctx, cancel, cfg, done)
	return nil
}

// Stop requests a cooperative shutdown. It returns immediately; the
// loop exits at its next state boundary, so an in-flight long poll may
// run to completion first. Wait on Done for the actual exit. Stopping
// a poller that is not running is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Status() != StateRunning {
		return
	}
	p.state.Store(int32(StateStopRequested))
	p.cancel()
}

// Status returns the current lifecycle phase.
func (p *Poller) Status() RunningState {
	return RunningState(p.state.Load())
}

// Offset returns a snapshot of the cursor: the id the next acquire will
// ask for. Safe from any goroutine.
func (p *Poller) Offset() int64 {
	return p.cursor.current()
}

// ResetOffset overwrites the cursor, e.g. to replay updates the server
// still retains. It refuses with ErrAlreadyRunning unless the poller is
// fully stopped, and suppresses the Offset seed of the next Start.
func (p *Poller) ResetOffset(offset int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Status() != StateStopped {
		return ErrAlreadyRunning
	}
	p.cursor.reset(offset)
	p.seeded = true
	return nil
}

// Errors returns the channel classified failures are emitted on: every
// transport, service, protocol and handler error the loop encounters,
// with Fatal set on the ones that end it. The channel is buffered and
// never closed; when nobody drains it, new errors are dropped and
// counted rather than blocking the loop.
func (p *Poller) Errors() <-chan BotError {
	return p.errs
}

// Done returns a channel that closes once the current loop has fully
// exited. For a poller that never started it is already closed.
func (p *Poller) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// run is the polling loop. It owns every cursor write and runs
// handlers; nothing here executes concurrently with itself. Stop only
// takes effect at the boundaries checked below, never mid-dispatch.
func (p *Poller) run(ctx context.Context, cancel context.CancelFunc, cfg PollConfig, done chan struct{}) {
	defer func() {
		cancel()
		p.state.Store(int32(StateStopped))
		close(done)
	}()

	log.Printf("[Poller] Started polling (offset=%d, timeout=%ds, limit=%d)",
		p.cursor.current(), cfg.Timeout, cfg.Limit)

	attempt := 0
	for {
		if ctx.Err() != nil {
			log.Println("[Poller] Stopped")
			return
		}

		cfg.Tracer.NewTrace()
		cycle := cfg.Tracer.StartSpan("poll_cycle", SpanKindCycle, map[string]interface{}{
			"offset": p.cursor.current(),
		})

		batch, err := p.acquire(cfg)

		// A batch that lands after Stop is dropped without dispatch or
		// cursor movement; the server re-delivers it on the next run.
		if ctx.Err() != nil {
			cfg.Tracer.EndSpan(cycle, "ok", "")
			log.Println("[Poller] Stopped")
			return
		}

		if err != nil {
			be := classifyFetchError(err)
			p.report(be)

			if be.Fatal {
				cfg.Tracer.EndSpan(cycle, "error", be.Error())
				log.Printf("[Poller] Fatal error, stopping: %v", be)
				return
			}

			attempt++
			delay := cfg.Backoff.Delay(attempt, err)
			if be.RetryAfter > delay {
				delay = be.RetryAfter
			}
			log.Printf("[Poller] Poll attempt %d failed, retrying in %s: %v", attempt, delay, be)

			if !p.backoff(ctx, cfg, attempt, delay) {
				cfg.Tracer.EndSpan(cycle, "error", be.Error())
				log.Println("[Poller] Stopped")
				return
			}
			cfg.Tracer.EndSpan(cycle, "error", be.Error())
			continue
		}
		attempt = 0

		p.dispatchBatch(cfg, batch)
		cfg.Tracer.EndSpan(cycle, "ok", "")
	}
}

// acquire performs one long poll at the current cursor. Its deadline
// deliberately derives from Background rather than the loop context:
// cancellation must never cut a poll short, only stop the loop from
// starting another one.
func (p *Poller) acquire(cfg PollConfig) ([]Update, error) {
	span := cfg.Tracer.StartSpan("acquire", SpanKindAcquire, map[string]interface{}{
		"offset": p.cursor.current(),
	})

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Timeout)*time.Second+pollGrace)
	defer cancel()

	batch, err := p.fetcher.GetUpdatesWithContext(ctx, UpdateConfig{
		Offset:         p.cursor.current(),
		Limit:          cfg.Limit,
		Timeout:        cfg.Timeout,
		AllowedUpdates: cfg.AllowedUpdates,
	})
	if err != nil {
		cfg.Tracer.EndSpan(span, "error", err.Error())
		return nil, err
	}

	span.SetAttribute("batch_size", len(batch))
	cfg.Tracer.EndSpan(span, "ok", "")
	return batch, nil
}

// dispatchBatch classifies and fans out one acquired batch, then moves
// the cursor past it. The cursor moves only here and only after the
// last item has been handed to every handler, so a batch is either
// fully dispatched or re-delivered whole.
func (p *Poller) dispatchBatch(cfg PollConfig, batch []Update) {
	if len(batch) == 0 {
		return
	}

	span := cfg.Tracer.StartSpan("dispatch", SpanKindDispatch, map[string]interface{}{
		"batch_size": len(batch),
	})

	next := p.cursor.current()
	maxSeen := next - 1
	for i := range batch {
		u := batch[i]

		// Ids at or below the highest already handled are server
		// re-sends; skipping them keeps delivery in order and
		// at-most-once.
		if u.UpdateID <= maxSeen {
			continue
		}
		maxSeen = u.UpdateID

		if n := u.variantCount(); n != 1 {
			p.report(newProtocolError(u.UpdateID, n))
		}

		t := u.Type()
		hspan := cfg.Tracer.StartSpan("handle:"+string(t), SpanKindHandler, map[string]interface{}{
			"update_id": u.UpdateID,
		})
		herrs := p.dispatcher.Dispatch(t, u)
		for _, herr := range herrs {
			p.report(newHandlerError(u.UpdateID, herr))
		}
		if len(herrs) > 0 {
			cfg.Tracer.EndSpan(hspan, "error", herrs[0].Error())
		} else {
			cfg.Tracer.EndSpan(hspan, "ok", "")
		}
	}

	if maxSeen >= next {
		p.cursor.advance(maxSeen)
	}
	span.SetAttribute("next_offset", p.cursor.current())
	cfg.Tracer.EndSpan(span, "ok", "")
}

// backoff waits out one retry delay. It returns false when the wait was
// cut short by Stop, in which case the loop exits without another
// acquire.
func (p *Poller) backoff(ctx context.Context, cfg PollConfig, attempt int, delay time.Duration) bool {
	span := cfg.Tracer.StartSpan("backoff", SpanKindBackoff, map[string]interface{}{
		"attempt":  attempt,
		"delay_ms": delay.Milliseconds(),
	})
	defer cfg.Tracer.EndSpan(span, "ok", "")

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// report emits one classified error on the observer channel without
// ever blocking the loop. With no reader draining the channel the error
// is dropped and counted instead.
func (p *Poller) report(be BotError) {
	select {
	case p.errs <- be:
	default:
		n := p.dropped.Inc()
		log.Printf("[Poller] Observer channel full, dropped %s error (%d dropped total)", be.Kind, n)
	}
}
