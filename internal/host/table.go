package host

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardroomlabs/holdemcore/internal/config"
	"github.com/cardroomlabs/holdemcore/internal/engine"
)

var (
	// ErrStaleVersion is returned when an action carries a version
	// that no longer matches the table state.
	ErrStaleVersion = errors.New("stale state version")
	// ErrTableFull is returned when the table has no free seats.
	ErrTableFull = errors.New("table is full")
)

// TableHost owns the authoritative state for one table. All access is
// serialized through its mutex; the engine itself stays pure and the
// host layers the turn clock, event log and versioning on top.
type TableHost struct {
	mu      sync.Mutex
	id      string
	cfg     config.TableConfig
	machine *engine.Machine
	state   *engine.GameState
	events  []engine.Event
	logger  *log.Logger
	clock   quartz.Clock
	timeout time.Duration
	timer   *quartz.Timer
}

// TableOption configures a TableHost.
type TableOption func(*TableHost)

// WithClock substitutes the clock driving the turn timer. Tests pass
// a quartz mock.
func WithClock(clock quartz.Clock) TableOption {
	return func(h *TableHost) {
		h.clock = clock
	}
}

// WithLogger attaches a logger to the table.
func WithLogger(logger *log.Logger) TableOption {
	return func(h *TableHost) {
		h.logger = logger
	}
}

// WithMachine substitutes the engine, letting tests stack the deck.
func WithMachine(m *engine.Machine) TableOption {
	return func(h *TableHost) {
		h.machine = m
	}
}

// WithTurnTimeout overrides the configured turn timeout.
func WithTurnTimeout(d time.Duration) TableOption {
	return func(h *TableHost) {
		h.timeout = d
	}
}

// NewTable seats the given players at a fresh table.
func NewTable(cfg config.TableConfig, seats []engine.Seat, opts ...TableOption) (*TableHost, error) {
	if len(seats) > cfg.MaxPlayers {
		return nil, fmt.Errorf("%w: %d seats, max %d", ErrTableFull, len(seats), cfg.MaxPlayers)
	}
	state, err := engine.NewGameState(seats, cfg.SmallBlind, cfg.BigBlind)
	if err != nil {
		return nil, err
	}

	h := &TableHost{
		id:      uuid.NewString(),
		cfg:     cfg,
		machine: engine.New(),
		state:   state,
		logger:  log.New(io.Discard),
		clock:   quartz.NewReal(),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.WithPrefix("table").With("table", h.id)
	return h, nil
}

// ID returns the table's identifier.
func (h *TableHost) ID() string { return h.id }

// State returns a copy of the current table state.
func (h *TableHost) State() *engine.GameState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Clone()
}

// Version returns the current state version.
func (h *TableHost) Version() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Version
}

// Events returns a copy of the table's event log.
func (h *TableHost) Events() []engine.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]engine.Event(nil), h.events...)
}

// StartHand begins the next hand and arms the turn clock.
func (h *TableHost) StartHand() ([]engine.Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.process(engine.StartHand())
}

// Act submits a player action.
func (h *TableHost) Act(seat int, action engine.ActionType, amount int) ([]engine.Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.process(engine.PlayerAct(seat, action, amount))
}

// Leave removes a seat from the table. If a hand is running the seat
// folds out; the remaining stack is returned for the host to settle.
func (h *TableHost) Leave(seat int) (int, []engine.Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	events, err := h.process(engine.Leave(seat))
	if err != nil {
		return 0, nil, err
	}
	return h.state.Player(seat).Stack, events, nil
}

// ActVersioned submits a player action that is only valid against the
// state version the client last saw.
func (h *TableHost) ActVersioned(version uint64, seat int, action engine.ActionType, amount int) ([]engine.Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if version != h.state.Version {
		return nil, fmt.Errorf("%w: have %d, got %d", ErrStaleVersion, h.state.Version, version)
	}
	return h.process(engine.PlayerAct(seat, action, amount))
}

// process runs one input through the machine and manages the turn
// timer around it. Callers hold the mutex.
func (h *TableHost) process(in engine.Input) ([]engine.Event, error) {
	next, events, err := h.machine.Process(h.state, in)
	if err != nil {
		return nil, err
	}
	h.state = next
	h.events = append(h.events, events...)

	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	if seat := h.state.ToAct; seat != -1 {
		h.armTurnTimer(seat, h.state.Version)
	}
	return events, nil
}

// armTurnTimer schedules the timeout default for the acting seat. The
// captured version makes a late firing against a newer state a no-op.
func (h *TableHost) armTurnTimer(seat int, version uint64) {
	h.timer = h.clock.AfterFunc(h.timeout, func() {
		h.onTurnTimeout(seat, version)
	})
}

func (h *TableHost) onTurnTimeout(seat int, version uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Version != version || h.state.ToAct != seat {
		return
	}

	action := engine.Fold
	for _, la := range h.state.LegalActions(seat) {
		if la.Action == engine.Check {
			action = engine.Check
			break
		}
	}
	h.logger.Warn("turn timed out", "seat", seat, "action", action.String())

	if _, err := h.process(engine.TimeoutAct(seat, action)); err != nil {
		h.logger.Error("timeout action rejected", "seat", seat, "error", err)
	}
}
