package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdemcore/internal/deck"
	"github.com/cardroomlabs/holdemcore/internal/eval"
	"github.com/cardroomlabs/holdemcore/internal/randutil"
)

// Machine runs hands as a pure transition function over GameState.
// Process never mutates its input; it clones, applies, and returns the
// new state together with the events describing what happened. On any
// error the returned state is nil and the input state is unchanged.
type Machine struct {
	newDeck func() *deck.Deck
	logger  *log.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithDeckFunc overrides how the machine builds a deck for each hand.
// Tests use this with deck.NewStacked to script board runouts.
func WithDeckFunc(fn func() *deck.Deck) Option {
	return func(m *Machine) {
		m.newDeck = fn
	}
}

// WithLogger attaches a logger for per-transition debug output.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// New creates a Machine. Without options hands are dealt from a
// time-seeded shuffle.
func New(opts ...Option) *Machine {
	m := &Machine{
		newDeck: func() *deck.Deck {
			return deck.New(randutil.New(time.Now().UnixNano()))
		},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Process applies one input to the state. The returned state has its
// Version incremented and is checked against the chip-conservation
// invariant before being handed back.
func (m *Machine) Process(state *GameState, in Input) (*GameState, []Event, error) {
	s := state.Clone()

	var events []Event
	var err error
	switch in.Kind {
	case InputStartHand:
		events, err = m.startHand(s)
	case InputPlayerAction, InputTimeout:
		events, err = m.handleAction(s, in)
	case InputLeave:
		events, err = m.handleLeave(s, in.Seat)
	default:
		err = fmt.Errorf("%w: unknown input kind %d", ErrInvalidAmount, in.Kind)
	}
	if err != nil {
		return nil, nil, err
	}

	s.Version++
	if err := s.checkConservation(); err != nil {
		return nil, nil, err
	}
	return s, events, nil
}

func (m *Machine) startHand(s *GameState) ([]Event, error) {
	if s.Street != Waiting && s.Street != Complete {
		return nil, ErrHandInProgress
	}

	for _, p := range s.Players {
		p.resetForHand()
	}

	funded := 0
	for _, p := range s.Players {
		if p.funded() {
			funded++
		}
	}
	if funded < 2 {
		return nil, ErrNotEnoughPlayers
	}

	s.Dealer = s.nextSeatWhere(s.Dealer, (*Player).funded)
	if funded == 2 {
		s.SmallBlind = s.Dealer
		s.BigBlind = s.nextSeatWhere(s.Dealer, (*Player).funded)
	} else {
		s.SmallBlind = s.nextSeatWhere(s.Dealer, (*Player).funded)
		s.BigBlind = s.nextSeatWhere(s.SmallBlind, (*Player).funded)
	}

	s.HandNumber++
	s.Street = Preflop
	s.Community = nil
	s.History = nil
	s.LastAggressor = -1
	for i := range s.Acted {
		s.Acted[i] = false
	}

	// Seat order starting left of the dealer, used for dealing.
	n := len(s.Players)
	var seats []int
	for i := 1; i <= n; i++ {
		seat := (s.Dealer + i) % n
		if s.Players[seat].funded() {
			seats = append(seats, seat)
		}
	}

	events := []Event{HandStarted{
		HandNumber: s.HandNumber,
		Dealer:     s.Dealer,
		SmallBlind: s.SmallBlind,
		BigBlind:   s.BigBlind,
		Blinds:     [2]int{s.SmallBlindAmount, s.BigBlindAmount},
		Seats:      seats,
	}}
	events = append(events, s.postBlinds()...)

	s.Deck = m.newDeck()
	for round := 0; round < 2; round++ {
		for _, seat := range seats {
			c, err := s.Deck.Draw()
			if err != nil {
				return nil, err
			}
			p := s.Players[seat]
			p.HoleCards = append(p.HoleCards, c)
		}
	}

	s.ToAct = s.firstToAct()
	m.logger.Debug("hand started",
		"hand", s.HandNumber, "dealer", s.Dealer, "players", len(seats), "to_act", s.ToAct)

	// Forced blinds can put every player (or all but one, with nothing
	// left to call) all-in before anyone acts. Run the board out
	// immediately instead of committing a hand nobody can advance.
	if s.ToAct == -1 || s.roundComplete() {
		return m.settleRound(s, events)
	}
	return events, nil
}

func (m *Machine) handleAction(s *GameState, in Input) ([]Event, error) {
	timeout := in.Kind == InputTimeout
	events, err := s.applyPlayerAction(in.Seat, in.Action, in.Amount, timeout)
	if err != nil {
		return nil, err
	}
	s.History = append(s.History, HistoryEntry{
		Seat:    in.Seat,
		Action:  in.Action,
		Amount:  in.Amount,
		Street:  s.Street,
		Timeout: timeout,
	})
	m.logger.Debug("action applied",
		"hand", s.HandNumber, "seat", in.Seat, "action", in.Action.String(), "street", s.Street.String())

	if s.inHandCount() == 1 {
		return append(events, s.resolveFoldWin()...), nil
	}

	if !s.roundComplete() {
		s.advanceTurn()
		return events, nil
	}
	return m.settleRound(s, events)
}

// handleLeave removes a seat from the game. A player still in the
// hand folds out; their wagered chips stay in the pot and the seat's
// remaining stack is left for the host to cash out.
func (m *Machine) handleLeave(s *GameState, seat int) ([]Event, error) {
	p := s.Player(seat)
	if p == nil {
		return nil, fmt.Errorf("%w: no seat %d", ErrInvalidAmount, seat)
	}
	if p.Left {
		return nil, fmt.Errorf("%w: seat %d already left", ErrInvalidAmount, seat)
	}
	p.Left = true
	events := []Event{PlayerLeft{Seat: seat}}
	m.logger.Debug("player left", "hand", s.HandNumber, "seat", seat)

	wasInHand := !p.Folded && len(p.HoleCards) == 2
	if !s.Street.betting() || !wasInHand {
		return events, nil
	}

	p.Folded = true
	events = append(events, PlayerFolded{Seat: seat})
	// The forced fold goes into the history like any other action so a
	// replay of the hand reaches the same state.
	s.History = append(s.History, HistoryEntry{Seat: seat, Action: Fold, Street: s.Street})

	if s.inHandCount() == 1 {
		return append(events, s.resolveFoldWin()...), nil
	}
	if !s.roundComplete() {
		if s.ToAct == seat {
			s.advanceTurn()
		}
		return events, nil
	}
	return m.settleRound(s, events)
}

// settleRound advances past a completed betting round, resolving the
// showdown when the hand has reached it.
func (m *Machine) settleRound(s *GameState, events []Event) ([]Event, error) {
	evs, err := s.advance()
	if err != nil {
		return nil, err
	}
	events = append(events, evs...)

	if s.Street == Showdown {
		evs, err := s.resolveShowdown()
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
	}
	return events, nil
}

// resolveFoldWin ends the hand when one player is left contesting it.
// Their cards stay hidden and the whole pot moves to their stack.
func (s *GameState) resolveFoldWin() []Event {
	var winner *Player
	for _, p := range s.Players {
		if p.InHand() {
			winner = p
			break
		}
	}

	total := s.TotalCommitted()
	winner.Stack += total
	s.Street = Complete
	s.ToAct = -1

	return []Event{
		PotAwarded{PotIndex: 0, Seat: winner.Seat, Amount: total},
		HandEnded{HandNumber: s.HandNumber, Reason: "fold", Winners: []int{winner.Seat}},
	}
}

// resolveShowdown evaluates the remaining hands, splits the wagers
// into pots and pays each pot to its best eligible hand.
func (s *GameState) resolveShowdown() ([]Event, error) {
	ranks := make(map[int]eval.HandRank)
	idToSeat := make(map[string]int)
	for _, p := range s.Players {
		if !p.InHand() {
			continue
		}
		rank, err := eval.Evaluate(p.HoleCards, s.Community)
		if err != nil {
			return nil, err
		}
		ranks[p.Seat] = rank
		idToSeat[p.ID] = p.Seat
	}

	pots := buildPots(s.Players)
	var events []Event
	winnerSet := make(map[int]bool)
	for i, pot := range pots {
		entries := make([]eval.Entry, 0, len(pot.Eligible))
		for _, seat := range pot.Eligible {
			entries = append(entries, eval.Entry{PlayerID: s.Players[seat].ID, Rank: ranks[seat]})
		}
		ids, best, err := eval.FindWinners(entries)
		if err != nil {
			return nil, err
		}
		winners := make([]int, 0, len(ids))
		for _, id := range ids {
			winners = append(winners, idToSeat[id])
		}

		events = append(events, WinnerDetermined{PotIndex: i, Seats: winners, Rank: best})
		payouts := splitPot(pot.Amount, winners, s.Dealer, len(s.Players))
		for _, seat := range orderFromDealer(winners, s.Dealer, len(s.Players)) {
			amount := payouts[seat]
			s.Players[seat].Stack += amount
			winnerSet[seat] = true
			events = append(events, PotAwarded{PotIndex: i, Seat: seat, Amount: amount})
		}
	}

	allWinners := make([]int, 0, len(winnerSet))
	for seat := range winnerSet {
		allWinners = append(allWinners, seat)
	}
	allWinners = orderFromDealer(allWinners, s.Dealer, len(s.Players))

	s.Street = Complete
	s.ToAct = -1
	events = append(events, HandEnded{HandNumber: s.HandNumber, Reason: "showdown", Winners: allWinners})
	return events, nil
}
