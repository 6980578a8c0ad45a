package engine

import (
	"fmt"

	"github.com/cardroomlabs/holdemcore/internal/deck"
)

// Seat configures one player for NewGameState.
type Seat struct {
	ID    string
	Name  string
	Stack int
}

// GameState is the authoritative snapshot of a table between inputs.
// It is only ever mutated through Machine.Process, which works on a
// clone and returns it; a state handed back to the caller is final.
type GameState struct {
	HandNumber uint64
	Street     Street
	Players    []*Player
	Community  []deck.Card
	Deck       *deck.Deck

	SmallBlindAmount int
	BigBlindAmount   int

	// Betting round state. CurrentBet is the highest total street bet
	// facing players; MinRaise is the increment a full raise must add.
	CurrentBet    int
	MinRaise      int
	LastAggressor int // seat, -1 when nobody has bet this street
	Acted         []bool

	Dealer        int
	SmallBlind    int
	BigBlind      int
	ToAct         int // seat, -1 when no action is pending
	History       []HistoryEntry
	Version       uint64
	StartingChips int // conservation baseline, fixed at creation
}

// NewGameState creates a fresh table in the Waiting street. The first
// StartHand input deals hand number one.
func NewGameState(seats []Seat, smallBlind, bigBlind int) (*GameState, error) {
	if len(seats) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("%w: blinds %d/%d", ErrInvalidAmount, smallBlind, bigBlind)
	}

	players := make([]*Player, len(seats))
	total := 0
	ids := make(map[string]bool, len(seats))
	for i, s := range seats {
		if s.Stack < 0 {
			return nil, fmt.Errorf("%w: negative stack for seat %d", ErrInvalidAmount, i)
		}
		// Showdown winners are routed by player ID; a collision would
		// silently misdirect pot awards.
		if ids[s.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayerID, s.ID)
		}
		ids[s.ID] = true
		players[i] = &Player{
			ID:     s.ID,
			Name:   s.Name,
			Seat:   i,
			Stack:  s.Stack,
			Active: true,
		}
		total += s.Stack
	}

	return &GameState{
		Street:           Waiting,
		Players:          players,
		SmallBlindAmount: smallBlind,
		BigBlindAmount:   bigBlind,
		Dealer:           -1,
		SmallBlind:       -1,
		BigBlind:         -1,
		ToAct:            -1,
		LastAggressor:    -1,
		Acted:            make([]bool, len(seats)),
		StartingChips:    total,
	}, nil
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	if s.Community != nil {
		c.Community = append([]deck.Card(nil), s.Community...)
	}
	if s.Deck != nil {
		c.Deck = s.Deck.Clone()
	}
	c.Acted = append([]bool(nil), s.Acted...)
	if s.History != nil {
		c.History = append([]HistoryEntry(nil), s.History...)
	}
	return &c
}

// Player returns the player at the given seat, or nil if out of range.
func (s *GameState) Player(seat int) *Player {
	if seat < 0 || seat >= len(s.Players) {
		return nil
	}
	return s.Players[seat]
}

// PotTotal returns the chips collected into the pot, excluding bets
// still sitting in front of players for the current street.
func (s *GameState) PotTotal() int {
	total := 0
	for _, p := range s.Players {
		total += p.BetThisHand - p.BetThisStreet
	}
	return total
}

// TotalCommitted returns all chips wagered this hand, including the
// current street's uncollected bets.
func (s *GameState) TotalCommitted() int {
	total := 0
	for _, p := range s.Players {
		total += p.BetThisHand
	}
	return total
}

// inHandCount counts players still contesting the pot.
func (s *GameState) inHandCount() int {
	n := 0
	for _, p := range s.Players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// canActCount counts players who can still take a betting action.
func (s *GameState) canActCount() int {
	n := 0
	for _, p := range s.Players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// nextSeatWhere returns the first seat strictly after from (with
// wraparound) satisfying pred, or -1 if none do.
func (s *GameState) nextSeatWhere(from int, pred func(*Player) bool) int {
	n := len(s.Players)
	for i := 1; i <= n; i++ {
		seat := ((from + i) % n + n) % n
		if pred(s.Players[seat]) {
			return seat
		}
	}
	return -1
}

// checkConservation verifies the chip-conservation invariant. During a
// hand every wagered chip lives in BetThisHand; once the hand completes
// the pot has been paid back into stacks.
func (s *GameState) checkConservation() error {
	stacks := 0
	for _, p := range s.Players {
		if p.Stack < 0 {
			return fmt.Errorf("%w: negative stack in seat %d", ErrInvariantViolation, p.Seat)
		}
		stacks += p.Stack
	}

	inPlay := stacks
	if s.Street != Waiting && s.Street != Complete {
		inPlay += s.TotalCommitted()
	}
	if inPlay != s.StartingChips {
		return fmt.Errorf("%w: %d chips in play, expected %d", ErrInvariantViolation, inPlay, s.StartingChips)
	}
	return nil
}
