package engine

import "github.com/cardroomlabs/holdemcore/internal/deck"

// Player is one seat's state during a hand. Seat order is fixed for
// the life of the game; departure is signalled via Left, never by
// removing the entry.
type Player struct {
	ID   string
	Name string
	Seat int

	Stack         int
	HoleCards     []deck.Card
	BetThisStreet int
	BetThisHand   int // cumulative contribution, drives pot levels

	Folded bool
	AllIn  bool
	Active bool
	Left   bool
}

// InHand reports whether the player still contests the pot.
func (p *Player) InHand() bool {
	return p.Active && !p.Left && !p.Folded && len(p.HoleCards) == 2
}

// CanAct reports whether the player can take a betting action.
func (p *Player) CanAct() bool {
	return p.InHand() && !p.AllIn
}

// funded reports whether the player can be dealt into a new hand.
func (p *Player) funded() bool {
	return p.Active && !p.Left && p.Stack > 0
}

// resetForHand clears per-hand state at the start of a new hand.
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.BetThisStreet = 0
	p.BetThisHand = 0
	p.Folded = false
	p.AllIn = false
}

// clone returns a deep copy
func (p *Player) clone() *Player {
	c := *p
	if p.HoleCards != nil {
		c.HoleCards = append([]deck.Card(nil), p.HoleCards...)
	}
	return &c
}
