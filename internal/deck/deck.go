package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrExhausted is returned when drawing from an empty deck.
var ErrExhausted = errors.New("deck exhausted")

// Deck is a shuffled sequence of the 52 distinct cards. Cards are
// consumed from the top by Draw and Burn; a deck is never refilled
// mid-hand.
type Deck struct {
	cards [52]Card
	next  int
}

// New creates a new deck shuffled with the provided RNG. The RNG is
// required so the caller owns seeding; tests pass a fixed seed.
func New(rng *rand.Rand) *Deck {
	d := &Deck{}
	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.shuffle(rng)
	return d
}

// NewOrdered creates an unshuffled deck for deterministic tests.
func NewOrdered() *Deck {
	d := &Deck{}
	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return d
}

// NewStacked creates a deck that deals the given cards first, in order,
// followed by the remaining cards of the deck. Used to script hands in
// tests.
func NewStacked(top ...Card) *Deck {
	d := &Deck{}
	seen := make(map[Card]bool, len(top))
	i := 0
	for _, c := range top {
		if seen[c] {
			panic(fmt.Sprintf("duplicate card in stacked deck: %s", c))
		}
		seen[c] = true
		d.cards[i] = c
		i++
	}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			if !seen[c] {
				d.cards[i] = c
				i++
			}
		}
	}
	return d
}

// shuffle performs a Fisher-Yates shuffle
func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrExhausted
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Burn discards the top card without revealing it
func (d *Deck) Burn() error {
	_, err := d.Draw()
	return err
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Clone returns a copy of the deck with the same remaining sequence.
// Needed because game state snapshots must not share the draw cursor.
func (d *Deck) Clone() *Deck {
	c := *d
	return &c
}
