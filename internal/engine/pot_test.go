package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroomlabs/holdemcore/internal/deck"
)

func contestant(seat, committed int) *Player {
	return &Player{
		ID:          string(rune('a' + seat)),
		Seat:        seat,
		Active:      true,
		BetThisHand: committed,
		HoleCards:   []deck.Card{deck.NewCard(deck.Two, deck.Spades), deck.NewCard(deck.Three, deck.Hearts)},
	}
}

func TestBuildPotsThreeWayAllIn(t *testing.T) {
	players := []*Player{
		contestant(0, 50),
		contestant(1, 150),
		contestant(2, 300),
	}

	pots := buildPots(players)
	require.Len(t, pots, 3)

	assert.Equal(t, 150, pots[0].Amount)
	assert.Equal(t, []int{0, 1, 2}, pots[0].Eligible)

	assert.Equal(t, 200, pots[1].Amount)
	assert.Equal(t, []int{1, 2}, pots[1].Eligible)

	assert.Equal(t, 150, pots[2].Amount)
	assert.Equal(t, []int{2}, pots[2].Eligible)
}

func TestBuildPotsFoldedChipsStayIn(t *testing.T) {
	folded := contestant(1, 80)
	folded.Folded = true
	players := []*Player{
		contestant(0, 100),
		folded,
		contestant(2, 100),
	}

	pots := buildPots(players)
	require.Len(t, pots, 1)
	// The folded player's partial contribution is part of the pot but
	// they cannot win any of it.
	assert.Equal(t, 280, pots[0].Amount)
	assert.Equal(t, []int{0, 2}, pots[0].Eligible)
}

func TestBuildPotsOrphanLevelMergesDown(t *testing.T) {
	// The deepest contributor folded, so the layer only they reach has
	// no eligible winner and collapses into the pot below it.
	folded := contestant(2, 500)
	folded.Folded = true
	players := []*Player{
		contestant(0, 200),
		contestant(1, 200),
		folded,
	}

	pots := buildPots(players)
	require.Len(t, pots, 1)
	assert.Equal(t, 900, pots[0].Amount)
	assert.Equal(t, []int{0, 1}, pots[0].Eligible)
}

func TestBuildPotsSingleLevel(t *testing.T) {
	players := []*Player{
		contestant(0, 40),
		contestant(1, 40),
	}

	pots := buildPots(players)
	require.Len(t, pots, 1)
	assert.Equal(t, 80, pots[0].Amount)
}

func TestSplitPotEven(t *testing.T) {
	payouts := splitPot(100, []int{0, 2}, 1, 4)
	assert.Equal(t, map[int]int{0: 50, 2: 50}, payouts)
}

func TestSplitPotOddChipGoesLeftOfDealer(t *testing.T) {
	// Dealer in seat 1: seat 2 sits immediately to the dealer's left
	// and collects the odd chip.
	payouts := splitPot(101, []int{0, 2}, 1, 4)
	assert.Equal(t, map[int]int{2: 51, 0: 50}, payouts)

	// Dealer in seat 3: seat 0 is closer going clockwise.
	payouts = splitPot(101, []int{0, 2}, 3, 4)
	assert.Equal(t, map[int]int{0: 51, 2: 50}, payouts)
}

func TestSplitPotTwoOddChips(t *testing.T) {
	payouts := splitPot(11, []int{0, 1, 2}, 2, 3)
	// Seat 0 then seat 1 follow the dealer in seat 2.
	assert.Equal(t, map[int]int{0: 4, 1: 4, 2: 3}, payouts)
}

func TestSeatDistance(t *testing.T) {
	assert.Equal(t, 0, seatDistance(1, 2, 4))
	assert.Equal(t, 3, seatDistance(1, 1, 4))
	assert.Equal(t, 1, seatDistance(3, 1, 4))
}
