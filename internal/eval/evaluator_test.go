package eval

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroomlabs/holdemcore/internal/deck"
)

// c is a test helper for terse card construction
func c(rank deck.Rank, suit deck.Suit) deck.Card {
	return deck.NewCard(rank, suit)
}

func TestEvaluateInvalidSizes(t *testing.T) {
	board := []deck.Card{
		c(deck.Two, deck.Spades), c(deck.Five, deck.Hearts), c(deck.Nine, deck.Clubs),
		c(deck.Jack, deck.Diamonds), c(deck.King, deck.Spades),
	}

	_, err := Evaluate([]deck.Card{c(deck.Ace, deck.Spades)}, board)
	assert.ErrorIs(t, err, ErrInvalidHandSize)

	_, err = Evaluate([]deck.Card{c(deck.Ace, deck.Spades), c(deck.King, deck.Hearts)}, board[:4])
	assert.ErrorIs(t, err, ErrInvalidHandSize)
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name      string
		hole      []deck.Card
		community []deck.Card
		category  Category
		primary   int
	}{
		{
			name:      "royal flush",
			hole:      []deck.Card{c(deck.Ace, deck.Spades), c(deck.King, deck.Spades)},
			community: []deck.Card{c(deck.Queen, deck.Spades), c(deck.Jack, deck.Spades), c(deck.Ten, deck.Spades), c(deck.Two, deck.Hearts), c(deck.Three, deck.Clubs)},
			category:  RoyalFlush,
			primary:   14,
		},
		{
			name:      "straight flush",
			hole:      []deck.Card{c(deck.Nine, deck.Hearts), c(deck.Eight, deck.Hearts)},
			community: []deck.Card{c(deck.Seven, deck.Hearts), c(deck.Six, deck.Hearts), c(deck.Five, deck.Hearts), c(deck.Ace, deck.Spades), c(deck.Ace, deck.Clubs)},
			category:  StraightFlush,
			primary:   9,
		},
		{
			name:      "four of a kind",
			hole:      []deck.Card{c(deck.Queen, deck.Spades), c(deck.Queen, deck.Hearts)},
			community: []deck.Card{c(deck.Queen, deck.Diamonds), c(deck.Queen, deck.Clubs), c(deck.Two, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Nine, deck.Clubs)},
			category:  FourOfAKind,
			primary:   12,
		},
		{
			name:      "full house",
			hole:      []deck.Card{c(deck.Ten, deck.Spades), c(deck.Ten, deck.Hearts)},
			community: []deck.Card{c(deck.Ten, deck.Diamonds), c(deck.Four, deck.Clubs), c(deck.Four, deck.Spades), c(deck.Eight, deck.Hearts), c(deck.Two, deck.Clubs)},
			category:  FullHouse,
			primary:   10,
		},
		{
			name:      "flush",
			hole:      []deck.Card{c(deck.Ace, deck.Clubs), c(deck.Nine, deck.Clubs)},
			community: []deck.Card{c(deck.Six, deck.Clubs), c(deck.Four, deck.Clubs), c(deck.Two, deck.Clubs), c(deck.King, deck.Spades), c(deck.King, deck.Hearts)},
			category:  Flush,
			primary:   14,
		},
		{
			name:      "straight",
			hole:      []deck.Card{c(deck.Nine, deck.Spades), c(deck.Eight, deck.Hearts)},
			community: []deck.Card{c(deck.Seven, deck.Diamonds), c(deck.Six, deck.Clubs), c(deck.Five, deck.Spades), c(deck.Ace, deck.Hearts), c(deck.Ace, deck.Diamonds)},
			category:  Straight,
			primary:   9,
		},
		{
			name:      "three of a kind",
			hole:      []deck.Card{c(deck.Seven, deck.Spades), c(deck.Seven, deck.Hearts)},
			community: []deck.Card{c(deck.Seven, deck.Diamonds), c(deck.King, deck.Clubs), c(deck.Two, deck.Spades), c(deck.Nine, deck.Hearts), c(deck.Four, deck.Clubs)},
			category:  ThreeOfAKind,
			primary:   7,
		},
		{
			name:      "two pair",
			hole:      []deck.Card{c(deck.Jack, deck.Spades), c(deck.Jack, deck.Hearts)},
			community: []deck.Card{c(deck.Four, deck.Diamonds), c(deck.Four, deck.Clubs), c(deck.Nine, deck.Spades), c(deck.Two, deck.Hearts), c(deck.Six, deck.Clubs)},
			category:  TwoPair,
			primary:   11,
		},
		{
			name:      "pair",
			hole:      []deck.Card{c(deck.Ace, deck.Spades), c(deck.Ace, deck.Hearts)},
			community: []deck.Card{c(deck.Nine, deck.Diamonds), c(deck.Seven, deck.Clubs), c(deck.Five, deck.Spades), c(deck.Three, deck.Hearts), c(deck.Two, deck.Clubs)},
			category:  Pair,
			primary:   14,
		},
		{
			name:      "high card",
			hole:      []deck.Card{c(deck.Ace, deck.Spades), c(deck.Ten, deck.Hearts)},
			community: []deck.Card{c(deck.Eight, deck.Diamonds), c(deck.Six, deck.Clubs), c(deck.Four, deck.Spades), c(deck.Three, deck.Hearts), c(deck.Two, deck.Clubs)},
			category:  HighCard,
			primary:   14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, err := Evaluate(tt.hole, tt.community)
			require.NoError(t, err)
			assert.Equal(t, tt.category, rank.Category, "category")
			assert.Equal(t, tt.primary, rank.Primary, "primary rank")
		})
	}
}

func TestWheelStraightIsFiveHigh(t *testing.T) {
	hole := []deck.Card{c(deck.Ace, deck.Spades), c(deck.Two, deck.Hearts)}
	community := []deck.Card{
		c(deck.Three, deck.Diamonds), c(deck.Four, deck.Clubs), c(deck.Five, deck.Hearts),
		c(deck.King, deck.Spades), c(deck.Queen, deck.Clubs),
	}

	rank, err := Evaluate(hole, community)
	require.NoError(t, err)
	assert.Equal(t, Straight, rank.Category)
	assert.Equal(t, 5, rank.Primary, "wheel plays as five-high, not ace-high")

	// A six-high straight must beat the wheel
	sixHigh := HandRank{Category: Straight, Primary: 6}
	assert.Equal(t, 1, Compare(sixHigh, rank))
}

func TestEvaluateIsOrderIndependent(t *testing.T) {
	hole := []deck.Card{c(deck.Ten, deck.Spades), c(deck.Ten, deck.Hearts)}
	community := []deck.Card{
		c(deck.Ten, deck.Diamonds), c(deck.Four, deck.Clubs), c(deck.Four, deck.Spades),
		c(deck.Eight, deck.Hearts), c(deck.Two, deck.Clubs),
	}

	want, err := Evaluate(hole, community)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(99, 7))
	for i := 0; i < 20; i++ {
		shuffled := append([]deck.Card(nil), community...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, err := Evaluate(hole, shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCategoryOrderingDominatesCompare(t *testing.T) {
	// A weak hand of a stronger category always beats a strong hand of a
	// weaker category.
	categories := []Category{
		HighCard, Pair, TwoPair, ThreeOfAKind, Straight,
		Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
	}

	for i := 1; i < len(categories); i++ {
		weakOfStronger := HandRank{Category: categories[i], Primary: 2}
		strongOfWeaker := HandRank{Category: categories[i-1], Primary: 14, Kickers: []int{13, 12, 11, 10}}
		assert.Equal(t, 1, Compare(weakOfStronger, strongOfWeaker),
			"%s should outrank %s", categories[i], categories[i-1])
	}
}

func TestCompareKickers(t *testing.T) {
	a := HandRank{Category: Pair, Primary: 10, Kickers: []int{14, 9, 5}}
	b := HandRank{Category: Pair, Primary: 10, Kickers: []int{14, 8, 7}}

	assert.Equal(t, 1, Compare(a, b))
	assert.Equal(t, -1, Compare(b, a))
	assert.Equal(t, 0, Compare(a, a))
}

func TestFindWinnersTie(t *testing.T) {
	// Board plays for both: high card A-K-Q-J-T without flush
	community := []deck.Card{
		c(deck.Queen, deck.Spades), c(deck.Jack, deck.Hearts), c(deck.Ten, deck.Diamonds),
		c(deck.Nine, deck.Clubs), c(deck.Eight, deck.Spades),
	}

	rankA, err := Evaluate([]deck.Card{c(deck.Ace, deck.Spades), c(deck.King, deck.Hearts)}, community)
	require.NoError(t, err)
	rankB, err := Evaluate([]deck.Card{c(deck.Ace, deck.Diamonds), c(deck.King, deck.Clubs)}, community)
	require.NoError(t, err)

	winners, best, err := FindWinners([]Entry{
		{PlayerID: "alice", Rank: rankA},
		{PlayerID: "bob", Rank: rankB},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, winners)
	assert.Equal(t, Straight, best.Category)
	assert.Equal(t, 14, best.Primary, "both make the same ace-high straight")
}

func TestFindWinnersEmpty(t *testing.T) {
	_, _, err := FindWinners(nil)
	assert.ErrorIs(t, err, ErrEmptyHandSet)
}

func TestFindWinnersSingleBest(t *testing.T) {
	winners, best, err := FindWinners([]Entry{
		{PlayerID: "a", Rank: HandRank{Category: Pair, Primary: 9}},
		{PlayerID: "b", Rank: HandRank{Category: Flush, Primary: 11, Kickers: []int{9, 7, 4, 2}}},
		{PlayerID: "c", Rank: HandRank{Category: TwoPair, Primary: 14, Secondary: 13}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, winners)
	assert.Equal(t, Flush, best.Category)
}
