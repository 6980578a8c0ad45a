// Package eval ranks Texas Hold'em hands. Evaluate picks the best
// five-card hand from two hole cards and five community cards by
// scoring all 21 five-card subsets; Compare and FindWinners totally
// order the results.
package eval

import (
	"errors"
	"sort"

	"github.com/cardroomlabs/holdemcore/internal/deck"
)

var (
	// ErrInvalidHandSize is returned when Evaluate is not given exactly
	// 2 hole cards and 5 community cards.
	ErrInvalidHandSize = errors.New("evaluate requires 2 hole cards and 5 community cards")

	// ErrEmptyHandSet is returned by FindWinners when no entries are given.
	ErrEmptyHandSet = errors.New("no hands to compare")
)

// Category enumerates hand categories from weakest to strongest.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank describes the strength of a five-card hand. Category is
// compared first, then Primary, Secondary, and finally Kickers in
// order. Equal on all fields means a tie.
//
// Field population per category:
//   - Pair/Trips/Quads: Primary = the matched rank, Kickers = the rest
//   - Two Pair: Primary = high pair, Secondary = low pair, Kickers = odd card
//   - Full House: Primary = trip rank, Secondary = pair rank
//   - Flush/High Card: Primary = highest card, Kickers = remaining descending
//   - Straight/Straight Flush: Primary = top of the run (5 for the wheel)
type HandRank struct {
	Category  Category
	Primary   int
	Secondary int
	Kickers   []int
}

// Evaluate returns the best HandRank obtainable from the given hole and
// community cards.
func Evaluate(hole []deck.Card, community []deck.Card) (HandRank, error) {
	if len(hole) != 2 || len(community) != 5 {
		return HandRank{}, ErrInvalidHandSize
	}

	var cards [7]deck.Card
	copy(cards[:2], hole)
	copy(cards[2:], community)

	var best HandRank
	var five [5]deck.Card

	// Choosing 5 of 7 means excluding 2; enumerate excluded pairs.
	for i := 0; i < 7; i++ {
		for j := i + 1; j < 7; j++ {
			n := 0
			for k := 0; k < 7; k++ {
				if k != i && k != j {
					five[n] = cards[k]
					n++
				}
			}
			rank := evaluateFive(five)
			if best.Category == 0 || Compare(rank, best) > 0 {
				best = rank
			}
		}
	}

	return best, nil
}

// Compare returns -1, 0 or 1 as a ranks below, equal to, or above b.
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		return sign(int(a.Category) - int(b.Category))
	}
	if a.Primary != b.Primary {
		return sign(a.Primary - b.Primary)
	}
	if a.Secondary != b.Secondary {
		return sign(a.Secondary - b.Secondary)
	}
	for i := 0; i < len(a.Kickers) || i < (len(b.Kickers)); i++ {
		ka, kb := 0, 0
		if i < len(a.Kickers) {
			ka = a.Kickers[i]
		}
		if i < len(b.Kickers) {
			kb = b.Kickers[i]
		}
		if ka != kb {
			return sign(ka - kb)
		}
	}
	return 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Entry pairs a player with their evaluated hand for FindWinners.
type Entry struct {
	PlayerID string
	Rank     HandRank
}

// FindWinners returns every player whose rank ties the best rank among
// the entries, preserving entry order.
func FindWinners(entries []Entry) ([]string, HandRank, error) {
	if len(entries) == 0 {
		return nil, HandRank{}, ErrEmptyHandSet
	}

	best := entries[0].Rank
	winners := []string{entries[0].PlayerID}
	for _, e := range entries[1:] {
		switch Compare(e.Rank, best) {
		case 1:
			best = e.Rank
			winners = winners[:0]
			winners = append(winners, e.PlayerID)
		case 0:
			winners = append(winners, e.PlayerID)
		}
	}

	return winners, best, nil
}

// evaluateFive scores exactly five cards.
func evaluateFive(cards [5]deck.Card) HandRank {
	ranks := make([]int, 5)
	for i, c := range cards {
		ranks[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straight, wheel := isStraight(ranks)
	straightHigh := ranks[0]
	if wheel {
		// A-2-3-4-5 plays as a five-high straight, not ace-high.
		straightHigh = 5
	}

	if flush && straight {
		if straightHigh == 14 {
			return HandRank{Category: RoyalFlush, Primary: 14}
		}
		return HandRank{Category: StraightFlush, Primary: straightHigh}
	}

	// Rank multiplicity histogram, ordered by count then rank descending.
	counts := make(map[int]int, 5)
	for _, r := range ranks {
		counts[r]++
	}
	type group struct {
		rank  int
		count int
	}
	groups := make([]group, 0, 5)
	for r, n := range counts {
		groups = append(groups, group{rank: r, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	switch {
	case groups[0].count == 4:
		return HandRank{
			Category: FourOfAKind,
			Primary:  groups[0].rank,
			Kickers:  []int{groups[1].rank},
		}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{
			Category:  FullHouse,
			Primary:   groups[0].rank,
			Secondary: groups[1].rank,
		}
	case flush:
		return HandRank{Category: Flush, Primary: ranks[0], Kickers: ranks[1:]}
	case straight:
		return HandRank{Category: Straight, Primary: straightHigh}
	case groups[0].count == 3:
		return HandRank{
			Category: ThreeOfAKind,
			Primary:  groups[0].rank,
			Kickers:  []int{groups[1].rank, groups[2].rank},
		}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{
			Category:  TwoPair,
			Primary:   groups[0].rank,
			Secondary: groups[1].rank,
			Kickers:   []int{groups[2].rank},
		}
	case groups[0].count == 2:
		return HandRank{
			Category: Pair,
			Primary:  groups[0].rank,
			Kickers:  []int{groups[1].rank, groups[2].rank, groups[3].rank},
		}
	default:
		return HandRank{Category: HighCard, Primary: ranks[0], Kickers: ranks[1:]}
	}
}

// isStraight reports whether the descending ranks form a straight, and
// whether that straight is the wheel (A-5-4-3-2).
func isStraight(desc []int) (bool, bool) {
	consecutive := true
	for i := 1; i < len(desc); i++ {
		if desc[i-1]-desc[i] != 1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return true, false
	}

	if desc[0] == 14 && desc[1] == 5 && desc[2] == 4 && desc[3] == 3 && desc[4] == 2 {
		return true, true
	}
	return false, false
}
