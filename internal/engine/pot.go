package engine

import "sort"

// Pot is one layer of the (possibly split) pot. Eligible lists the
// seats that can win it, in seat order.
type Pot struct {
	Amount   int
	Eligible []int
}

// buildPots splits the hand's total wagers into a main pot and side
// pots. Each distinct all-in contribution level forms a layer; every
// player pays into a layer up to its threshold, folded players
// included, but only unfolded contributors at or above the threshold
// are eligible to win it. A layer nobody can win (everyone at that
// level folded) is folded back into the previous pot.
func buildPots(players []*Player) []Pot {
	thresholds := make([]int, 0, len(players))
	seen := make(map[int]bool)
	for _, p := range players {
		if p.BetThisHand > 0 && !seen[p.BetThisHand] {
			seen[p.BetThisHand] = true
			thresholds = append(thresholds, p.BetThisHand)
		}
	}
	sort.Ints(thresholds)

	pots := make([]Pot, 0, len(thresholds))
	prev := 0
	for _, t := range thresholds {
		amount := 0
		var eligible []int
		for _, p := range players {
			amount += min(p.BetThisHand, t) - min(p.BetThisHand, prev)
			if p.InHand() && p.BetThisHand >= t {
				eligible = append(eligible, p.Seat)
			}
		}
		if amount == 0 {
			prev = t
			continue
		}
		if len(eligible) == 0 && len(pots) > 0 {
			pots[len(pots)-1].Amount += amount
			prev = t
			continue
		}
		pots = append(pots, Pot{Amount: amount, Eligible: eligible})
		prev = t
	}
	return pots
}

// splitPot divides amount among winners, giving any odd chips one each
// to the winners closest to the dealer's left. Returns payouts keyed
// by seat.
func splitPot(amount int, winners []int, dealer, numSeats int) map[int]int {
	payouts := make(map[int]int, len(winners))
	share := amount / len(winners)
	remainder := amount % len(winners)

	ordered := orderFromDealer(winners, dealer, numSeats)
	for i, seat := range ordered {
		payouts[seat] = share
		if i < remainder {
			payouts[seat]++
		}
	}
	return payouts
}

// orderFromDealer sorts seats by clockwise distance from the seat left
// of the dealer.
func orderFromDealer(seats []int, dealer, numSeats int) []int {
	ordered := append([]int(nil), seats...)
	sort.Slice(ordered, func(i, j int) bool {
		return seatDistance(dealer, ordered[i], numSeats) < seatDistance(dealer, ordered[j], numSeats)
	})
	return ordered
}

// seatDistance is the clockwise distance from the seat left of the
// dealer to the given seat.
func seatDistance(dealer, seat, numSeats int) int {
	return ((seat - dealer - 1) % numSeats + numSeats) % numSeats
}
