package engine

import "github.com/cardroomlabs/holdemcore/internal/deck"

// roundComplete reports whether the current betting round is settled:
// at most one player can still act, or every player who can act has
// matched the current bet and acted since the last full raise.
func (s *GameState) roundComplete() bool {
	if s.canActCount() <= 1 {
		// A lone player still owing chips keeps the round open.
		for _, p := range s.Players {
			if p.CanAct() && p.BetThisStreet < s.CurrentBet {
				return false
			}
		}
		return true
	}
	for _, p := range s.Players {
		if !p.CanAct() {
			continue
		}
		if p.BetThisStreet != s.CurrentBet || !s.Acted[p.Seat] {
			return false
		}
	}
	return true
}

// firstToAct returns the seat opening the current street, or -1 when
// nobody can act. Preflop the player after the big blind opens; on
// later streets the first eligible player after the dealer does.
func (s *GameState) firstToAct() int {
	from := s.Dealer
	if s.Street == Preflop {
		from = s.BigBlind
	}
	return s.nextSeatWhere(from, (*Player).CanAct)
}

// advanceTurn moves ToAct to the next player who can act, or -1.
func (s *GameState) advanceTurn() {
	s.ToAct = s.nextSeatWhere(s.ToAct, (*Player).CanAct)
}

// beginStreet resets per-street betting state and deals community
// cards for the new street. The deck is burned before each reveal.
func (s *GameState) beginStreet(street Street) ([]Event, error) {
	s.Street = street
	s.CurrentBet = 0
	s.MinRaise = s.BigBlindAmount
	s.LastAggressor = -1
	for i, p := range s.Players {
		p.BetThisStreet = 0
		s.Acted[i] = false
	}

	events := []Event{StreetAdvanced{Street: street}}
	switch street {
	case Flop:
		if err := s.Deck.Burn(); err != nil {
			return nil, err
		}
		var flop [3]deck.Card
		for i := range flop {
			c, err := s.Deck.Draw()
			if err != nil {
				return nil, err
			}
			flop[i] = c
			s.Community = append(s.Community, c)
		}
		events = append(events, FlopRevealed{Cards: flop})
	case Turn, River:
		if err := s.Deck.Burn(); err != nil {
			return nil, err
		}
		c, err := s.Deck.Draw()
		if err != nil {
			return nil, err
		}
		s.Community = append(s.Community, c)
		if street == Turn {
			events = append(events, TurnRevealed{Card: c})
		} else {
			events = append(events, RiverRevealed{Card: c})
		}
	}

	s.ToAct = s.firstToAct()
	return events, nil
}

// nextStreet returns the street following the current one.
func (s *GameState) nextStreet() Street {
	switch s.Street {
	case Preflop:
		return Flop
	case Flop:
		return Turn
	case Turn:
		return River
	default:
		return Showdown
	}
}

// advance moves the hand forward after a settled betting round. With
// fewer than two players able to act but the pot still contested, the
// remaining streets run out with no further betting.
func (s *GameState) advance() ([]Event, error) {
	var events []Event
	for {
		next := s.nextStreet()
		if next == Showdown {
			s.Street = Showdown
			s.ToAct = -1
			return events, nil
		}
		evs, err := s.beginStreet(next)
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
		if s.canActCount() >= 2 {
			return events, nil
		}
		s.ToAct = -1
	}
}
