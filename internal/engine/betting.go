package engine

import "fmt"

// LegalAction describes one action currently available to a player.
// Min and Max bound the amount for Bet and Raise; both are the
// player's total street bet after the action.
type LegalAction struct {
	Action ActionType
	Min    int
	Max    int
}

// LegalActions lists the actions available to the seat whose turn it
// is. An empty slice means the seat cannot act.
func (s *GameState) LegalActions(seat int) []LegalAction {
	if !s.Street.betting() || seat != s.ToAct {
		return nil
	}
	p := s.Player(seat)
	if p == nil || !p.CanAct() {
		return nil
	}

	actions := []LegalAction{{Action: Fold}}
	owed := s.CurrentBet - p.BetThisStreet
	maxTotal := p.BetThisStreet + p.Stack

	if owed == 0 {
		actions = append(actions, LegalAction{Action: Check})
	} else {
		actions = append(actions, LegalAction{Action: Call, Min: min(owed, p.Stack), Max: min(owed, p.Stack)})
	}

	if s.CurrentBet == 0 {
		minBet := min(s.BigBlindAmount, maxTotal)
		actions = append(actions, LegalAction{Action: Bet, Min: minBet, Max: maxTotal})
	} else if maxTotal > s.CurrentBet && !s.Acted[seat] {
		minRaiseTo := min(s.CurrentBet+s.MinRaise, maxTotal)
		actions = append(actions, LegalAction{Action: Raise, Min: minRaiseTo, Max: maxTotal})
	}

	if maxTotal <= s.CurrentBet || !s.Acted[seat] {
		actions = append(actions, LegalAction{Action: AllIn, Min: maxTotal, Max: maxTotal})
	}
	return actions
}

// applyPlayerAction validates and applies one betting action. The
// amount for Bet and Raise is the player's total bet for the street.
// Returned events describe what actually happened, which may differ
// from the request when a short stack downgrades a call to all-in.
func (s *GameState) applyPlayerAction(seat int, action ActionType, amount int, timeout bool) ([]Event, error) {
	if !s.Street.betting() {
		return nil, ErrNoHandInProgress
	}
	if seat != s.ToAct {
		return nil, ErrNotYourTurn
	}
	p := s.Player(seat)
	if p.Folded {
		return nil, ErrAlreadyFolded
	}
	if p.AllIn {
		return nil, ErrAlreadyAllIn
	}

	var events []Event
	owed := s.CurrentBet - p.BetThisStreet

	switch action {
	case Fold:
		p.Folded = true
		events = append(events, PlayerFolded{Seat: seat, Timeout: timeout})

	case Check:
		if owed > 0 {
			return nil, ErrMustCallOrFold
		}
		events = append(events, PlayerChecked{Seat: seat, Timeout: timeout})

	case Call:
		if owed <= 0 {
			return nil, ErrNoBetToCall
		}
		pay := min(owed, p.Stack)
		p.pay(pay)
		events = append(events, PlayerCalled{Seat: seat, Amount: pay, AllIn: p.AllIn})

	case Bet:
		if s.CurrentBet != 0 {
			return nil, ErrBetNotAllowed
		}
		ev, err := s.applyWager(p, amount)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)

	case Raise:
		if s.CurrentBet == 0 {
			return nil, ErrRaiseNotAllowed
		}
		// A short all-in raise does not reopen the action; a player
		// who already acted at this price may only call or fold.
		if s.Acted[seat] {
			return nil, ErrRaiseNotAllowed
		}
		ev, err := s.applyWager(p, amount)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)

	case AllIn:
		total := p.BetThisStreet + p.Stack
		if total > s.CurrentBet && s.Acted[seat] {
			return nil, ErrRaiseNotAllowed
		}
		if total > s.CurrentBet {
			ev, err := s.applyWager(p, total)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		} else {
			pay := p.Stack
			p.pay(pay)
			events = append(events, PlayerWentAllIn{Seat: seat, Amount: pay, StreetTotal: p.BetThisStreet})
		}

	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidAmount, action)
	}

	s.Acted[seat] = true
	return events, nil
}

// applyWager handles Bet and Raise, including all-in shoves that fall
// short of the minimum. amount is the player's target total street
// bet. A full raise reopens action for everyone else; a short all-in
// raise moves the price without reopening it.
func (s *GameState) applyWager(p *Player, amount int) (Event, error) {
	need := amount - p.BetThisStreet
	if need <= 0 || amount <= s.CurrentBet {
		return nil, fmt.Errorf("%w: %d does not exceed current bet %d", ErrInvalidAmount, amount, s.CurrentBet)
	}
	if need > p.Stack {
		return nil, fmt.Errorf("%w: %d exceeds stack", ErrInvalidAmount, amount)
	}
	allIn := need == p.Stack

	opening := s.CurrentBet == 0
	increment := amount - s.CurrentBet
	if opening {
		if amount < s.BigBlindAmount && !allIn {
			return nil, ErrBelowMinimumBet
		}
	} else if increment < s.MinRaise && !allIn {
		return nil, ErrBelowMinimumRaise
	}

	p.pay(need)
	fullRaise := increment >= s.MinRaise || opening

	s.CurrentBet = amount
	if fullRaise {
		s.MinRaise = max(increment, s.BigBlindAmount)
		s.LastAggressor = p.Seat
		for i := range s.Acted {
			s.Acted[i] = i == p.Seat
		}
	}

	if opening {
		return PlayerBet{Seat: p.Seat, Amount: amount, AllIn: allIn}, nil
	}
	return PlayerRaised{Seat: p.Seat, Amount: need, StreetTotal: amount, AllIn: allIn}, nil
}

// pay moves chips from the player's stack into their street and hand
// totals, marking them all-in when the stack empties.
func (p *Player) pay(n int) {
	p.Stack -= n
	p.BetThisStreet += n
	p.BetThisHand += n
	if p.Stack == 0 {
		p.AllIn = true
	}
}

// postBlinds collects the blinds at the start of a hand. Short stacks
// post what they have and are all-in.
func (s *GameState) postBlinds() []Event {
	var events []Event
	sb := s.Player(s.SmallBlind)
	pay := min(s.SmallBlindAmount, sb.Stack)
	sb.pay(pay)
	events = append(events, BlindPosted{Seat: sb.Seat, Amount: pay})

	bb := s.Player(s.BigBlind)
	pay = min(s.BigBlindAmount, bb.Stack)
	bb.pay(pay)
	events = append(events, BlindPosted{Seat: bb.Seat, Amount: pay, Big: true})

	s.CurrentBet = s.BigBlindAmount
	s.MinRaise = s.BigBlindAmount
	s.LastAggressor = s.BigBlind
	return events
}
