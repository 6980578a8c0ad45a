package engine

import (
	"github.com/cardroomlabs/holdemcore/internal/deck"
	"github.com/cardroomlabs/holdemcore/internal/eval"
)

// EventType identifies a domain event
type EventType string

const (
	EventHandStarted      EventType = "hand_started"
	EventBlindPosted      EventType = "blind_posted"
	EventPlayerLeft       EventType = "player_left"
	EventPlayerFolded     EventType = "player_folded"
	EventPlayerChecked    EventType = "player_checked"
	EventPlayerCalled     EventType = "player_called"
	EventPlayerBet        EventType = "player_bet"
	EventPlayerRaised     EventType = "player_raised"
	EventPlayerWentAllIn  EventType = "player_went_all_in"
	EventStreetAdvanced   EventType = "street_advanced"
	EventFlopRevealed     EventType = "flop_revealed"
	EventTurnRevealed     EventType = "turn_revealed"
	EventRiverRevealed    EventType = "river_revealed"
	EventWinnerDetermined EventType = "winner_determined"
	EventPotAwarded       EventType = "pot_awarded"
	EventHandEnded        EventType = "hand_ended"
)

// Event is a fact describing what a transition did. Events are returned
// alongside the new state; the machine never pushes them anywhere
// itself, so the host owns persistence and broadcast. Hole cards are
// deliberately absent from every event — visibility filtering is the
// host's problem and the engine never leaks private cards.
type Event interface {
	Type() EventType
}

// HandStarted is emitted once per successful StartHand input.
type HandStarted struct {
	HandNumber uint64
	Dealer     int
	SmallBlind int
	BigBlind   int
	Blinds     [2]int // small, big amounts
	Seats      []int  // seats dealt into the hand
}

func (HandStarted) Type() EventType { return EventHandStarted }

// BlindPosted is emitted for each blind, after HandStarted.
type BlindPosted struct {
	Seat   int
	Amount int
	Big    bool
}

func (BlindPosted) Type() EventType { return EventBlindPosted }

type PlayerLeft struct {
	Seat int
}

func (PlayerLeft) Type() EventType { return EventPlayerLeft }

type PlayerFolded struct {
	Seat    int
	Timeout bool
}

func (PlayerFolded) Type() EventType { return EventPlayerFolded }

type PlayerChecked struct {
	Seat    int
	Timeout bool
}

func (PlayerChecked) Type() EventType { return EventPlayerChecked }

type PlayerCalled struct {
	Seat   int
	Amount int
	AllIn  bool
}

func (PlayerCalled) Type() EventType { return EventPlayerCalled }

type PlayerBet struct {
	Seat   int
	Amount int
	AllIn  bool
}

func (PlayerBet) Type() EventType { return EventPlayerBet }

// PlayerRaised reports the raise. StreetTotal is the raiser's total bet
// for the street after the raise; Amount is the chips moved by this
// action alone.
type PlayerRaised struct {
	Seat        int
	Amount      int
	StreetTotal int
	AllIn       bool
}

func (PlayerRaised) Type() EventType { return EventPlayerRaised }

type PlayerWentAllIn struct {
	Seat        int
	Amount      int
	StreetTotal int
}

func (PlayerWentAllIn) Type() EventType { return EventPlayerWentAllIn }

type StreetAdvanced struct {
	Street Street
}

func (StreetAdvanced) Type() EventType { return EventStreetAdvanced }

type FlopRevealed struct {
	Cards [3]deck.Card
}

func (FlopRevealed) Type() EventType { return EventFlopRevealed }

type TurnRevealed struct {
	Card deck.Card
}

func (TurnRevealed) Type() EventType { return EventTurnRevealed }

type RiverRevealed struct {
	Card deck.Card
}

func (RiverRevealed) Type() EventType { return EventRiverRevealed }

// WinnerDetermined is emitted at showdown, once per pot.
type WinnerDetermined struct {
	PotIndex int
	Seats    []int
	Rank     eval.HandRank
}

func (WinnerDetermined) Type() EventType { return EventWinnerDetermined }

// PotAwarded is emitted once per winner per pot, including fold wins.
type PotAwarded struct {
	PotIndex int
	Seat     int
	Amount   int
}

func (PotAwarded) Type() EventType { return EventPotAwarded }

// HandEnded closes the hand. Reason is "fold" when everyone else
// folded, "showdown" otherwise.
type HandEnded struct {
	HandNumber uint64
	Reason     string
	Winners    []int
}

func (HandEnded) Type() EventType { return EventHandEnded }
