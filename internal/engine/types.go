package engine

// Street represents the phase of a hand
type Street int

const (
	Waiting Street = iota
	Preflop
	Flop
	Turn
	River
	Showdown
	Complete
)

func (s Street) String() string {
	return [...]string{"waiting", "preflop", "flop", "turn", "river", "showdown", "complete"}[s]
}

// betting reports whether the street accepts player actions
func (s Street) betting() bool {
	return s >= Preflop && s <= River
}

// ActionType represents a player action
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// InputKind discriminates the external inputs the machine accepts.
type InputKind int

const (
	InputStartHand InputKind = iota
	InputPlayerAction
	InputTimeout
	InputLeave
)

// Input is one external action against a GameState. Use the
// constructors rather than building the struct directly.
type Input struct {
	Kind   InputKind
	Seat   int
	Action ActionType
	Amount int
}

// StartHand begins a new hand from the current stacks.
func StartHand() Input {
	return Input{Kind: InputStartHand, Seat: -1}
}

// PlayerAct submits a player action for the given seat. Amount is the
// chip contribution for Bet/Raise (total street bet target) and is
// ignored for Fold/Check/AllIn; Call may pass 0.
func PlayerAct(seat int, action ActionType, amount int) Input {
	return Input{Kind: InputPlayerAction, Seat: seat, Action: action, Amount: amount}
}

// TimeoutAct submits the host's turn-clock default for the given seat.
// The machine processes it exactly like a player action; the host is
// responsible for choosing Check when legal and Fold otherwise.
func TimeoutAct(seat int, defaultAction ActionType) Input {
	return Input{Kind: InputTimeout, Seat: seat, Action: defaultAction}
}

// Leave marks the seat as departed. Mid-hand it plays as a fold; the
// chips already wagered stay in the pot and the remaining stack is
// kept on the seat for the host to cash out.
func Leave(seat int) Input {
	return Input{Kind: InputLeave, Seat: seat}
}

// HistoryEntry records one applied action for the hand's action log.
type HistoryEntry struct {
	Seat    int
	Action  ActionType
	Amount  int
	Street  Street
	Timeout bool
}
