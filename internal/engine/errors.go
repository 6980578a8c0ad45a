package engine

import "errors"

// Validation errors are recoverable: the machine returns them without
// mutating the input state and the host relays them to the caller.
var (
	ErrNotYourTurn       = errors.New("not your turn to act")
	ErrAlreadyFolded     = errors.New("player has already folded")
	ErrAlreadyAllIn      = errors.New("player is already all-in")
	ErrMustCallOrFold    = errors.New("cannot check when facing a bet")
	ErrNoBetToCall       = errors.New("no bet to call")
	ErrBetNotAllowed     = errors.New("cannot bet when there is already a bet")
	ErrRaiseNotAllowed   = errors.New("raise not allowed")
	ErrBelowMinimumBet   = errors.New("bet below minimum")
	ErrBelowMinimumRaise = errors.New("raise below minimum")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrHandInProgress    = errors.New("hand already in progress")
	ErrNoHandInProgress  = errors.New("no hand in progress")
	ErrNotEnoughPlayers  = errors.New("need at least 2 funded players")
	ErrDuplicatePlayerID = errors.New("duplicate player id")
)

// ErrInvariantViolation indicates a defect: chips were created or
// destroyed by a transition. The machine refuses to commit such a state.
var ErrInvariantViolation = errors.New("invariant violation")
