package simulator

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardroomlabs/holdemcore/internal/deck"
	"github.com/cardroomlabs/holdemcore/internal/engine"
	"github.com/cardroomlabs/holdemcore/internal/randutil"
)

// Config holds configuration for running simulations.
type Config struct {
	Hands      int
	Players    int
	Stack      int
	SmallBlind int
	BigBlind   int
	Policy     string
	Seed       int64
	Workers    int
	Logger     *log.Logger
}

// Results aggregates the outcome of a simulation run.
type Results struct {
	HandsPlayed   int
	Showdowns     int
	FoldWins      int
	ChipsAwarded  int
	WinsBySeat    map[int]int
	ActionsTotal  int
	TimeoutsTotal int
}

func (r *Results) add(o *Results) {
	r.HandsPlayed += o.HandsPlayed
	r.Showdowns += o.Showdowns
	r.FoldWins += o.FoldWins
	r.ChipsAwarded += o.ChipsAwarded
	r.ActionsTotal += o.ActionsTotal
	for seat, wins := range o.WinsBySeat {
		r.WinsBySeat[seat] += wins
	}
}

// Simulator plays engine hands against scripted seat policies. Its
// main job is flushing out rule and conservation bugs at volume.
type Simulator struct {
	config Config
}

// New creates a simulator. Zero-value config fields get sensible
// defaults.
func New(config Config) *Simulator {
	if config.Hands == 0 {
		config.Hands = 1000
	}
	if config.Players == 0 {
		config.Players = 6
	}
	if config.Stack == 0 {
		config.Stack = 1000
	}
	if config.SmallBlind == 0 {
		config.SmallBlind = 5
	}
	if config.BigBlind == 0 {
		config.BigBlind = 10
	}
	if config.Policy == "" {
		config.Policy = "random"
	}
	if config.Workers == 0 {
		config.Workers = 4
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run executes the simulation, spreading hands across workers.
func (s *Simulator) Run(ctx context.Context) (*Results, error) {
	g, ctx := errgroup.WithContext(ctx)
	resultCh := make(chan *Results, s.config.Workers)

	handsPerWorker := s.config.Hands / s.config.Workers
	remainder := s.config.Hands % s.config.Workers
	for w := 0; w < s.config.Workers; w++ {
		hands := handsPerWorker
		if w < remainder {
			hands++
		}
		if hands == 0 {
			continue
		}
		workerSeed := s.config.Seed + int64(w)

		g.Go(func() error {
			result, err := s.runWorker(ctx, hands, workerSeed)
			if err != nil {
				return err
			}
			select {
			case resultCh <- result:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(resultCh)
		_ = g.Wait()
	}()

	total := &Results{WinsBySeat: make(map[int]int)}
	for result := range resultCh {
		total.add(result)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.config.Logger.Info("simulation complete",
		"hands", total.HandsPlayed,
		"showdowns", total.Showdowns,
		"fold_wins", total.FoldWins,
		"actions", total.ActionsTotal)
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, hands int, seed int64) (*Results, error) {
	rng := randutil.New(seed)
	results := &Results{WinsBySeat: make(map[int]int)}

	for i := 0; i < hands; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := s.playHand(rng, results); err != nil {
			return nil, fmt.Errorf("hand %d (seed %d): %w", i+1, seed, err)
		}
	}
	return results, nil
}

// playHand plays one complete hand on a fresh table and folds its
// outcome into results.
func (s *Simulator) playHand(rng *rand.Rand, results *Results) error {
	seats := make([]engine.Seat, s.config.Players)
	for i := range seats {
		seats[i] = engine.Seat{ID: fmt.Sprintf("sim-%d", i), Name: "sim", Stack: s.config.Stack}
	}
	state, err := engine.NewGameState(seats, s.config.SmallBlind, s.config.BigBlind)
	if err != nil {
		return err
	}

	machine := engine.New(engine.WithDeckFunc(func() *deck.Deck {
		return deck.New(randutil.New(rng.Int64()))
	}))

	state, _, err = machine.Process(state, engine.StartHand())
	if err != nil {
		return err
	}

	// A hand can never take this many actions; treat it as a stuck
	// turn order.
	const maxActions = 500
	actions := 0
	for state.Street != engine.Complete {
		if actions++; actions > maxActions {
			return fmt.Errorf("hand did not terminate after %d actions", maxActions)
		}
		seat := state.ToAct
		if seat == -1 {
			return fmt.Errorf("no seat to act on street %s", state.Street)
		}

		in := decide(state, seat, s.config.Policy, rng)
		var events []engine.Event
		state, events, err = machine.Process(state, in)
		if err != nil {
			return err
		}
		results.ActionsTotal++
		tally(events, results)
	}

	total := 0
	for _, p := range state.Players {
		total += p.Stack
	}
	if want := s.config.Players * s.config.Stack; total != want {
		return fmt.Errorf("chips not conserved: %d of %d", total, want)
	}
	results.HandsPlayed++
	return nil
}

func tally(events []engine.Event, results *Results) {
	for _, e := range events {
		switch ev := e.(type) {
		case engine.PotAwarded:
			results.ChipsAwarded += ev.Amount
			results.WinsBySeat[ev.Seat]++
		case engine.HandEnded:
			if ev.Reason == "fold" {
				results.FoldWins++
			} else {
				results.Showdowns++
			}
		}
	}
}

// decide picks a legal action for the seat under the named policy.
func decide(state *engine.GameState, seat int, policy string, rng *rand.Rand) engine.Input {
	legal := state.LegalActions(seat)
	byAction := make(map[engine.ActionType]engine.LegalAction, len(legal))
	for _, la := range legal {
		byAction[la.Action] = la
	}

	switch policy {
	case "fold":
		if _, ok := byAction[engine.Check]; ok {
			return engine.PlayerAct(seat, engine.Check, 0)
		}
		return engine.PlayerAct(seat, engine.Fold, 0)

	case "call":
		if _, ok := byAction[engine.Check]; ok {
			return engine.PlayerAct(seat, engine.Check, 0)
		}
		return engine.PlayerAct(seat, engine.Call, 0)

	case "aggressor":
		if la, ok := byAction[engine.Raise]; ok {
			return engine.PlayerAct(seat, engine.Raise, la.Min)
		}
		if la, ok := byAction[engine.Bet]; ok {
			return engine.PlayerAct(seat, engine.Bet, la.Min)
		}
		if _, ok := byAction[engine.Call]; ok {
			return engine.PlayerAct(seat, engine.Call, 0)
		}
		return engine.PlayerAct(seat, engine.Check, 0)

	default: // random
		la := legal[rng.IntN(len(legal))]
		amount := 0
		if la.Action == engine.Bet || la.Action == engine.Raise {
			amount = la.Min
			if la.Max > la.Min {
				amount += rng.IntN(la.Max - la.Min + 1)
			}
			if amount > la.Max {
				amount = la.Max
			}
		}
		return engine.PlayerAct(seat, la.Action, amount)
	}
}
