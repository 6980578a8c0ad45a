package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSim(t *testing.T, policy string, hands, players int) *Results {
	t.Helper()
	sim := New(Config{
		Hands:   hands,
		Players: players,
		Policy:  policy,
		Seed:    42,
		Workers: 2,
		Logger:  log.New(io.Discard),
	})
	results, err := sim.Run(context.Background())
	require.NoError(t, err)
	return results
}

func TestRandomPolicyConservesChips(t *testing.T) {
	// playHand fails any hand that ends with chips missing, so a
	// clean run is the assertion.
	results := runSim(t, "random", 200, 6)
	assert.Equal(t, 200, results.HandsPlayed)
	assert.Equal(t, 200, results.Showdowns+results.FoldWins)
	assert.Positive(t, results.ChipsAwarded)
}

func TestCallPolicyAlwaysReachesShowdown(t *testing.T) {
	results := runSim(t, "call", 50, 3)
	assert.Equal(t, 50, results.HandsPlayed)
	assert.Equal(t, 50, results.Showdowns)
	assert.Zero(t, results.FoldWins)
}

func TestFoldPolicyEndsPreflop(t *testing.T) {
	results := runSim(t, "fold", 50, 4)
	assert.Equal(t, 50, results.HandsPlayed)
	// Everyone folds to the big blind before the flop.
	assert.Equal(t, 50, results.FoldWins)
}

func TestAggressorPolicyTerminates(t *testing.T) {
	results := runSim(t, "aggressor", 50, 3)
	assert.Equal(t, 50, results.HandsPlayed)
	assert.Equal(t, 50, results.Showdowns)
}

func TestConfiguredBlindsReachTheTable(t *testing.T) {
	sim := New(Config{
		Hands:      20,
		Players:    4,
		Stack:      4000,
		SmallBlind: 25,
		BigBlind:   50,
		Policy:     "fold",
		Seed:       42,
		Workers:    1,
		Logger:     log.New(io.Discard),
	})
	results, err := sim.Run(context.Background())
	require.NoError(t, err)

	// Under the fold policy each hand awards exactly the blinds, so
	// the total pins down which blinds the hands were dealt with.
	assert.Equal(t, 20, results.HandsPlayed)
	assert.Equal(t, 20*(25+50), results.ChipsAwarded)
}

func TestHeadsUpSimulation(t *testing.T) {
	results := runSim(t, "random", 100, 2)
	assert.Equal(t, 100, results.HandsPlayed)
}
