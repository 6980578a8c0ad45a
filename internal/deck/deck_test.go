package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroomlabs/holdemcore/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New(randutil.New(1))

	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		c, err := d.Draw()
		require.NoError(t, err)
		require.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
	assert.Equal(t, 0, d.Remaining())
}

func TestDrawExhausted(t *testing.T) {
	d := New(randutil.New(1))
	for i := 0; i < 52; i++ {
		_, err := d.Draw()
		require.NoError(t, err)
	}

	_, err := d.Draw()
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, d.Burn(), ErrExhausted)
}

func TestBurnConsumesOneCard(t *testing.T) {
	d := New(randutil.New(7))
	require.NoError(t, d.Burn())
	assert.Equal(t, 51, d.Remaining())
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	a := New(randutil.New(42))
	b := New(randutil.New(42))

	for i := 0; i < 52; i++ {
		ca, err := a.Draw()
		require.NoError(t, err)
		cb, err := b.Draw()
		require.NoError(t, err)
		assert.Equal(t, ca, cb)
	}
}

func TestNewStackedDealsScriptedCardsFirst(t *testing.T) {
	top := []Card{
		NewCard(Ace, Spades),
		NewCard(King, Hearts),
		NewCard(Two, Clubs),
	}
	d := NewStacked(top...)

	for _, want := range top {
		got, err := d.Draw()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Remaining cards still form a complete deck with no duplicates
	seen := map[Card]bool{top[0]: true, top[1]: true, top[2]: true}
	for d.Remaining() > 0 {
		c, err := d.Draw()
		require.NoError(t, err)
		require.False(t, seen[c])
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestCloneDoesNotShareCursor(t *testing.T) {
	d := New(randutil.New(3))
	require.NoError(t, d.Burn())

	c := d.Clone()
	_, err := c.Draw()
	require.NoError(t, err)

	assert.Equal(t, 51, d.Remaining())
	assert.Equal(t, 50, c.Remaining())
}
