package round

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookups(t *testing.T) {
	reg, err := New(map[uint64]Round{
		0: {Lucky: "0", Color: "red"},
		1: {Lucky: "1", Color: "green"},
		7: {Color: "blue"},
	})
	require.NoError(t, err)

	lucky, err := reg.ExpectedLucky(1)
	require.NoError(t, err)
	assert.Equal(t, "1", lucky)

	color, err := reg.ExpectedColor(0)
	require.NoError(t, err)
	assert.Equal(t, "red", color)

	color, err = reg.ExpectedColor(7)
	require.NoError(t, err)
	assert.Equal(t, "blue", color)

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []uint64{0, 1, 7}, reg.Indices())
}

func TestRegistryUnknownRound(t *testing.T) {
	reg := MustNew(map[uint64]Round{7: {Color: "blue"}})

	_, err := reg.ExpectedLucky(99)
	assert.True(t, errors.Is(err, ErrUnknownRound))
	_, err = reg.ExpectedColor(99)
	assert.True(t, errors.Is(err, ErrUnknownRound))

	// round 7 has a color but no lucky token
	_, err = reg.ExpectedLucky(7)
	assert.True(t, errors.Is(err, ErrUnknownRound))
}

func TestRegistryIsACopy(t *testing.T) {
	src := map[uint64]Round{0: {Lucky: "0", Color: "red"}}
	reg := MustNew(src)

	src[0] = Round{Lucky: "9", Color: "blue"}
	src[1] = Round{Lucky: "1"}

	lucky, err := reg.ExpectedLucky(0)
	require.NoError(t, err)
	assert.Equal(t, "0", lucky)
	_, ok := reg.Lookup(1)
	assert.False(t, ok)
}

func TestNewRejectsBadRounds(t *testing.T) {
	cases := map[string]Round{
		"empty":          {},
		"off palette":    {Lucky: "1", Color: "magenta"},
		"capital color":  {Color: "Red"},
		"padded lucky":   {Lucky: " 1"},
		"trailing space": {Lucky: "1 "},
	}
	for name, rd := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(map[uint64]Round{3: rd})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRound))
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew(map[uint64]Round{0: {Color: "teal"}}) })
}

func TestIsPaletteColor(t *testing.T) {
	for _, c := range Palette() {
		assert.True(t, IsPaletteColor(c), c)
	}
	assert.False(t, IsPaletteColor("RED"))
	assert.False(t, IsPaletteColor(""))
}

func TestPaletteIsClosed(t *testing.T) {
	p := Palette()
	require.Len(t, p, 8)
	p[0] = "magenta"

	assert.False(t, IsPaletteColor("magenta"))
	assert.True(t, IsPaletteColor("red"))
	assert.Equal(t, "red", Palette()[0])

	_, err := New(map[uint64]Round{0: {Color: "magenta"}})
	assert.ErrorIs(t, err, ErrInvalidRound)
}
