package rarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNumber(t *testing.T) {
	r, err := FromNumber(1)
	require.NoError(t, err)
	assert.Equal(t, Common, r)

	r, err = FromNumber(9)
	require.NoError(t, err)
	assert.Equal(t, LimitedEdition, r)

	_, err = FromNumber(0)
	assert.Error(t, err)
	_, err = FromNumber(10)
	assert.Error(t, err)
}

func TestParseCaseInsensitive(t *testing.T) {
	r, err := Parse("legendary")
	require.NoError(t, err)
	assert.Equal(t, Legendary, r)

	r, err = Parse("limited edition")
	require.NoError(t, err)
	assert.Equal(t, LimitedEdition, r)

	_, err = Parse("sparkly")
	assert.Error(t, err)
}

func TestRankFollowsOrder(t *testing.T) {
	assert.Less(t, Rank(LimitedEdition), Rank(Zenith))
	assert.Less(t, Rank(Mythic), Rank(Legendary))
	assert.Equal(t, len(Order)-1, Rank(Common))
	assert.Equal(t, len(Order), Rank(Rarity("bogus")))
}

func TestPickWeightedSkipsZeroWeightTiers(t *testing.T) {
	// Zenith and Limited Edition carry no spawn weight; only Common can win.
	r, err := PickWeighted([]Rarity{Zenith, LimitedEdition, Common}, func() float64 { return 0.99 })
	require.NoError(t, err)
	assert.Equal(t, Common, r)
}

func TestPickWeightedRenormalizes(t *testing.T) {
	// With only Common and Legendary present the split is 20 : 2.
	counts := map[Rarity]int{}
	rolls := []float64{0.0, 0.5, 0.9, 0.95}
	for _, roll := range rolls {
		r, err := PickWeighted([]Rarity{Common, Legendary}, func() float64 { return roll })
		require.NoError(t, err)
		counts[r]++
	}
	assert.Equal(t, 3, counts[Common])
	assert.Equal(t, 1, counts[Legendary])
}

func TestPickWeightedNoCandidates(t *testing.T) {
	_, err := PickWeighted([]Rarity{Zenith}, func() float64 { return 0 })
	assert.Error(t, err)

	_, err = PickWeighted(nil, func() float64 { return 0 })
	assert.Error(t, err)
}

func TestGlyphFallback(t *testing.T) {
	assert.Equal(t, "🍬", Glyph(LimitedEdition))
	assert.Equal(t, "✨", Glyph(Rarity("bogus")))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(Retro))
	assert.False(t, IsValid(Rarity("bogus")))
}
