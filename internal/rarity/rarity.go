package rarity

import (
	"fmt"
	"strings"
)

// Rarity is a character's spawn tier.
type Rarity string

const (
	Common         Rarity = "Common"
	Uncommon       Rarity = "Uncommon"
	Rare           Rarity = "Rare"
	Epic           Rarity = "Epic"
	Legendary      Rarity = "Legendary"
	Mythic         Rarity = "Mythic"
	Retro          Rarity = "Retro"
	Zenith         Rarity = "Zenith"
	LimitedEdition Rarity = "Limited Edition"
)

// spawnWeights drives the weighted tier draw used by manual summons.
// Zero-weight tiers never come out of a weighted draw.
var spawnWeights = map[Rarity]float64{
	Common:         20,
	Uncommon:       20,
	Rare:           20,
	Epic:           20,
	Legendary:      2,
	Mythic:         0.8,
	Retro:          0.3,
	Zenith:         0,
	LimitedEdition: 0,
}

// glyphs are the display markers shown next to a tier.
var glyphs = map[Rarity]string{
	Common:         "⚪️",
	Uncommon:       "🟢",
	Rare:           "🔵",
	Epic:           "🟣",
	Legendary:      "🟡",
	Mythic:         "🏵",
	Retro:          "🍥",
	Zenith:         "🪩",
	LimitedEdition: "🍬",
}

// Order lists tiers rarest-first and is the canonical sort order for
// collection views and leaderboard style listings.
var Order = []Rarity{
	LimitedEdition,
	Zenith,
	Retro,
	Mythic,
	Legendary,
	Epic,
	Rare,
	Uncommon,
	Common,
}

// NonSpawnable tiers are excluded from cadence spawns. Retro has its own
// 4000-message cadence and is excluded from the regular one.
var NonSpawnable = []Rarity{LimitedEdition, Zenith, Retro}

// numberMap maps the 1-9 shorthand used by admin upload commands.
var numberMap = map[int]Rarity{
	1: Common,
	2: Uncommon,
	3: Rare,
	4: Epic,
	5: Legendary,
	6: Mythic,
	7: Retro,
	8: Zenith,
	9: LimitedEdition,
}

// FromNumber resolves the 1-9 upload shorthand.
func FromNumber(n int) (Rarity, error) {
	r, ok := numberMap[n]
	if !ok {
		return "", fmt.Errorf("invalid rarity number %d: use 1-9", n)
	}
	return r, nil
}

// Parse resolves a rarity by its display name, case-insensitively.
func Parse(s string) (Rarity, error) {
	for r := range spawnWeights {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rarity %q", s)
}

// Glyph returns the display marker for a tier, or a fallback sparkle.
func Glyph(r Rarity) string {
	if g, ok := glyphs[r]; ok {
		return g
	}
	return "✨"
}

// Weight returns the spawn weight for a tier. Unknown tiers weigh zero.
func Weight(r Rarity) float64 {
	return spawnWeights[r]
}

// Rank returns the position of a tier in Order; unknown tiers sort last.
func Rank(r Rarity) int {
	for i, o := range Order {
		if o == r {
			return i
		}
	}
	return len(Order)
}

// IsValid reports whether r names a known tier.
func IsValid(r Rarity) bool {
	_, ok := spawnWeights[r]
	return ok
}

// PickWeighted draws one tier from the given candidates using spawn weights,
// renormalized over the candidates that actually carry weight. Tiers absent
// from the catalog must not be passed in; zero-weight candidates are dropped
// rather than contributing dead probability mass. rng must return a float in
// [0, 1).
func PickWeighted(candidates []Rarity, rng func() float64) (Rarity, error) {
	var total float64
	weighted := make([]Rarity, 0, len(candidates))
	for _, c := range candidates {
		if w := spawnWeights[c]; w > 0 {
			weighted = append(weighted, c)
			total += w
		}
	}
	if len(weighted) == 0 {
		return "", fmt.Errorf("no spawnable rarities among candidates")
	}

	roll := rng() * total
	var cumulative float64
	for _, c := range weighted {
		cumulative += spawnWeights[c]
		if roll < cumulative {
			return c, nil
		}
	}
	// Floating point edge; the last weighted tier absorbs it.
	return weighted[len(weighted)-1], nil
}
