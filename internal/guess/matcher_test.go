package guess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		guess string
		cname string
		want  bool
	}{
		{"prefix of a part", "luffy", "Monkey D Luffy", true},
		{"forbidden parens", "()", "Anything", false},
		{"forbidden ampersand", "a&b", "Anything", false},
		{"too short for prefix", "lu", "Monkey D Luffy", false},
		{"multiset full name any order", "monkey luffy d", "Monkey D Luffy", true},
		{"single char never fuzzy", "x", "Ay", false},
		{"empty guess", "", "Monkey D Luffy", false},
		{"whitespace only", "   ", "Monkey D Luffy", false},
		{"exact single part", "d", "Monkey D Luffy", true},
		{"case insensitive", "LUFFY", "monkey d luffy", true},
		{"exact full name", "monkey d luffy", "Monkey D Luffy", true},
		{"wrong word", "zoro", "Monkey D Luffy", false},
		{"partial multiset fails", "monkey d", "Monkey D Luffy", false},
		{"three char prefix", "mon", "Monkey D Luffy", true},
		{"containment ratio met", "ruffy", "Monkey D Kruffy", true},
		{"containment passes", "enjiro", "Zenjiro", true},
		{"containment below ratio", "shima", "Kirashimatana", false},
		{"prefix wins even below ratio", "kira", "Kirashimatana", true},
		{"guess longer than part no match", "luffyyy", "Monkey D Luffy", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.guess, tt.cname))
		})
	}
}

func TestMatchesIsPure(t *testing.T) {
	// Same inputs, same answer, no state between calls.
	for i := 0; i < 3; i++ {
		assert.True(t, Matches("luffy", "Monkey D Luffy"))
		assert.False(t, Matches("luffy", "Roronoa Zoro"))
	}
}
