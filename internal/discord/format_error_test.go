package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/GachaBot_Go/internal/domain"
)

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "User Not Found",
			input:    "failed to load collection: " + domain.ErrMsgUserNotFound + ": u1",
			expected: MsgUserNotFound,
		},
		{
			name:     "Character Not Found",
			input:    domain.ErrMsgCharacterNotFound + ": id 42",
			expected: MsgCharacterNotFound,
		},
		{
			name:     "Not Owned",
			input:    domain.ErrMsgNotOwned + ": id 42",
			expected: MsgNotOwned,
		},
		{
			name:     "Invalid Rarity",
			input:    domain.ErrMsgInvalidRarity + ": \"sparkly\"",
			expected: MsgInvalidRarity,
		},
		{
			name:     "No Pending Session",
			input:    domain.ErrMsgNoPendingSession,
			expected: MsgNoPendingSession,
		},
		{
			name:     "Not Your Session",
			input:    domain.ErrMsgNotYourSession,
			expected: MsgNotYourSession,
		},
		{
			name:     "Self Target",
			input:    domain.ErrMsgSelfTarget,
			expected: MsgSelfTarget,
		},
		{
			name:     "Already Locked",
			input:    domain.ErrMsgAlreadyLocked + ": id 7",
			expected: MsgAlreadyLocked,
		},
		{
			name:     "Not Locked",
			input:    domain.ErrMsgNotLocked + ": id 7",
			expected: MsgNotLocked,
		},
		{
			name:     "Generic Error",
			input:    "some random error",
			expected: "❌ some random error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.input))
		})
	}
}
