package spawn

const (
	// DefaultFrequency is the regular spawn cadence when a chat has not
	// configured one.
	DefaultFrequency = 100
	// RetroCadence is the fixed message cadence for Retro-tier spawns.
	RetroCadence = 4000
	// MaxTrackedChats caps the chat-state registry. Evicting an idle chat
	// only forfeits volatile counters, which a restart forfeits anyway.
	MaxTrackedChats = 4096
)
