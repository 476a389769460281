package discord

// Friendly message constants for Discord responses
const (
	MsgUserNotFound      = "👤 **User Not Found**\nClaim a character first to start a collection."
	MsgCharacterNotFound = "❓ **Character Not Found**\nMaybe check the id?"
	MsgNotOwned          = "🎴 **Not In Your Collection**\nYou don't own that character."
	MsgInvalidRarity     = "🎲 **Unknown Rarity**\nThat tier doesn't exist."
	MsgNoPendingSession  = "🤝 **Nothing Pending**\nThat offer is gone or was never made."
	MsgNotYourSession    = "🤝 **Not Your Offer**\nOnly the person it was sent to can respond."
	MsgSelfTarget        = "🪞 **Nice Try**\nYou can't trade with yourself."
	MsgAlreadyLocked     = "🔒 **Already Locked**\nThat character is already barred from spawning."
	MsgNotLocked         = "🔓 **Not Locked**\nThat character isn't spawn-locked."
	MsgAdminOnly         = "🛡️ **Admins Only**\nYou don't have permission for that."

	MsgNothingSpawned = "👀 **Nothing To Claim**\nNo character has appeared here yet."
	MsgAlreadyClaimed = "🏃 **Too Slow!**\nSomeone already claimed this character."
	MsgWrongGuess     = "❌ **Wrong Name**\nThat's not who appeared. Try again!"
	MsgQuotaExceeded  = "📅 **Daily Limit Reached**\nYou've hit today's claim limit. Come back tomorrow."

	MsgGenericError = "❌ Something went wrong."
)
