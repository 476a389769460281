package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/metrics"
	"github.com/osse101/GachaBot_Go/internal/spamguard"
	"github.com/osse101/GachaBot_Go/internal/spawn"
)

// spawnHeadings are the card titles per trigger kind. None reveal the name;
// claiming requires guessing it.
var spawnHeadings = map[spawn.Kind]string{
	spawn.KindRegular: "A wild character appeared! Use /claim to catch them",
	spawn.KindRetro:   "🍥 A retro character appeared! Use /claim to catch them",
	spawn.KindManual:  "✨ A character was summoned! Use /claim to catch them",
}

// messageCreate feeds every guild message through the spam guard and the
// spawn counter, announcing whatever spawns fall out.
func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	svc := b.Services

	metrics.RecordMessage()

	// Blocked users' messages do not advance the spawn counters.
	if svc.Spam.RecordAndCheck(m.Author.ID, time.Now()) == spamguard.Blocked {
		metrics.RecordSpamBlock()
		return
	}

	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	log := logger.FromContext(ctx)

	spawns, err := svc.Spawn.OnMessage(ctx, m.ChannelID)
	if err != nil {
		log.Error("Failed to process message for spawning", "channel_id", m.ChannelID, "error", err)
		return
	}

	for _, sp := range spawns {
		metrics.RecordSpawn(string(sp.Kind))
		if _, err := svc.Announcer.Deliver(ctx, m.ChannelID, spawnHeadings[sp.Kind], sp.Character); err != nil {
			log.Error("Failed to announce spawn", "channel_id", m.ChannelID, "character_id", sp.Character.ID, "error", err)
		}
	}
}
