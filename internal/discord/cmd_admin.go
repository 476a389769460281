package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GachaBot_Go/internal/catalog"
	"github.com/osse101/GachaBot_Go/internal/logger"
	"github.com/osse101/GachaBot_Go/internal/metrics"
	"github.com/osse101/GachaBot_Go/internal/rarity"
)

// SummonCommand returns the admin summon command and handler. A summon rolls
// the weighted rarity draw immediately instead of waiting on the cadence.
func SummonCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "summon",
		Description: "Admin: summon a character right now",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		if !requireAdmin(s, i, svc) {
			return
		}

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		sp, err := svc.Spawn.SummonWeighted(ctx, i.ChannelID)
		if err != nil {
			logger.FromContext(ctx).Error("Failed to summon", "chat_id", i.ChannelID, "error", err)
			respondError(s, i, MsgGenericError)
			return
		}

		metrics.RecordSpawn(string(sp.Kind))
		if _, err := svc.Announcer.Deliver(ctx, i.ChannelID, spawnHeadings[sp.Kind], sp.Character); err != nil {
			logger.FromContext(ctx).Error("Failed to announce summon", "chat_id", i.ChannelID, "error", err)
		}
		respondError(s, i, "✨ Summoned. Good luck guessing!")
	}

	return cmd, handler
}

// UploadCommand returns the admin catalog upload command and handler
func UploadCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "upload",
		Description: "Admin: add a character to the catalog",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "img",
				Description: "Image or video URL",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Character name",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "series",
				Description: "Series the character is from",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "rarity",
				Description: "Rarity 1-9 (1=Common … 9=Limited Edition)",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		if !requireAdmin(s, i, svc) {
			return
		}

		opts := optionMap(i)
		req := catalog.UploadRequest{
			MediaURL:     opts["img"].StringValue(),
			Name:         opts["name"].StringValue(),
			Series:       opts["series"].StringValue(),
			RarityNumber: int(opts["rarity"].IntValue()),
		}

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		c, err := svc.Catalog.Upload(ctx, req)
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}

		embed := createEmbed(
			"📥 Character Added",
			fmt.Sprintf("%s `%s` **%s** · %s · %s", rarity.Glyph(c.Rarity), c.ID, c.Name, c.Series, c.Rarity),
			0x2ecc71, FooterGachaBotAdmin)
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: c.MediaURL}
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// UpdateCommand returns the admin catalog edit command and handler
func UpdateCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "update",
		Description: "Admin: edit one field of a catalog entry",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Catalog id",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "field",
				Description: "Field to change",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "img", Value: "img"},
					{Name: "name", Value: "name"},
					{Name: "series", Value: "series"},
					{Name: "rarity", Value: "rarity"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "value",
				Description: "New value",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		if !requireAdmin(s, i, svc) {
			return
		}

		opts := optionMap(i)
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		c, err := svc.Catalog.Update(ctx, opts["id"].StringValue(), opts["field"].StringValue(), opts["value"].StringValue())
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed(
			"✏️ Character Updated",
			fmt.Sprintf("%s `%s` **%s** · %s · %s", rarity.Glyph(c.Rarity), c.ID, c.Name, c.Series, c.Rarity),
			0x3498db, FooterGachaBotAdmin))
	}

	return cmd, handler
}

// DeleteCommand returns the admin catalog delete command and handler
func DeleteCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "delete",
		Description: "Admin: remove a character from the catalog",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Catalog id",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		if !requireAdmin(s, i, svc) {
			return
		}

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		c, err := svc.Catalog.Delete(ctx, getOptions(i)[0].StringValue())
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed(
			"🗑️ Character Removed",
			fmt.Sprintf("`%s` **%s** is gone from the catalog. Owned copies stay in collections.", c.ID, c.Name),
			0xe74c3c, FooterGachaBotAdmin))
	}

	return cmd, handler
}

// GiveCommand returns the admin grant command and handler
func GiveCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "give",
		Description: "Admin: grant a character to a user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "to",
				Description: "Who receives the character",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Catalog id",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		if !requireAdmin(s, i, svc) {
			return
		}

		opts := optionMap(i)
		target := opts["to"].UserValue(s)

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		c, err := svc.Catalog.Give(ctx, opts["id"].StringValue(), target.ID, target.Username, target.GlobalName)
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed(
			"🎁 Granted",
			fmt.Sprintf("%s `%s` **%s** now belongs to **%s**.", rarity.Glyph(c.Rarity), c.ID, c.Name, target.Username),
			0x2ecc71, FooterGachaBotAdmin))
	}

	return cmd, handler
}

// LockSpawnCommand returns the admin spawn lock command and handler
func LockSpawnCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "lockspawn",
		Description: "Admin: bar a character from spawning",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Catalog id",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		if !requireAdmin(s, i, svc) {
			return
		}

		user := getInteractionUser(i)
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		lock, err := svc.Catalog.LockSpawn(ctx, getOptions(i)[0].StringValue(), user.Username)
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed(
			"🔒 Spawn Locked",
			fmt.Sprintf("%s `%s` **%s** will not spawn until unlocked.", rarity.Glyph(lock.Rarity), lock.CharacterID, lock.Name),
			0xe67e22, FooterGachaBotAdmin))
	}

	return cmd, handler
}

// UnlockSpawnCommand returns the admin spawn unlock command and handler
func UnlockSpawnCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "unlockspawn",
		Description: "Admin: let a locked character spawn again",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "id",
				Description: "Catalog id",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		if !requireAdmin(s, i, svc) {
			return
		}

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		lock, err := svc.Catalog.UnlockSpawn(ctx, getOptions(i)[0].StringValue())
		if err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed(
			"🔓 Spawn Unlocked",
			fmt.Sprintf("%s `%s` **%s** is back in the pool.", rarity.Glyph(lock.Rarity), lock.CharacterID, lock.Name),
			0x2ecc71, FooterGachaBotAdmin))
	}

	return cmd, handler
}

// LockedSpawnsCommand returns the admin lock listing command and handler
func LockedSpawnsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "lockedspawns",
		Description: "Admin: list all spawn-locked characters",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		if !requireAdmin(s, i, svc) {
			return
		}

		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		locks, err := svc.Catalog.LockedSpawns(ctx)
		if err != nil {
			logger.FromContext(ctx).Error("Failed to list spawn locks", "error", err)
			respondError(s, i, MsgGenericError)
			return
		}
		if len(locks) == 0 {
			respondError(s, i, "🔓 Nothing is spawn-locked.")
			return
		}

		var sb strings.Builder
		for _, l := range locks {
			fmt.Fprintf(&sb, "%s `%s` **%s** · %s · locked by %s\n",
				rarity.Glyph(l.Rarity), l.CharacterID, l.Name, l.Series, l.LockedBy)
		}
		sendEmbed(s, i, createEmbed("🔒 Spawn Locks", sb.String(), 0xe67e22, FooterGachaBotAdmin))
	}

	return cmd, handler
}

// ChangeFrequencyCommand returns the admin cadence command and handler
func ChangeFrequencyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "changefrequency",
		Description: "Admin: set how many messages between spawns here",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "messages",
				Description: "Messages per spawn (minimum 1)",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		if !requireAdmin(s, i, svc) {
			return
		}

		n := int(getOptions(i)[0].IntValue())
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		if err := svc.Catalog.SetFrequency(ctx, i.ChannelID, n); err != nil {
			respondFriendlyError(s, i, err.Error())
			return
		}
		sendEmbed(s, i, createEmbed(
			"⚙️ Frequency Updated",
			fmt.Sprintf("A character now spawns every **%d** messages in this channel.", n),
			0x3498db, FooterGachaBotAdmin))
	}

	return cmd, handler
}
