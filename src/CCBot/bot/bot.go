package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/claimcheck/src/CCApi/data"
	"github.com/stake-plus/claimcheck/src/CCApi/report"
	"github.com/stake-plus/claimcheck/src/CCBot/components"
	"github.com/stake-plus/claimcheck/src/verifier"
)

// ClaimVerifier matches the API server's verification pipeline.
type ClaimVerifier interface {
	Verify(ctx context.Context, claim string) (verifier.Result, error)
}

type Config struct {
	Token             string
	Command           string
	AnnounceChannelID string
	VerifyTimeout     time.Duration
	UserCooldown      time.Duration

	Verifier ClaimVerifier
	Redis    *redis.Client
}

type Bot struct {
	session     *discordgo.Session
	config      Config
	rateLimiter *components.UserRateLimiter
	ctx         context.Context
	cancel      context.CancelFunc
}

func New(cfg Config) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("bot: discord token not configured")
	}
	if cfg.Command == "" {
		cfg.Command = "!verify"
	}
	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = verifier.DefaultTimeout
	}
	if cfg.UserCooldown <= 0 {
		cfg.UserCooldown = 30 * time.Second
	}

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		session:     dg,
		config:      cfg,
		rateLimiter: components.NewUserRateLimiter(cfg.UserCooldown),
		ctx:         ctx,
		cancel:      cancel,
	}

	dg.AddHandler(b.handleReady)
	dg.AddHandler(b.handleMessageCreate)
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	return b, nil
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() error {
	b.cancel()
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Discord bot logged in as %s", event.User.Username)

	if b.config.AnnounceChannelID != "" && b.config.Redis != nil {
		go b.announceVerdicts(b.ctx)
	}
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot {
		return
	}

	prefix := b.config.Command + " "
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}

	claim := strings.TrimSpace(strings.TrimPrefix(m.Content, prefix))
	if claim == "" {
		_, _ = s.ChannelMessageSendReply(m.ChannelID,
			fmt.Sprintf("Usage: `%s <claim>`", b.config.Command), m.Reference())
		return
	}

	if !b.rateLimiter.CanUse(m.Author.ID) {
		wait := b.rateLimiter.TimeUntilNext(m.Author.ID).Round(time.Second)
		_, _ = s.ChannelMessageSendReply(m.ChannelID,
			fmt.Sprintf("Please wait %s before verifying another claim.", wait), m.Reference())
		return
	}

	_ = s.ChannelTyping(m.ChannelID)

	ctx, cancel := context.WithTimeout(b.ctx, b.config.VerifyTimeout)
	defer cancel()

	result, err := b.config.Verifier.Verify(ctx, claim)
	if err != nil {
		log.Printf("Verification failed for user %s: %v", m.Author.ID, err)
		_, _ = s.ChannelMessageSendReply(m.ChannelID, report.ErrorMessage(err), m.Reference())
		return
	}

	_, err = s.ChannelMessageSendEmbedReply(m.ChannelID, components.VerdictEmbed(result), m.Reference())
	if err != nil {
		log.Printf("Failed to send verdict embed: %v", err)
	}
}

// announceVerdicts relays verdicts resolved by the web API into the
// configured channel.
func (b *Bot) announceVerdicts(ctx context.Context) {
	lastID := "$"
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streams, err := b.config.Redis.XRead(ctx, &redis.XReadArgs{
			Streams: []string{data.VerdictStream, lastID},
			Block:   10 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Printf("Verdict stream read failed: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				b.announceOne(msg.Values)
			}
		}
	}
}

func (b *Bot) announceOne(values map[string]interface{}) {
	claim, _ := values["claim"].(string)
	verdict, _ := values["verdict"].(string)
	score, _ := values["score"].(string)
	if claim == "" || verdict == "" {
		return
	}

	text := fmt.Sprintf("**%s**: %s (trust score %s/100)", claim, verdict, score)
	if _, err := b.session.ChannelMessageSend(b.config.AnnounceChannelID, text); err != nil {
		log.Printf("Failed to announce verdict: %v", err)
	}
}
