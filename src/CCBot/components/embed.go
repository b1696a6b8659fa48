package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/stake-plus/claimcheck/src/verifier"
)

// VerdictEmbed renders a verification result as a Discord embed.
func VerdictEmbed(res verifier.Result) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Verdict", Value: string(res.Verdict), Inline: true},
		{Name: "Trust Score", Value: fmt.Sprintf("%d/100", verifier.ClampScore(res.Score)), Inline: true},
		{Name: "Confidence", Value: string(res.Confidence), Inline: true},
	}

	if sources := sourceList(res.Sources); sources != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Sources",
			Value: sources,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "Claim Verification",
		Description: truncate(res.Explanation, 2048),
		Color:       verdictColor(res.Verdict),
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: truncate("Claim: "+res.Claim, 2048),
		},
	}
}

func sourceList(sources []verifier.Source) string {
	if len(sources) > verifier.MaxSources {
		sources = sources[:verifier.MaxSources]
	}
	var b strings.Builder
	for i, s := range sources {
		title := s.Title
		if title == "" {
			title = s.Link
		}
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, truncate(title, 100), s.Link)
	}
	return truncate(strings.TrimSpace(b.String()), 1024)
}

func verdictColor(v verifier.Verdict) int {
	switch v {
	case verifier.VerdictLikelyTrue:
		return 0x2ecc71
	case verifier.VerdictLikelyFalse:
		return 0xe74c3c
	default:
		return 0xf1c40f
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
