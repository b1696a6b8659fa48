package components

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/claimcheck/src/verifier"
)

func TestTruncate(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		assert.Equal(t, "hello", truncate("hello", 10))
	})

	t.Run("long ascii is cut with ellipsis", func(t *testing.T) {
		got := truncate(strings.Repeat("a", 20), 10)
		assert.Equal(t, "aaaaaaa...", got)
		assert.LessOrEqual(t, len(got), 10)
	})

	t.Run("never splits a rune", func(t *testing.T) {
		got := truncate(strings.Repeat("é", 50), 10)
		assert.True(t, utf8.ValidString(got))
		assert.LessOrEqual(t, len(got), 10)
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("multibyte explanation stays valid", func(t *testing.T) {
		got := truncate(strings.Repeat("日本語の説明", 100), 200)
		assert.True(t, utf8.ValidString(got))
		assert.LessOrEqual(t, len(got), 200)
	})
}

func TestVerdictEmbed(t *testing.T) {
	res := verifier.Result{
		Claim:       "the earth is flat",
		Verdict:     verifier.VerdictLikelyFalse,
		Score:       5,
		Confidence:  verifier.ConfidenceHigh,
		Explanation: "Refuted by every source.",
		Sources: []verifier.Source{
			{Title: "Fact check", Link: "https://snopes.com/x"},
		},
	}

	embed := VerdictEmbed(res)

	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "Likely False", embed.Fields[0].Value)
	assert.Equal(t, "5/100", embed.Fields[1].Value)
	assert.Equal(t, "High", embed.Fields[2].Value)
	assert.Contains(t, embed.Fields[3].Value, "[Fact check](https://snopes.com/x)")
	assert.Equal(t, 0xe74c3c, embed.Color)
	assert.Contains(t, embed.Footer.Text, "the earth is flat")
}
