package report

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/claimcheck/src/verifier"
)

func TestRenderClampsScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{name: "above range", score: 140, want: 100},
		{name: "below range", score: -5, want: 0},
		{name: "in range", score: 42, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Render(verifier.Result{
				Verdict:    verifier.VerdictUncertain,
				Score:      tt.score,
				Confidence: verifier.ConfidenceLow,
			})
			assert.Equal(t, tt.want, r.Score)
		})
	}
}

func TestRenderVerdictMapping(t *testing.T) {
	tests := []struct {
		name          string
		verdict       verifier.Verdict
		wantVerdict   string
		wantIndicator string
	}{
		{name: "likely true", verdict: verifier.VerdictLikelyTrue, wantVerdict: "Likely True", wantIndicator: "🟢"},
		{name: "likely false", verdict: verifier.VerdictLikelyFalse, wantVerdict: "Likely False", wantIndicator: "🔴"},
		{name: "uncertain", verdict: verifier.VerdictUncertain, wantVerdict: "Uncertain", wantIndicator: "🟡"},
		{name: "unrecognized label collapses to uncertain", verdict: "Probably", wantVerdict: "Uncertain", wantIndicator: "🟡"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Render(verifier.Result{Verdict: tt.verdict, Confidence: verifier.ConfidenceHigh})
			assert.Equal(t, tt.wantVerdict, r.Verdict)
			assert.Equal(t, tt.wantIndicator, r.Indicator)
		})
	}
}

func TestRenderSourceTruncation(t *testing.T) {
	var sources []verifier.Source
	for i := 0; i < 7; i++ {
		sources = append(sources, verifier.Source{
			Title: fmt.Sprintf("source %d", i),
			Link:  fmt.Sprintf("https://example.com/%d", i),
			Score: 110, // out of range on purpose
		})
	}

	r := Render(verifier.Result{Verdict: verifier.VerdictUncertain, Sources: sources})

	require.Len(t, r.Sources, verifier.MaxSources)
	for _, s := range r.Sources {
		assert.LessOrEqual(t, s.Score, 100)
	}
}

func TestRenderSanitizesText(t *testing.T) {
	r := Render(verifier.Result{
		Verdict:     verifier.VerdictLikelyFalse,
		Explanation: "ok <b>bold</b>",
		Sources: []verifier.Source{
			{Title: "title <i>italic</i>", Link: "https://example.com", Snippet: "snippet <u>u</u>"},
		},
	})

	assert.Equal(t, "ok bold", r.Explanation)
	assert.Equal(t, "title italic", r.Sources[0].Title)
	assert.Equal(t, "snippet u", r.Sources[0].Snippet)
}

func TestRenderMarkdown(t *testing.T) {
	r := Render(verifier.Result{
		Verdict:     verifier.VerdictLikelyFalse,
		Score:       5,
		Confidence:  verifier.ConfidenceHigh,
		Explanation: "Multiple fact checks refute the claim.",
		Sources: []verifier.Source{
			{Title: "Fact check", Link: "https://snopes.com/x", Snippet: "debunked"},
		},
	})

	assert.Contains(t, r.Markdown, "Likely False")
	assert.Contains(t, r.Markdown, "5/100")
	assert.Contains(t, r.Markdown, "Confidence:** High")
	assert.Contains(t, r.Markdown, "[Fact check](https://snopes.com/x)")
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "network", err: fmt.Errorf("%w: search: dial tcp", verifier.ErrNetwork), want: MsgNetworkError},
		{name: "schema", err: fmt.Errorf("%w: empty model reply", verifier.ErrSchema), want: MsgSchemaError},
		{name: "anything else", err: errors.New("boom"), want: MsgGenericError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}
