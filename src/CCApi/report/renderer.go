// Package report turns a verification result (or failure) into the fields
// the chat UI displays.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stake-plus/claimcheck/src/CCApi/types"
	"github.com/stake-plus/claimcheck/src/verifier"
)

// User-facing failure lines. Resubmission is always allowed; none of these
// carry upstream detail.
const (
	MsgNetworkError = "Sorry, the verification service could not be reached. Please try submitting your claim again."
	MsgSchemaError  = "Sorry, the verification service returned an unexpected response. Please try submitting your claim again."
	MsgGenericError = "Sorry, something went wrong while verifying your claim. Please try submitting your claim again."
)

var textPolicy = bluemonday.StrictPolicy()

// Render maps a verification result onto the display report. The trust
// score is clamped to [0,100] and the source list truncated to five items
// regardless of what the pipeline produced.
func Render(res verifier.Result) *types.Report {
	verdict := res.Verdict
	if !verifier.KnownVerdict(verdict) {
		verdict = verifier.VerdictUncertain
	}

	score := verifier.ClampScore(res.Score)
	explanation := textPolicy.Sanitize(strings.TrimSpace(res.Explanation))

	sources := res.Sources
	if len(sources) > verifier.MaxSources {
		sources = sources[:verifier.MaxSources]
	}
	views := make([]types.SourceView, 0, len(sources))
	for _, s := range sources {
		views = append(views, types.SourceView{
			Title:   textPolicy.Sanitize(s.Title),
			Link:    s.Link,
			Snippet: textPolicy.Sanitize(s.Snippet),
			Score:   verifier.ClampScore(s.Score),
		})
	}

	r := &types.Report{
		Verdict:     string(verdict),
		Indicator:   indicator(verdict),
		Score:       score,
		Confidence:  string(res.Confidence),
		Explanation: explanation,
		Sources:     views,
	}
	r.Markdown = markdown(r)
	return r
}

// ErrorMessage maps a pipeline failure onto its apology line.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, verifier.ErrNetwork):
		return MsgNetworkError
	case errors.Is(err, verifier.ErrSchema):
		return MsgSchemaError
	default:
		return MsgGenericError
	}
}

func indicator(v verifier.Verdict) string {
	switch v {
	case verifier.VerdictLikelyTrue:
		return "🟢"
	case verifier.VerdictLikelyFalse:
		return "🔴"
	default:
		return "🟡"
	}
}

func markdown(r *types.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s %s\n\n", r.Indicator, r.Verdict)
	fmt.Fprintf(&b, "**Trust Score:** %d/100  \n", r.Score)
	fmt.Fprintf(&b, "**Confidence:** %s\n\n", r.Confidence)
	if r.Explanation != "" {
		fmt.Fprintf(&b, "%s\n", r.Explanation)
	}
	if len(r.Sources) > 0 {
		b.WriteString("\n### Sources\n")
		for i, s := range r.Sources {
			title := s.Title
			if title == "" {
				title = s.Link
			}
			fmt.Fprintf(&b, "%d. [%s](%s) - %s\n", i+1, title, s.Link, s.Snippet)
		}
	}
	return b.String()
}
