package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stake-plus/claimcheck/src/ai/core"
	"github.com/stake-plus/claimcheck/src/search"
)

const (
	// DefaultTimeout bounds one full verification round trip. There is
	// no cancellation affordance; an unresolved request becomes ErrNetwork.
	DefaultTimeout = 30 * time.Second

	searchResultCount = 8
)

var supportingWords = []string{"support", "supported", "true", "confirmed"}
var contradictingWords = []string{"refute", "refuted", "false", "misleading", "debunked"}

// SearchClient gathers web evidence for a claim.
type SearchClient interface {
	Search(ctx context.Context, query string, num int) ([]search.Result, error)
}

// Verifier runs the full pipeline for one claim: web search, heuristic
// source scoring, model reasoning, and verdict blending. One submission
// triggers exactly one pipeline run; nothing is cached or retried.
type Verifier struct {
	search  SearchClient
	ai      core.Client
	timeout time.Duration
}

func New(searchClient SearchClient, aiClient core.Client, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Verifier{search: searchClient, ai: aiClient, timeout: timeout}
}

func (v *Verifier) Verify(ctx context.Context, claim string) (Result, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return Result{}, ErrValidation
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	results, err := v.search.Search(ctx, claim, searchResultCount)
	if err != nil {
		return Result{}, fmt.Errorf("%w: search: %v", ErrNetwork, err)
	}

	heur := scoreSources(claim, results)

	explanation, modelVerdict, err := v.reason(ctx, claim, results)
	if err != nil {
		return Result{}, err
	}

	return blend(claim, heur, modelVerdict, explanation), nil
}

// reason asks the model to judge the claim against the top evidence and
// maps its prose onto a verdict label by keyword.
func (v *Verifier) reason(ctx context.Context, claim string, results []search.Result) (string, Verdict, error) {
	top := results
	if len(top) > MaxSources {
		top = top[:MaxSources]
	}
	evidence, _ := json.MarshalIndent(top, "", "  ")

	prompt := fmt.Sprintf(`You are a claim verification assistant.
Claim: %s
Evidence sources: %s

Based only on these sources, answer in plain English:
- Is the claim supported, refuted, or unclear?
- Give a short explanation (2-3 sentences).`, claim, evidence)

	text, err := v.ai.Reason(ctx, prompt, core.Options{})
	if err != nil {
		return "", "", fmt.Errorf("%w: reasoning: %v", ErrNetwork, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", fmt.Errorf("%w: empty model reply", ErrSchema)
	}

	lower := strings.ToLower(text)
	verdict := VerdictUncertain
	if containsAny(lower, contradictingWords) {
		verdict = VerdictLikelyFalse
	} else if containsAny(lower, supportingWords) {
		verdict = VerdictLikelyTrue
	}

	return text, verdict, nil
}

// blend combines the heuristic score with the model's verdict. When the
// model takes a side, its label wins and pulls the score 30 points toward
// its pole; confidence reflects how strongly the two halves agree.
func blend(claim string, heur heuristic, modelVerdict Verdict, explanation string) Result {
	score := heur.Score
	verdict := heur.Verdict

	switch modelVerdict {
	case VerdictLikelyTrue:
		score = clampScore(int(0.7*float64(heur.Score)) + 30)
		verdict = VerdictLikelyTrue
	case VerdictLikelyFalse:
		score = clampScore(int(0.7 * float64(heur.Score)))
		verdict = VerdictLikelyFalse
	}

	return Result{
		Claim:       claim,
		Verdict:     verdict,
		Score:       score,
		Confidence:  confidence(heur, modelVerdict),
		Explanation: explanation,
		Sources:     heur.Top,
	}
}

func confidence(heur heuristic, modelVerdict Verdict) Confidence {
	if !heur.Evidence {
		return ConfidenceLow
	}
	if heur.Verdict != modelVerdict {
		return ConfidenceLow
	}
	if heur.Score >= 75 || heur.Score <= 25 {
		return ConfidenceHigh
	}
	return ConfidenceMedium
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// ClampScore bounds a trust score to the displayable range.
func ClampScore(s int) int { return clampScore(s) }
