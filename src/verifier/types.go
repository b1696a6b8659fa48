package verifier

// Verdict is the coarse classification of a claim's truthfulness.
type Verdict string

const (
	VerdictLikelyTrue  Verdict = "Likely True"
	VerdictLikelyFalse Verdict = "Likely False"
	VerdictUncertain   Verdict = "Uncertain"
)

// Confidence is the qualitative certainty attached to a verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// MaxSources caps the number of sources attached to a result.
const MaxSources = 5

// Source is a single piece of supporting evidence.
type Source struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Site    string `json:"site,omitempty"`
	Date    string `json:"date,omitempty"`
	Score   int    `json:"score"` // per-source credibility, 0-100
}

// Result is the structured outcome of verifying one claim.
type Result struct {
	Claim       string     `json:"claim"`
	Verdict     Verdict    `json:"verdict"`
	Score       int        `json:"score"` // trust score, 0-100
	Confidence  Confidence `json:"confidence"`
	Explanation string     `json:"explanation"`
	Sources     []Source   `json:"sources"`
}

// KnownVerdict reports whether v is one of the recognized labels.
func KnownVerdict(v Verdict) bool {
	switch v {
	case VerdictLikelyTrue, VerdictLikelyFalse, VerdictUncertain:
		return true
	}
	return false
}
