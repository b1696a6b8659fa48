package verifier

import (
	"regexp"
	"strings"
	"time"

	"github.com/stake-plus/claimcheck/src/search"
)

var authoritativeDomains = []string{
	".gov", ".edu", "who.int", "nih.gov", "cdc.gov", "reuters.com",
	"bbc.com", "nature.com", "science.org", "nytimes.com", "theguardian.com",
}

var factCheckDomains = []string{
	"snopes.com", "politifact.com", "factcheck.org", "reuters.com/fact-check",
}

var refutingWords = []string{"false", "debunked", "misleading"}

var (
	yearPattern = regexp.MustCompile(`(20\d{2})`)
	wordPattern = regexp.MustCompile(`\w+`)
)

// heuristic is the search-evidence half of a verdict before the model's
// reasoning is blended in. Evidence is false when the search came back
// empty; such a verdict can never count as agreement.
type heuristic struct {
	Score    int
	Verdict  Verdict
	Evidence bool
	Top      []Source
}

// scoreSources rates each search result on domain quality, recency and
// relevance to the claim, flags fact-check coverage, and folds the
// per-source scores into a 0-100 trust score with a provisional verdict.
func scoreSources(claim string, results []search.Result) heuristic {
	if len(results) == 0 {
		return heuristic{Score: 0, Verdict: VerdictUncertain}
	}

	var (
		sum           float64
		top           []Source
		factCheckSeen bool
		refutedSeen   bool
	)

	for _, r := range results {
		score := 0.4*domainQuality(r.Link) + 0.2*recency(r.Date) + 0.2*relevance(claim, r.Snippet, r.Title)

		if matchesAny(strings.ToLower(r.Link), factCheckDomains) {
			factCheckSeen = true
			score += 0.3
		}
		if containsAny(strings.ToLower(r.Snippet), refutingWords) {
			refutedSeen = true
		}
		if score > 1.0 {
			score = 1.0
		}

		sum += score
		top = append(top, Source{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
			Site:    r.Source,
			Date:    r.Date,
			Score:   int(score*100 + 0.5),
		})
	}

	avg := sum / float64(len(results))

	// A fact-checker calling the claim false outweighs everything else.
	if factCheckSeen && refutedSeen {
		avg -= 0.5
		if avg < 0 {
			avg = 0
		}
	}

	final := int(avg*100 + 0.5)

	verdict := VerdictUncertain
	switch {
	case final >= 70:
		verdict = VerdictLikelyTrue
	case final <= 35:
		verdict = VerdictLikelyFalse
	}

	if len(top) > MaxSources {
		top = top[:MaxSources]
	}

	return heuristic{Score: final, Verdict: verdict, Evidence: true, Top: top}
}

func domainQuality(link string) float64 {
	link = strings.ToLower(link)
	if matchesAny(link, factCheckDomains) {
		return 1.0
	}
	if matchesAny(link, authoritativeDomains) {
		return 0.9
	}
	if strings.Contains(link, ".gov") || strings.Contains(link, ".edu") {
		return 0.85
	}
	return 0.6
}

func recency(date string) float64 {
	m := yearPattern.FindString(date)
	if m == "" {
		return 0.6
	}
	year, _ := time.Parse("2006", m)
	age := time.Now().UTC().Year() - year.Year()
	switch {
	case age <= 1:
		return 1.0
	case age <= 3:
		return 0.8
	default:
		return 0.4
	}
}

func relevance(claim, snippet, title string) float64 {
	terms := wordPattern.FindAllString(strings.ToLower(claim), -1)
	if len(terms) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		seen[t] = struct{}{}
	}

	text := strings.ToLower(snippet + " " + title)
	matched := 0
	for t := range seen {
		if strings.Contains(text, t) {
			matched++
		}
	}

	denom := float64(len(seen)) * 0.5
	if denom < 3 {
		denom = 3
	}
	rel := float64(matched) / denom
	if rel > 1.0 {
		rel = 1.0
	}
	return rel
}

func matchesAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
