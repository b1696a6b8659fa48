package types

import "time"

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}

// EntryStatus tracks the lifecycle of a conversation entry.
type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusResolved EntryStatus = "resolved"
	StatusFailed   EntryStatus = "failed"
)

// SourceView is one evidence item as shown to the user.
type SourceView struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Score   int    `json:"score"`
}

// Report is the rendered, display-ready form of a verification result.
type Report struct {
	Verdict     string       `json:"verdict"`
	Indicator   string       `json:"indicator"`
	Score       int          `json:"score"`
	Confidence  string       `json:"confidence"`
	Explanation string       `json:"explanation"`
	Sources     []SourceView `json:"sources"`
	Markdown    string       `json:"markdown"`
}

// ConversationEntry pairs a submitted claim with its outcome. Entries are
// append-only per session and immutable once resolved or failed.
type ConversationEntry struct {
	ID          string      `json:"id"`
	Claim       string      `json:"claim"`
	Status      EntryStatus `json:"status"`
	Report      *Report     `json:"report,omitempty"`
	Error       string      `json:"error,omitempty"`
	SubmittedAt time.Time   `json:"submittedAt"`
	ResolvedAt  *time.Time  `json:"resolvedAt,omitempty"`
}
