package webserver

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/claimcheck/src/CCApi/data"
	"github.com/stake-plus/claimcheck/src/CCApi/report"
	"github.com/stake-plus/claimcheck/src/CCApi/session"
	"github.com/stake-plus/claimcheck/src/CCApi/types"
	"github.com/stake-plus/claimcheck/src/verifier"
)

// ClaimVerifier is the outbound half of the request/response cycle; the
// production implementation is verifier.Verifier.
type ClaimVerifier interface {
	Verify(ctx context.Context, claim string) (verifier.Result, error)
}

type Claims struct {
	store    session.Store
	verifier ClaimVerifier
	inflight *Inflight
	rdb      *redis.Client
}

func NewClaims(store session.Store, vf ClaimVerifier, rdb *redis.Client) *Claims {
	return &Claims{
		store:    store,
		verifier: vf,
		inflight: NewInflight(),
		rdb:      rdb,
	}
}

// Submit runs one claim through the verification pipeline and appends the
// outcome to the session's conversation. The request blocks until the
// verdict (or failure) is in; the inflight guard rejects a second
// submission for the same session in the meantime.
func (h *Claims) Submit(c *gin.Context) {
	var req struct {
		Claim string `json:"claim" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	// The claim goes to the search engine and the model verbatim; escaping
	// happens at render time.
	claim := strings.TrimSpace(req.Claim)
	if claim == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "claim must not be empty"})
		return
	}
	if !utf8.ValidString(claim) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in claim"})
		return
	}

	sid := c.GetString("sid")
	if !h.inflight.Acquire(sid) {
		c.JSON(http.StatusConflict, gin.H{"err": "a verification is already in progress for this session"})
		return
	}
	defer h.inflight.Release(sid)

	entry := types.ConversationEntry{
		ID:          uuid.NewString(),
		Claim:       claim,
		Status:      types.StatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	if err := h.store.Append(c.Request.Context(), sid, entry); err != nil {
		log.Printf("Failed to append entry for session %s: %v", sid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to record claim"})
		return
	}

	result, err := h.verifier.Verify(c.Request.Context(), claim)
	if err != nil {
		msg := report.ErrorMessage(err)
		if rerr := h.store.Resolve(c.Request.Context(), sid, entry.ID, nil, msg); rerr != nil {
			log.Printf("Failed to record failure for session %s: %v", sid, rerr)
		}
		entry.Status = types.StatusFailed
		entry.Error = msg
		log.Printf("Verification failed for session %s: %v", sid, err)
		c.JSON(http.StatusOK, gin.H{"entry": entry})
		return
	}

	rep := report.Render(result)
	if err := h.store.Resolve(c.Request.Context(), sid, entry.ID, rep, ""); err != nil {
		log.Printf("Failed to resolve entry for session %s: %v", sid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to record verdict"})
		return
	}
	entry.Status = types.StatusResolved
	entry.Report = rep

	if h.rdb != nil {
		_ = data.PublishVerdict(c.Request.Context(), h.rdb, map[string]any{
			"session":    sid,
			"claim":      claim,
			"verdict":    rep.Verdict,
			"score":      rep.Score,
			"confidence": rep.Confidence,
			"time":       time.Now().Unix(),
		})
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *Claims) List(c *gin.Context) {
	sid := c.GetString("sid")
	entries, err := h.store.List(c.Request.Context(), sid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if entries == nil {
		entries = []types.ConversationEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *Claims) Clear(c *gin.Context) {
	sid := c.GetString("sid")
	if err := h.store.Clear(c.Request.Context(), sid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Examples returns canned claims shown on the landing page.
func (h *Claims) Examples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": []string{
		"The COVID-19 vaccine contains microchips",
		"Climate change is caused by human activities",
		"The Great Wall of China is visible from space",
		"Drinking 8 glasses of water daily is necessary for health",
		"5G networks cause cancer",
	}})
}
