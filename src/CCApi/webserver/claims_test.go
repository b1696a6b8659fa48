package webserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/claimcheck/src/CCApi/config"
	"github.com/stake-plus/claimcheck/src/CCApi/report"
	"github.com/stake-plus/claimcheck/src/CCApi/session"
	"github.com/stake-plus/claimcheck/src/CCApi/types"
	"github.com/stake-plus/claimcheck/src/verifier"
)

type stubVerifier struct {
	mu        sync.Mutex
	calls     int
	lastClaim string
	result    verifier.Result
	err       error
	started   chan struct{}
	release   chan struct{}
}

func (s *stubVerifier) Verify(ctx context.Context, claim string) (verifier.Result, error) {
	s.mu.Lock()
	s.calls++
	s.lastClaim = claim
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return verifier.Result{}, s.err
	}
	res := s.result
	res.Claim = claim
	return res, nil
}

func (s *stubVerifier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testRouter(t *testing.T, vf ClaimVerifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	}
	store := session.NewMemoryStore(time.Hour)
	return New(cfg, store, vf, nil)
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/session", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func submitClaim(r *gin.Engine, token, claim string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/claims", strings.NewReader(fmt.Sprintf(`{"claim": %q}`, claim)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	return w
}

func listEntries(t *testing.T, r *gin.Engine, token string) []types.ConversationEntry {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/claims", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Entries []types.ConversationEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Entries
}

func TestSubmitRequiresAuth(t *testing.T) {
	r := testRouter(t, &stubVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/claims", strings.NewReader(`{"claim": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitRejectsEmptyClaims(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing field", body: `{}`},
		{name: "empty string", body: `{"claim": ""}`},
		{name: "whitespace only", body: `{"claim": "   \t  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vf := &stubVerifier{}
			r := testRouter(t, vf)
			token := createSession(t, r)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/claims", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, vf.callCount(), "rejected input must not trigger an outbound call")

			assert.Empty(t, listEntries(t, r, token), "rejected input leaves no conversation entry")
		})
	}
}

func TestSubmitResolvedEntry(t *testing.T) {
	vf := &stubVerifier{result: verifier.Result{
		Verdict:     verifier.VerdictLikelyFalse,
		Score:       5,
		Confidence:  verifier.ConfidenceHigh,
		Explanation: "Multiple fact checks refute this.",
		Sources: []verifier.Source{
			{Title: "s1", Link: "https://example.com/1"},
			{Title: "s2", Link: "https://example.com/2"},
			{Title: "s3", Link: "https://example.com/3"},
			{Title: "s4", Link: "https://example.com/4"},
			{Title: "s5", Link: "https://example.com/5"},
		},
	}}
	r := testRouter(t, vf)
	token := createSession(t, r)

	w := submitClaim(r, token, "The Earth is flat")
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Entry types.ConversationEntry `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, types.StatusResolved, body.Entry.Status)
	require.NotNil(t, body.Entry.Report)
	assert.Equal(t, "Likely False", body.Entry.Report.Verdict)
	assert.Equal(t, 5, body.Entry.Report.Score)
	assert.Equal(t, "High", body.Entry.Report.Confidence)
	assert.Len(t, body.Entry.Report.Sources, 5)
	assert.Equal(t, 1, vf.callCount())
}

func TestSubmitKeepsClaimTextVerbatim(t *testing.T) {
	// Ampersands and angle brackets must reach the pipeline and the stored
	// entry untouched; entity-escaping would skew the search query.
	claim := "AT&T owns more spectrum than <Verizon>"
	vf := &stubVerifier{result: verifier.Result{Verdict: verifier.VerdictUncertain, Confidence: verifier.ConfidenceLow}}
	r := testRouter(t, vf)
	token := createSession(t, r)

	w := submitClaim(r, token, claim)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Entry types.ConversationEntry `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, claim, body.Entry.Claim)

	vf.mu.Lock()
	got := vf.lastClaim
	vf.mu.Unlock()
	assert.Equal(t, claim, got)

	entries := listEntries(t, r, token)
	require.Len(t, entries, 1)
	assert.Equal(t, claim, entries[0].Claim)
}

func TestSubmitNetworkFailure(t *testing.T) {
	vf := &stubVerifier{err: fmt.Errorf("%w: search: dial tcp", verifier.ErrNetwork)}
	r := testRouter(t, vf)
	token := createSession(t, r)

	w := submitClaim(r, token, "some claim")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Entry types.ConversationEntry `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, types.StatusFailed, body.Entry.Status)
	assert.Equal(t, report.MsgNetworkError, body.Entry.Error)
	assert.Nil(t, body.Entry.Report)

	// The guard releases on failure so the user can resubmit.
	vf.err = nil
	vf.result = verifier.Result{Verdict: verifier.VerdictUncertain, Confidence: verifier.ConfidenceLow}
	w = submitClaim(r, token, "some claim")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSubmitSingleOutstandingRequest(t *testing.T) {
	vf := &stubVerifier{
		result:  verifier.Result{Verdict: verifier.VerdictUncertain, Confidence: verifier.ConfidenceLow},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	r := testRouter(t, vf)
	token := createSession(t, r)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- submitClaim(r, token, "first claim")
	}()

	// Wait for the first request to reach the verifier, then submit again.
	<-vf.started
	w := submitClaim(r, token, "second claim")
	assert.Equal(t, http.StatusConflict, w.Code)

	close(vf.release)
	assert.Equal(t, http.StatusCreated, (<-first).Code)
	assert.Equal(t, 1, vf.callCount(), "the conflicting submission never ran the pipeline")
}

func TestSubmitSequentialOrdering(t *testing.T) {
	vf := &stubVerifier{result: verifier.Result{Verdict: verifier.VerdictUncertain, Confidence: verifier.ConfidenceLow}}
	r := testRouter(t, vf)
	token := createSession(t, r)

	require.Equal(t, http.StatusCreated, submitClaim(r, token, "first claim").Code)
	require.Equal(t, http.StatusCreated, submitClaim(r, token, "second claim").Code)

	entries := listEntries(t, r, token)
	require.Len(t, entries, 2)
	assert.Equal(t, "first claim", entries[0].Claim)
	assert.Equal(t, "second claim", entries[1].Claim)
	assert.Equal(t, types.StatusResolved, entries[0].Status)
	assert.Equal(t, types.StatusResolved, entries[1].Status)
}

func TestClearConversation(t *testing.T) {
	vf := &stubVerifier{result: verifier.Result{Verdict: verifier.VerdictUncertain, Confidence: verifier.ConfidenceLow}}
	r := testRouter(t, vf)
	token := createSession(t, r)

	require.Equal(t, http.StatusCreated, submitClaim(r, token, "claim").Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/claims", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Empty(t, listEntries(t, r, token))
}

func TestExamples(t *testing.T) {
	r := testRouter(t, &stubVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/examples", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Examples []string `json:"examples"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Examples)
}

func TestSessionsAreIsolated(t *testing.T) {
	vf := &stubVerifier{result: verifier.Result{Verdict: verifier.VerdictUncertain, Confidence: verifier.ConfidenceLow}}
	r := testRouter(t, vf)
	tokenA := createSession(t, r)
	tokenB := createSession(t, r)

	require.Equal(t, http.StatusCreated, submitClaim(r, tokenA, "claim from A").Code)

	assert.Len(t, listEntries(t, r, tokenA), 1)
	assert.Empty(t, listEntries(t, r, tokenB))
}
