package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/demo"
	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/repo"
	"github.com/hirewatch/hirewatch/pkg/session"
)

// recordingNotifier captures notifications for assertion.
type recordingNotifier struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

func (r *recordingNotifier) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notes...)
}

// deadClient points at nothing; demo-branch tests use it to prove no
// network traffic happens.
func deadClient(t *testing.T) *api.Client {
	t.Helper()
	client, err := api.New(api.Config{BaseURL: "http://127.0.0.1:1/api", Timeout: 100 * time.Millisecond})
	require.NoError(t, err)
	return client
}

// demoRunner builds a runner over a forced-fallback session.
func demoRunner(t *testing.T, notifier Notifier, delay time.Duration) (*Runner, *session.Store) {
	t.Helper()
	provider := demo.NewProvider()
	store := session.New(nil, provider, session.Options{ForceFallback: true})
	require.NoError(t, store.Bootstrap(context.Background()))
	hub := repo.New(store, deadClient(t), provider)
	runner := New(Config{Hub: hub, Gateway: deadClient(t), Synth: provider, Notifier: notifier, Delay: delay})
	return runner, store
}

func waitOutcome(t *testing.T, receipt *Receipt) Outcome {
	t.Helper()
	select {
	case out := <-receipt.Done:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("workflow refresh never completed")
		return Outcome{}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestGenerateOffersLiveReplacesWholesale(t *testing.T) {
	var mu sync.Mutex
	offers := []hiring.Offer{{ID: "old1", Status: hiring.OfferStatusPending}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/candidates/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []hiring.Candidate{{ID: "c1", Name: "John Doe"}})
	})
	mux.HandleFunc("/api/roles/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []hiring.Role{})
	})
	mux.HandleFunc("/api/matches/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []hiring.Match{})
	})
	mux.HandleFunc("/api/offers/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		writeJSON(w, http.StatusOK, offers)
	})
	mux.HandleFunc("/api/offers/generate", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		offers = []hiring.Offer{
			{ID: "new1", Status: hiring.OfferStatusPending},
			{ID: "new2", Status: hiring.OfferStatusPending},
		}
		mu.Unlock()
		writeJSON(w, http.StatusAccepted, map[string]any{"message": "Offer generation started"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	client, err := api.New(api.Config{BaseURL: srv.URL + "/api"})
	require.NoError(t, err)

	provider := demo.NewProvider()
	store := session.New(client, provider, session.Options{})
	require.NoError(t, store.Bootstrap(context.Background()))
	require.False(t, store.FallbackMode())

	hub := repo.New(store, client, provider)
	notifier := &recordingNotifier{}
	runner := New(Config{Hub: hub, Gateway: client, Synth: provider, Notifier: notifier, Delay: 150 * time.Millisecond})

	receipt, err := runner.GenerateOffers(context.Background(), []string{"m1"})
	require.NoError(t, err)
	assert.Equal(t, "Offer generation started", receipt.Message)

	// before the delay elapses the collection is untouched, no partial state
	current := store.Offers()
	require.Len(t, current, 1)
	assert.Equal(t, "old1", current[0].ID)

	out := waitOutcome(t, receipt)
	require.NoError(t, out.Err)
	assert.Equal(t, 2, out.Count)

	after := store.Offers()
	require.Len(t, after, 2)
	assert.Equal(t, "new1", after[0].ID)
	assert.Equal(t, "new2", after[1].ID)
	if _, ok := store.Offer("old1"); ok {
		t.Fatal("refresh must replace, not merge")
	}

	notes := notifier.all()
	require.Len(t, notes, 2)
	assert.Equal(t, SeverityInfo, notes[0].Severity)
	assert.Contains(t, notes[0].Message, "started")
	assert.Equal(t, SeveritySuccess, notes[1].Severity)
}

func TestUploadLiveRejectionSurfacesSynchronously(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/candidates/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []hiring.Candidate{{ID: "c1"}})
	})
	mux.HandleFunc("/api/roles/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []hiring.Role{})
	})
	mux.HandleFunc("/api/matches/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []hiring.Match{})
	})
	mux.HandleFunc("/api/offers/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []hiring.Offer{})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	client, err := api.New(api.Config{BaseURL: srv.URL + "/api"})
	require.NoError(t, err)

	provider := demo.NewProvider()
	store := session.New(client, provider, session.Options{})
	require.NoError(t, store.Bootstrap(context.Background()))

	hub := repo.New(store, client, provider)
	notifier := &recordingNotifier{}
	runner := New(Config{Hub: hub, Gateway: client, Synth: provider, Notifier: notifier, Delay: 10 * time.Millisecond})

	// extension check fires before any request is sent
	_, err = runner.Upload(context.Background(), []string{"resume.txt"})
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindBadRequest))
	assert.Contains(t, err.Error(), "Invalid file type for resume.txt")

	assert.Equal(t, StateIdle, runner.State(Upload), "failed trigger must release the workflow")
	notes := notifier.all()
	require.Len(t, notes, 1)
	assert.Equal(t, SeverityError, notes[0].Severity)
}

func TestUploadDemoSynthesizesCandidates(t *testing.T) {
	notifier := &recordingNotifier{}
	runner, store := demoRunner(t, notifier, 20*time.Millisecond)
	before := len(store.Candidates())

	receipt, err := runner.Upload(context.Background(), []string{"/tmp/cv/jane.pdf", "alex.docx"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully uploaded and processed 2 files", receipt.Message)

	out := waitOutcome(t, receipt)
	require.NoError(t, out.Err)
	assert.Equal(t, 2, out.Added)
	assert.Equal(t, before+2, out.Count)

	candidates := store.Candidates()
	require.Len(t, candidates, before+2)
	assert.Equal(t, "Candidate from jane.pdf", candidates[before].Name)
	assert.Equal(t, "Candidate from alex.docx", candidates[before+1].Name)

	notes := notifier.all()
	require.Len(t, notes, 2)
	assert.Equal(t, SeverityInfo, notes[0].Severity)
	assert.Equal(t, SeveritySuccess, notes[1].Severity)
	assert.Contains(t, notes[1].Message, "2 new")
}

func TestUploadDemoRejectsBadExtension(t *testing.T) {
	runner, store := demoRunner(t, nil, 20*time.Millisecond)
	before := len(store.Candidates())

	_, err := runner.Upload(context.Background(), []string{"notes.txt"})
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindBadRequest))
	assert.Len(t, store.Candidates(), before)
	assert.Equal(t, StateIdle, runner.State(Upload))
}

func TestRunMatchingDemoUpsertsByPair(t *testing.T) {
	runner, store := demoRunner(t, nil, 20*time.Millisecond)

	// dataset: 3 matches; crossing 3 candidates with the 2 active roles
	// yields 6 pairs, 2 of which already exist
	receipt, err := runner.RunMatching(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Match processing started", receipt.Message)

	out := waitOutcome(t, receipt)
	require.NoError(t, out.Err)
	assert.Equal(t, 7, out.Count)
	assert.Equal(t, 4, out.Added)

	// the re-scored pair keeps its id
	m, ok := store.Match("match1")
	require.True(t, ok)
	assert.Equal(t, "candidate1", m.CandidateID)
	assert.Equal(t, "role1", m.RoleID)
	assert.False(t, m.UpdatedAt.IsZero(), "re-scored match gets a fresh updated_at")
}

func TestRunMatchingDemoHonorsSelection(t *testing.T) {
	runner, store := demoRunner(t, nil, 20*time.Millisecond)

	receipt, err := runner.RunMatching(context.Background(), []string{"candidate3"}, []string{"role1"})
	require.NoError(t, err)
	out := waitOutcome(t, receipt)
	require.NoError(t, out.Err)

	// one new pair: candidate3 x role1
	assert.Equal(t, 4, out.Count)
	assert.Equal(t, 1, out.Added)
	found := false
	for _, m := range store.Matches() {
		if m.CandidateID == "candidate3" && m.RoleID == "role1" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGenerateOffersDemoDefaultsToThreshold(t *testing.T) {
	runner, store := demoRunner(t, nil, 20*time.Millisecond)

	// match1 (85) and match2 (92) clear the bar, match3 (58) does not;
	// both eligible pairs already hold offers, so the job rewrites them
	receipt, err := runner.GenerateOffers(context.Background(), nil)
	require.NoError(t, err)
	out := waitOutcome(t, receipt)
	require.NoError(t, out.Err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 0, out.Added)

	regenerated, ok := store.Offer("offer2")
	require.True(t, ok, "regeneration keeps the offer id")
	assert.Equal(t, hiring.OfferStatusPending, regenerated.Status, "a fresh draft resets the decision")
	assert.Equal(t, 125000.0, regenerated.Package.BaseSalary, "package reseeds from the role's band midpoint")
	assert.Equal(t, regenerated.Package.BaseSalary+regenerated.Package.Bonus, regenerated.Package.TotalCTC)
}

func TestBusyRejectionIsPerWorkflow(t *testing.T) {
	runner, _ := demoRunner(t, nil, 100*time.Millisecond)

	first, err := runner.Upload(context.Background(), []string{"one.pdf"})
	require.NoError(t, err)

	_, err = runner.Upload(context.Background(), []string{"two.pdf"})
	require.Error(t, err)
	assert.True(t, IsBusy(err))

	// a different workflow is free to run
	second, err := runner.RunMatching(context.Background(), nil, nil)
	require.NoError(t, err)

	waitOutcome(t, first)
	waitOutcome(t, second)

	assert.Eventually(t, func() bool { return runner.State(Upload) == StateIdle }, time.Second, 5*time.Millisecond)

	// released after completion
	third, err := runner.Upload(context.Background(), []string{"three.pdf"})
	require.NoError(t, err)
	waitOutcome(t, third)
}

func TestRefreshHonorsSessionContext(t *testing.T) {
	runner, store := demoRunner(t, nil, 500*time.Millisecond)
	before := len(store.Candidates())

	ctx, cancel := context.WithCancel(context.Background())
	receipt, err := runner.Upload(ctx, []string{"late.pdf"})
	require.NoError(t, err)
	cancel()

	out := waitOutcome(t, receipt)
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.Len(t, store.Candidates(), before, "canceled refresh leaves the session untouched")
	assert.Eventually(t, func() bool { return runner.State(Upload) == StateIdle }, time.Second, 5*time.Millisecond)
}
