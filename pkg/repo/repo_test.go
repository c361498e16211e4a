package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/demo"
	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/session"
)

// fakeBackend implements Gateway with canned data and call counters.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	candidates []hiring.Candidate
	roles      []hiring.Role
	matches    []hiring.Match
	offers     []hiring.Offer

	listDelay time.Duration
	failWith  error

	lastOfferPackage hiring.OfferPackage
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}}
}

func (f *fakeBackend) count(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeBackend) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) ListCandidates(ctx context.Context) ([]hiring.Candidate, error) {
	f.count("candidates.list")
	return f.candidates, f.failWith
}

func (f *fakeBackend) ListRoles(ctx context.Context, activeOnly bool) ([]hiring.Role, error) {
	f.count("roles.list")
	return f.roles, f.failWith
}

func (f *fakeBackend) ListMatches(ctx context.Context, filter api.MatchFilter) ([]hiring.Match, error) {
	f.count("matches.list")
	return f.matches, f.failWith
}

func (f *fakeBackend) ListOffers(ctx context.Context, filter api.OfferFilter) ([]hiring.Offer, error) {
	f.count("offers.list")
	if f.listDelay > 0 {
		time.Sleep(f.listDelay)
	}
	return f.offers, f.failWith
}

func (f *fakeBackend) GetCandidate(ctx context.Context, id string) (*hiring.Candidate, error) {
	f.count("candidates.get")
	for _, c := range f.candidates {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Op: "candidates.get", Detail: "Candidate not found"}
}

func (f *fakeBackend) GetRole(ctx context.Context, id string) (*hiring.Role, error) {
	f.count("roles.get")
	for _, r := range f.roles {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Op: "roles.get", Detail: "Role not found"}
}

func (f *fakeBackend) CreateRole(ctx context.Context, in hiring.RoleInput) (*hiring.Role, error) {
	f.count("roles.create")
	role := hiring.Role{ID: fmt.Sprintf("srv-role-%d", len(f.roles)+1), Title: in.Title, Department: in.Department,
		RequiredSkills: in.RequiredSkills, IsActive: true}
	f.roles = append(f.roles, role)
	return &role, nil
}

func (f *fakeBackend) UpdateRole(ctx context.Context, id string, patch hiring.RolePatch) (*hiring.Role, error) {
	f.count("roles.update")
	for i := range f.roles {
		if f.roles[i].ID == id {
			patch.ApplyTo(&f.roles[i])
			return &f.roles[i], nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Op: "roles.update", Detail: "Role not found"}
}

func (f *fakeBackend) DeleteRole(ctx context.Context, id string) error {
	f.count("roles.delete")
	for i := range f.roles {
		if f.roles[i].ID == id {
			f.roles[i].IsActive = false
			return nil
		}
	}
	return &api.Error{Kind: api.KindNotFound, Status: 404, Op: "roles.delete", Detail: "Role not found"}
}

func (f *fakeBackend) GetMatch(ctx context.Context, id string) (*hiring.MatchDetails, error) {
	f.count("matches.get")
	for _, m := range f.matches {
		if m.ID == id {
			return &hiring.MatchDetails{Match: m}, nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Op: "matches.get", Detail: "Match not found"}
}

func (f *fakeBackend) RegenerateExplanation(ctx context.Context, id string) (*hiring.Match, error) {
	f.count("matches.regenerate")
	for i := range f.matches {
		if f.matches[i].ID == id {
			f.matches[i].Explanation = "server regenerated"
			return &f.matches[i], nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Op: "matches.regenerate", Detail: "Match not found"}
}

func (f *fakeBackend) GetOffer(ctx context.Context, id string) (*hiring.OfferDetails, error) {
	f.count("offers.get")
	for _, o := range f.offers {
		if o.ID == id {
			return &hiring.OfferDetails{Offer: o}, nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Op: "offers.get", Detail: "Offer not found"}
}

// UpdateOffer records the received package and applies the backend's
// forced-Modified rule.
func (f *fakeBackend) UpdateOffer(ctx context.Context, id string, pkg hiring.OfferPackage) (*hiring.Offer, error) {
	f.count("offers.update")
	f.mu.Lock()
	f.lastOfferPackage = pkg
	f.mu.Unlock()
	for i := range f.offers {
		if f.offers[i].ID == id {
			f.offers[i].Package = pkg
			if f.offers[i].Status == hiring.OfferStatusPending {
				f.offers[i].Status = hiring.OfferStatusModified
			}
			return &f.offers[i], nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Op: "offers.update", Detail: "Offer not found"}
}

func (f *fakeBackend) ApproveOffer(ctx context.Context, id string) (*hiring.Offer, error) {
	f.count("offers.approve")
	for i := range f.offers {
		if f.offers[i].ID == id {
			f.offers[i].Status = hiring.OfferStatusApproved
			return &f.offers[i], nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Op: "offers.approve", Detail: "Offer not found"}
}

func (f *fakeBackend) RejectOffer(ctx context.Context, id, comments string) (*hiring.Offer, error) {
	f.count("offers.reject")
	for i := range f.offers {
		if f.offers[i].ID == id {
			f.offers[i].Status = hiring.OfferStatusRejected
			return &f.offers[i], nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Op: "offers.reject", Detail: "Offer not found"}
}

func (f *fakeBackend) SubmitFeedback(ctx context.Context, in hiring.FeedbackInput) error {
	f.count("offers.feedback")
	return nil
}

// demoHub builds a hub over a session already degraded to demo data.
func demoHub(t *testing.T) *Hub {
	t.Helper()
	provider := demo.NewProvider()
	store := session.New(nil, provider, session.Options{ForceFallback: true})
	require.NoError(t, store.Bootstrap(context.Background()))
	require.True(t, store.FallbackMode())
	return New(store, newFakeBackend(), provider)
}

// liveHub builds a hub over a live session backed by the fake backend.
func liveHub(t *testing.T, backend *fakeBackend) *Hub {
	t.Helper()
	provider := demo.NewProvider()
	store := session.New(backend, provider, session.Options{})
	require.NoError(t, store.Bootstrap(context.Background()))
	require.False(t, store.FallbackMode())
	return New(store, backend, provider)
}

func TestDemoUpdateOfferForcesModifiedAndRecomputesTotal(t *testing.T) {
	hub := demoHub(t)
	bonus := 20000.0

	// offer1 starts Pending Approval with base 100000 / bonus 10000
	updated, err := hub.Offers().Update(context.Background(), "offer1", hiring.OfferPackagePatch{Bonus: &bonus})
	require.NoError(t, err)
	assert.Equal(t, hiring.OfferStatusModified, updated.Status)
	assert.Equal(t, 120000.0, updated.Package.TotalCTC)

	// repeating the same edit keeps status and total stable
	again, err := hub.Offers().Update(context.Background(), "offer1", hiring.OfferPackagePatch{Bonus: &bonus})
	require.NoError(t, err)
	assert.Equal(t, hiring.OfferStatusModified, again.Status)
	assert.Equal(t, 120000.0, again.Package.TotalCTC)

	stored, ok := hub.Store().Offer("offer1")
	require.True(t, ok)
	assert.Equal(t, hiring.OfferStatusModified, stored.Status)
}

func TestDemoApproveIsIdempotent(t *testing.T) {
	hub := demoHub(t)

	// offer2 is already Approved in the dataset
	first, err := hub.Offers().Approve(context.Background(), "offer2")
	require.NoError(t, err)
	assert.Equal(t, hiring.OfferStatusApproved, first.Status)

	second, err := hub.Offers().Approve(context.Background(), "offer2")
	require.NoError(t, err)
	assert.Equal(t, hiring.OfferStatusApproved, second.Status)
}

func TestDemoApprovePendingOffer(t *testing.T) {
	hub := demoHub(t)

	updated, err := hub.Offers().Approve(context.Background(), "offer1")
	require.NoError(t, err)
	assert.Equal(t, hiring.OfferStatusApproved, updated.Status)

	stored, _ := hub.Store().Offer("offer1")
	assert.Equal(t, hiring.OfferStatusApproved, stored.Status)
}

func TestDemoRejectApprovedOfferFails(t *testing.T) {
	hub := demoHub(t)

	_, err := hub.Offers().Reject(context.Background(), "offer2", "changed our mind")
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindBadRequest))
}

func TestDemoCreateRoleAppendsWithoutTouchingExisting(t *testing.T) {
	hub := demoHub(t)
	before := hub.Store().Roles()

	created, err := hub.Roles().Create(context.Background(), hiring.RoleInput{
		Title:          "Platform Engineer",
		Department:     "Engineering",
		RequiredSkills: []string{"Go", "Kubernetes"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.NotContains(t, []string{"role1", "role2", "role3"}, created.ID)

	after := hub.Store().Roles()
	require.Len(t, after, len(before)+1)
	for i, r := range before {
		assert.Equal(t, r.ID, after[i].ID, "existing roles must keep position and id")
		assert.Equal(t, r.RequiredSkills, after[i].RequiredSkills)
	}
	assert.Equal(t, created.ID, after[len(after)-1].ID)
}

func TestDemoDeleteRoleIsLogical(t *testing.T) {
	hub := demoHub(t)

	require.NoError(t, hub.Roles().Delete(context.Background(), "role1"))

	role, ok := hub.Store().Role("role1")
	require.True(t, ok, "soft-deleted role must stay addressable")
	assert.False(t, role.IsActive)

	// historical match still resolves the title
	assert.Equal(t, "Frontend Developer", hub.Store().RoleTitle("role1"))
}

func TestDemoRefreshLeavesStoreAlone(t *testing.T) {
	hub := demoHub(t)

	// mutate the session first
	require.NoError(t, hub.Roles().Delete(context.Background(), "role1"))
	versionBefore := hub.Store().Version(session.Roles)

	list, err := hub.Roles().Refresh(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	assert.Equal(t, versionBefore, hub.Store().Version(session.Roles), "demo refresh must not swap the store")
	role, _ := hub.Store().Role("role1")
	assert.False(t, role.IsActive, "local edits survive a demo refresh")
}

func TestDemoValidationShortCircuits(t *testing.T) {
	hub := demoHub(t)

	_, err := hub.Roles().Create(context.Background(), hiring.RoleInput{Department: "Engineering"})
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindBadRequest))

	negative := -5.0
	_, err = hub.Offers().Update(context.Background(), "offer1", hiring.OfferPackagePatch{Bonus: &negative})
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindBadRequest))
}

func TestDemoDetailsEmbedReferences(t *testing.T) {
	hub := demoHub(t)

	details, err := hub.Matches().Details(context.Background(), "match1")
	require.NoError(t, err)
	require.NotNil(t, details.Candidate)
	require.NotNil(t, details.Role)
	assert.Equal(t, "John Doe", details.Candidate.Name)
	assert.Equal(t, "Frontend Developer", details.Role.Title)

	_, err = hub.Matches().Details(context.Background(), "ghost")
	assert.True(t, api.IsKind(err, api.KindNotFound))
}

func TestDemoRegenerateExplanation(t *testing.T) {
	hub := demoHub(t)
	before, _ := hub.Store().Match("match1")

	updated, err := hub.Matches().RegenerateExplanation(context.Background(), "match1")
	require.NoError(t, err)
	assert.NotEqual(t, before.Explanation, updated.Explanation)

	stored, _ := hub.Store().Match("match1")
	assert.Equal(t, updated.Explanation, stored.Explanation)
}

func TestLiveUpdateOfferIsServerAuthoritative(t *testing.T) {
	backend := newFakeBackend()
	backend.offers = []hiring.Offer{{
		ID: "offer1", CandidateID: "candidate1", RoleID: "role1", Status: hiring.OfferStatusPending,
		Package: hiring.OfferPackage{BaseSalary: 100000, Bonus: 10000, Equity: "1%", TotalCTC: 110000},
	}}
	backend.candidates = []hiring.Candidate{{ID: "candidate1", Name: "John Doe"}}
	hub := liveHub(t, backend)

	bonus := 20000.0
	updated, err := hub.Offers().Update(context.Background(), "offer1", hiring.OfferPackagePatch{Bonus: &bonus})
	require.NoError(t, err)

	// the full merged package went upstream
	assert.Equal(t, 100000.0, backend.lastOfferPackage.BaseSalary)
	assert.Equal(t, 20000.0, backend.lastOfferPackage.Bonus)
	assert.Equal(t, 120000.0, backend.lastOfferPackage.TotalCTC)
	assert.Equal(t, "1%", backend.lastOfferPackage.Equity, "unpatched fields carry over")

	// the server's representation landed in the store
	assert.Equal(t, hiring.OfferStatusModified, updated.Status)
	stored, _ := hub.Store().Offer("offer1")
	assert.Equal(t, hiring.OfferStatusModified, stored.Status)
	assert.Equal(t, 120000.0, stored.Package.TotalCTC)
}

func TestLiveRefreshSwapsWholesale(t *testing.T) {
	backend := newFakeBackend()
	backend.offers = []hiring.Offer{{ID: "offer1", Status: hiring.OfferStatusPending}}
	hub := liveHub(t, backend)
	versionBefore := hub.Store().Version(session.Offers)

	backend.offers = []hiring.Offer{
		{ID: "offer7", Status: hiring.OfferStatusPending},
		{ID: "offer8", Status: hiring.OfferStatusPending},
	}
	list, err := hub.Offers().Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	offers := hub.Store().Offers()
	require.Len(t, offers, 2)
	assert.Equal(t, "offer7", offers[0].ID)
	assert.Greater(t, hub.Store().Version(session.Offers), versionBefore)

	_, ok := hub.Store().Offer("offer1")
	assert.False(t, ok, "swap is wholesale, old rows disappear")
}

func TestLiveRefreshDeduplicatesConcurrentCalls(t *testing.T) {
	backend := newFakeBackend()
	backend.offers = []hiring.Offer{{ID: "offer1"}}
	hub := liveHub(t, backend)

	baseline := backend.callCount("offers.list")
	backend.listDelay = 100 * time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := hub.Offers().Refresh(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, baseline+1, backend.callCount("offers.list"), "concurrent refreshes share one fetch")
}

func TestLiveDeleteRoleFlipsLocalCopy(t *testing.T) {
	backend := newFakeBackend()
	backend.roles = []hiring.Role{{ID: "role1", Title: "Frontend Developer", IsActive: true}}
	hub := liveHub(t, backend)

	require.NoError(t, hub.Roles().Delete(context.Background(), "role1"))

	role, ok := hub.Store().Role("role1")
	require.True(t, ok)
	assert.False(t, role.IsActive)
}

func TestLiveCreateRoleValidatesBeforeNetwork(t *testing.T) {
	backend := newFakeBackend()
	backend.roles = []hiring.Role{{ID: "role1", IsActive: true}}
	hub := liveHub(t, backend)

	_, err := hub.Roles().Create(context.Background(), hiring.RoleInput{Title: "X"})
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindBadRequest))
	assert.Equal(t, 0, backend.callCount("roles.create"), "invalid input must not reach the backend")
}

func TestHubPicksImplementationPerCall(t *testing.T) {
	// a live session whose backend later dies still routes through the
	// live repos; mode only changes with the session flag
	backend := newFakeBackend()
	backend.candidates = []hiring.Candidate{{ID: "candidate1"}}
	hub := liveHub(t, backend)

	assert.IsType(t, &liveOfferRepo{}, hub.Offers())
	assert.IsType(t, &liveRoleRepo{}, hub.Roles())

	offline := demoHub(t)
	assert.IsType(t, &demoOfferRepo{}, offline.Offers())
	assert.IsType(t, &demoRoleRepo{}, offline.Roles())
}
