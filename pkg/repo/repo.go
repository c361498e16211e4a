package repo

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/session"
)

// Gateway is the backend surface the live repositories need.
// *api.Client satisfies it.
type Gateway interface {
	session.Gateway

	GetCandidate(ctx context.Context, id string) (*hiring.Candidate, error)

	GetRole(ctx context.Context, id string) (*hiring.Role, error)
	CreateRole(ctx context.Context, in hiring.RoleInput) (*hiring.Role, error)
	UpdateRole(ctx context.Context, id string, patch hiring.RolePatch) (*hiring.Role, error)
	DeleteRole(ctx context.Context, id string) error

	GetMatch(ctx context.Context, id string) (*hiring.MatchDetails, error)
	RegenerateExplanation(ctx context.Context, id string) (*hiring.Match, error)

	GetOffer(ctx context.Context, id string) (*hiring.OfferDetails, error)
	UpdateOffer(ctx context.Context, id string, pkg hiring.OfferPackage) (*hiring.Offer, error)
	ApproveOffer(ctx context.Context, id string) (*hiring.Offer, error)
	RejectOffer(ctx context.Context, id, comments string) (*hiring.Offer, error)
	SubmitFeedback(ctx context.Context, in hiring.FeedbackInput) error
}

var _ Gateway = (*api.Client)(nil)

// Provider is the fallback surface the demo repositories need.
// *demo.Provider satisfies it.
type Provider interface {
	session.FallbackProvider
	Explanation(m hiring.Match) string
}

// CandidateRepository reads candidate state.
type CandidateRepository interface {
	// Refresh reloads the collection. Live sessions swap the store
	// wholesale; demo sessions return the canned set without touching it.
	Refresh(ctx context.Context) ([]hiring.Candidate, error)
	Get(ctx context.Context, id string) (*hiring.Candidate, error)
}

// RoleRepository mutates role state.
type RoleRepository interface {
	Refresh(ctx context.Context) ([]hiring.Role, error)
	Create(ctx context.Context, in hiring.RoleInput) (*hiring.Role, error)
	Update(ctx context.Context, id string, patch hiring.RolePatch) (*hiring.Role, error)
	// Delete is always logical: the role flips inactive and stays
	// addressable for historical matches and offers.
	Delete(ctx context.Context, id string) error
}

// MatchRepository reads match state.
type MatchRepository interface {
	Refresh(ctx context.Context) ([]hiring.Match, error)
	Details(ctx context.Context, id string) (*hiring.MatchDetails, error)
	RegenerateExplanation(ctx context.Context, id string) (*hiring.Match, error)
}

// OfferRepository mutates offer state.
type OfferRepository interface {
	Refresh(ctx context.Context) ([]hiring.Offer, error)
	Details(ctx context.Context, id string) (*hiring.OfferDetails, error)
	Update(ctx context.Context, id string, patch hiring.OfferPackagePatch) (*hiring.Offer, error)
	Approve(ctx context.Context, id string) (*hiring.Offer, error)
	Reject(ctx context.Context, id, comments string) (*hiring.Offer, error)
	SubmitFeedback(ctx context.Context, in hiring.FeedbackInput) error
}

// Hub hands out the right repository implementation for the session's
// current mode. The choice happens per call, so a session that degraded
// after bootstrap keeps working without rewiring.
type Hub struct {
	store *session.Store

	liveCandidates *liveCandidateRepo
	liveRoles      *liveRoleRepo
	liveMatches    *liveMatchRepo
	liveOffers     *liveOfferRepo

	demoCandidates *demoCandidateRepo
	demoRoles      *demoRoleRepo
	demoMatches    *demoMatchRepo
	demoOffers     *demoOfferRepo
}

// New wires a Hub against one session store.
func New(store *session.Store, gw Gateway, provider Provider) *Hub {
	// concurrent refreshes of the same collection share one fetch
	group := &singleflight.Group{}

	return &Hub{
		store:          store,
		liveCandidates: &liveCandidateRepo{store: store, gw: gw, group: group},
		liveRoles:      &liveRoleRepo{store: store, gw: gw, group: group},
		liveMatches:    &liveMatchRepo{store: store, gw: gw, group: group},
		liveOffers:     &liveOfferRepo{store: store, gw: gw, group: group},
		demoCandidates: &demoCandidateRepo{store: store, provider: provider},
		demoRoles:      &demoRoleRepo{store: store, provider: provider},
		demoMatches:    &demoMatchRepo{store: store, provider: provider},
		demoOffers:     &demoOfferRepo{store: store, provider: provider},
	}
}

// Candidates returns the repository matching the session's current mode.
func (h *Hub) Candidates() CandidateRepository {
	if h.store.FallbackMode() {
		return h.demoCandidates
	}
	return h.liveCandidates
}

// Roles returns the repository matching the session's current mode.
func (h *Hub) Roles() RoleRepository {
	if h.store.FallbackMode() {
		return h.demoRoles
	}
	return h.liveRoles
}

// Matches returns the repository matching the session's current mode.
func (h *Hub) Matches() MatchRepository {
	if h.store.FallbackMode() {
		return h.demoMatches
	}
	return h.liveMatches
}

// Offers returns the repository matching the session's current mode.
func (h *Hub) Offers() OfferRepository {
	if h.store.FallbackMode() {
		return h.demoOffers
	}
	return h.liveOffers
}

// Store exposes the underlying session for read views.
func (h *Hub) Store() *session.Store {
	return h.store
}
