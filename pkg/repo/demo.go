package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/session"
)

// Demo repositories mutate the session optimistically, mirroring what the
// backend would have done. Errors reuse the gateway taxonomy so callers
// handle both modes the same way.

func notFound(op, detail string) *api.Error {
	return &api.Error{Kind: api.KindNotFound, Status: 404, Op: op, Detail: detail}
}

type demoCandidateRepo struct {
	store    *session.Store
	provider Provider
}

// Refresh returns the canned collection without touching the store: demo
// data never goes stale.
func (r *demoCandidateRepo) Refresh(ctx context.Context) ([]hiring.Candidate, error) {
	return r.provider.Candidates(), nil
}

func (r *demoCandidateRepo) Get(ctx context.Context, id string) (*hiring.Candidate, error) {
	if c, ok := r.store.Candidate(id); ok {
		return &c, nil
	}
	return nil, notFound("candidates.get", "Candidate not found")
}

type demoRoleRepo struct {
	store    *session.Store
	provider Provider
}

func (r *demoRoleRepo) Refresh(ctx context.Context) ([]hiring.Role, error) {
	return r.provider.Roles(), nil
}

// Create synthesizes the id and bookkeeping fields the backend would add
// and appends the role locally. Existing roles are never touched.
func (r *demoRoleRepo) Create(ctx context.Context, in hiring.RoleInput) (*hiring.Role, error) {
	if err := in.Validate(); err != nil {
		return nil, &api.Error{Kind: api.KindBadRequest, Op: "roles.create", Err: err}
	}

	now := hiring.Now()
	role := hiring.Role{
		ID:                     uuid.NewString(),
		Title:                  in.Title,
		Department:             in.Department,
		Description:            in.Description,
		RequiredSkills:         in.RequiredSkills,
		PreferredSkills:        in.PreferredSkills,
		ExperienceRequired:     in.ExperienceRequired,
		EducationRequired:      in.EducationRequired,
		CertificationsRequired: in.CertificationsRequired,
		SalaryRange:            in.SalaryRange,
		Location:               in.Location,
		RemoteOption:           in.RemoteOption,
		TeamSize:               in.TeamSize,
		HiringManager:          in.HiringManager,
		IsActive:               true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	r.store.AppendRole(role)
	return &role, nil
}

func (r *demoRoleRepo) Update(ctx context.Context, id string, patch hiring.RolePatch) (*hiring.Role, error) {
	if err := patch.Validate(); err != nil {
		return nil, &api.Error{Kind: api.KindBadRequest, Op: "roles.update", Err: err}
	}
	role, ok := r.store.Role(id)
	if !ok {
		return nil, notFound("roles.update", "Role not found")
	}
	patch.ApplyTo(&role)
	role.UpdatedAt = hiring.Now()
	r.store.PutRole(role)
	return &role, nil
}

func (r *demoRoleRepo) Delete(ctx context.Context, id string) error {
	role, ok := r.store.Role(id)
	if !ok {
		return notFound("roles.delete", "Role not found")
	}
	role.IsActive = false
	role.UpdatedAt = hiring.Now()
	r.store.PutRole(role)
	return nil
}

type demoMatchRepo struct {
	store    *session.Store
	provider Provider
}

func (r *demoMatchRepo) Refresh(ctx context.Context) ([]hiring.Match, error) {
	return r.provider.Matches(), nil
}

// Details embeds the referenced candidate and role from the session, the
// way the backend's detail endpoint does. Dangling references stay nil
// and render as placeholders.
func (r *demoMatchRepo) Details(ctx context.Context, id string) (*hiring.MatchDetails, error) {
	m, ok := r.store.Match(id)
	if !ok {
		return nil, notFound("matches.get", "Match not found")
	}
	details := &hiring.MatchDetails{Match: m}
	if c, ok := r.store.Candidate(m.CandidateID); ok {
		details.Candidate = &c
	}
	if role, ok := r.store.Role(m.RoleID); ok {
		details.Role = &role
	}
	return details, nil
}

func (r *demoMatchRepo) RegenerateExplanation(ctx context.Context, id string) (*hiring.Match, error) {
	m, ok := r.store.Match(id)
	if !ok {
		return nil, notFound("matches.regenerate", "Match not found")
	}
	m.Explanation = r.provider.Explanation(m)
	m.UpdatedAt = hiring.Now()
	r.store.PutMatch(m)
	return &m, nil
}

type demoOfferRepo struct {
	store    *session.Store
	provider Provider
}

func (r *demoOfferRepo) Refresh(ctx context.Context) ([]hiring.Offer, error) {
	return r.provider.Offers(), nil
}

func (r *demoOfferRepo) Details(ctx context.Context, id string) (*hiring.OfferDetails, error) {
	o, ok := r.store.Offer(id)
	if !ok {
		return nil, notFound("offers.get", "Offer not found")
	}
	details := &hiring.OfferDetails{Offer: o}
	if c, ok := r.store.Candidate(o.CandidateID); ok {
		details.Candidate = &c
	}
	if role, ok := r.store.Role(o.RoleID); ok {
		details.Role = &role
	}
	return details, nil
}

// Update applies the backend's rule locally: the patch merges into the
// package, the total is recomputed, and a package change while Pending
// Approval flips the status to Modified.
func (r *demoOfferRepo) Update(ctx context.Context, id string, patch hiring.OfferPackagePatch) (*hiring.Offer, error) {
	if err := patch.Validate(); err != nil {
		return nil, &api.Error{Kind: api.KindBadRequest, Op: "offers.update", Err: err}
	}
	o, ok := r.store.Offer(id)
	if !ok {
		return nil, notFound("offers.update", "Offer not found")
	}

	patch.ApplyTo(&o.Package)
	if !patch.Empty() && o.Status == hiring.OfferStatusPending {
		o.Status = hiring.OfferStatusModified
	}
	o.UpdatedAt = hiring.Now()
	r.store.PutOffer(o)
	return &o, nil
}

func (r *demoOfferRepo) Approve(ctx context.Context, id string) (*hiring.Offer, error) {
	return r.transition(id, "offers.approve", hiring.OfferStatusApproved)
}

func (r *demoOfferRepo) Reject(ctx context.Context, id, comments string) (*hiring.Offer, error) {
	return r.transition(id, "offers.reject", hiring.OfferStatusRejected)
}

func (r *demoOfferRepo) transition(id, op, to string) (*hiring.Offer, error) {
	o, ok := r.store.Offer(id)
	if !ok {
		return nil, notFound(op, "Offer not found")
	}
	if o.Status == to {
		// repeating a decision is a no-op, not an error
		return &o, nil
	}
	if !hiring.CanTransitionOffer(o.Status, to) {
		return nil, &api.Error{
			Kind:   api.KindBadRequest,
			Status: 400,
			Op:     op,
			Detail: fmt.Sprintf("Offer is %s and cannot become %s", o.Status, to),
		}
	}
	o.Status = to
	o.UpdatedAt = hiring.Now()
	r.store.PutOffer(o)
	return &o, nil
}

// SubmitFeedback validates and accepts the feedback. Demo sessions keep
// no feedback log, so accepted feedback simply disappears.
func (r *demoOfferRepo) SubmitFeedback(ctx context.Context, in hiring.FeedbackInput) error {
	if err := in.Validate(); err != nil {
		return &api.Error{Kind: api.KindBadRequest, Op: "offers.feedback", Err: err}
	}
	return nil
}
