package repo

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/session"
)

// Live repositories are server-authoritative: every mutation goes to the
// backend first and the store only ever holds what the server returned.

type liveCandidateRepo struct {
	store *session.Store
	gw    Gateway
	group *singleflight.Group
}

func (r *liveCandidateRepo) Refresh(ctx context.Context) ([]hiring.Candidate, error) {
	v, err, _ := r.group.Do(string(session.Candidates), func() (any, error) {
		list, err := r.gw.ListCandidates(ctx)
		if err != nil {
			return nil, err
		}
		r.store.ReplaceCandidates(list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]hiring.Candidate), nil
}

func (r *liveCandidateRepo) Get(ctx context.Context, id string) (*hiring.Candidate, error) {
	return r.gw.GetCandidate(ctx, id)
}

type liveRoleRepo struct {
	store *session.Store
	gw    Gateway
	group *singleflight.Group
}

func (r *liveRoleRepo) Refresh(ctx context.Context) ([]hiring.Role, error) {
	v, err, _ := r.group.Do(string(session.Roles), func() (any, error) {
		list, err := r.gw.ListRoles(ctx, false)
		if err != nil {
			return nil, err
		}
		r.store.ReplaceRoles(list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]hiring.Role), nil
}

func (r *liveRoleRepo) Create(ctx context.Context, in hiring.RoleInput) (*hiring.Role, error) {
	if err := in.Validate(); err != nil {
		return nil, &api.Error{Kind: api.KindBadRequest, Op: "roles.create", Err: err}
	}
	created, err := r.gw.CreateRole(ctx, in)
	if err != nil {
		return nil, err
	}
	r.store.AppendRole(*created)
	return created, nil
}

func (r *liveRoleRepo) Update(ctx context.Context, id string, patch hiring.RolePatch) (*hiring.Role, error) {
	if err := patch.Validate(); err != nil {
		return nil, &api.Error{Kind: api.KindBadRequest, Op: "roles.update", Err: err}
	}
	updated, err := r.gw.UpdateRole(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !r.store.PutRole(*updated) {
		r.store.AppendRole(*updated)
	}
	return updated, nil
}

func (r *liveRoleRepo) Delete(ctx context.Context, id string) error {
	if err := r.gw.DeleteRole(ctx, id); err != nil {
		return err
	}
	if role, ok := r.store.Role(id); ok {
		role.IsActive = false
		role.UpdatedAt = hiring.Now()
		r.store.PutRole(role)
	}
	return nil
}

type liveMatchRepo struct {
	store *session.Store
	gw    Gateway
	group *singleflight.Group
}

func (r *liveMatchRepo) Refresh(ctx context.Context) ([]hiring.Match, error) {
	v, err, _ := r.group.Do(string(session.Matches), func() (any, error) {
		list, err := r.gw.ListMatches(ctx, api.MatchFilter{})
		if err != nil {
			return nil, err
		}
		r.store.ReplaceMatches(list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]hiring.Match), nil
}

func (r *liveMatchRepo) Details(ctx context.Context, id string) (*hiring.MatchDetails, error) {
	return r.gw.GetMatch(ctx, id)
}

func (r *liveMatchRepo) RegenerateExplanation(ctx context.Context, id string) (*hiring.Match, error) {
	updated, err := r.gw.RegenerateExplanation(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store.PutMatch(*updated)
	return updated, nil
}

type liveOfferRepo struct {
	store *session.Store
	gw    Gateway
	group *singleflight.Group
}

func (r *liveOfferRepo) Refresh(ctx context.Context) ([]hiring.Offer, error) {
	v, err, _ := r.group.Do(string(session.Offers), func() (any, error) {
		list, err := r.gw.ListOffers(ctx, api.OfferFilter{})
		if err != nil {
			return nil, err
		}
		r.store.ReplaceOffers(list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]hiring.Offer), nil
}

func (r *liveOfferRepo) Details(ctx context.Context, id string) (*hiring.OfferDetails, error) {
	return r.gw.GetOffer(ctx, id)
}

// Update merges the patch into the current package and sends the full
// package upstream; the backend owns the resulting status (a package
// change while Pending Approval comes back Modified).
func (r *liveOfferRepo) Update(ctx context.Context, id string, patch hiring.OfferPackagePatch) (*hiring.Offer, error) {
	if err := patch.Validate(); err != nil {
		return nil, &api.Error{Kind: api.KindBadRequest, Op: "offers.update", Err: err}
	}

	current, ok := r.store.Offer(id)
	if !ok {
		// not in the session; fetch so the patch has a base to merge into
		details, err := r.gw.GetOffer(ctx, id)
		if err != nil {
			return nil, err
		}
		current = details.Offer
	}

	pkg := current.Package
	patch.ApplyTo(&pkg)

	updated, err := r.gw.UpdateOffer(ctx, id, pkg)
	if err != nil {
		return nil, err
	}
	r.store.PutOffer(*updated)
	return updated, nil
}

func (r *liveOfferRepo) Approve(ctx context.Context, id string) (*hiring.Offer, error) {
	updated, err := r.gw.ApproveOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store.PutOffer(*updated)
	return updated, nil
}

func (r *liveOfferRepo) Reject(ctx context.Context, id, comments string) (*hiring.Offer, error) {
	updated, err := r.gw.RejectOffer(ctx, id, comments)
	if err != nil {
		return nil, err
	}
	r.store.PutOffer(*updated)
	return updated, nil
}

func (r *liveOfferRepo) SubmitFeedback(ctx context.Context, in hiring.FeedbackInput) error {
	if err := in.Validate(); err != nil {
		return &api.Error{Kind: api.KindBadRequest, Op: "offers.feedback", Err: err}
	}
	return r.gw.SubmitFeedback(ctx, in)
}
