package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/whttp"
)

// OfferFilter narrows an offer listing. Zero values mean "no constraint".
type OfferFilter struct {
	CandidateID string
	RoleID      string
	Status      string
}

func (f OfferFilter) query() url.Values {
	q := url.Values{}
	if f.CandidateID != "" {
		q.Set("candidate_id", f.CandidateID)
	}
	if f.RoleID != "" {
		q.Set("role_id", f.RoleID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return q
}

// offerUpdate is the wire shape of an offer update. The backend merges it
// and decides the resulting status itself (a package change while Pending
// Approval comes back as Modified).
type offerUpdate struct {
	Package     *hiring.OfferPackage `json:"offer,omitempty"`
	Explanation string               `json:"explanation,omitempty"`
}

// ListOffers fetches offers, optionally filtered.
func (c *Client) ListOffers(ctx context.Context, filter OfferFilter) ([]hiring.Offer, error) {
	var out []hiring.Offer
	err := c.do(ctx, request{op: "offers.list", method: http.MethodGet, path: "/offers/", query: filter.query()}, &out)
	return out, err
}

// GetOffer fetches one offer with its candidate and role embedded.
func (c *Client) GetOffer(ctx context.Context, id string) (*hiring.OfferDetails, error) {
	var out hiring.OfferDetails
	err := c.do(ctx, request{op: "offers.get", method: http.MethodGet, path: "/offers/" + id}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOffer replaces an offer's package and returns the server's
// representation, whose status is authoritative.
func (c *Client) UpdateOffer(ctx context.Context, id string, pkg hiring.OfferPackage) (*hiring.Offer, error) {
	body, contentType, err := whttp.JSONBody(offerUpdate{Package: &pkg})
	if err != nil {
		return nil, &Error{Kind: KindBadRequest, Op: "offers.update", Err: err}
	}
	var out hiring.Offer
	if err := c.do(ctx, request{
		op:          "offers.update",
		method:      http.MethodPut,
		path:        "/offers/" + id,
		body:        body,
		contentType: contentType,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateOffers asks the backend to draft offers for the given matches.
// An empty slice means "all pending matches". Returns once the job is
// accepted; the offers only show up on a later list call.
func (c *Client) GenerateOffers(ctx context.Context, matchIDs []string) (string, error) {
	query := url.Values{}
	for _, id := range matchIDs {
		query.Add("match_ids", id)
	}

	raw, err := c.doRaw(ctx, request{
		op:     "offers.generate",
		method: http.MethodPost,
		path:   "/offers/generate",
		query:  query,
	})
	if err != nil {
		return "", err
	}
	return ackMessage(raw), nil
}

// ApproveOffer marks an offer approved and returns the updated offer.
func (c *Client) ApproveOffer(ctx context.Context, id string) (*hiring.Offer, error) {
	var out hiring.Offer
	err := c.do(ctx, request{
		op:     "offers.approve",
		method: http.MethodPost,
		path:   "/offers/" + id + "/approve",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectOffer marks an offer rejected, recording the reviewer's comments.
func (c *Client) RejectOffer(ctx context.Context, id, comments string) (*hiring.Offer, error) {
	query := url.Values{}
	if comments != "" {
		query.Set("comments", comments)
	}
	var out hiring.Offer
	err := c.do(ctx, request{
		op:     "offers.reject",
		method: http.MethodPost,
		path:   "/offers/" + id + "/reject",
		query:  query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitFeedback records reviewer feedback for a match or an offer.
func (c *Client) SubmitFeedback(ctx context.Context, in hiring.FeedbackInput) error {
	body, contentType, err := whttp.JSONBody(in)
	if err != nil {
		return &Error{Kind: KindBadRequest, Op: "offers.feedback", Err: err}
	}
	return c.do(ctx, request{
		op:          "offers.feedback",
		method:      http.MethodPost,
		path:        "/offers/feedback",
		body:        body,
		contentType: contentType,
	}, nil)
}
