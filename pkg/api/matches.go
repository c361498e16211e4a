package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hirewatch/hirewatch/pkg/hiring"
)

// MatchFilter narrows a match listing. Zero values mean "no constraint".
type MatchFilter struct {
	CandidateID string
	RoleID      string
	MinScore    *float64
	Status      string
}

func (f MatchFilter) query() url.Values {
	q := url.Values{}
	if f.CandidateID != "" {
		q.Set("candidate_id", f.CandidateID)
	}
	if f.RoleID != "" {
		q.Set("role_id", f.RoleID)
	}
	if f.MinScore != nil {
		q.Set("min_score", strconv.FormatFloat(*f.MinScore, 'f', -1, 64))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return q
}

// ListMatches fetches matches, optionally filtered.
func (c *Client) ListMatches(ctx context.Context, filter MatchFilter) ([]hiring.Match, error) {
	var out []hiring.Match
	err := c.do(ctx, request{op: "matches.list", method: http.MethodGet, path: "/matches/", query: filter.query()}, &out)
	return out, err
}

// GetMatch fetches one match with its candidate and role embedded.
func (c *Client) GetMatch(ctx context.Context, id string) (*hiring.MatchDetails, error) {
	var out hiring.MatchDetails
	err := c.do(ctx, request{op: "matches.get", method: http.MethodGet, path: "/matches/" + id}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcessMatches asks the backend to score candidates against roles. Empty
// slices mean "all". The call returns as soon as the job is accepted; new
// matches only show up on a later list call.
func (c *Client) ProcessMatches(ctx context.Context, candidateIDs, roleIDs []string) (string, error) {
	query := url.Values{}
	for _, id := range candidateIDs {
		query.Add("candidate_ids", id)
	}
	for _, id := range roleIDs {
		query.Add("role_ids", id)
	}

	raw, err := c.doRaw(ctx, request{
		op:     "matches.process",
		method: http.MethodPost,
		path:   "/matches/process",
		query:  query,
	})
	if err != nil {
		return "", err
	}
	return ackMessage(raw), nil
}

// RegenerateExplanation asks the backend to rewrite a match's explanation
// and returns the updated match.
func (c *Client) RegenerateExplanation(ctx context.Context, id string) (*hiring.Match, error) {
	var out hiring.Match
	err := c.do(ctx, request{
		op:     "matches.regenerate",
		method: http.MethodPost,
		path:   "/matches/" + id + "/regenerate-explanation",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
