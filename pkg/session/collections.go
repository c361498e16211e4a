package session

import (
	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/hiring"
)

// Candidates returns the session's candidates in display order.
func (s *Store) Candidates() []hiring.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]hiring.Candidate(nil), s.candidates...)
}

// Roles returns every role, including soft-deleted ones.
func (s *Store) Roles() []hiring.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]hiring.Role(nil), s.roles...)
}

// ActiveRoles returns only roles still open for matching.
func (s *Store) ActiveRoles() []hiring.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]hiring.Role, 0, len(s.roles))
	for _, r := range s.roles {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

// Matches returns the session's matches in display order.
func (s *Store) Matches() []hiring.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]hiring.Match(nil), s.matches...)
}

// Offers returns the session's offers in display order.
func (s *Store) Offers() []hiring.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]hiring.Offer(nil), s.offers...)
}

// MatchesWhere filters matches locally with the same semantics the
// backend's list filters have.
func (s *Store) MatchesWhere(f api.MatchFilter) []hiring.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []hiring.Match{}
	for _, m := range s.matches {
		if f.CandidateID != "" && m.CandidateID != f.CandidateID {
			continue
		}
		if f.RoleID != "" && m.RoleID != f.RoleID {
			continue
		}
		if f.MinScore != nil && m.MatchScore < *f.MinScore {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		out = append(out, m)
	}
	return out
}

// OffersWhere filters offers locally.
func (s *Store) OffersWhere(f api.OfferFilter) []hiring.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []hiring.Offer{}
	for _, o := range s.offers {
		if f.CandidateID != "" && o.CandidateID != f.CandidateID {
			continue
		}
		if f.RoleID != "" && o.RoleID != f.RoleID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Candidate looks up a candidate by id.
func (s *Store) Candidate(id string) (hiring.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.candidates {
		if c.ID == id {
			return c, true
		}
	}
	return hiring.Candidate{}, false
}

// Role looks up a role by id, soft-deleted ones included.
func (s *Store) Role(id string) (hiring.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roles {
		if r.ID == id {
			return r, true
		}
	}
	return hiring.Role{}, false
}

// Match looks up a match by id.
func (s *Store) Match(id string) (hiring.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.matches {
		if m.ID == id {
			return m, true
		}
	}
	return hiring.Match{}, false
}

// Offer looks up an offer by id.
func (s *Store) Offer(id string) (hiring.Offer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.offers {
		if o.ID == id {
			return o, true
		}
	}
	return hiring.Offer{}, false
}

// CandidateName resolves a candidate reference for display. Dangling
// references come back as the placeholder, never an error.
func (s *Store) CandidateName(id string) string {
	if c, ok := s.Candidate(id); ok {
		return c.Name
	}
	return hiring.UnknownCandidate
}

// RoleTitle resolves a role reference for display.
func (s *Store) RoleTitle(id string) string {
	if r, ok := s.Role(id); ok {
		return r.Title
	}
	return hiring.UnknownRole
}

// ReplaceCandidates swaps the candidate collection wholesale.
func (s *Store) ReplaceCandidates(list []hiring.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append([]hiring.Candidate(nil), list...)
	s.versions[Candidates]++
}

// ReplaceRoles swaps the role collection wholesale.
func (s *Store) ReplaceRoles(list []hiring.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles = append([]hiring.Role(nil), list...)
	s.versions[Roles]++
}

// ReplaceMatches swaps the match collection wholesale.
func (s *Store) ReplaceMatches(list []hiring.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append([]hiring.Match(nil), list...)
	s.versions[Matches]++
}

// ReplaceOffers swaps the offer collection wholesale.
func (s *Store) ReplaceOffers(list []hiring.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers = append([]hiring.Offer(nil), list...)
	s.versions[Offers]++
}

// PutOffer replaces one offer in place, keeping display order. Returns
// false when the id is not in the session.
func (s *Store) PutOffer(o hiring.Offer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.offers {
		if s.offers[i].ID == o.ID {
			s.offers[i] = o
			s.versions[Offers]++
			return true
		}
	}
	return false
}

// PutRole replaces one role in place, keeping display order.
func (s *Store) PutRole(r hiring.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.roles {
		if s.roles[i].ID == r.ID {
			s.roles[i] = r
			s.versions[Roles]++
			return true
		}
	}
	return false
}

// PutMatch replaces one match in place, keeping display order.
func (s *Store) PutMatch(m hiring.Match) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.matches {
		if s.matches[i].ID == m.ID {
			s.matches[i] = m
			s.versions[Matches]++
			return true
		}
	}
	return false
}

// AppendRole adds a role to the end of the collection.
func (s *Store) AppendRole(r hiring.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles = append(s.roles, r)
	s.versions[Roles]++
}

// Snapshot is the summary view served to status endpoints.
type Snapshot struct {
	Loading      bool              `json:"loading"`
	FallbackMode bool              `json:"fallback_mode"`
	Error        string            `json:"error,omitempty"`
	Counts       map[string]int    `json:"counts"`
	Versions     map[string]uint64 `json:"versions"`
}

// Snapshot captures the session's shape without its contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Loading:      s.loading,
		FallbackMode: s.fallback,
		Counts: map[string]int{
			string(Candidates): len(s.candidates),
			string(Roles):      len(s.roles),
			string(Matches):    len(s.matches),
			string(Offers):     len(s.offers),
		},
		Versions: map[string]uint64{},
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	for name, v := range s.versions {
		snap.Versions[string(name)] = v
	}
	return snap
}
