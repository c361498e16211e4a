package workflow

import (
	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/session"
)

// Selection and merge rules for demo-mode synthesis. They mirror the
// backend jobs: matching crosses candidates with active roles, offer
// generation defaults to threshold-clearing Matched rows, and both jobs
// upsert keyed by (candidate, role) rather than blindly appending.

func selectCandidates(all []hiring.Candidate, ids []string) []hiring.Candidate {
	if len(ids) == 0 {
		return all
	}
	want := idSet(ids)
	out := make([]hiring.Candidate, 0, len(ids))
	for _, c := range all {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func selectRoles(all []hiring.Role, ids []string) []hiring.Role {
	if len(ids) == 0 {
		return all
	}
	want := idSet(ids)
	out := make([]hiring.Role, 0, len(ids))
	for _, r := range all {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// selectMatches picks the offer-generation inputs: the requested ids, or
// every Matched row at or above the score threshold when none are given.
// Rows with dangling candidate or role references are skipped either way.
func selectMatches(store *session.Store, ids []string) []hiring.Match {
	all := store.Matches()
	var picked []hiring.Match
	if len(ids) > 0 {
		want := idSet(ids)
		for _, m := range all {
			if want[m.ID] {
				picked = append(picked, m)
			}
		}
	} else {
		for _, m := range all {
			if m.MatchScore >= hiring.MatchScoreThreshold && m.Status == hiring.MatchStatusMatched {
				picked = append(picked, m)
			}
		}
	}

	out := picked[:0]
	for _, m := range picked {
		if _, ok := store.Candidate(m.CandidateID); !ok {
			continue
		}
		if _, ok := store.Role(m.RoleID); !ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// upsertMatches merges fresh scoring results into the collection. An
// existing (candidate, role) pair keeps its id and creation time and takes
// the new score, skills, explanation and status; unseen pairs append.
func upsertMatches(existing, fresh []hiring.Match) []hiring.Match {
	index := make(map[string]int, len(existing))
	for i, m := range existing {
		index[pairKey(m.CandidateID, m.RoleID)] = i
	}
	out := existing
	for _, m := range fresh {
		if i, ok := index[pairKey(m.CandidateID, m.RoleID)]; ok {
			kept := out[i]
			kept.MatchScore = m.MatchScore
			kept.SkillMatch = m.SkillMatch
			kept.Explanation = m.Explanation
			kept.Status = m.Status
			kept.UpdatedAt = hiring.Now()
			out[i] = kept
			continue
		}
		out = append(out, m)
	}
	return out
}

// upsertOffers works like upsertMatches. Regeneration resets an existing
// offer to the fresh draft, status included, matching the backend job.
func upsertOffers(existing, fresh []hiring.Offer) []hiring.Offer {
	index := make(map[string]int, len(existing))
	for i, o := range existing {
		index[pairKey(o.CandidateID, o.RoleID)] = i
	}
	out := existing
	for _, o := range fresh {
		if i, ok := index[pairKey(o.CandidateID, o.RoleID)]; ok {
			kept := out[i]
			kept.MatchScore = o.MatchScore
			kept.Package = o.Package
			kept.Explanation = o.Explanation
			kept.Status = o.Status
			kept.UpdatedAt = hiring.Now()
			out[i] = kept
			continue
		}
		out = append(out, o)
	}
	return out
}

func pairKey(candidateID, roleID string) string {
	return candidateID + "\x00" + roleID
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
