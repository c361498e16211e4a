package demo

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hirewatch/hirewatch/pkg/hiring"
)

// The synthesizers below stand in for the backend workflows when the
// session runs on demo data. They produce the same shapes the real jobs
// would, derived deterministically from the current collections (ids
// excepted).

// CandidatesFromUploads builds one candidate per uploaded file, the way
// the backend parser acknowledges uploads.
func (p *Provider) CandidatesFromUploads(filenames []string) []hiring.Candidate {
	out := make([]hiring.Candidate, 0, len(filenames))
	for i, name := range filenames {
		out = append(out, hiring.Candidate{
			ID:         uuid.NewString(),
			Name:       "Candidate from " + filepath.Base(name),
			Email:      fmt.Sprintf("candidate%d@example.com", i+1),
			Skills:     []string{"JavaScript", "Python", "React"},
			Experience: "2-5 years",
			Education:  "Bachelor's Degree",
			Location:   "Remote",
			CreatedAt:  hiring.Now(),
		})
	}
	return out
}

// MatchesFor scores every candidate against every active role on
// required-skill overlap. Inactive roles never match, even when passed in
// explicitly.
func (p *Provider) MatchesFor(candidates []hiring.Candidate, roles []hiring.Role) []hiring.Match {
	active := make([]hiring.Role, 0, len(roles))
	for _, r := range roles {
		if r.IsActive {
			active = append(active, r)
		}
	}

	out := make([]hiring.Match, 0, len(candidates)*len(active))
	for _, c := range candidates {
		for _, r := range active {
			score, matched, missing := OverlapScore(c.Skills, r.RequiredSkills)
			out = append(out, hiring.Match{
				ID:          uuid.NewString(),
				CandidateID: c.ID,
				RoleID:      r.ID,
				MatchScore:  score,
				SkillMatch:  hiring.SkillMatch{Matched: matched, Missing: missing},
				Explanation: fmt.Sprintf("%s matches %d of %d required skills for %s", c.Name, len(matched), len(r.RequiredSkills), r.Title),
				Status:      hiring.MatchStatusForScore(score),
				CreatedAt:   hiring.Now(),
			})
		}
	}
	return out
}

// OffersFor drafts one offer per match, seeding the package from the
// role's salary band when one is known.
func (p *Provider) OffersFor(matches []hiring.Match, roles []hiring.Role) []hiring.Offer {
	out := make([]hiring.Offer, 0, len(matches))
	for i, m := range matches {
		base := 90000 + float64(i)*10000
		if r := roleByID(roles, m.RoleID); r != nil && r.SalaryRange != nil {
			base = (r.SalaryRange.Min + r.SalaryRange.Max) / 2
		}
		pkg := hiring.OfferPackage{
			BaseSalary: base,
			Bonus:      math.Round(base * 0.1),
			Equity:     fmt.Sprintf("%d%%", 1+i),
			Benefits:   []string{"Health insurance", "Remote stipend"},
			StartDate:  "2025-11-01",
			Remote:     "Hybrid",
		}
		pkg.RecomputeTotal()
		out = append(out, hiring.Offer{
			ID:          uuid.NewString(),
			CandidateID: m.CandidateID,
			RoleID:      m.RoleID,
			MatchID:     m.ID,
			MatchScore:  m.MatchScore,
			Package:     pkg,
			Explanation: fmt.Sprintf("Competitive offer based on the %.0f%% match score", m.MatchScore),
			Status:      hiring.OfferStatusPending,
			CreatedAt:   hiring.Now(),
		})
	}
	return out
}

// Explanation returns the canned replacement used for demo-mode
// explanation regeneration.
func (p *Provider) Explanation(m hiring.Match) string {
	return fmt.Sprintf("Regenerated: candidate covers %d of %d required skills, score %.0f%%",
		len(m.SkillMatch.Matched), len(m.SkillMatch.Matched)+len(m.SkillMatch.Missing), m.MatchScore)
}

// OverlapScore rates candidate skills against a role's required list,
// case-insensitively. The score is the covered fraction scaled to 0-100.
func OverlapScore(candidateSkills, requiredSkills []string) (score float64, matched, missing []string) {
	have := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	matched = []string{}
	missing = []string{}
	for _, s := range requiredSkills {
		if have[strings.ToLower(strings.TrimSpace(s))] {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	if len(requiredSkills) == 0 {
		return 0, matched, missing
	}
	score = math.Round(100 * float64(len(matched)) / float64(len(requiredSkills)))
	return score, matched, missing
}

func roleByID(roles []hiring.Role, id string) *hiring.Role {
	for i := range roles {
		if roles[i].ID == id {
			return &roles[i]
		}
	}
	return nil
}
