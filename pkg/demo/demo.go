package demo

import (
	"time"

	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/session"
)

// Provider serves the canned dataset used when the backend is unreachable,
// plus deterministic stand-ins for the backend workflows. Every accessor
// builds its result from scratch, so callers may mutate freely.
type Provider struct{}

var _ session.FallbackProvider = (*Provider)(nil)

func NewProvider() *Provider { return &Provider{} }

func seedTime(day, hour int) hiring.Timestamp {
	return hiring.Timestamp{Time: time.Date(2025, 7, day, hour, 0, 0, 0, time.UTC)}
}

func (p *Provider) Candidates() []hiring.Candidate {
	return []hiring.Candidate{
		{
			ID:         "candidate1",
			Name:       "John Doe",
			Email:      "john@example.com",
			Skills:     []string{"React", "Node.js", "TypeScript", "JavaScript"},
			Experience: "3 years",
			Education:  "Bachelor's Degree",
			Location:   "New York",
			CreatedAt:  seedTime(14, 9),
		},
		{
			ID:         "candidate2",
			Name:       "Jane Smith",
			Email:      "jane@example.com",
			Skills:     []string{"Python", "FastAPI", "Machine Learning"},
			Experience: "5 years",
			Education:  "Master's Degree",
			Location:   "San Francisco",
			CreatedAt:  seedTime(14, 10),
		},
		{
			ID:         "candidate3",
			Name:       "Priya Patel",
			Email:      "priya@example.com",
			Skills:     []string{"Python", "SQL"},
			Experience: "2 years",
			Education:  "Bachelor's Degree",
			Location:   "Remote",
			CreatedAt:  seedTime(15, 9),
		},
	}
}

func (p *Provider) Roles() []hiring.Role {
	return []hiring.Role{
		{
			ID:                 "role1",
			Title:              "Frontend Developer",
			Department:         "Engineering",
			RequiredSkills:     []string{"React", "JavaScript", "CSS"},
			PreferredSkills:    []string{"TypeScript", "Node.js"},
			ExperienceRequired: "2+ years",
			SalaryRange:        &hiring.SalaryRange{Min: 90000, Max: 120000},
			Location:           "New York",
			IsActive:           true,
			CreatedAt:          seedTime(10, 9),
		},
		{
			ID:                 "role2",
			Title:              "Backend Developer",
			Department:         "Engineering",
			RequiredSkills:     []string{"Python", "FastAPI", "PostgreSQL"},
			PreferredSkills:    []string{"Docker", "AWS"},
			ExperienceRequired: "3+ years",
			SalaryRange:        &hiring.SalaryRange{Min: 110000, Max: 140000},
			Location:           "Remote",
			IsActive:           true,
			CreatedAt:          seedTime(10, 10),
		},
		{
			// soft-deleted role kept addressable for historical matches
			ID:                 "role3",
			Title:              "Data Scientist",
			Department:         "Analytics",
			RequiredSkills:     []string{"Python", "Machine Learning", "TensorFlow"},
			PreferredSkills:    []string{"PyTorch", "SQL"},
			ExperienceRequired: "4+ years",
			SalaryRange:        &hiring.SalaryRange{Min: 130000, Max: 160000},
			Location:           "San Francisco",
			IsActive:           false,
			CreatedAt:          seedTime(10, 11),
		},
	}
}

func (p *Provider) Matches() []hiring.Match {
	return []hiring.Match{
		{
			ID:          "match1",
			CandidateID: "candidate1",
			RoleID:      "role1",
			MatchScore:  85,
			SkillMatch:  hiring.SkillMatch{Matched: []string{"React", "JavaScript"}, Missing: []string{"CSS"}},
			Explanation: "John Doe matches 2 of 3 required skills for Frontend Developer",
			Status:      hiring.MatchStatusMatched,
			CreatedAt:   seedTime(16, 9),
		},
		{
			ID:          "match2",
			CandidateID: "candidate2",
			RoleID:      "role2",
			MatchScore:  92,
			SkillMatch:  hiring.SkillMatch{Matched: []string{"Python", "FastAPI"}, Missing: []string{"PostgreSQL"}},
			Explanation: "Jane Smith matches 2 of 3 required skills for Backend Developer",
			Status:      hiring.MatchStatusMatched,
			CreatedAt:   seedTime(16, 10),
		},
		{
			ID:          "match3",
			CandidateID: "candidate3",
			RoleID:      "role3",
			MatchScore:  58,
			SkillMatch:  hiring.SkillMatch{Matched: []string{"Python"}, Missing: []string{"Machine Learning", "TensorFlow"}},
			Explanation: "Priya Patel matches 1 of 3 required skills for Data Scientist",
			Status:      hiring.MatchStatusReview,
			CreatedAt:   seedTime(16, 11),
		},
	}
}

func (p *Provider) Offers() []hiring.Offer {
	return []hiring.Offer{
		{
			ID:          "offer1",
			CandidateID: "candidate1",
			RoleID:      "role1",
			MatchID:     "match1",
			MatchScore:  85,
			Package: hiring.OfferPackage{
				BaseSalary: 100000,
				Bonus:      10000,
				Equity:     "1%",
				Benefits:   []string{"Health insurance", "Remote stipend"},
				TotalCTC:   110000,
				StartDate:  "2025-10-01",
				Remote:     "Hybrid",
			},
			Explanation: "Competitive offer based on the 85% match score",
			Status:      hiring.OfferStatusPending,
			CreatedAt:   seedTime(18, 9),
		},
		{
			ID:          "offer2",
			CandidateID: "candidate2",
			RoleID:      "role2",
			MatchID:     "match2",
			MatchScore:  92,
			Package: hiring.OfferPackage{
				BaseSalary: 120000,
				Bonus:      15000,
				Equity:     "2%",
				Benefits:   []string{"Health insurance", "Remote stipend"},
				TotalCTC:   135000,
				StartDate:  "2025-10-15",
				Remote:     "Remote",
			},
			Explanation: "Competitive offer based on the 92% match score",
			Status:      hiring.OfferStatusApproved,
			CreatedAt:   seedTime(18, 10),
		},
	}
}
