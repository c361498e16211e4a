package hiring

import (
	"bytes"
	"fmt"
	"time"
)

// Placeholder names shown when a match or offer references an entity
// that is missing from the current session.
const (
	UnknownCandidate = "Unknown candidate"
	UnknownRole      = "Unknown role"
)

// Candidate is a parsed resume profile as served by the backend.
type Candidate struct {
	ID                string             `json:"_id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone,omitempty"`
	Skills            []string           `json:"skills"`
	Experience        string             `json:"experience,omitempty"`
	Education         string             `json:"education,omitempty"`
	Certifications    []string           `json:"certifications,omitempty"`
	CurrentCTC        float64            `json:"current_ctc,omitempty"`
	ExpectedCTC       float64            `json:"expected_ctc,omitempty"`
	NoticePeriod      int                `json:"notice_period,omitempty"`
	Location          string             `json:"location,omitempty"`
	RemotePreference  string             `json:"remote_preference,omitempty"`
	InterviewScores   map[string]float64 `json:"interview_scores,omitempty"`
	InterviewFeedback string             `json:"interview_feedback,omitempty"`
	ResumePath        string             `json:"resume_path,omitempty"`
	CreatedAt         Timestamp          `json:"created_at,omitempty"`
	UpdatedAt         Timestamp          `json:"updated_at,omitempty"`
}

// SalaryRange is the advertised salary band for a role.
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Role is an open (or soft-deleted) position.
type Role struct {
	ID                      string       `json:"_id"`
	Title                   string       `json:"title"`
	Department              string       `json:"department"`
	Description             string       `json:"description,omitempty"`
	RequiredSkills          []string     `json:"required_skills"`
	PreferredSkills         []string     `json:"preferred_skills,omitempty"`
	ExperienceRequired      string       `json:"experience_required,omitempty"`
	EducationRequired       string       `json:"education_required,omitempty"`
	CertificationsRequired  []string     `json:"certifications_required,omitempty"`
	SalaryRange             *SalaryRange `json:"salary_range,omitempty"`
	Location                string       `json:"location,omitempty"`
	RemoteOption            string       `json:"remote_option,omitempty"`
	TeamSize                int          `json:"team_size,omitempty"`
	HiringManager           string       `json:"hiring_manager,omitempty"`
	IsActive                bool         `json:"is_active"`
	CreatedAt               Timestamp    `json:"created_at,omitempty"`
	UpdatedAt               Timestamp    `json:"updated_at,omitempty"`
}

// SkillMatch splits a role's required skills into the ones the candidate
// has and the ones they lack.
type SkillMatch struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// Match scores one candidate against one role. CandidateID and RoleID are
// weak references: the entities may be absent from the session, in which
// case views fall back to the Unknown* placeholders.
type Match struct {
	ID          string     `json:"_id"`
	CandidateID string     `json:"candidate_id"`
	RoleID      string     `json:"role_id"`
	MatchScore  float64    `json:"match_score"`
	SkillMatch  SkillMatch `json:"skill_match"`
	Explanation string     `json:"explanation,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   Timestamp  `json:"created_at,omitempty"`
	UpdatedAt   Timestamp  `json:"updated_at,omitempty"`
}

// MatchDetails is the single-match view with the referenced candidate and
// role embedded by the backend.
type MatchDetails struct {
	Match
	Candidate *Candidate `json:"candidate,omitempty"`
	Role      *Role      `json:"role,omitempty"`
}

// OfferPackage is the compensation package attached to an offer.
type OfferPackage struct {
	BaseSalary float64  `json:"base_salary"`
	Bonus      float64  `json:"bonus"`
	Equity     string   `json:"equity,omitempty"`
	Benefits   []string `json:"benefits,omitempty"`
	TotalCTC   float64  `json:"total_ctc"`
	StartDate  string   `json:"start_date,omitempty"`
	Remote     string   `json:"remote,omitempty"`
}

// Offer is a generated offer recommendation for a match.
type Offer struct {
	ID          string       `json:"_id"`
	CandidateID string       `json:"candidate_id"`
	RoleID      string       `json:"role_id"`
	MatchID     string       `json:"match_id,omitempty"`
	MatchScore  float64      `json:"match_score"`
	Package     OfferPackage `json:"offer"`
	Explanation string       `json:"explanation,omitempty"`
	Status      string       `json:"status"`
	CreatedAt   Timestamp    `json:"created_at,omitempty"`
	UpdatedAt   Timestamp    `json:"updated_at,omitempty"`
}

// OfferDetails is the single-offer view with candidate and role embedded.
type OfferDetails struct {
	Offer
	Candidate *Candidate `json:"candidate,omitempty"`
	Role      *Role      `json:"role,omitempty"`
}

// RecomputeTotal restores the package invariant total_ctc = base_salary + bonus.
// Call it after any client-side package edit.
func (p *OfferPackage) RecomputeTotal() {
	p.TotalCTC = p.BaseSalary + p.Bonus
}

// timestamp layouts tried in order. Some backends emit zone-less ISO
// strings (datetime.isoformat), which RFC 3339 parsing rejects.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a time.Time that unmarshals both RFC 3339 and zone-less
// ISO strings, and marshals back as RFC 3339 UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// Now returns the current instant as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now().UTC()}
}
