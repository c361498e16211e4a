package hiring

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RoleInput carries the caller-supplied fields for creating a role.
type RoleInput struct {
	Title                  string       `json:"title" validate:"required,min=1"`
	Department             string       `json:"department" validate:"required,min=1"`
	Description            string       `json:"description,omitempty"`
	RequiredSkills         []string     `json:"required_skills" validate:"required,min=1,dive,min=1"`
	PreferredSkills        []string     `json:"preferred_skills,omitempty"`
	ExperienceRequired     string       `json:"experience_required,omitempty"`
	EducationRequired      string       `json:"education_required,omitempty"`
	CertificationsRequired []string     `json:"certifications_required,omitempty"`
	SalaryRange            *SalaryRange `json:"salary_range,omitempty"`
	Location               string       `json:"location,omitempty"`
	RemoteOption           string       `json:"remote_option,omitempty"`
	TeamSize               int          `json:"team_size,omitempty" validate:"gte=0"`
	HiringManager          string       `json:"hiring_manager,omitempty"`
}

// Validate checks the input using the validator tags plus the salary band rule.
func (in *RoleInput) Validate() error {
	if err := validator.New().Struct(in); err != nil {
		return err
	}
	if in.SalaryRange != nil && in.SalaryRange.Min > in.SalaryRange.Max {
		return fmt.Errorf("salary_range: min %.0f exceeds max %.0f", in.SalaryRange.Min, in.SalaryRange.Max)
	}
	return nil
}

// RolePatch is a partial role update. Nil fields are left untouched.
type RolePatch struct {
	Title                  *string      `json:"title,omitempty" validate:"omitempty,min=1"`
	Department             *string      `json:"department,omitempty" validate:"omitempty,min=1"`
	Description            *string      `json:"description,omitempty"`
	RequiredSkills         []string     `json:"required_skills,omitempty"`
	PreferredSkills        []string     `json:"preferred_skills,omitempty"`
	ExperienceRequired     *string      `json:"experience_required,omitempty"`
	EducationRequired      *string      `json:"education_required,omitempty"`
	CertificationsRequired []string     `json:"certifications_required,omitempty"`
	SalaryRange            *SalaryRange `json:"salary_range,omitempty"`
	Location               *string      `json:"location,omitempty"`
	RemoteOption           *string      `json:"remote_option,omitempty"`
	TeamSize               *int         `json:"team_size,omitempty" validate:"omitempty,gte=0"`
	HiringManager          *string      `json:"hiring_manager,omitempty"`
	IsActive               *bool        `json:"is_active,omitempty"`
}

func (p *RolePatch) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return err
	}
	if p.SalaryRange != nil && p.SalaryRange.Min > p.SalaryRange.Max {
		return fmt.Errorf("salary_range: min %.0f exceeds max %.0f", p.SalaryRange.Min, p.SalaryRange.Max)
	}
	return nil
}

// ApplyTo merges the set fields of the patch into a role.
func (p *RolePatch) ApplyTo(r *Role) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Department != nil {
		r.Department = *p.Department
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.RequiredSkills != nil {
		r.RequiredSkills = p.RequiredSkills
	}
	if p.PreferredSkills != nil {
		r.PreferredSkills = p.PreferredSkills
	}
	if p.ExperienceRequired != nil {
		r.ExperienceRequired = *p.ExperienceRequired
	}
	if p.EducationRequired != nil {
		r.EducationRequired = *p.EducationRequired
	}
	if p.CertificationsRequired != nil {
		r.CertificationsRequired = p.CertificationsRequired
	}
	if p.SalaryRange != nil {
		rangeCopy := *p.SalaryRange
		r.SalaryRange = &rangeCopy
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.RemoteOption != nil {
		r.RemoteOption = *p.RemoteOption
	}
	if p.TeamSize != nil {
		r.TeamSize = *p.TeamSize
	}
	if p.HiringManager != nil {
		r.HiringManager = *p.HiringManager
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
}

// OfferPackagePatch is a partial compensation edit. Nil fields keep the
// current value; callers recompute total_ctc after applying.
type OfferPackagePatch struct {
	BaseSalary *float64 `json:"base_salary,omitempty" validate:"omitempty,gte=0"`
	Bonus      *float64 `json:"bonus,omitempty" validate:"omitempty,gte=0"`
	Equity     *string  `json:"equity,omitempty"`
	Benefits   []string `json:"benefits,omitempty"`
	StartDate  *string  `json:"start_date,omitempty"`
	Remote     *string  `json:"remote,omitempty"`
}

func (p *OfferPackagePatch) Validate() error {
	return validator.New().Struct(p)
}

// Empty reports whether the patch changes nothing.
func (p *OfferPackagePatch) Empty() bool {
	return p.BaseSalary == nil && p.Bonus == nil && p.Equity == nil &&
		p.Benefits == nil && p.StartDate == nil && p.Remote == nil
}

// ApplyTo merges the set fields into a package and restores the total invariant.
func (p *OfferPackagePatch) ApplyTo(pkg *OfferPackage) {
	if p.BaseSalary != nil {
		pkg.BaseSalary = *p.BaseSalary
	}
	if p.Bonus != nil {
		pkg.Bonus = *p.Bonus
	}
	if p.Equity != nil {
		pkg.Equity = *p.Equity
	}
	if p.Benefits != nil {
		pkg.Benefits = p.Benefits
	}
	if p.StartDate != nil {
		pkg.StartDate = *p.StartDate
	}
	if p.Remote != nil {
		pkg.Remote = *p.Remote
	}
	pkg.RecomputeTotal()
}

// Feedback entity and action values accepted by the backend.
const (
	FeedbackEntityMatch = "match"
	FeedbackEntityOffer = "offer"

	FeedbackApproval     = "approval"
	FeedbackRejection    = "rejection"
	FeedbackModification = "modification"
)

// FeedbackInput is a feedback submission for a match or an offer.
type FeedbackInput struct {
	EntityType    string         `json:"entity_type" validate:"required,oneof=match offer"`
	EntityID      string         `json:"entity_id" validate:"required"`
	FeedbackType  string         `json:"feedback_type" validate:"required,oneof=approval rejection modification"`
	Comments      string         `json:"comments,omitempty"`
	Modifications map[string]any `json:"modifications,omitempty"`
}

func (in *FeedbackInput) Validate() error {
	return validator.New().Struct(in)
}
