package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/validate"
)

type ProjectStatus string

const (
	ProjectUpcoming  ProjectStatus = "upcoming"
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
)

// ValidProjectStatus reports whether s names a known project status.
func ValidProjectStatus(s string) bool {
	switch ProjectStatus(s) {
	case ProjectUpcoming, ProjectOngoing, ProjectCompleted:
		return true
	}
	return false
}

type ImpactMetrics struct {
	Beneficiaries int64          `bson:"beneficiaries" json:"beneficiaries"`
	Volunteers    int64          `bson:"volunteers" json:"volunteers"`
	Funds         float64        `bson:"funds" json:"funds"`
	CustomMetrics map[string]any `bson:"customMetrics,omitempty" json:"customMetrics,omitempty"`
}

type Project struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title               string             `bson:"title" json:"title"`
	Slug                string             `bson:"slug" json:"slug"`
	Description         string             `bson:"description" json:"description"`
	DetailedDescription string             `bson:"detailedDescription,omitempty" json:"detailedDescription,omitempty"`
	Location            string             `bson:"location,omitempty" json:"location,omitempty"`
	StartDate           *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate             *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status              ProjectStatus      `bson:"status" json:"status"`
	Category            string             `bson:"category" json:"category"`
	ImpactMetrics       ImpactMetrics      `bson:"impactMetrics" json:"impactMetrics"`
	CoverImage          string             `bson:"coverImage" json:"coverImage"`
	Gallery             []string           `bson:"gallery,omitempty" json:"gallery,omitempty"`
	Featured            bool               `bson:"featured" json:"featured"`
	ContactEmail        string             `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone        string             `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	SocialLinks         SocialLinks        `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const DefaultProjectCover = "default-project-cover.jpg"

func (p *Project) ApplyDefaults() {
	if p.CoverImage == "" {
		p.CoverImage = DefaultProjectCover
	}
	if p.Status == "" {
		p.Status = ProjectUpcoming
	}
}

// DeriveBeforeSave applies the schema's pre-save rules. prev is the stored
// document before this save, or nil on create.
//
// When both dates are set the status is recomputed from them on every save,
// overriding whatever the caller supplied.
func (p *Project) DeriveBeforeSave(prev *Project, now time.Time) {
	if prev == nil || prev.Title != p.Title || p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.StartDate != nil && p.EndDate != nil {
		switch {
		case now.Before(*p.StartDate):
			p.Status = ProjectUpcoming
		case now.After(*p.EndDate):
			p.Status = ProjectCompleted
		default:
			p.Status = ProjectOngoing
		}
	}
}

func (p *Project) Validate() error {
	errs := validate.Collect(
		validate.Required("title", p.Title),
		validate.MaxLen("title", p.Title, 100),
		validate.Required("description", p.Description),
		validate.MaxLen("description", p.Description, 500),
		validate.Required("category", p.Category),
		validate.OneOf("status", string(p.Status),
			string(ProjectUpcoming), string(ProjectOngoing), string(ProjectCompleted)),
	)
	if p.ContactEmail != "" {
		if e := validate.Email("contactEmail", p.ContactEmail); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs.OrNil()
}
