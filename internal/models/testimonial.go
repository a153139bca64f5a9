package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/validate"
)

type Testimonial struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Position       string              `bson:"position,omitempty" json:"position,omitempty"`
	Organization   string              `bson:"organization,omitempty" json:"organization,omitempty"`
	Avatar         string              `bson:"avatar" json:"avatar"`
	Content        string              `bson:"content" json:"content"`
	Rating         *int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Featured       bool                `bson:"featured" json:"featured"`
	ProjectRelated *primitive.ObjectID `bson:"projectRelated,omitempty" json:"projectRelated,omitempty"`
	Verified       bool                `bson:"verified" json:"verified"`
	Location       string              `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (t *Testimonial) ApplyDefaults() {
	if t.Avatar == "" {
		t.Avatar = DefaultAvatar
	}
}

func (t *Testimonial) Validate() error {
	errs := validate.Collect(
		validate.Required("name", t.Name),
		validate.MaxLen("name", t.Name, 100),
		validate.Required("content", t.Content),
		validate.MaxLen("content", t.Content, 1000),
	)
	if t.Rating != nil {
		if e := validate.Range("rating", *t.Rating, 1, 5); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs.OrNil()
}
