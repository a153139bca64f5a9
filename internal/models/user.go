package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/validate"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

type SocialLinks struct {
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role        Role               `bson:"role" json:"role"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	Bio         string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Position    string             `bson:"position,omitempty" json:"position,omitempty"`
	SocialLinks SocialLinks        `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const DefaultAvatar = "default-avatar.jpg"

// ApplyDefaults fills zero-valued fields that carry schema defaults.
func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Avatar == "" {
		u.Avatar = DefaultAvatar
	}
}

func (u *User) Validate() error {
	return validate.Collect(
		validate.Required("name", u.Name),
		validate.MaxLen("name", u.Name, 50),
		validate.Email("email", u.Email),
		validate.OneOf("role", string(u.Role), string(RoleUser), string(RoleEditor), string(RoleAdmin)),
		validate.MaxLen("bio", u.Bio, 500),
		validate.MaxLen("position", u.Position, 100),
	).OrNil()
}

// ValidatePassword checks a plaintext password before hashing.
func ValidatePassword(p string) error {
	return validate.Collect(
		validate.Required("password", p),
		validate.MinLen("password", p, 6),
	).OrNil()
}
