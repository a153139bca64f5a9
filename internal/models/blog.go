package models

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/validate"
)

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// wordsPerMinute is the assumed average reading speed.
const wordsPerMinute = 225

type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Summary     string             `bson:"summary" json:"summary"`
	Content     string             `bson:"content" json:"content"`
	CoverImage  string             `bson:"coverImage" json:"coverImage"`
	Author      primitive.ObjectID `bson:"author" json:"author"`
	Categories  []string           `bson:"categories" json:"categories"`
	Tags        []string           `bson:"tags" json:"tags"`
	IsFeatured  bool               `bson:"isFeatured" json:"isFeatured"`
	Status      BlogStatus         `bson:"status" json:"status"`
	ViewCount   int64              `bson:"viewCount" json:"viewCount"`
	ReadTime    int                `bson:"readTime" json:"readTime"`
	PublishedAt *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const DefaultBlogCover = "default-blog-cover.jpg"

func (b *Blog) ApplyDefaults() {
	if b.CoverImage == "" {
		b.CoverImage = DefaultBlogCover
	}
	if b.Status == "" {
		b.Status = BlogDraft
	}
}

// ReadTime estimates reading minutes for the given content, rounded up.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// DeriveBeforeSave applies the schema's pre-save rules. prev is the stored
// document before this save, or nil on create.
//
// Invariants: the slug follows the title, publishedAt is written exactly once
// on the first transition to published, and readTime only moves when content
// does.
func (b *Blog) DeriveBeforeSave(prev *Blog, now time.Time) {
	if prev == nil || prev.Title != b.Title || b.Slug == "" {
		b.Slug = Slugify(b.Title)
	}
	statusChanged := prev == nil || prev.Status != b.Status
	if statusChanged && b.Status == BlogPublished && b.PublishedAt == nil {
		t := now
		b.PublishedAt = &t
	}
	if prev == nil || prev.Content != b.Content {
		b.ReadTime = ReadTime(b.Content)
	}
}

func (b *Blog) Validate() error {
	return validate.Collect(
		validate.Required("title", b.Title),
		validate.MaxLen("title", b.Title, 200),
		validate.Required("summary", b.Summary),
		validate.MaxLen("summary", b.Summary, 500),
		validate.Required("content", b.Content),
		validate.OneOf("status", string(b.Status), string(BlogDraft), string(BlogPublished)),
	).OrNil()
}
