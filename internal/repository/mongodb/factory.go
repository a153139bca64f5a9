package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	repo "github.com/projectsetu/setu-api/internal/repository"
)

type Repositories struct {
	Users        repo.Users
	Blogs        repo.Blogs
	Projects     repo.Projects
	Testimonials repo.Testimonials
}

func NewRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Users:        &usersRepo{c: db.Collection("users")},
		Blogs:        &blogsRepo{c: db.Collection("blogs")},
		Projects:     &projectsRepo{c: db.Collection("projects")},
		Testimonials: &testimonialsRepo{c: db.Collection("testimonials")},
	}
}
