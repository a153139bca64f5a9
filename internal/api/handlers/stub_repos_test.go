package handlers

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/projectsetu/setu-api/internal/models"
	"github.com/projectsetu/setu-api/internal/query"
)

// In-memory repositories for handler tests. List applies only the
// visibility predicate; condition filtering is covered by the query
// package's own tests.

type stubBlogs struct {
	mu         sync.Mutex
	byID       map[primitive.ObjectID]models.Blog
	order      []primitive.ObjectID
	viewBumps  map[primitive.ObjectID]int
	bumpSignal chan struct{}
}

func newStubBlogs() *stubBlogs {
	return &stubBlogs{
		byID:       map[primitive.ObjectID]models.Blog{},
		viewBumps:  map[primitive.ObjectID]int{},
		bumpSignal: make(chan struct{}, 16),
	}
}

func (s *stubBlogs) add(b models.Blog) models.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if _, seen := s.byID[b.ID]; !seen {
		s.order = append(s.order, b.ID)
	}
	s.byID[b.ID] = b
	return b
}

func (s *stubBlogs) Create(_ context.Context, b models.Blog) (models.Blog, error) {
	return s.add(b), nil
}

func (s *stubBlogs) GetByID(_ context.Context, id primitive.ObjectID) (models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok {
		return models.Blog{}, mongo.ErrNoDocuments
	}
	return b, nil
}

func (s *stubBlogs) GetBySlug(_ context.Context, slug string) (models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.byID {
		if b.Slug == slug {
			return b, nil
		}
	}
	return models.Blog{}, mongo.ErrNoDocuments
}

func (s *stubBlogs) List(_ context.Context, _ query.ListParams, visibility bson.M) ([]models.Blog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Blog
	for _, id := range s.order {
		b := s.byID[id]
		if status, ok := visibility["status"]; ok && b.Status != status.(models.BlogStatus) {
			continue
		}
		out = append(out, b)
	}
	return out, int64(len(s.order)), nil
}

func (s *stubBlogs) Featured(_ context.Context, limit int64) ([]models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Blog
	for _, id := range s.order {
		b := s.byID[id]
		if b.IsFeatured && b.Status == models.BlogPublished && int64(len(out)) < limit {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBlogs) ByCategory(_ context.Context, category string, _, _ int64) ([]models.Blog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Blog
	for _, id := range s.order {
		b := s.byID[id]
		if b.Status != models.BlogPublished {
			continue
		}
		for _, c := range b.Categories {
			if c == category {
				out = append(out, b)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubBlogs) Update(_ context.Context, b models.Blog) (models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[b.ID]; !ok {
		return models.Blog{}, mongo.ErrNoDocuments
	}
	s.byID[b.ID] = b
	return b, nil
}

func (s *stubBlogs) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.byID, id)
	return nil
}

func (s *stubBlogs) IncrementViews(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	s.viewBumps[id]++
	s.mu.Unlock()
	s.bumpSignal <- struct{}{}
	return nil
}

func (s *stubBlogs) bumps(id primitive.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewBumps[id]
}

type stubTestimonials struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]models.Testimonial
	order []primitive.ObjectID
}

func newStubTestimonials() *stubTestimonials {
	return &stubTestimonials{byID: map[primitive.ObjectID]models.Testimonial{}}
}

func (s *stubTestimonials) add(t models.Testimonial) models.Testimonial {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if _, seen := s.byID[t.ID]; !seen {
		s.order = append(s.order, t.ID)
	}
	s.byID[t.ID] = t
	return t
}

func (s *stubTestimonials) Create(_ context.Context, t models.Testimonial) (models.Testimonial, error) {
	return s.add(t), nil
}

func (s *stubTestimonials) GetByID(_ context.Context, id primitive.ObjectID) (models.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok {
		return models.Testimonial{}, mongo.ErrNoDocuments
	}
	return t, nil
}

func (s *stubTestimonials) List(_ context.Context, _ query.ListParams, visibility bson.M) ([]models.Testimonial, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Testimonial
	for _, id := range s.order {
		t := s.byID[id]
		if v, ok := visibility["verified"]; ok && t.Verified != v.(bool) {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(s.order)), nil
}

func (s *stubTestimonials) Featured(_ context.Context, limit int64) ([]models.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Testimonial
	for _, id := range s.order {
		t := s.byID[id]
		if t.Featured && t.Verified && int64(len(out)) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTestimonials) ByProject(_ context.Context, projectID primitive.ObjectID) ([]models.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Testimonial
	for _, id := range s.order {
		t := s.byID[id]
		if t.ProjectRelated != nil && *t.ProjectRelated == projectID && t.Verified {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTestimonials) Update(_ context.Context, t models.Testimonial) (models.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[t.ID]; !ok {
		return models.Testimonial{}, mongo.ErrNoDocuments
	}
	s.byID[t.ID] = t
	return t, nil
}

func (s *stubTestimonials) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.byID, id)
	return nil
}

func (s *stubTestimonials) SetVerified(_ context.Context, id primitive.ObjectID, verified bool) (models.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok {
		return models.Testimonial{}, mongo.ErrNoDocuments
	}
	t.Verified = verified
	s.byID[id] = t
	return t, nil
}

type stubUsers struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]models.User
	order []primitive.ObjectID
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: map[primitive.ObjectID]models.User{}}
}

func (s *stubUsers) add(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, seen := s.byID[u.ID]; !seen {
		s.order = append(s.order, u.ID)
	}
	s.byID[u.ID] = u
	return u
}

func (s *stubUsers) Create(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			s.mu.Unlock()
			return models.User{}, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	s.mu.Unlock()
	return s.add(u), nil
}

func (s *stubUsers) GetByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (s *stubUsers) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *stubUsers) Update(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[u.ID]; !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	s.byID[u.ID] = u
	return u, nil
}

func (s *stubUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubUsers) CountByRole(_ context.Context, role models.Role) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, u := range s.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (s *stubUsers) FindOneByRole(_ context.Context, role models.Role) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Role == role {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}
