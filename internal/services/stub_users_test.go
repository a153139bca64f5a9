package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/projectsetu/setu-api/internal/models"
)

// stubUsers is an in-memory Users repository for service tests.
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
