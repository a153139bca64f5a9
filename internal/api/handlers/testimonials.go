package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/api/httpx"
	"github.com/projectsetu/setu-api/internal/middleware"
	"github.com/projectsetu/setu-api/internal/models"
	"github.com/projectsetu/setu-api/internal/query"
	repo "github.com/projectsetu/setu-api/internal/repository"
)

type TestimonialHandler struct {
	Repo repo.Testimonials
	RS   *httpx.Responder
}

func NewTestimonialHandler(testimonials repo.Testimonials, rs *httpx.Responder) *TestimonialHandler {
	return &TestimonialHandler{Repo: testimonials, RS: rs}
}

// List serves GET /testimonials. Non-admins only see verified entries.
func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	params := query.Parse(r.URL.Query())

	var visibility bson.M
	if !middleware.IsAdmin(r.Context()) {
		visibility = bson.M{"verified": true}
	}

	testimonials, total, err := h.Repo.List(r.Context(), params, visibility)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if testimonials == nil {
		testimonials = []models.Testimonial{}
	}
	pg := params.Paginate(total)
	h.RS.List(w, testimonials, len(testimonials), &pg)
}

func (h *TestimonialHandler) Get(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Testimonial not found with id of %s", param))
		return
	}
	t, err := h.Repo.GetByID(r.Context(), oid)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Testimonial not found with id of %s", param))
		return
	}
	if !t.Verified && !middleware.IsAdmin(r.Context()) {
		h.RS.Error(w, apierr.NotFound("Testimonial not found with id of %s", param))
		return
	}
	h.RS.Data(w, http.StatusOK, t)
}

// Create serves POST /testimonials. Non-admin submissions are stored
// unverified no matter what the body says.
func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var t models.Testimonial
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	t.ID = primitive.NilObjectID
	if !middleware.IsAdmin(r.Context()) {
		t.Verified = false
	}
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		h.RS.Error(w, err)
		return
	}

	created, err := h.Repo.Create(r.Context(), t)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusCreated, created)
}

func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Testimonial not found with id of %s", param))
		return
	}
	t, err := h.Repo.GetByID(r.Context(), oid)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Testimonial not found with id of %s", param))
		return
	}

	prev := t
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	t.ID = prev.ID
	t.CreatedAt = prev.CreatedAt
	if err := t.Validate(); err != nil {
		h.RS.Error(w, err)
		return
	}

	updated, err := h.Repo.Update(r.Context(), t)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusOK, updated)
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Testimonial not found with id of %s", param))
		return
	}
	if _, err := h.Repo.GetByID(r.Context(), oid); err != nil {
		h.RS.Error(w, apierr.NotFound("Testimonial not found with id of %s", param))
		return
	}
	if err := h.Repo.Delete(r.Context(), oid); err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusOK, struct{}{})
}

func (h *TestimonialHandler) Featured(w http.ResponseWriter, r *http.Request) {
	_, limit := query.ParsePageLimit(r.URL.Query(), 3)
	testimonials, err := h.Repo.Featured(r.Context(), limit)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if testimonials == nil {
		testimonials = []models.Testimonial{}
	}
	h.RS.List(w, testimonials, len(testimonials), nil)
}

// ByProject serves GET /testimonials/project/{projectId}, verified only.
func (h *TestimonialHandler) ByProject(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "projectId")
	oid, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		h.RS.Error(w, apierr.BadRequest("Invalid project ID: %s", param))
		return
	}
	testimonials, err := h.Repo.ByProject(r.Context(), oid)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if testimonials == nil {
		testimonials = []models.Testimonial{}
	}
	h.RS.List(w, testimonials, len(testimonials), nil)
}

// Verify serves PUT /testimonials/{id}/verify.
func (h *TestimonialHandler) Verify(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Testimonial not found with id of %s", param))
		return
	}
	t, err := h.Repo.SetVerified(r.Context(), oid, true)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Testimonial not found with id of %s", param))
		return
	}
	h.RS.Data(w, http.StatusOK, t)
}
