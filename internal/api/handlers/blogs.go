package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/api/httpx"
	"github.com/projectsetu/setu-api/internal/metrics"
	"github.com/projectsetu/setu-api/internal/middleware"
	"github.com/projectsetu/setu-api/internal/models"
	"github.com/projectsetu/setu-api/internal/query"
	repo "github.com/projectsetu/setu-api/internal/repository"
	"github.com/projectsetu/setu-api/internal/worker"
)

type BlogHandler struct {
	Repo repo.Blogs
	RS   *httpx.Responder
	Pool *worker.Pool
}

func NewBlogHandler(blogs repo.Blogs, rs *httpx.Responder, pool *worker.Pool) *BlogHandler {
	return &BlogHandler{Repo: blogs, RS: rs, Pool: pool}
}

// List serves GET /blogs. Non-admin callers only see published posts.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	params := query.Parse(r.URL.Query())

	var visibility bson.M
	if !middleware.IsAdmin(r.Context()) {
		visibility = bson.M{"status": models.BlogPublished}
	}

	blogs, total, err := h.Repo.List(r.Context(), params, visibility)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	pg := params.Paginate(total)
	h.RS.List(w, blogs, len(blogs), &pg)
}

// findByIDOrSlug tries the native identifier first, then the slug.
func (h *BlogHandler) findByIDOrSlug(r *http.Request, param string) (models.Blog, error) {
	if oid, err := primitive.ObjectIDFromHex(param); err == nil {
		return h.Repo.GetByID(r.Context(), oid)
	}
	return h.Repo.GetBySlug(r.Context(), param)
}

// Get serves GET /blogs/{id}. Drafts look like 404 to non-admins; a
// non-admin read bumps the view count off the request path.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")
	blog, err := h.findByIDOrSlug(r, param)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Blog not found with id of %s", param))
		return
	}

	admin := middleware.IsAdmin(r.Context())
	if blog.Status == models.BlogDraft && !admin {
		h.RS.Error(w, apierr.NotFound("Blog not found with id of %s", param))
		return
	}

	if !admin {
		blog.ViewCount++
		id := blog.ID
		h.Pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.Repo.IncrementViews(ctx, id); err != nil {
				slog.Error("increment views", "blog", id.Hex(), "err", err)
				return
			}
			metrics.BlogViewsTotal.Inc()
		})
	}

	h.RS.Data(w, http.StatusOK, blog)
}

// Create serves POST /blogs. The author is always the caller.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	var blog models.Blog
	if err := json.NewDecoder(r.Body).Decode(&blog); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	blog.ID = primitive.NilObjectID
	blog.Author = u.ID
	blog.ViewCount = 0
	blog.ApplyDefaults()
	blog.DeriveBeforeSave(nil, time.Now())
	if err := blog.Validate(); err != nil {
		h.RS.Error(w, err)
		return
	}

	created, err := h.Repo.Create(r.Context(), blog)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusCreated, created)
}

// loadOwned fetches a blog and enforces the owner-or-admin rule.
func (h *BlogHandler) loadOwned(r *http.Request) (models.Blog, error) {
	param := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		return models.Blog{}, apierr.NotFound("Blog not found with id of %s", param)
	}
	blog, err := h.Repo.GetByID(r.Context(), oid)
	if err != nil {
		return models.Blog{}, apierr.NotFound("Blog not found with id of %s", param)
	}
	u := middleware.UserFrom(r.Context())
	if blog.Author != u.ID && u.Role != models.RoleAdmin {
		return models.Blog{}, apierr.Unauthorized("User %s is not authorized to modify this blog", u.ID.Hex())
	}
	return blog, nil
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	blog, err := h.loadOwned(r)
	if err != nil {
		h.RS.Error(w, err)
		return
	}

	prev := blog
	if err := json.NewDecoder(r.Body).Decode(&blog); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	// Identity and authorship never move on update.
	blog.ID = prev.ID
	blog.Author = prev.Author
	blog.CreatedAt = prev.CreatedAt
	blog.DeriveBeforeSave(&prev, time.Now())
	if err := blog.Validate(); err != nil {
		h.RS.Error(w, err)
		return
	}

	updated, err := h.Repo.Update(r.Context(), blog)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusOK, updated)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	blog, err := h.loadOwned(r)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if err := h.Repo.Delete(r.Context(), blog.ID); err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusOK, struct{}{})
}

// Featured serves GET /blogs/featured: published featured posts, newest
// published first.
func (h *BlogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	_, limit := query.ParsePageLimit(r.URL.Query(), 3)
	blogs, err := h.Repo.Featured(r.Context(), limit)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	h.RS.List(w, blogs, len(blogs), nil)
}

// ByCategory serves GET /blogs/category/{category}, published posts only.
func (h *BlogHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	page, limit := query.ParsePageLimit(r.URL.Query(), query.DefaultLimit)

	blogs, total, err := h.Repo.ByCategory(r.Context(), category, page, limit)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	pg := query.PaginateOffset(page, limit, total)
	h.RS.List(w, blogs, len(blogs), &pg)
}
