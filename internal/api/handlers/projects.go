package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/api/httpx"
	"github.com/projectsetu/setu-api/internal/models"
	"github.com/projectsetu/setu-api/internal/query"
	repo "github.com/projectsetu/setu-api/internal/repository"
)

type ProjectHandler struct {
	Repo repo.Projects
	RS   *httpx.Responder
}

func NewProjectHandler(projects repo.Projects, rs *httpx.Responder) *ProjectHandler {
	return &ProjectHandler{Repo: projects, RS: rs}
}

// List serves GET /projects. Projects are fully public; no visibility
// predicate applies.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	params := query.Parse(r.URL.Query())
	projects, total, err := h.Repo.List(r.Context(), params, nil)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	pg := params.Paginate(total)
	h.RS.List(w, projects, len(projects), &pg)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")

	var (
		project models.Project
		err     error
	)
	if oid, idErr := primitive.ObjectIDFromHex(param); idErr == nil {
		project, err = h.Repo.GetByID(r.Context(), oid)
	} else {
		project, err = h.Repo.GetBySlug(r.Context(), param)
	}
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Project not found with id of %s", param))
		return
	}
	h.RS.Data(w, http.StatusOK, project)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	project.ID = primitive.NilObjectID
	project.ApplyDefaults()
	project.DeriveBeforeSave(nil, time.Now())
	if err := project.Validate(); err != nil {
		h.RS.Error(w, err)
		return
	}

	created, err := h.Repo.Create(r.Context(), project)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusCreated, created)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Project not found with id of %s", param))
		return
	}
	project, err := h.Repo.GetByID(r.Context(), oid)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Project not found with id of %s", param))
		return
	}

	prev := project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	project.ID = prev.ID
	project.CreatedAt = prev.CreatedAt
	project.DeriveBeforeSave(&prev, time.Now())
	if err := project.Validate(); err != nil {
		h.RS.Error(w, err)
		return
	}

	updated, err := h.Repo.Update(r.Context(), project)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusOK, updated)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("Project not found with id of %s", param))
		return
	}
	if _, err := h.Repo.GetByID(r.Context(), oid); err != nil {
		h.RS.Error(w, apierr.NotFound("Project not found with id of %s", param))
		return
	}
	if err := h.Repo.Delete(r.Context(), oid); err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusOK, struct{}{})
}

func (h *ProjectHandler) Featured(w http.ResponseWriter, r *http.Request) {
	_, limit := query.ParsePageLimit(r.URL.Query(), 3)
	projects, err := h.Repo.Featured(r.Context(), limit)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	h.RS.List(w, projects, len(projects), nil)
}

func (h *ProjectHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")
	if !models.ValidProjectStatus(status) {
		h.RS.Error(w, apierr.BadRequest("Invalid status: %s", status))
		return
	}
	page, limit := query.ParsePageLimit(r.URL.Query(), query.DefaultLimit)

	projects, total, err := h.Repo.ByStatus(r.Context(), models.ProjectStatus(status), page, limit)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	pg := query.PaginateOffset(page, limit, total)
	h.RS.List(w, projects, len(projects), &pg)
}

func (h *ProjectHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	page, limit := query.ParsePageLimit(r.URL.Query(), query.DefaultLimit)

	projects, total, err := h.Repo.ByCategory(r.Context(), category, page, limit)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	pg := query.PaginateOffset(page, limit, total)
	h.RS.List(w, projects, len(projects), &pg)
}
