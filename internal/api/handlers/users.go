package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/api/httpx"
	"github.com/projectsetu/setu-api/internal/models"
	"github.com/projectsetu/setu-api/internal/services"
)

// UserHandler serves the admin-only user management endpoints.
type UserHandler struct {
	Svc *services.UserService
	RS  *httpx.Responder
}

func NewUserHandler(svc *services.UserService, rs *httpx.Responder) *UserHandler {
	return &UserHandler{Svc: svc, RS: rs}
}

func userIDParam(r *http.Request) (primitive.ObjectID, error) {
	param := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		return primitive.NilObjectID, apierr.NotFound("Resource not found")
	}
	return oid, nil
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.List(r.Context())
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	h.RS.List(w, users, len(users), nil)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	oid, err := userIDParam(r)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	u, err := h.Svc.Get(r.Context(), oid)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("User not found with id of %s", chi.URLParam(r, "id")))
		return
	}
	h.RS.Data(w, http.StatusOK, u)
}

type createUserReq struct {
	models.User
	Password string `json:"password"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	created, err := h.Svc.Create(r.Context(), req.User, req.Password)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusCreated, created)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	oid, err := userIDParam(r)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	u, err := h.Svc.Get(r.Context(), oid)
	if err != nil {
		h.RS.Error(w, apierr.NotFound("User not found with id of %s", chi.URLParam(r, "id")))
		return
	}

	prev := u
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	// Password changes go through the dedicated auth flow only.
	u.ID = prev.ID
	u.Password = prev.Password
	u.CreatedAt = prev.CreatedAt

	updated, err := h.Svc.Update(r.Context(), u)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusOK, updated)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	oid, err := userIDParam(r)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), oid); err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusOK, struct{}{})
}
