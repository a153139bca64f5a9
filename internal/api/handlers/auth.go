package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/api/httpx"
	"github.com/projectsetu/setu-api/internal/middleware"
	"github.com/projectsetu/setu-api/internal/services"
)

type AuthHandler struct {
	Svc          *services.AuthService
	RS           *httpx.Responder
	CookieSecure bool
	CookieTTL    time.Duration
}

func NewAuthHandler(svc *services.AuthService, rs *httpx.Responder, cookieSecure bool, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{Svc: svc, RS: rs, CookieSecure: cookieSecure, CookieTTL: cookieTTL}
}

// sendToken sets the httpOnly cookie and returns the token in the envelope.
func (h *AuthHandler) sendToken(w http.ResponseWriter, status int, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.CookieTTL),
		HttpOnly: true,
		Secure:   h.CookieSecure,
	})
	h.RS.Token(w, status, token)
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	_, token, err := h.Svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.sendToken(w, http.StatusCreated, token)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	_, token, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.sendToken(w, http.StatusOK, token)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
	})
	h.RS.Data(w, http.StatusOK, struct{}{})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())
	h.RS.Data(w, http.StatusOK, u)
}

type updateDetailsReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *AuthHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())
	var req updateDetailsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	updated, err := h.Svc.UpdateDetails(r.Context(), u.ID, req.Name, req.Email)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.RS.Data(w, http.StatusOK, updated)
}

type updatePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())
	var req updatePasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RS.Error(w, apierr.BadRequest("invalid request body"))
		return
	}
	_, token, err := h.Svc.UpdatePassword(r.Context(), u.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.RS.Error(w, err)
		return
	}
	h.sendToken(w, http.StatusOK, token)
}
