// Package httpx writes the shared response envelope:
// {success, data|error, count?, pagination?}.
package httpx

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/query"
)

type Envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Token      string            `json:"token,omitempty"`
	Count      *int              `json:"count,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Error      string            `json:"error,omitempty"`
	Stack      string            `json:"stack,omitempty"`
}

// Responder renders envelopes. IncludeStack adds a stack trace to
// unclassified server errors outside production.
type Responder struct {
	IncludeStack bool
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (rs *Responder) Data(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Success: true, Data: data})
}

// List writes a page of results with its count and pagination metadata.
func (rs *Responder) List(w http.ResponseWriter, data any, count int, pg *query.Pagination) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count, Pagination: pg})
}

func (rs *Responder) Token(w http.ResponseWriter, status int, token string) {
	WriteJSON(w, status, Envelope{Success: true, Token: token})
}

// Error maps err through the apierr taxonomy and writes the failure envelope.
func (rs *Responder) Error(w http.ResponseWriter, err error) {
	status, msg := apierr.Map(err)
	env := Envelope{Error: msg}
	if status == http.StatusInternalServerError && rs.IncludeStack {
		env.Stack = string(debug.Stack())
	}
	WriteJSON(w, status, env)
}
