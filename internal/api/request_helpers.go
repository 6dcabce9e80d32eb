package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/api/middleware"
	"github.com/taskboard/taskboard/internal/api/shared"
	"github.com/taskboard/taskboard/internal/service/auth"
)

// Pagination defaults. Page size is clamped to maxPageSize so a single
// request cannot ask for an unbounded result set.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// getPrincipal extracts the authenticated principal from the request
// context, writing a 401 response if it is missing. Route gates make a
// missing principal unreachable on protected routes; the check here keeps
// handlers safe if a route is ever wired without its gate.
func getPrincipal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return auth.Principal{}, false
	}
	return principal, true
}

// getPathUUID extracts a UUID from the URL path parameters, writing a 400
// response if the parameter is missing or malformed.
func getPathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+paramName+" parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName+" parameter")
		return uuid.Nil, false
	}

	return id, true
}

// getPagination reads the page and size query parameters, falling back to
// the defaults on absent or malformed values.
func getPagination(r *http.Request) (page, size int) {
	page = 0
	size = defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			page = parsed
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			size = parsed
		}
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return page, size
}
