package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/errors"
	mw "github.com/playto-dev/playto/shared/middleware"
)

// parseIdParam reads a positive int64 path variable. Anything else cannot
// name an existing row, so it is reported as not found.
func parseIdParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NotFound("invalid %s: %q", name, raw)
	}
	return id, nil
}

// requireUser returns the authenticated user. Write routes sit behind
// NeedAuth, so a miss here means the router is misconfigured.
func requireUser(r *http.Request) (*domain.User, error) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		return nil, errors.Unauthorized("Please sign in")
	}
	return user, nil
}
