package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/playto-dev/playto/shared/api"
	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/errors"
	mw "github.com/playto-dev/playto/shared/middleware"
	"github.com/playto-dev/playto/shared/utils"
)

// ToggleVote flips the caller's like on a post or comment. A new like
// answers 201, a removed one 200.
func (h *Handler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	kind := domain.SubjectKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		utils.WriteErrorAndStatusCode(w, errors.Validation("invalid model type %q", kind))
		return
	}
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	status, err := h.votes.Toggle(r.Context(), mw.GetUserFromContext(r), kind, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	code := http.StatusOK
	if status == domain.VoteLiked {
		code = http.StatusCreated
	}
	utils.WriteJSON(w, code, api.VoteResponse{Status: status})
}
