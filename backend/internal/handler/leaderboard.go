package handler

import (
	"net/http"

	"github.com/playto-dev/playto/shared/utils"
)

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.Top(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, entries)
}
