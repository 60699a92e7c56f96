package handler

import (
	"net/http"

	"github.com/playto-dev/playto/shared/api"
	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/utils"
)

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), domain.CommentCreationData{
		Author:   *user,
		PostId:   body.Post,
		ParentId: body.Parent,
		Content:  body.Content,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, comment)
}
