package handler

import (
	"net/http"

	"github.com/playto-dev/playto/shared/api"
	"github.com/playto-dev/playto/shared/domain"
	mw "github.com/playto-dev/playto/shared/middleware"
	"github.com/playto-dev/playto/shared/utils"
)

// Login sets the accessToken and csrf cookies for browsers and returns the
// token in the body for bearer clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &creds); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	accessToken, err := h.auth.Login(r.Context(), domain.Credentials{Username: creds.Username, Password: creds.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	maxAge := int(h.cfg.JwtTTL().Seconds())
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    accessToken,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	if err := mw.IssueCSRFCookie(w, h.cfg.Public.SecureCookies, maxAge); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.LoginResponse{Token: accessToken})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{Path: "/", Name: mw.CSRFCookie, Value: "", MaxAge: -1})
	w.WriteHeader(http.StatusOK)
}
