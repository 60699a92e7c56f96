package middleware

import (
	"net/http"
	"strings"

	"github.com/playto-dev/playto/shared/csrf"
	"github.com/playto-dev/playto/shared/logger"
	"github.com/playto-dev/playto/shared/utils"
)

const (
	CSRFCookie = "csrf_token"
	CSRFHeader = "X-CSRF-Token"
)

// IssueCSRFCookie sets a fresh double-submit token. It is readable by scripts
// so the browser client can echo it in CSRFHeader.
func IssueCSRFCookie(w http.ResponseWriter, secure bool, maxAge int) error {
	token, err := csrf.GenerateToken()
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// CSRF guards writes that authenticate with the accessToken cookie. Requests
// carrying a bearer header, or no session cookie at all, are not exposed to
// cross-site forgery and pass through.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		if _, err := r.Cookie(AccessTokenCookie); err != nil {
			next.ServeHTTP(w, r)
			return
		}

		var cookieToken string
		if cookie, err := r.Cookie(CSRFCookie); err == nil {
			cookieToken = cookie.Value
		}
		if !csrf.ValidateToken(cookieToken, r.Header.Get(CSRFHeader)) {
			logger.Log.Warn("CSRF token validation failed", "component", "csrf", "path", r.URL.Path)
			utils.WriteError(w, http.StatusForbidden, "CSRF token invalid")
			return
		}
		next.ServeHTTP(w, r)
	})
}
