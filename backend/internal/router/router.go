package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/handlers"

	"github.com/playto-dev/playto/backend/internal/setup"
	"github.com/playto-dev/playto/shared/logger"
	mw "github.com/playto-dev/playto/shared/middleware"
	"github.com/playto-dev/playto/shared/middleware/metrics"
)

// New creates the API handler with all the routes.
// IMPORTANT! a ratelimiter is shared by every route it wraps
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Use(metrics.Middleware)
	r.Use(authMw.OptionalAuth())

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method("GET", "/metrics", metrics.Handler())

	// writes: NeedAuth, CSRF for cookie sessions, then a per user limit
	needAuth := authMw.NeedAuth()
	perUser := func(limiter func(http.Handler) http.Handler, fn http.HandlerFunc) http.Handler {
		return needAuth(mw.CSRF(limiter(fn)))
	}
	contentLimit := mw.RateLimit(deps.Limiters.Content, mw.GetUserIDFromContext)
	voteLimit := mw.RateLimit(deps.Limiters.Votes, mw.GetUserIDFromContext)
	loginLimit := mw.RateLimit(deps.Limiters.Login, mw.GetIP)

	handle(r, "/posts/", http.HandlerFunc(h.ListPosts), "GET")
	handle(r, "/posts/", perUser(contentLimit, h.CreatePost), "POST")
	handle(r, "/posts/{id:[0-9]+}/", http.HandlerFunc(h.GetPost), "GET")
	handle(r, "/comments/", perUser(contentLimit, h.CreateComment), "POST")
	handle(r, "/vote/{kind}/{id:[0-9]+}/", perUser(voteLimit, h.ToggleVote), "POST")
	handle(r, "/leaderboard/", http.HandlerFunc(h.Leaderboard), "GET")

	handle(r, "/auth/login/", loginLimit(http.HandlerFunc(h.Login)), "POST")
	handle(r, "/auth/logout/", http.HandlerFunc(h.Logout), "POST")

	var root http.Handler = r
	root = handlers.CompressHandler(root)
	root = mw.SecurityHeaders(deps.Config.Public.SecureCookies)(root)
	root = cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", mw.RequestIdHeader, mw.CSRFHeader},
		ExposedHeaders:   []string{mw.RequestIdHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(root)
	root = mw.Logging(root)
	root = mw.RequestId(root)
	root = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}), handlers.PrintRecoveryStack(false))(root)
	return root
}

// handle registers path both with and without the trailing slash.
func handle(r chi.Router, path string, h http.Handler, method string) {
	r.Method(method, path, h)
	if trimmed := strings.TrimSuffix(path, "/"); trimmed != path {
		r.Method(method, trimmed, h)
	}
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...any) {
	logger.Log.Error("panic recovered", "component", "http", "error", v)
}
