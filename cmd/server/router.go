package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/taskboard/taskboard/internal/api"
	apimiddleware "github.com/taskboard/taskboard/internal/api/middleware"
)

// accessLevel names the endpoint-level gate applied to a route. Ownership
// checks are not expressed here; those live in the service layer, next to
// the resource they protect.
type accessLevel int

const (
	// accessPublic routes accept anonymous requests.
	accessPublic accessLevel = iota

	// accessUser routes require an authenticated principal.
	accessUser

	// accessAdmin routes require an authenticated administrator.
	accessAdmin
)

// route binds one endpoint to its handler and access level. Keeping the
// whole API surface in one table makes the authorization posture of every
// endpoint reviewable in a single place.
type route struct {
	method  string
	pattern string
	access  accessLevel
	handler http.HandlerFunc
}

// setupRouter creates and configures the application router with all routes
// and middleware. Authentication runs on every route; requests without
// credentials pass through anonymous and are rejected by the per-route gate
// when the route requires one.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	taskHandler := api.NewTaskHandler(app.taskService)
	commentHandler := api.NewCommentHandler(app.commentService)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService, app.userStore, app.logger)

	routes := []route{
		// Authentication endpoints. Register is public; an authenticated
		// admin caller may additionally grant the ADMIN role.
		{http.MethodPost, "/auth/register", accessPublic, authHandler.Register},
		{http.MethodPost, "/auth/login", accessPublic, authHandler.Login},
		{http.MethodGet, "/auth/me", accessUser, authHandler.Me},

		// Task endpoints.
		{http.MethodPost, "/tasks", accessUser, taskHandler.Create},
		{http.MethodGet, "/tasks", accessUser, taskHandler.ListMine},
		{http.MethodGet, "/tasks/all", accessAdmin, taskHandler.ListAll},
		{http.MethodGet, "/tasks/{taskID}", accessUser, taskHandler.Get},
		{http.MethodPut, "/tasks/{taskID}", accessUser, taskHandler.Update},
		{http.MethodPut, "/tasks/{taskID}/assign/{userID}", accessAdmin, taskHandler.Assign},
		{http.MethodDelete, "/tasks/{taskID}", accessUser, taskHandler.Delete},
		{http.MethodDelete, "/tasks/{taskID}/comments/{commentID}", accessUser, taskHandler.DeleteComment},

		// Comment endpoints.
		{http.MethodPost, "/comments/{taskID}", accessUser, commentHandler.Add},
		{http.MethodGet, "/comments/{commentID}", accessAdmin, commentHandler.Get},
		{http.MethodGet, "/comments/task/{taskID}", accessUser, commentHandler.ListByTask},
		{http.MethodDelete, "/comments/{commentID}", accessUser, commentHandler.Delete},
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		for _, rt := range routes {
			handler := http.Handler(rt.handler)
			switch rt.access {
			case accessUser:
				handler = authMiddleware.RequireAuth(handler)
			case accessAdmin:
				handler = authMiddleware.RequireAdmin(handler)
			}
			r.Method(rt.method, rt.pattern, handler)
		}
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
