package main

import (
	"net/http"
	"strings"

	"github.com/blogist/blogapi/internal/common"
	"github.com/julienschmidt/httprouter"
)

func (app *application) router() *httprouter.Router {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)
	router.Handler(http.MethodGet, "/metrics", app.metrics.Handler())

	// blog service
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.getAllBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id", app.getBlogOrStatsHandler)
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id", app.updateBlogHandler)
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.requireAuthUser(app.deleteBlogHandler))

	// user service
	router.HandlerFunc(http.MethodGet, "/api/users", app.getAllUsersHandler)
	router.HandlerFunc(http.MethodPost, "/api/users", app.registerUserHandler)
	router.HandlerFunc(http.MethodGet, "/api/users/:id", app.getUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/login", app.loginUserHandler)

	return router
}

func (app *application) routes() http.Handler {
	router := app.router()

	return app.recoverPanic(app.metrics.Middleware(app.logRequest(app.enableCORS(app.rateLimit(app.authenticate(router)))), routeTemplate(router)))
}

// routeTemplate labels a request with the pattern it matched, so
// /api/blogs/42 is reported as /api/blogs/:id.
func routeTemplate(router *httprouter.Router) common.RouteFunc {
	return func(r *http.Request) string {
		handle, params, _ := router.Lookup(r.Method, r.URL.Path)
		if handle == nil {
			return common.UnmatchedRoute
		}
		if len(params) == 0 {
			return r.URL.Path
		}

		segments := strings.Split(r.URL.Path, "/")
		for i, segment := range segments {
			for _, p := range params {
				if segment == p.Value {
					segments[i] = ":" + p.Key
					break
				}
			}
		}

		return strings.Join(segments, "/")
	}
}
