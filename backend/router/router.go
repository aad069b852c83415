package router

import (
	"net/http"

	"team-attendance/backend/app/controllers"
	"team-attendance/backend/app/middleware"
	"team-attendance/backend/app/models"
)

type Deps struct {
	HTTP    *controllers.HTTPController
	Auth    *controllers.AuthController
	Events  *controllers.EventController
	Users   *controllers.UserController
	Export  *controllers.ExportController
	Gate    *middleware.Auth
	Limiter *middleware.RateLimiter
	WebDir  string
}

// New builds the route table. Everything lives under /api; the auth routes
// are rate limited, the rest sit behind the token gate, and the admin surface
// additionally requires the staff role.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("GET /api/health", d.HTTP.Health)
	mux.Handle("POST /api/auth/signup", d.Limiter.Middleware(http.HandlerFunc(d.Auth.Signup)))
	mux.Handle("POST /api/auth/login", d.Limiter.Middleware(http.HandlerFunc(d.Auth.Login)))

	// authenticated
	mux.Handle("GET /api/events", d.Gate.RequireAuth(http.HandlerFunc(d.Events.List)))
	mux.Handle("GET /api/events/mine", d.Gate.RequireAuth(http.HandlerFunc(d.Events.Mine)))
	mux.Handle("POST /api/events", d.Gate.RequireAuth(http.HandlerFunc(d.Events.Create)))
	mux.Handle("PUT /api/events/{id}", d.Gate.RequireAuth(http.HandlerFunc(d.Events.Update)))
	mux.Handle("DELETE /api/events/{id}", d.Gate.RequireAuth(http.HandlerFunc(d.Events.Delete)))
	mux.Handle("PUT /api/users/me/color", d.Gate.RequireAuth(http.HandlerFunc(d.Users.UpdateOwnColor)))

	// staff only
	mux.Handle("GET /api/users", d.Gate.RequireRole(models.RoleStaff, http.HandlerFunc(d.Users.List)))
	mux.Handle("PUT /api/users/{id}/color", d.Gate.RequireRole(models.RoleStaff, http.HandlerFunc(d.Users.UpdateColor)))
	mux.Handle("PUT /api/users/{id}/role", d.Gate.RequireRole(models.RoleStaff, http.HandlerFunc(d.Users.UpdateRole)))
	mux.Handle("DELETE /api/users/{id}", d.Gate.RequireRole(models.RoleStaff, http.HandlerFunc(d.Users.Delete)))
	mux.Handle("GET /api/events/export", d.Gate.RequireRole(models.RoleStaff, http.HandlerFunc(d.Export.CSV)))

	// static frontend assets
	if d.WebDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(d.WebDir)))
	}

	return mux
}
