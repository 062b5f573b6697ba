package router

import (
	"estate-marketplace/internal/handler"
	"estate-marketplace/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// SetupUserRoutes wires the user and auth surfaces.
func SetupUserRoutes(mux *chi.Mux, userHandler *handler.UserHandler, authHandler *handler.AuthHandler, jwtSecret string) {
	// Public auth routes
	mux.Post("/api/auth/signup", authHandler.HandleSignUp)
	mux.Post("/api/auth/signin", authHandler.HandleSignIn)
	mux.Get("/api/auth/signout", authHandler.HandleSignOut)

	// Protected user routes
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Post("/api/user/update/{id}", userHandler.HandleUpdateUser)
		r.Delete("/api/user/delete/{id}", userHandler.HandleDeleteUser)
		r.Get("/api/user/{id}", userHandler.HandleGetUser)
	})
}
