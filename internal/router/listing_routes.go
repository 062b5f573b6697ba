package router

import (
	"estate-marketplace/internal/handler"
	"estate-marketplace/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// SetupListingRoutes wires the listing surface. Reads are public; every
// mutating route sits behind the auth gate.
func SetupListingRoutes(mux *chi.Mux, h *handler.ListingHandler, jwtSecret string) {
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Post("/api/listing/create", h.HandleCreateListing)
		r.Post("/api/listing/update/{id}", h.HandleUpdateListing)
		r.Delete("/api/listing/delete/{id}", h.HandleDeleteListing)
		r.Post("/api/listing/upload", h.HandleUploadImage)
	})

	mux.Get("/api/listing/get/{id}", h.HandleGetListing)
	mux.Get("/api/listing/get", h.HandleGetListings)
}
