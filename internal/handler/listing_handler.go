package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"estate-marketplace/internal/domain"
	"estate-marketplace/internal/middleware"
	"estate-marketplace/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadSize = 5 << 20 // 5 MiB per image

type ListingHandler struct {
	usecase *usecase.ListingUsecase
	photos  *usecase.PhotoUsecase
	logger  *zap.Logger
}

func NewListingHandler(uc *usecase.ListingUsecase, photos *usecase.PhotoUsecase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{usecase: uc, photos: photos, logger: logger}
}

func (h *ListingHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var listing domain.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.usecase.CreateListing(r.Context(), userID, &listing)
	if err != nil {
		h.logger.Warn("create listing failed", zap.String("user_id", userID), zap.Error(err))
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type listingUpdateRequest struct {
	Name          *string             `json:"name"`
	Description   *string             `json:"description"`
	Address       *string             `json:"address"`
	Type          *domain.ListingType `json:"type"`
	RegularPrice  *float64            `json:"regularPrice"`
	DiscountPrice *float64            `json:"discountPrice"`
	Offer         *bool               `json:"offer"`
	Bedrooms      *int                `json:"bedrooms"`
	Bathrooms     *int                `json:"bathrooms"`
	Parking       *bool               `json:"parking"`
	Furnished     *bool               `json:"furnished"`
	ImageURLs     []string            `json:"imageUrls"`
	ContactEmail  *string             `json:"contactEmail"`
	ContactPhone  *string             `json:"contactPhone"`
}

func (h *ListingHandler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")

	var req listingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.usecase.UpdateListing(r.Context(), id, userID, usecase.ListingUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		Type:          req.Type,
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		Offer:         req.Offer,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Parking:       req.Parking,
		Furnished:     req.Furnished,
		ImageURLs:     req.ImageURLs,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
	})
	if err != nil {
		h.logger.Warn("update listing failed", zap.String("listing_id", id), zap.String("user_id", userID), zap.Error(err))
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ListingHandler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.usecase.DeleteListing(r.Context(), id, userID); err != nil {
		h.logger.Warn("delete listing failed", zap.String("listing_id", id), zap.String("user_id", userID), zap.Error(err))
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "message": "listing has been deleted"})
}

func (h *ListingHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.usecase.GetListingByID(r.Context(), id)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) HandleGetListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.usecase.SearchListings(r.Context(), parseFilter(r))
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func parseFilter(r *http.Request) domain.Filter {
	q := r.URL.Query()

	filter := domain.Filter{
		SearchTerm: q.Get("searchTerm"),
		Type:       domain.ListingType(q.Get("type")),
		UserRef:    q.Get("userRef"),
		Sort:       q.Get("sort"),
		Order:      q.Get("order"),
	}
	filter.Offer = parseBoolParam(q.Get("offer"))
	filter.Furnished = parseBoolParam(q.Get("furnished"))
	filter.Parking = parseBoolParam(q.Get("parking"))

	if limit, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil {
		filter.Limit = limit
	}
	if start, err := strconv.ParseInt(q.Get("startIndex"), 10, 64); err == nil {
		filter.StartIndex = start
	}
	return filter
}

// parseBoolParam returns nil for absent or "either" values so the query
// matches both true and false.
func parseBoolParam(v string) *bool {
	switch v {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	default:
		return nil
	}
}

func (h *ListingHandler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	url, err := h.photos.UploadImage(r.Context(), header.Filename, data)
	if err != nil {
		h.logger.Error("image upload failed", zap.String("filename", header.Filename), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
