package usecase

import (
	"context"
	"errors"
	"time"

	"estate-marketplace/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrForbidden       = errors.New("user not authorized to perform this action")
	ErrInvalidListing  = errors.New("invalid listing data")
)

// ListingCache is the read-through cache in front of the listing repository.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// EventPublisher emits listing lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Mailer notifies owners about their listings.
type Mailer interface {
	SendListingCreatedEmail(toEmail, listingName string) error
}

// ListingUpdate carries the partial fields of an update request. Nil means
// "leave unchanged".
type ListingUpdate struct {
	Name          *string
	Description   *string
	Address       *string
	Type          *domain.ListingType
	RegularPrice  *float64
	DiscountPrice *float64
	Offer         *bool
	Bedrooms      *int
	Bathrooms     *int
	Parking       *bool
	Furnished     *bool
	ImageURLs     []string
	ContactEmail  *string
	ContactPhone  *string
}

type ListingUsecase struct {
	repo      domain.ListingRepository
	users     domain.UserRepository
	cache     ListingCache
	publisher EventPublisher
	mailer    Mailer
	logger    *zap.Logger
}

func NewListingUsecase(repo domain.ListingRepository, users domain.UserRepository, logger *zap.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// WithCache, WithPublisher and WithMailer attach optional collaborators.
// The usecase works without them; they are best-effort side channels.
func (uc *ListingUsecase) WithCache(c ListingCache) *ListingUsecase {
	uc.cache = c
	return uc
}

func (uc *ListingUsecase) WithPublisher(p EventPublisher) *ListingUsecase {
	uc.publisher = p
	return uc
}

func (uc *ListingUsecase) WithMailer(m Mailer) *ListingUsecase {
	uc.mailer = m
	return uc
}

func (uc *ListingUsecase) CreateListing(ctx context.Context, ownerID string, listing *domain.Listing) (*domain.Listing, error) {
	listing.UserRef = ownerID
	if listing.ImageURLs == nil {
		listing.ImageURLs = []string{}
	}
	if err := listing.Validate(); err != nil {
		uc.logger.Warn("CreateListing: validation failed", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, ErrInvalidListing
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("CreateListing: failed to create listing", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, "listing.created", listing); err != nil {
			uc.logger.Warn("CreateListing: failed to publish event", zap.String("listing_id", listing.ID), zap.Error(err))
		}
	}
	uc.notifyOwner(ctx, ownerID, listing.Name)

	return listing, nil
}

func (uc *ListingUsecase) notifyOwner(ctx context.Context, ownerID, listingName string) {
	if uc.mailer == nil {
		return
	}
	owner, err := uc.users.FindByID(ctx, ownerID)
	if err != nil {
		uc.logger.Warn("notifyOwner: owner lookup failed", zap.String("owner_id", ownerID), zap.Error(err))
		return
	}
	if err := uc.mailer.SendListingCreatedEmail(owner.Email, listingName); err != nil {
		uc.logger.Warn("notifyOwner: failed to send email", zap.String("owner_id", ownerID), zap.Error(err))
	}
}

func (uc *ListingUsecase) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		if err != nil {
			uc.logger.Warn("GetListingByID: cache read failed", zap.String("listing_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		uc.logger.Error("GetListingByID: failed to find listing", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("GetListingByID: cache write failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return listing, nil
}

func (uc *ListingUsecase) SearchListings(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("SearchListings: query failed", zap.Error(err))
		return nil, err
	}
	return listings, nil
}

func (uc *ListingUsecase) UpdateListing(ctx context.Context, id, actorID string, update ListingUpdate) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	if !domain.CanModify(listing.UserRef, actorID) {
		uc.logger.Warn("UpdateListing: forbidden",
			zap.String("listing_id", id), zap.String("owner_id", listing.UserRef), zap.String("actor_id", actorID))
		return nil, ErrForbidden
	}

	applyUpdate(listing, update)
	if err := listing.Validate(); err != nil {
		return nil, ErrInvalidListing
	}

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("UpdateListing: failed to update listing", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, id); err != nil {
			uc.logger.Warn("UpdateListing: cache invalidation failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, "listing.updated", listing); err != nil {
			uc.logger.Warn("UpdateListing: failed to publish event", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return listing, nil
}

func (uc *ListingUsecase) DeleteListing(ctx context.Context, id, actorID string) error {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return ErrListingNotFound
		}
		return err
	}

	if !domain.CanModify(listing.UserRef, actorID) {
		uc.logger.Warn("DeleteListing: forbidden",
			zap.String("listing_id", id), zap.String("owner_id", listing.UserRef), zap.String("actor_id", actorID))
		return ErrForbidden
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("DeleteListing: failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, id); err != nil {
			uc.logger.Warn("DeleteListing: cache invalidation failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, "listing.deleted", map[string]string{"id": id}); err != nil {
			uc.logger.Warn("DeleteListing: failed to publish event", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return nil
}

func applyUpdate(listing *domain.Listing, update ListingUpdate) {
	if update.Name != nil {
		listing.Name = *update.Name
	}
	if update.Description != nil {
		listing.Description = *update.Description
	}
	if update.Address != nil {
		listing.Address = *update.Address
	}
	if update.Type != nil {
		listing.Type = *update.Type
	}
	if update.RegularPrice != nil {
		listing.RegularPrice = *update.RegularPrice
	}
	if update.DiscountPrice != nil {
		listing.DiscountPrice = *update.DiscountPrice
	}
	if update.Offer != nil {
		listing.Offer = *update.Offer
	}
	if update.Bedrooms != nil {
		listing.Bedrooms = *update.Bedrooms
	}
	if update.Bathrooms != nil {
		listing.Bathrooms = *update.Bathrooms
	}
	if update.Parking != nil {
		listing.Parking = *update.Parking
	}
	if update.Furnished != nil {
		listing.Furnished = *update.Furnished
	}
	if update.ImageURLs != nil {
		listing.ImageURLs = update.ImageURLs
	}
	if update.ContactEmail != nil {
		listing.ContactEmail = *update.ContactEmail
	}
	if update.ContactPhone != nil {
		listing.ContactPhone = *update.ContactPhone
	}
	listing.UpdatedAt = time.Now()
}
