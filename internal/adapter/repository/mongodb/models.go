package mongodb

import (
	"fmt"
	"time"

	"estate-marketplace/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listingDocument is the persisted shape of a domain.Listing.
type listingDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Address       string             `bson:"address"`
	Type          string             `bson:"type"`
	RegularPrice  float64            `bson:"regular_price"`
	DiscountPrice float64            `bson:"discount_price"`
	Offer         bool               `bson:"offer"`
	Bedrooms      int                `bson:"bedrooms"`
	Bathrooms     int                `bson:"bathrooms"`
	Parking       bool               `bson:"parking"`
	Furnished     bool               `bson:"furnished"`
	ImageURLs     []string           `bson:"image_urls,omitempty"`
	UserRef       string             `bson:"user_ref"`
	ContactEmail  string             `bson:"contact_email,omitempty"`
	ContactPhone  string             `bson:"contact_phone,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Avatar    string             `bson:"avatar,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("toListingDocument: invalid ID %q: %w", l.ID, err)
		}
	}

	return &listingDocument{
		ID:            docID,
		Name:          l.Name,
		Description:   l.Description,
		Address:       l.Address,
		Type:          string(l.Type),
		RegularPrice:  l.RegularPrice,
		DiscountPrice: l.DiscountPrice,
		Offer:         l.Offer,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		Parking:       l.Parking,
		Furnished:     l.Furnished,
		ImageURLs:     l.ImageURLs,
		UserRef:       l.UserRef,
		ContactEmail:  l.ContactEmail,
		ContactPhone:  l.ContactPhone,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	if d == nil {
		return nil
	}
	return &domain.Listing{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Description:   d.Description,
		Address:       d.Address,
		Type:          domain.ListingType(d.Type),
		RegularPrice:  d.RegularPrice,
		DiscountPrice: d.DiscountPrice,
		Offer:         d.Offer,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		Parking:       d.Parking,
		Furnished:     d.Furnished,
		ImageURLs:     d.ImageURLs,
		UserRef:       d.UserRef,
		ContactEmail:  d.ContactEmail,
		ContactPhone:  d.ContactPhone,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toUserDocument(u *domain.User) (*userDocument, error) {
	if u == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if u.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("toUserDocument: invalid ID %q: %w", u.ID, err)
		}
	}

	return &userDocument{
		ID:        docID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

func toDomainUser(d *userDocument) *domain.User {
	if d == nil {
		return nil
	}
	return &domain.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		Avatar:    d.Avatar,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
