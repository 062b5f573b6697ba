package domain

import "time"

type ListingType string

const (
	TypeRent ListingType = "rent"
	TypeSale ListingType = "sale"
)

type Listing struct {
	ID            string      `json:"_id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Address       string      `json:"address"`
	Type          ListingType `json:"type"`
	RegularPrice  float64     `json:"regularPrice"`
	DiscountPrice float64     `json:"discountPrice"`
	Offer         bool        `json:"offer"`
	Bedrooms      int         `json:"bedrooms"`
	Bathrooms     int         `json:"bathrooms"`
	Parking       bool        `json:"parking"`
	Furnished     bool        `json:"furnished"`
	ImageURLs     []string    `json:"imageUrls"`
	UserRef       string      `json:"userRef"`
	ContactEmail  string      `json:"contactEmail,omitempty"`
	ContactPhone  string      `json:"contactPhone,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Validate checks the fields the datastore schema would reject.
func (l *Listing) Validate() error {
	if l.Name == "" || l.Description == "" || l.Address == "" {
		return ErrInvalidListingData
	}
	if l.Type != TypeRent && l.Type != TypeSale {
		return ErrInvalidListingData
	}
	if l.RegularPrice < 0 || l.DiscountPrice < 0 {
		return ErrInvalidListingData
	}
	if l.Offer && l.DiscountPrice > l.RegularPrice {
		return ErrInvalidListingData
	}
	return nil
}

// Filter describes the query parameters of the listing search endpoint.
// Nil boolean pointers mean "either value".
type Filter struct {
	SearchTerm string
	Type       ListingType
	Offer      *bool
	Furnished  *bool
	Parking    *bool
	UserRef    string
	Sort       string
	Order      string
	Limit      int64
	StartIndex int64
}
