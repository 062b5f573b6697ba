package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"estate-marketplace/internal/domain"
)

const copiedResetDelay = 2 * time.Second

// ListingDetailsView backs the listing-details screen: one listing, a
// loading flag, and the copy-link affordance with its timed confirmation.
type ListingDetailsView struct {
	api *Client

	mu      sync.Mutex
	listing *domain.Listing
	loading bool
	err     string
	copied  bool

	clipboard func(string) error
	afterFunc func(time.Duration, func()) *time.Timer
}

func NewListingDetailsView(api *Client) *ListingDetailsView {
	return &ListingDetailsView{
		api:       api,
		clipboard: func(string) error { return nil },
		afterFunc: time.AfterFunc,
	}
}

// Load fetches the listing. The loading flag is observable for the whole
// duration of the fetch.
func (v *ListingDetailsView) Load(ctx context.Context, id string) error {
	v.mu.Lock()
	v.loading = true
	v.err = ""
	v.mu.Unlock()

	listing, err := v.api.GetListing(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.err = err.Error()
		return err
	}
	v.listing = listing
	return nil
}

func (v *ListingDetailsView) Listing() *domain.Listing {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.listing
}

func (v *ListingDetailsView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Discount is the displayed saving for an offer listing.
func (v *ListingDetailsView) Discount() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.listing == nil || !v.listing.Offer {
		return 0
	}
	return v.listing.RegularPrice - v.listing.DiscountPrice
}

// DiscountBadge renders the "$N discount" badge, or "" when there is no
// offer.
func (v *ListingDetailsView) DiscountBadge() string {
	d := v.Discount()
	if d <= 0 {
		return ""
	}
	return fmt.Sprintf("$%d discount", int(d))
}

// PriceLabel is the headline price: the discounted price when on offer,
// with the rent suffix for rentals.
func (v *ListingDetailsView) PriceLabel() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.listing == nil {
		return ""
	}
	price := v.listing.RegularPrice
	if v.listing.Offer {
		price = v.listing.DiscountPrice
	}
	label := fmt.Sprintf("$%d", int(price))
	if v.listing.Type == domain.TypeRent {
		label += " / month"
	}
	return label
}

// ShowContact reports whether the contact panel is rendered: only for an
// authenticated viewer who does not own the listing.
func (v *ListingDetailsView) ShowContact(viewerID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.listing == nil || viewerID == "" {
		return false
	}
	return v.listing.UserRef != viewerID
}

// CopyLink copies the listing URL and shows the confirmation for two
// seconds.
func (v *ListingDetailsView) CopyLink(url string) error {
	if err := v.clipboard(url); err != nil {
		return err
	}

	v.mu.Lock()
	v.copied = true
	v.mu.Unlock()

	v.afterFunc(copiedResetDelay, func() {
		v.mu.Lock()
		v.copied = false
		v.mu.Unlock()
	})
	return nil
}

func (v *ListingDetailsView) Copied() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.copied
}
