package usecase

import (
	"context"
	"testing"

	"estate-marketplace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockListingRepo struct {
	listings map[string]*domain.Listing
	filter   domain.Filter
}

func newMockListingRepo() *mockListingRepo {
	return &mockListingRepo{listings: map[string]*domain.Listing{}}
}

func (m *mockListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	l.ID = "listing-1"
	m.listings[l.ID] = l
	return nil
}

func (m *mockListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	if _, ok := m.listings[l.ID]; !ok {
		return domain.ErrListingNotFound
	}
	m.listings[l.ID] = l
	return nil
}

func (m *mockListingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(m.listings, id)
	return nil
}

func (m *mockListingRepo) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	l, ok := m.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *mockListingRepo) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	m.filter = filter
	out := make([]*domain.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		out = append(out, l)
	}
	return out, nil
}

type mockUserRepo struct {
	users map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*domain.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = "user-1"
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type mockPublisher struct {
	subjects []string
}

func (m *mockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	m.subjects = append(m.subjects, subject)
	return nil
}

type mockCache struct {
	listings map[string]*domain.Listing
	deleted  []string
}

func newMockCache() *mockCache {
	return &mockCache{listings: map[string]*domain.Listing{}}
}

func (m *mockCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	return m.listings[id], nil
}

func (m *mockCache) SetListing(ctx context.Context, l *domain.Listing) error {
	m.listings[l.ID] = l
	return nil
}

func (m *mockCache) DeleteListing(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.listings, id)
	return nil
}

func validListing(owner string) *domain.Listing {
	return &domain.Listing{
		Name:          "Cozy flat",
		Description:   "Two rooms near the park",
		Address:       "12 Green St",
		Type:          domain.TypeRent,
		RegularPrice:  2000,
		DiscountPrice: 1800,
		Offer:         true,
		UserRef:       owner,
	}
}

func TestCreateListing(t *testing.T) {
	repo := newMockListingRepo()
	users := newMockUserRepo()
	pub := &mockPublisher{}
	uc := NewListingUsecase(repo, users, zap.NewNop()).WithPublisher(pub)

	created, err := uc.CreateListing(context.Background(), "owner-1", validListing(""))
	require.NoError(t, err)
	assert.Equal(t, "owner-1", created.UserRef)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"listing.created"}, pub.subjects)
}

func TestCreateListing_Invalid(t *testing.T) {
	uc := NewListingUsecase(newMockListingRepo(), newMockUserRepo(), zap.NewNop())

	bad := validListing("")
	bad.Name = ""
	_, err := uc.CreateListing(context.Background(), "owner-1", bad)
	assert.ErrorIs(t, err, ErrInvalidListing)
}

func TestGetListingByID_NotFound(t *testing.T) {
	uc := NewListingUsecase(newMockListingRepo(), newMockUserRepo(), zap.NewNop())

	_, err := uc.GetListingByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestGetListingByID_FillsCache(t *testing.T) {
	repo := newMockListingRepo()
	cache := newMockCache()
	uc := NewListingUsecase(repo, newMockUserRepo(), zap.NewNop()).WithCache(cache)

	created, err := uc.CreateListing(context.Background(), "owner-1", validListing(""))
	require.NoError(t, err)

	got, err := uc.GetListingByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotNil(t, cache.listings[created.ID])

	// Second read is served from the cache even after the repo forgets it.
	delete(repo.listings, created.ID)
	again, err := uc.GetListingByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)
}

func TestUpdateListing_OwnerOnly(t *testing.T) {
	repo := newMockListingRepo()
	uc := NewListingUsecase(repo, newMockUserRepo(), zap.NewNop())

	created, err := uc.CreateListing(context.Background(), "owner-1", validListing(""))
	require.NoError(t, err)

	name := "Renamed flat"
	_, err = uc.UpdateListing(context.Background(), created.ID, "intruder", ListingUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := uc.UpdateListing(context.Background(), created.ID, "owner-1", ListingUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed flat", updated.Name)
	assert.Equal(t, "owner-1", updated.UserRef)
}

func TestUpdateListing_NotFound(t *testing.T) {
	uc := NewListingUsecase(newMockListingRepo(), newMockUserRepo(), zap.NewNop())

	_, err := uc.UpdateListing(context.Background(), "missing", "owner-1", ListingUpdate{})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestUpdateListing_InvalidatesCache(t *testing.T) {
	repo := newMockListingRepo()
	cache := newMockCache()
	uc := NewListingUsecase(repo, newMockUserRepo(), zap.NewNop()).WithCache(cache)

	created, err := uc.CreateListing(context.Background(), "owner-1", validListing(""))
	require.NoError(t, err)
	_, err = uc.GetListingByID(context.Background(), created.ID)
	require.NoError(t, err)

	name := "Renamed"
	_, err = uc.UpdateListing(context.Background(), created.ID, "owner-1", ListingUpdate{Name: &name})
	require.NoError(t, err)
	assert.Contains(t, cache.deleted, created.ID)
}

func TestDeleteListing_OwnerOnly(t *testing.T) {
	repo := newMockListingRepo()
	pub := &mockPublisher{}
	uc := NewListingUsecase(repo, newMockUserRepo(), zap.NewNop()).WithPublisher(pub)

	created, err := uc.CreateListing(context.Background(), "owner-1", validListing(""))
	require.NoError(t, err)

	err = uc.DeleteListing(context.Background(), created.ID, "intruder")
	assert.ErrorIs(t, err, ErrForbidden)

	err = uc.DeleteListing(context.Background(), created.ID, "owner-1")
	require.NoError(t, err)
	assert.Contains(t, pub.subjects, "listing.deleted")

	_, err = uc.GetListingByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestSearchListings_PassesFilter(t *testing.T) {
	repo := newMockListingRepo()
	uc := NewListingUsecase(repo, newMockUserRepo(), zap.NewNop())

	offer := true
	_, err := uc.SearchListings(context.Background(), domain.Filter{SearchTerm: "flat", Offer: &offer, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, "flat", repo.filter.SearchTerm)
	require.NotNil(t, repo.filter.Offer)
	assert.True(t, *repo.filter.Offer)
	assert.Equal(t, int64(5), repo.filter.Limit)
}

func TestDeleteListing_NotFound(t *testing.T) {
	uc := NewListingUsecase(newMockListingRepo(), newMockUserRepo(), zap.NewNop())

	err := uc.DeleteListing(context.Background(), "missing", "owner-1")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestCreateListing_SendsOwnerEmail(t *testing.T) {
	repo := newMockListingRepo()
	users := newMockUserRepo()
	users.users["owner-1"] = &domain.User{ID: "owner-1", Email: "owner@example.com"}

	sent := make([]string, 0, 1)
	uc := NewListingUsecase(repo, users, zap.NewNop()).WithMailer(mailerFunc(func(to, name string) error {
		sent = append(sent, to)
		return nil
	}))

	_, err := uc.CreateListing(context.Background(), "owner-1", validListing(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@example.com"}, sent)
}

type mailerFunc func(toEmail, listingName string) error

func (f mailerFunc) SendListingCreatedEmail(toEmail, listingName string) error {
	return f(toEmail, listingName)
}
