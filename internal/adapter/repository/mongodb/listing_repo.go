package mongodb

import (
	"context"
	"errors"
	"time"

	"estate-marketplace/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultSearchLimit = 9

type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection("listings")}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = time.Now()

	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		listing.ID = oid.Hex()
	}
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	listing.UpdatedAt = time.Now()

	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateByID(ctx, doc.ID, bson.M{"$set": doc})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var doc listingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainListing(&doc), nil
}

// FindByFilter translates the search endpoint's query parameters into a
// Mongo query. Absent boolean filters match both values.
func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	query := bson.M{}

	if filter.SearchTerm != "" {
		query["name"] = bson.M{"$regex": filter.SearchTerm, "$options": "i"}
	}
	if filter.Type == domain.TypeRent || filter.Type == domain.TypeSale {
		query["type"] = string(filter.Type)
	}
	if filter.Offer != nil {
		query["offer"] = *filter.Offer
	}
	if filter.Furnished != nil {
		query["furnished"] = *filter.Furnished
	}
	if filter.Parking != nil {
		query["parking"] = *filter.Parking
	}
	if filter.UserRef != "" {
		query["user_ref"] = filter.UserRef
	}

	sortField := "created_at"
	switch filter.Sort {
	case "regularPrice":
		sortField = "regular_price"
	case "createdAt", "":
		sortField = "created_at"
	}
	sortOrder := -1
	if filter.Order == "asc" {
		sortOrder = 1
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortOrder}}).
		SetLimit(limit).
		SetSkip(filter.StartIndex)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings, nil
}
