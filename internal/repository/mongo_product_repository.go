package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"products-api/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDocument is the stored shape of a product.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
}

func (d productDocument) toModel() model.Product {
	return model.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
	}
}

// mongoProductRepository implements the ProductRepository interface using a MongoDB collection.
type mongoProductRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewMongoProductRepository creates a new MongoDB-backed product repository.
func NewMongoProductRepository(collection *mongo.Collection, logger zerolog.Logger) ProductRepository {
	return &mongoProductRepository{
		collection: collection,
		logger:     logger.With().Str("repository", "product").Str("store", "mongo").Logger(),
	}
}

// GetAll retrieves all products in the collection's natural order.
func (r *mongoProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := r.find(ctx, bson.D{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID. IDs that are not valid
// ObjectIDs cannot match any document and yield an empty result.
func (r *mongoProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		r.logger.Debug().Str("product_id", id).Msg("product not found: malformed id")
		return nil, nil
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	p := doc.toModel()
	return &p, nil
}

// SearchByTitle retrieves products whose title contains text, case-insensitively.
func (r *mongoProductRepository) SearchByTitle(ctx context.Context, text string) ([]model.Product, error) {
	filter := bson.M{
		"title": primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"},
	}

	products, err := r.find(ctx, filter)
	if err != nil {
		r.logger.Error().Err(err).Str("title", text).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// Save inserts a product with a fresh ObjectID when it has no ID and
// otherwise replaces the document with the same ID.
func (r *mongoProductRepository) Save(ctx context.Context, product model.Product) (*model.Product, error) {
	doc := productDocument{
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
	}

	if product.ID == "" {
		doc.ID = primitive.NewObjectID()
		if _, err := r.collection.InsertOne(ctx, doc); err != nil {
			r.logger.Error().Err(err).Msg("failed to insert product")
			return nil, fmt.Errorf("failed to insert product: %w", err)
		}
		saved := doc.toModel()
		return &saved, nil
	}

	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", product.ID, err)
	}
	doc.ID = oid

	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to replace product")
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	saved := doc.toModel()
	return &saved, nil
}

// Delete removes a product by its ID.
func (r *mongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().
		Str("product_id", id).
		Int64("deleted", res.DeletedCount).
		Msg("product deleted")

	return nil
}

// DeleteAll removes every product.
func (r *mongoProductRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.D{}); err != nil {
		r.logger.Error().Err(err).Msg("failed to delete all products")
		return fmt.Errorf("failed to delete all products: %w", err)
	}
	return nil
}

func (r *mongoProductRepository) find(ctx context.Context, filter any) ([]model.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []model.Product{}
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, doc.toModel())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
