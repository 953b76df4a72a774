package mongo

import (
	"context"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/royalsilk/storefront/internal/core/domain"
)

const productCollection = "products"

// Catalogue sizes stocked per product.
var stockedSizes = []string{"S", "M", "L"}

// ProductRepository reads the product catalogue from MongoDB.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productCollection)}
}

type variantDoc struct {
	Size  string `bson:"size"`
	Stock int    `bson:"stock"`
}

type productDoc struct {
	ID          int          `bson:"_id"`
	Name        string       `bson:"name"`
	Category    string       `bson:"category"`
	Type        string       `bson:"type"`
	Color       string       `bson:"color"`
	Material    string       `bson:"material"`
	Description string       `bson:"description"`
	BasePrice   float64      `bson:"base_price"`
	ImagePath   string       `bson:"image_path"`
	Variants    []variantDoc `bson:"variants"`
}

func (r *ProductRepository) FetchByID(ctx context.Context, id int) (*domain.Product, error) {
	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, wrapStoreError(err, "find product")
	}
	return toProduct(doc), nil
}

func (r *ProductRepository) ListPage(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapStoreError(err, "list products")
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapStoreError(err, "decode products")
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, *toProduct(doc))
	}
	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, wrapStoreError(err, "count products")
	}
	return count, nil
}

// Search matches term case-insensitively across the descriptive fields and,
// when the term parses as a number, against the base price. One result row is
// produced per stocked size variant.
func (r *ProductRepository) Search(ctx context.Context, term string) ([]domain.SearchResult, error) {
	cursor, err := r.coll.Find(ctx, searchFilter(term))
	if err != nil {
		return nil, wrapStoreError(err, "search products")
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapStoreError(err, "decode search results")
	}

	var results []domain.SearchResult
	for _, doc := range docs {
		for _, variant := range doc.Variants {
			results = append(results, domain.SearchResult{
				ProductID: doc.ID,
				Name:      doc.Name,
				Category:  doc.Category,
				Type:      doc.Type,
				Size:      variant.Size,
				Color:     doc.Color,
				Material:  doc.Material,
				Price:     doc.BasePrice,
				ImagePath: doc.ImagePath,
			})
		}
	}
	return results, nil
}

// searchFilter builds the catalogue query for a free-text term. The term is
// quoted before it reaches $regex so metacharacters match as literal text
// instead of failing server-side or matching the whole catalogue.
func searchFilter(term string) bson.M {
	regex := bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
	clauses := []bson.M{
		{"name": regex},
		{"category": regex},
		{"type": regex},
		{"color": regex},
		{"material": regex},
		{"variants.size": regex},
	}
	if price, err := strconv.ParseFloat(term, 64); err == nil {
		clauses = append(clauses, bson.M{"base_price": price})
	}
	return bson.M{"$or": clauses}
}

func toProduct(doc productDoc) *domain.Product {
	sizes := make(map[string]int, len(stockedSizes))
	for _, size := range stockedSizes {
		sizes[size] = 0
	}
	for _, variant := range doc.Variants {
		sizes[variant.Size] = variant.Stock
	}

	return &domain.Product{
		ID:          doc.ID,
		Name:        doc.Name,
		Category:    doc.Category,
		Type:        doc.Type,
		Color:       doc.Color,
		Material:    doc.Material,
		Description: doc.Description,
		BasePrice:   doc.BasePrice,
		ImagePath:   doc.ImagePath,
		Sizes:       sizes,
	}
}
