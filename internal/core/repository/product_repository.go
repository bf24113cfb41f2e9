package repository

import (
	"context"
	"log"
	"time"

	"storefront/internal/core/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductQuery describes a catalog listing. Filter keys are the store's
// canonical (lowercased) field names; the service layer owns the
// allow-list and value parsing. Limit 0 means no limit.
type ProductQuery struct {
	Filter   map[string]interface{}
	Limit    int64
	Skip     int64
	SortBy   string
	SortDesc bool
}

type ProductRepository interface {
	Create(product *model.Product) error
	Update(product *model.Product) error
	Delete(id string) error
	// DeleteAll empties the catalog and returns the number of
	// products removed.
	DeleteAll() (int64, error)
	FindByID(id string) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	FindByUniqueKey(key string) (*model.Product, error)
	Find(query ProductQuery) ([]*model.Product, error)
	// DecrementQuantity atomically subtracts n from the product's
	// quantity, guarded by quantity >= n. It reports false when the
	// guard fails or the product does not exist.
	DecrementQuantity(id string, n int64) (bool, error)
}

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	r := &MongoProductRepository{
		collection: db.Collection("products"),
	}
	r.ensureIndexes()
	return r
}

// Name and uniqueKey uniqueness are enforced at the persistence layer.
func (r *MongoProductRepository) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"name": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.M{"uniquekey": 1},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		log.Printf("Failed to create product indexes: %v", err)
	}
}

func (r *MongoProductRepository) Create(product *model.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *MongoProductRepository) Update(product *model.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"id": product.ID}, product)
	return err
}

func (r *MongoProductRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (r *MongoProductRepository) DeleteAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MongoProductRepository) FindByID(id string) (*model.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &product, err
}

func (r *MongoProductRepository) FindByName(name string) (*model.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &product, err
}

func (r *MongoProductRepository) FindByUniqueKey(key string) (*model.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"uniquekey": key}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &product, err
}

func (r *MongoProductRepository) Find(query ProductQuery) ([]*model.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	for field, value := range query.Filter {
		filter[field] = value
	}

	sortDir := 1
	if query.SortDesc {
		sortDir = -1
	}
	opts := options.Find().
		SetSort(bson.M{query.SortBy: sortDir}).
		SetSkip(query.Skip)
	if query.Limit > 0 {
		opts = opts.SetLimit(query.Limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*model.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) DecrementQuantity(id string, n int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"id": id, "quantity": bson.M{"$gte": n}},
		bson.M{
			"$inc": bson.M{"quantity": -n},
			"$set": bson.M{"updatedat": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}
