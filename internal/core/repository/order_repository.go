package repository

import (
	"context"
	"time"

	"storefront/internal/core/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	Create(order *model.Order) error
	// Delete exists for compensating a failed stock adjustment; orders
	// are otherwise immutable.
	Delete(id string) error
	// FindAll returns orders newest first. Limit 0 means no limit.
	FindAll(limit, skip int64) ([]*model.Order, error)
	// FindByUser returns one user's orders newest first. Limit 0 means
	// no limit.
	FindByUser(userID string, limit, skip int64) ([]*model.Order, error)
}

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

func (r *MongoOrderRepository) Create(order *model.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, order)
	return err
}

func (r *MongoOrderRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (r *MongoOrderRepository) FindAll(limit, skip int64) ([]*model.Order, error) {
	return r.find(bson.M{}, limit, skip)
}

func (r *MongoOrderRepository) FindByUser(userID string, limit, skip int64) ([]*model.Order, error) {
	return r.find(bson.M{"user": userID}, limit, skip)
}

func (r *MongoOrderRepository) find(filter bson.M, limit, skip int64) ([]*model.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"createdat": -1}).
		SetSkip(skip)
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*model.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
