package repo

import (
	"context"
	"errors"

	dom "github.com/KevinDwiRizky/library-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookRepo provides book persistence.
type BookRepo interface {
	Create(ctx context.Context, b dom.Book) (dom.Book, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (dom.Book, error)
	List(ctx context.Context) ([]dom.Book, error)
	Update(ctx context.Context, b dom.Book) (dom.Book, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DecrementStock takes one copy off the shelf. It is conditional on
	// stock > 0 so concurrent borrows can never drive stock negative;
	// ErrNoStock when no copy was available.
	DecrementStock(ctx context.Context, id primitive.ObjectID) error
	// IncrementStock puts one copy back. ErrNotFound when the book is gone.
	IncrementStock(ctx context.Context, id primitive.ObjectID) error
}

// MongoBookRepo implements BookRepo on a MongoDB collection.
type MongoBookRepo struct {
	col *mongo.Collection
}

// NewMongoBookRepo returns a new MongoBookRepo.
func NewMongoBookRepo(db *mongo.Database) *MongoBookRepo {
	return &MongoBookRepo{col: db.Collection("books")}
}

func (r *MongoBookRepo) Create(ctx context.Context, b dom.Book) (dom.Book, error) {
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dom.Book{}, ErrDuplicateCode
		}
		return dom.Book{}, err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return b, nil
}

func (r *MongoBookRepo) GetByID(ctx context.Context, id primitive.ObjectID) (dom.Book, error) {
	var b dom.Book
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Book{}, ErrNotFound
	}
	return b, err
}

func (r *MongoBookRepo) List(ctx context.Context) ([]dom.Book, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var list []dom.Book
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *MongoBookRepo) Update(ctx context.Context, b dom.Book) (dom.Book, error) {
	update := bson.M{"$set": bson.M{
		"code":   b.Code,
		"title":  b.Title,
		"author": b.Author,
		"stock":  b.Stock,
	}}
	res, err := r.col.UpdateByID(ctx, b.ID, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dom.Book{}, ErrDuplicateCode
		}
		return dom.Book{}, err
	}
	if res.MatchedCount == 0 {
		return dom.Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MongoBookRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoBookRepo) DecrementStock(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "stock": bson.M{"$gt": 0}}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stock": -1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoStock
	}
	return nil
}

func (r *MongoBookRepo) IncrementStock(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"stock": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
