package repo

import (
	"context"
	"errors"
	"time"

	dom "github.com/KevinDwiRizky/library-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MemberRepo provides member persistence.
type MemberRepo interface {
	Create(ctx context.Context, m dom.Member) (dom.Member, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (dom.Member, error)
	List(ctx context.Context) ([]dom.Member, error)
	Update(ctx context.Context, m dom.Member) (dom.Member, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// SetPenaltyEndDate moves the member's penalty window and returns the
	// updated member. ErrNotFound when the member is gone.
	SetPenaltyEndDate(ctx context.Context, id primitive.ObjectID, end time.Time) (dom.Member, error)
}

// MongoMemberRepo implements MemberRepo on a MongoDB collection.
type MongoMemberRepo struct {
	col *mongo.Collection
}

// NewMongoMemberRepo returns a new MongoMemberRepo.
func NewMongoMemberRepo(db *mongo.Database) *MongoMemberRepo {
	return &MongoMemberRepo{col: db.Collection("members")}
}

func (r *MongoMemberRepo) Create(ctx context.Context, m dom.Member) (dom.Member, error) {
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dom.Member{}, ErrDuplicateCode
		}
		return dom.Member{}, err
	}
	m.ID = res.InsertedID.(primitive.ObjectID)
	return m, nil
}

func (r *MongoMemberRepo) GetByID(ctx context.Context, id primitive.ObjectID) (dom.Member, error) {
	var m dom.Member
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Member{}, ErrNotFound
	}
	return m, err
}

func (r *MongoMemberRepo) List(ctx context.Context) ([]dom.Member, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var list []dom.Member
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *MongoMemberRepo) Update(ctx context.Context, m dom.Member) (dom.Member, error) {
	set := bson.M{"code": m.Code, "name": m.Name}
	if m.PenaltyEndDate != nil {
		set["penaltyEndDate"] = *m.PenaltyEndDate
	}
	res, err := r.col.UpdateByID(ctx, m.ID, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dom.Member{}, ErrDuplicateCode
		}
		return dom.Member{}, err
	}
	if res.MatchedCount == 0 {
		return dom.Member{}, ErrNotFound
	}
	return m, nil
}

func (r *MongoMemberRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoMemberRepo) SetPenaltyEndDate(ctx context.Context, id primitive.ObjectID, end time.Time) (dom.Member, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m dom.Member
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"penaltyEndDate": end}},
		opts,
	).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Member{}, ErrNotFound
	}
	return m, err
}
