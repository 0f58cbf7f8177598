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

// BorrowingFilter narrows borrowing listings. Nil fields impose no
// constraint; set fields must match exactly.
type BorrowingFilter struct {
	MemberID *primitive.ObjectID
	BookID   *primitive.ObjectID
}

// BorrowingRepo provides loan-transaction persistence.
type BorrowingRepo interface {
	Create(ctx context.Context, b dom.Borrowing) (dom.Borrowing, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (dom.Borrowing, error)

	// GetDetailByID and Find return records annotated with member and
	// book display fields, the way listings are served.
	GetDetailByID(ctx context.Context, id primitive.ObjectID) (dom.BorrowingDetail, error)
	Find(ctx context.Context, f BorrowingFilter) ([]dom.BorrowingDetail, error)

	// MarkReturned closes the loan with the actual return date. It is
	// conditional on returned == false; ErrNotFound when the record is
	// gone or already closed.
	MarkReturned(ctx context.Context, id primitive.ObjectID, returnDate time.Time) (dom.Borrowing, error)
}

// MongoBorrowingRepo implements BorrowingRepo on a MongoDB collection,
// joining member and book summaries with $lookup.
type MongoBorrowingRepo struct {
	col *mongo.Collection
}

// NewMongoBorrowingRepo returns a new MongoBorrowingRepo.
func NewMongoBorrowingRepo(db *mongo.Database) *MongoBorrowingRepo {
	return &MongoBorrowingRepo{col: db.Collection("borrowings")}
}

func (r *MongoBorrowingRepo) Create(ctx context.Context, b dom.Borrowing) (dom.Borrowing, error) {
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return dom.Borrowing{}, err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return b, nil
}

func (r *MongoBorrowingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (dom.Borrowing, error) {
	var b dom.Borrowing
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Borrowing{}, ErrNotFound
	}
	return b, err
}

// detailDoc is the aggregation output shape: $lookup produces arrays,
// empty when the referenced document no longer exists.
type detailDoc struct {
	dom.Borrowing `bson:",inline"`

	Member []dom.MemberSummary `bson:"member"`
	Book   []dom.BookSummary   `bson:"book"`
}

func (d detailDoc) detail() dom.BorrowingDetail {
	out := dom.BorrowingDetail{Borrowing: d.Borrowing}
	if len(d.Member) > 0 {
		out.Member = &d.Member[0]
	}
	if len(d.Book) > 0 {
		out.Book = &d.Book[0]
	}
	return out
}

func detailPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "members",
			"localField":   "memberId",
			"foreignField": "_id",
			"as":           "member",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "books",
			"localField":   "bookId",
			"foreignField": "_id",
			"as":           "book",
		}}},
	}
}

func (r *MongoBorrowingRepo) GetDetailByID(ctx context.Context, id primitive.ObjectID) (dom.BorrowingDetail, error) {
	docs, err := r.aggregate(ctx, bson.M{"_id": id})
	if err != nil {
		return dom.BorrowingDetail{}, err
	}
	if len(docs) == 0 {
		return dom.BorrowingDetail{}, ErrNotFound
	}
	return docs[0].detail(), nil
}

func (r *MongoBorrowingRepo) Find(ctx context.Context, f BorrowingFilter) ([]dom.BorrowingDetail, error) {
	match := bson.M{}
	if f.MemberID != nil {
		match["memberId"] = *f.MemberID
	}
	if f.BookID != nil {
		match["bookId"] = *f.BookID
	}
	docs, err := r.aggregate(ctx, match)
	if err != nil {
		return nil, err
	}
	out := make([]dom.BorrowingDetail, len(docs))
	for i, d := range docs {
		out[i] = d.detail()
	}
	return out, nil
}

func (r *MongoBorrowingRepo) aggregate(ctx context.Context, match bson.M) ([]detailDoc, error) {
	cur, err := r.col.Aggregate(ctx, detailPipeline(match))
	if err != nil {
		return nil, err
	}
	var docs []detailDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *MongoBorrowingRepo) MarkReturned(ctx context.Context, id primitive.ObjectID, returnDate time.Time) (dom.Borrowing, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b dom.Borrowing
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "returned": false},
		bson.M{"$set": bson.M{"returnDate": returnDate, "returned": true}},
		opts,
	).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Borrowing{}, ErrNotFound
	}
	return b, err
}
