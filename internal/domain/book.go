package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Book is a catalog entry. Stock is the number of copies currently
// available to lend and never goes below zero.
type Book struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code   string             `bson:"code" json:"code"`
	Title  string             `bson:"title" json:"title"`
	Author string             `bson:"author" json:"author"`
	Stock  int                `bson:"stock" json:"stock"`
}

// BookSummary is the subset of Book fields joined into borrowing listings.
type BookSummary struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Title  string             `bson:"title" json:"title"`
	Author string             `bson:"author" json:"author"`
}
