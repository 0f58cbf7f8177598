package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a registered library member. PenaltyEndDate is set one day in
// the past on creation so a fresh member is always borrow-eligible; a late
// return pushes it into the future.
type Member struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code           string             `bson:"code" json:"code"`
	Name           string             `bson:"name" json:"name"`
	PenaltyEndDate *time.Time         `bson:"penaltyEndDate,omitempty" json:"penaltyEndDate,omitempty"`
}

// UnderPenalty reports whether the member is inside an active penalty
// window at the given instant.
func (m Member) UnderPenalty(now time.Time) bool {
	return m.PenaltyEndDate != nil && m.PenaltyEndDate.After(now)
}

// MemberSummary is the subset of Member fields joined into borrowing listings.
type MemberSummary struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
	Code string             `bson:"code" json:"code"`
}
