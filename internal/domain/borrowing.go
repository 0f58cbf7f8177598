package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loan durations fixed by the business rules: every loan is due seven days
// after it starts, and a late return penalizes the member for three days
// past the actual return date.
const (
	LoanPeriod    = 7 * 24 * time.Hour
	PenaltyPeriod = 3 * 24 * time.Hour
)

// Borrowing is one loan transaction linking a member to a book. It stores
// only identity references; display fields are joined in at read time.
//
// ReturnDate starts out equal to FinalReturnDate and is overwritten with
// the actual return date when the loan is closed.
type Borrowing struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID        primitive.ObjectID `bson:"memberId" json:"memberId"`
	BookID          primitive.ObjectID `bson:"bookId" json:"bookId"`
	BorrowedAt      time.Time          `bson:"borrowedAt" json:"borrowedAt"`
	FinalReturnDate time.Time          `bson:"finalReturnDate" json:"finalReturnDate"`
	ReturnDate      time.Time          `bson:"returnDate" json:"returnDate"`
	Returned        bool               `bson:"returned" json:"returned"`
}

// Late reports whether the given actual return date misses the due date.
func (b Borrowing) Late(returnDate time.Time) bool {
	return returnDate.After(b.FinalReturnDate)
}

// BorrowingDetail is a Borrowing annotated with member and book display
// fields. Either summary is nil when the referenced document no longer
// exists.
type BorrowingDetail struct {
	Borrowing `bson:",inline"`

	Member *MemberSummary `bson:"member,omitempty" json:"member,omitempty"`
	Book   *BookSummary   `bson:"book,omitempty" json:"book,omitempty"`
}
