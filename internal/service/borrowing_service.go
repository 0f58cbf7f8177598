package service

import (
	"context"
	"errors"
	"log"
	"time"

	dom "github.com/KevinDwiRizky/library-backend/internal/domain"
	"github.com/KevinDwiRizky/library-backend/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BorrowingService orchestrates the borrow and return workflows across the
// member, book, and borrowing repositories, and serves loan listings.
type BorrowingService struct {
	borrowings repo.BorrowingRepo
	members    repo.MemberRepo
	books      repo.BookRepo
}

// NewBorrowingService returns a new BorrowingService.
func NewBorrowingService(borrowings repo.BorrowingRepo, members repo.MemberRepo, books repo.BookRepo) *BorrowingService {
	return &BorrowingService{borrowings: borrowings, members: members, books: books}
}

// ReturnResult is the outcome of a return. UpdatedMember is set only when
// the return was late and a penalty was applied.
type ReturnResult struct {
	Borrowing     dom.Borrowing
	UpdatedMember *dom.Member
}

// Borrow lends a book to a member. Preconditions are checked in order:
// member exists, member not under penalty, book exists, stock available.
// The stock decrement is conditional on a positive count, so two
// concurrent borrows of the last copy cannot both succeed.
func (s *BorrowingService) Borrow(ctx context.Context, memberID, bookID primitive.ObjectID) (dom.BorrowingDetail, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.BorrowingDetail{}, ErrMemberNotFound
		}
		return dom.BorrowingDetail{}, err
	}

	now := time.Now().UTC()
	if member.UnderPenalty(now) {
		return dom.BorrowingDetail{}, ErrMemberUnderPenalty
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.BorrowingDetail{}, ErrBookNotFound
		}
		return dom.BorrowingDetail{}, err
	}
	if book.Stock == 0 {
		return dom.BorrowingDetail{}, ErrBookUnavailable
	}

	if err := s.books.DecrementStock(ctx, bookID); err != nil {
		if errors.Is(err, repo.ErrNoStock) {
			return dom.BorrowingDetail{}, ErrBookUnavailable
		}
		return dom.BorrowingDetail{}, err
	}

	finalReturnDate := now.Add(dom.LoanPeriod)
	rec, err := s.borrowings.Create(ctx, dom.Borrowing{
		MemberID:        memberID,
		BookID:          bookID,
		BorrowedAt:      now,
		FinalReturnDate: finalReturnDate,
		// Placeholder until the actual return overwrites it.
		ReturnDate: finalReturnDate,
		Returned:   false,
	})
	if err != nil {
		return dom.BorrowingDetail{}, err
	}

	return s.borrowings.GetDetailByID(ctx, rec.ID)
}

// Return closes a loan with the caller-supplied actual return date. A late
// return extends the member's penalty window to returnDate + 3 days. The
// book's stock is restored in both branches, after the response has been
// prepared; a member or book that disappeared in the meantime is logged
// and skipped without failing the return.
func (s *BorrowingService) Return(ctx context.Context, id primitive.ObjectID, returnDate time.Time) (ReturnResult, error) {
	rec, err := s.borrowings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ReturnResult{}, ErrBorrowingNotFound
		}
		return ReturnResult{}, err
	}
	if rec.Returned {
		return ReturnResult{}, ErrAlreadyReturned
	}

	rec, err = s.borrowings.MarkReturned(ctx, id, returnDate)
	if err != nil {
		// Lost the race with a concurrent return of the same record.
		if errors.Is(err, repo.ErrNotFound) {
			return ReturnResult{}, ErrAlreadyReturned
		}
		return ReturnResult{}, err
	}

	result := ReturnResult{Borrowing: rec}
	if rec.Late(returnDate) {
		penaltyEnd := returnDate.Add(dom.PenaltyPeriod)
		member, err := s.members.SetPenaltyEndDate(ctx, rec.MemberID, penaltyEnd)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			log.Printf("return %s: member %s no longer exists, penalty skipped", id.Hex(), rec.MemberID.Hex())
		case err != nil:
			return ReturnResult{}, err
		default:
			result.UpdatedMember = &member
		}
	}

	if err := s.books.IncrementStock(ctx, rec.BookID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Printf("return %s: book %s no longer exists, stock not restored", id.Hex(), rec.BookID.Hex())
		} else {
			return ReturnResult{}, err
		}
	}

	return result, nil
}

// List returns all loan records annotated with member and book summaries.
func (s *BorrowingService) List(ctx context.Context) ([]dom.BorrowingDetail, error) {
	return s.borrowings.Find(ctx, repo.BorrowingFilter{})
}

// Search returns the annotated records matching every supplied filter;
// absent filters impose no constraint.
func (s *BorrowingService) Search(ctx context.Context, memberID, bookID *primitive.ObjectID) ([]dom.BorrowingDetail, error) {
	return s.borrowings.Find(ctx, repo.BorrowingFilter{MemberID: memberID, BookID: bookID})
}

// GetByID returns one annotated loan record.
func (s *BorrowingService) GetByID(ctx context.Context, id primitive.ObjectID) (dom.BorrowingDetail, error) {
	d, err := s.borrowings.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.BorrowingDetail{}, ErrBorrowingNotFound
		}
		return dom.BorrowingDetail{}, err
	}
	return d, nil
}
