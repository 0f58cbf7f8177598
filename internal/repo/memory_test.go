package repo

import (
	"context"
	"testing"
	"time"

	dom "github.com/KevinDwiRizky/library-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ctx = context.Background()

func TestMemoryBookRepoStockGuards(t *testing.T) {
	books := NewMemoryBookRepo()
	b, err := books.Create(ctx, dom.Book{Code: "B1", Title: "T", Author: "A", Stock: 1})
	require.NoError(t, err)

	require.NoError(t, books.DecrementStock(ctx, b.ID))
	assert.ErrorIs(t, books.DecrementStock(ctx, b.ID), ErrNoStock, "cannot go below zero")

	require.NoError(t, books.IncrementStock(ctx, b.ID))
	got, err := books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	assert.ErrorIs(t, books.DecrementStock(ctx, primitive.NewObjectID()), ErrNoStock)
	assert.ErrorIs(t, books.IncrementStock(ctx, primitive.NewObjectID()), ErrNotFound)
}

func TestMemoryBookRepoUniqueCode(t *testing.T) {
	books := NewMemoryBookRepo()
	b1, err := books.Create(ctx, dom.Book{Code: "B1"})
	require.NoError(t, err)
	_, err = books.Create(ctx, dom.Book{Code: "B1"})
	assert.ErrorIs(t, err, ErrDuplicateCode)

	b2, err := books.Create(ctx, dom.Book{Code: "B2"})
	require.NoError(t, err)
	b2.Code = "B1"
	_, err = books.Update(ctx, b2)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	b1.Title = "renamed"
	_, err = books.Update(ctx, b1)
	assert.NoError(t, err, "updating a book keeping its own code")
}

func TestMemoryBorrowingRepoMarkReturnedOnce(t *testing.T) {
	members := NewMemoryMemberRepo()
	books := NewMemoryBookRepo()
	borrowings := NewMemoryBorrowingRepo(members, books)

	now := time.Now().UTC()
	rec, err := borrowings.Create(ctx, dom.Borrowing{
		MemberID:        primitive.NewObjectID(),
		BookID:          primitive.NewObjectID(),
		BorrowedAt:      now,
		FinalReturnDate: now.Add(dom.LoanPeriod),
		ReturnDate:      now.Add(dom.LoanPeriod),
	})
	require.NoError(t, err)

	got, err := borrowings.MarkReturned(ctx, rec.ID, now)
	require.NoError(t, err)
	assert.True(t, got.Returned)
	assert.Equal(t, now, got.ReturnDate)

	_, err = borrowings.MarkReturned(ctx, rec.ID, now)
	assert.ErrorIs(t, err, ErrNotFound, "second close finds no open record")
}
