package service

import "errors"

var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrBookNotFound      = errors.New("book not found")
	ErrBorrowingNotFound = errors.New("borrowed book not found")

	ErrMemberUnderPenalty = errors.New("member is under penalty")
	ErrBookUnavailable    = errors.New("book is not available for borrowing")
	ErrAlreadyReturned    = errors.New("book has already been returned")

	ErrDuplicateCode = errors.New("code is already in use")
	ErrNegativeStock = errors.New("stock must not be negative")
)
