package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/KevinDwiRizky/library-backend/internal/domain"
	"github.com/KevinDwiRizky/library-backend/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookService handles catalog administration.
type BookService struct {
	books repo.BookRepo
}

// NewBookService returns a new BookService.
func NewBookService(books repo.BookRepo) *BookService {
	return &BookService{books: books}
}

func (s *BookService) Create(ctx context.Context, code, title, author string, stock int) (dom.Book, error) {
	if stock < 0 {
		return dom.Book{}, ErrNegativeStock
	}
	b, err := s.books.Create(ctx, dom.Book{
		Code:   strings.TrimSpace(code),
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Stock:  stock,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateCode) {
			return dom.Book{}, ErrDuplicateCode
		}
		return dom.Book{}, err
	}
	return b, nil
}

func (s *BookService) List(ctx context.Context) ([]dom.Book, error) {
	return s.books.List(ctx)
}

// Update applies a partial field replace: nil fields keep the stored value.
func (s *BookService) Update(ctx context.Context, id primitive.ObjectID, code, title, author *string, stock *int) (dom.Book, error) {
	existing, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Book{}, ErrBookNotFound
		}
		return dom.Book{}, err
	}
	patch := existing
	if code != nil {
		patch.Code = strings.TrimSpace(*code)
	}
	if title != nil {
		patch.Title = strings.TrimSpace(*title)
	}
	if author != nil {
		patch.Author = strings.TrimSpace(*author)
	}
	if stock != nil {
		if *stock < 0 {
			return dom.Book{}, ErrNegativeStock
		}
		patch.Stock = *stock
	}
	b, err := s.books.Update(ctx, patch)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return dom.Book{}, ErrBookNotFound
		case errors.Is(err, repo.ErrDuplicateCode):
			return dom.Book{}, ErrDuplicateCode
		}
		return dom.Book{}, err
	}
	return b, nil
}

func (s *BookService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.books.Delete(ctx, id)
}
