package dto

import dom "github.com/KevinDwiRizky/library-backend/internal/domain"

// CreateBookRequest is the JSON body for POST /book.
type CreateBookRequest struct {
	Code   string `json:"code" binding:"required"`
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
	Stock  *int   `json:"stock" binding:"required,gte=0"`
}

// UpdateBookRequest is the JSON body for PUT /book/{id}. Nil fields are
// left unchanged.
type UpdateBookRequest struct {
	Code   *string `json:"code" binding:"omitempty,min=1"`
	Title  *string `json:"title" binding:"omitempty,min=1"`
	Author *string `json:"author" binding:"omitempty,min=1"`
	Stock  *int    `json:"stock" binding:"omitempty,gte=0"`
}

// BookResponse is the JSON shape of a catalog entry.
type BookResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Stock  int    `json:"stock"`
}

// FromBook converts a domain book to its response shape.
func FromBook(b dom.Book) BookResponse {
	return BookResponse{
		ID:     b.ID.Hex(),
		Code:   b.Code,
		Title:  b.Title,
		Author: b.Author,
		Stock:  b.Stock,
	}
}

// FromBooks converts a list of domain books.
func FromBooks(list []dom.Book) []BookResponse {
	out := make([]BookResponse, len(list))
	for i := range list {
		out[i] = FromBook(list[i])
	}
	return out
}
