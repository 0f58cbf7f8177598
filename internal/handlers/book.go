package handlers

import (
	"errors"
	"net/http"

	"github.com/KevinDwiRizky/library-backend/internal/dto"
	"github.com/KevinDwiRizky/library-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// BookHandler handles catalog administration endpoints.
type BookHandler struct {
	svc *service.BookService
}

// NewBookHandler returns a new BookHandler.
func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// List godoc
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Success      200  {array}   dto.BookResponse
// @Failure      500  {object}  map[string]string
// @Router       /book [get]
func (h *BookHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBooks(list))
}

// Create godoc
// @Summary      Add a book to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateBookRequest  true  "Book body"
// @Success      201   {object}  dto.BookResponse
// @Failure      400   {object}  map[string]string
// @Router       /book [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	b, err := h.svc.Create(c.Request.Context(), req.Code, req.Title, req.Author, *req.Stock)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Book code is already in use"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromBook(b))
}

// Update godoc
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Book ID"
// @Param        body  body      dto.UpdateBookRequest  true  "Partial update"
// @Success      200   {object}  dto.BookResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /book/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	b, err := h.svc.Update(c.Request.Context(), id, req.Code, req.Title, req.Author, req.Stock)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		case errors.Is(err, service.ErrDuplicateCode):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Book code is already in use"})
		case errors.Is(err, service.ErrNegativeStock):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Stock must not be negative"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromBook(b))
}

// Delete godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /book/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}
