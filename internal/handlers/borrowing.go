package handlers

import (
	"errors"
	"net/http"

	"github.com/KevinDwiRizky/library-backend/internal/dto"
	"github.com/KevinDwiRizky/library-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BorrowingHandler handles the borrow/return workflow and loan listings.
type BorrowingHandler struct {
	svc *service.BorrowingService
}

// NewBorrowingHandler returns a new BorrowingHandler.
func NewBorrowingHandler(svc *service.BorrowingService) *BorrowingHandler {
	return &BorrowingHandler{svc: svc}
}

// List godoc
// @Summary      List all borrowed books
// @Tags         borrowing
// @Produce      json
// @Success      200  {array}   dto.BorrowingResponse
// @Failure      500  {object}  map[string]string
// @Router       /borrowing [get]
func (h *BorrowingHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBorrowingDetails(list))
}

// Search godoc
// @Summary      Search borrowed books by member and/or book
// @Tags         borrowing
// @Produce      json
// @Param        memberId  query     string  false  "Member ID"
// @Param        bookId    query     string  false  "Book ID"
// @Success      200       {array}   dto.BorrowingResponse
// @Failure      400       {object}  map[string]string
// @Router       /borrowing/search [get]
func (h *BorrowingHandler) Search(c *gin.Context) {
	memberID, ok := parseOptionalObjectID(c, "memberId")
	if !ok {
		return
	}
	bookID, ok := parseOptionalObjectID(c, "bookId")
	if !ok {
		return
	}
	list, err := h.svc.Search(c.Request.Context(), memberID, bookID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBorrowingDetails(list))
}

// GetByID godoc
// @Summary      Get a borrowed book by ID
// @Tags         borrowing
// @Produce      json
// @Param        id   path      string  true  "Borrowing ID"
// @Success      200  {object}  dto.BorrowingResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /borrowing/{id} [get]
func (h *BorrowingHandler) GetByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBorrowingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Borrowed book not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBorrowingDetail(d))
}

// Borrow godoc
// @Summary      Borrow a book
// @Tags         borrowing
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BorrowRequest  true  "Member and book"
// @Success      201   {object}  dto.BorrowingResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /borrowing [post]
func (h *BorrowingHandler) Borrow(c *gin.Context) {
	var req dto.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid memberId"})
		return
	}
	bookID, err := primitive.ObjectIDFromHex(req.BookID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bookId"})
		return
	}

	d, err := h.svc.Borrow(c.Request.Context(), memberID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Member not found"})
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		case errors.Is(err, service.ErrMemberUnderPenalty):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Member is under penalty. Cannot borrow books"})
		case errors.Is(err, service.ErrBookUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Book is not available for borrowing"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.FromBorrowingDetail(d))
}

// Return godoc
// @Summary      Return a borrowed book
// @Tags         borrowing
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Borrowing ID"
// @Param        body  body      dto.ReturnRequest  true  "Actual return date"
// @Success      200   {object}  dto.ReturnResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /borrowing/return/{id} [put]
func (h *BorrowingHandler) Return(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req dto.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	returnDate := req.ReturnDate.Time()
	if returnDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "returnDate is required"})
		return
	}

	result, err := h.svc.Return(c.Request.Context(), id, returnDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBorrowingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Borrowed book not found"})
		case errors.Is(err, service.ErrAlreadyReturned):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Book has already been returned"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		}
		return
	}

	resp := dto.ReturnResponse{Borrowing: dto.FromBorrowing(result.Borrowing)}
	if result.UpdatedMember != nil {
		m := dto.FromMember(*result.UpdatedMember)
		resp.UpdatedMember = &m
	}
	c.JSON(http.StatusOK, resp)
}

func parseOptionalObjectID(c *gin.Context, name string) (*primitive.ObjectID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return nil, false
	}
	return &id, true
}
