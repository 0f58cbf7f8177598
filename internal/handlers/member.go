package handlers

import (
	"errors"
	"net/http"

	"github.com/KevinDwiRizky/library-backend/internal/dto"
	"github.com/KevinDwiRizky/library-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberHandler handles member administration endpoints.
type MemberHandler struct {
	svc *service.MemberService
}

// NewMemberHandler returns a new MemberHandler.
func NewMemberHandler(svc *service.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

// List godoc
// @Summary      List all members
// @Tags         members
// @Produce      json
// @Success      200  {array}   dto.MemberResponse
// @Failure      500  {object}  map[string]string
// @Router       /member [get]
func (h *MemberHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromMembers(list))
}

// Create godoc
// @Summary      Register a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateMemberRequest  true  "Member body"
// @Success      201   {object}  dto.MemberResponse
// @Failure      400   {object}  map[string]string
// @Router       /member [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	m, err := h.svc.Create(c.Request.Context(), req.Code, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Member code is already in use"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromMember(m))
}

// Update godoc
// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Member ID"
// @Param        body  body      dto.UpdateMemberRequest  true  "Partial update"
// @Success      200   {object}  dto.MemberResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /member/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, req.Code, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Member not found"})
		case errors.Is(err, service.ErrDuplicateCode):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Member code is already in use"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromMember(m))
}

// Delete godoc
// @Summary      Delete a member
// @Tags         members
// @Produce      json
// @Param        id   path      string  true  "Member ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /member/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}

func parseObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
