package dto

import (
	"time"

	dom "github.com/KevinDwiRizky/library-backend/internal/domain"
)

// CreateMemberRequest is the JSON body for POST /member.
type CreateMemberRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// UpdateMemberRequest is the JSON body for PUT /member/{id}. Nil fields
// are left unchanged.
type UpdateMemberRequest struct {
	Code *string `json:"code" binding:"omitempty,min=1"`
	Name *string `json:"name" binding:"omitempty,min=1"`
}

// MemberResponse is the JSON shape of a member.
type MemberResponse struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	PenaltyEndDate *time.Time `json:"penaltyEndDate,omitempty"`
}

// FromMember converts a domain member to its response shape.
func FromMember(m dom.Member) MemberResponse {
	return MemberResponse{
		ID:             m.ID.Hex(),
		Code:           m.Code,
		Name:           m.Name,
		PenaltyEndDate: m.PenaltyEndDate,
	}
}

// FromMembers converts a list of domain members.
func FromMembers(list []dom.Member) []MemberResponse {
	out := make([]MemberResponse, len(list))
	for i := range list {
		out[i] = FromMember(list[i])
	}
	return out
}
