package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "github.com/KevinDwiRizky/library-backend/internal/domain"
	"github.com/KevinDwiRizky/library-backend/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberService handles member administration.
type MemberService struct {
	members repo.MemberRepo
}

// NewMemberService returns a new MemberService.
func NewMemberService(members repo.MemberRepo) *MemberService {
	return &MemberService{members: members}
}

// Create registers a member. PenaltyEndDate starts one day in the past so
// the eligibility check on borrow never sees an unset gate.
func (s *MemberService) Create(ctx context.Context, code, name string) (dom.Member, error) {
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	m, err := s.members.Create(ctx, dom.Member{
		Code:           strings.TrimSpace(code),
		Name:           strings.TrimSpace(name),
		PenaltyEndDate: &yesterday,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateCode) {
			return dom.Member{}, ErrDuplicateCode
		}
		return dom.Member{}, err
	}
	return m, nil
}

func (s *MemberService) List(ctx context.Context) ([]dom.Member, error) {
	return s.members.List(ctx)
}

// Update applies a partial field replace: nil fields keep the stored value.
func (s *MemberService) Update(ctx context.Context, id primitive.ObjectID, code, name *string) (dom.Member, error) {
	existing, err := s.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Member{}, ErrMemberNotFound
		}
		return dom.Member{}, err
	}
	patch := existing
	if code != nil {
		patch.Code = strings.TrimSpace(*code)
	}
	if name != nil {
		patch.Name = strings.TrimSpace(*name)
	}
	m, err := s.members.Update(ctx, patch)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return dom.Member{}, ErrMemberNotFound
		case errors.Is(err, repo.ErrDuplicateCode):
			return dom.Member{}, ErrDuplicateCode
		}
		return dom.Member{}, err
	}
	return m, nil
}

func (s *MemberService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.members.Delete(ctx, id)
}
