package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/KevinDwiRizky/library-backend/internal/domain"
)

// ReturnDate parses returnDate from JSON as either date-only
// ("2006-01-02") or RFC3339. Date-only is stored as start of that day
// in UTC.
type ReturnDate struct{ t time.Time }

func (d *ReturnDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = time.Time{}
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = parsed
			return nil
		}
	}
	return fmt.Errorf("returnDate: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Time returns the parsed return date. Zero when the field was absent.
func (d ReturnDate) Time() time.Time { return d.t }

// BorrowRequest is the JSON body for POST /borrowing.
type BorrowRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	BookID   string `json:"bookId" binding:"required"`
}

// ReturnRequest is the JSON body for PUT /borrowing/return/{id}.
type ReturnRequest struct {
	ReturnDate ReturnDate `json:"returnDate" binding:"required"`
}

// MemberSummaryResponse carries the member display fields joined into a
// loan record.
type MemberSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// BookSummaryResponse carries the book display fields joined into a loan
// record.
type BookSummaryResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// BorrowingResponse is the JSON shape of a loan record. Member and Book
// are omitted when the referenced document no longer exists.
type BorrowingResponse struct {
	ID              string                 `json:"id"`
	MemberID        string                 `json:"memberId"`
	BookID          string                 `json:"bookId"`
	BorrowedAt      time.Time              `json:"borrowedAt"`
	FinalReturnDate time.Time              `json:"finalReturnDate"`
	ReturnDate      time.Time              `json:"returnDate"`
	Returned        bool                   `json:"returned"`
	Member          *MemberSummaryResponse `json:"member,omitempty"`
	Book            *BookSummaryResponse   `json:"book,omitempty"`
}

// ReturnResponse is the JSON shape of a completed return. UpdatedMember is
// present only when a late-return penalty was applied.
type ReturnResponse struct {
	Borrowing     BorrowingResponse `json:"borrowing"`
	UpdatedMember *MemberResponse   `json:"updatedMember,omitempty"`
}

// FromBorrowing converts a bare domain loan record.
func FromBorrowing(b dom.Borrowing) BorrowingResponse {
	return BorrowingResponse{
		ID:              b.ID.Hex(),
		MemberID:        b.MemberID.Hex(),
		BookID:          b.BookID.Hex(),
		BorrowedAt:      b.BorrowedAt,
		FinalReturnDate: b.FinalReturnDate,
		ReturnDate:      b.ReturnDate,
		Returned:        b.Returned,
	}
}

// FromBorrowingDetail converts an annotated loan record.
func FromBorrowingDetail(d dom.BorrowingDetail) BorrowingResponse {
	out := FromBorrowing(d.Borrowing)
	if d.Member != nil {
		out.Member = &MemberSummaryResponse{ID: d.Member.ID.Hex(), Name: d.Member.Name, Code: d.Member.Code}
	}
	if d.Book != nil {
		out.Book = &BookSummaryResponse{ID: d.Book.ID.Hex(), Title: d.Book.Title, Author: d.Book.Author}
	}
	return out
}

// FromBorrowingDetails converts a list of annotated loan records.
func FromBorrowingDetails(list []dom.BorrowingDetail) []BorrowingResponse {
	out := make([]BorrowingResponse, len(list))
	for i := range list {
		out[i] = FromBorrowingDetail(list[i])
	}
	return out
}
