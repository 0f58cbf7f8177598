package repo

import (
	"context"
	"sync"
	"time"

	dom "github.com/KevinDwiRizky/library-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory implementations of the repositories, mirroring the constraints
// the Mongo collections enforce (unique code, non-negative stock,
// conditional updates). Used by the test suites and handy for local runs
// without a database.

// MemoryBookRepo implements BookRepo with a map.
type MemoryBookRepo struct {
	mu    sync.Mutex
	books map[primitive.ObjectID]dom.Book
}

// NewMemoryBookRepo returns an empty MemoryBookRepo.
func NewMemoryBookRepo() *MemoryBookRepo {
	return &MemoryBookRepo{books: make(map[primitive.ObjectID]dom.Book)}
}

func (r *MemoryBookRepo) Create(_ context.Context, b dom.Book) (dom.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.books {
		if existing.Code == b.Code {
			return dom.Book{}, ErrDuplicateCode
		}
	}
	b.ID = primitive.NewObjectID()
	r.books[b.ID] = b
	return b, nil
}

func (r *MemoryBookRepo) GetByID(_ context.Context, id primitive.ObjectID) (dom.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return dom.Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryBookRepo) List(_ context.Context) ([]dom.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]dom.Book, 0, len(r.books))
	for _, b := range r.books {
		list = append(list, b)
	}
	return list, nil
}

func (r *MemoryBookRepo) Update(_ context.Context, b dom.Book) (dom.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		return dom.Book{}, ErrNotFound
	}
	for id, existing := range r.books {
		if id != b.ID && existing.Code == b.Code {
			return dom.Book{}, ErrDuplicateCode
		}
	}
	r.books[b.ID] = b
	return b, nil
}

func (r *MemoryBookRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.books, id)
	return nil
}

func (r *MemoryBookRepo) DecrementStock(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok || b.Stock <= 0 {
		return ErrNoStock
	}
	b.Stock--
	r.books[id] = b
	return nil
}

func (r *MemoryBookRepo) IncrementStock(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return ErrNotFound
	}
	b.Stock++
	r.books[id] = b
	return nil
}

// MemoryMemberRepo implements MemberRepo with a map.
type MemoryMemberRepo struct {
	mu      sync.Mutex
	members map[primitive.ObjectID]dom.Member
}

// NewMemoryMemberRepo returns an empty MemoryMemberRepo.
func NewMemoryMemberRepo() *MemoryMemberRepo {
	return &MemoryMemberRepo{members: make(map[primitive.ObjectID]dom.Member)}
}

func (r *MemoryMemberRepo) Create(_ context.Context, m dom.Member) (dom.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.members {
		if existing.Code == m.Code {
			return dom.Member{}, ErrDuplicateCode
		}
	}
	m.ID = primitive.NewObjectID()
	r.members[m.ID] = m
	return m, nil
}

func (r *MemoryMemberRepo) GetByID(_ context.Context, id primitive.ObjectID) (dom.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return dom.Member{}, ErrNotFound
	}
	return m, nil
}

func (r *MemoryMemberRepo) List(_ context.Context) ([]dom.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]dom.Member, 0, len(r.members))
	for _, m := range r.members {
		list = append(list, m)
	}
	return list, nil
}

func (r *MemoryMemberRepo) Update(_ context.Context, m dom.Member) (dom.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m.ID]; !ok {
		return dom.Member{}, ErrNotFound
	}
	for id, existing := range r.members {
		if id != m.ID && existing.Code == m.Code {
			return dom.Member{}, ErrDuplicateCode
		}
	}
	r.members[m.ID] = m
	return m, nil
}

func (r *MemoryMemberRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
	return nil
}

func (r *MemoryMemberRepo) SetPenaltyEndDate(_ context.Context, id primitive.ObjectID, end time.Time) (dom.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return dom.Member{}, ErrNotFound
	}
	m.PenaltyEndDate = &end
	r.members[id] = m
	return m, nil
}

// MemoryBorrowingRepo implements BorrowingRepo with a map, joining member
// and book summaries from sibling repos the way the Mongo $lookup does.
type MemoryBorrowingRepo struct {
	mu         sync.Mutex
	borrowings map[primitive.ObjectID]dom.Borrowing

	members *MemoryMemberRepo
	books   *MemoryBookRepo
}

// NewMemoryBorrowingRepo returns an empty MemoryBorrowingRepo joining
// against the given member and book repos.
func NewMemoryBorrowingRepo(members *MemoryMemberRepo, books *MemoryBookRepo) *MemoryBorrowingRepo {
	return &MemoryBorrowingRepo{
		borrowings: make(map[primitive.ObjectID]dom.Borrowing),
		members:    members,
		books:      books,
	}
}

func (r *MemoryBorrowingRepo) Create(_ context.Context, b dom.Borrowing) (dom.Borrowing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = primitive.NewObjectID()
	r.borrowings[b.ID] = b
	return b, nil
}

func (r *MemoryBorrowingRepo) GetByID(_ context.Context, id primitive.ObjectID) (dom.Borrowing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.borrowings[id]
	if !ok {
		return dom.Borrowing{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryBorrowingRepo) GetDetailByID(ctx context.Context, id primitive.ObjectID) (dom.BorrowingDetail, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return dom.BorrowingDetail{}, err
	}
	return r.annotate(ctx, b), nil
}

func (r *MemoryBorrowingRepo) Find(ctx context.Context, f BorrowingFilter) ([]dom.BorrowingDetail, error) {
	r.mu.Lock()
	var matched []dom.Borrowing
	for _, b := range r.borrowings {
		if f.MemberID != nil && b.MemberID != *f.MemberID {
			continue
		}
		if f.BookID != nil && b.BookID != *f.BookID {
			continue
		}
		matched = append(matched, b)
	}
	r.mu.Unlock()

	out := make([]dom.BorrowingDetail, len(matched))
	for i, b := range matched {
		out[i] = r.annotate(ctx, b)
	}
	return out, nil
}

func (r *MemoryBorrowingRepo) MarkReturned(_ context.Context, id primitive.ObjectID, returnDate time.Time) (dom.Borrowing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.borrowings[id]
	if !ok || b.Returned {
		return dom.Borrowing{}, ErrNotFound
	}
	b.ReturnDate = returnDate
	b.Returned = true
	r.borrowings[id] = b
	return b, nil
}

func (r *MemoryBorrowingRepo) annotate(ctx context.Context, b dom.Borrowing) dom.BorrowingDetail {
	d := dom.BorrowingDetail{Borrowing: b}
	if m, err := r.members.GetByID(ctx, b.MemberID); err == nil {
		d.Member = &dom.MemberSummary{ID: m.ID, Name: m.Name, Code: m.Code}
	}
	if bk, err := r.books.GetByID(ctx, b.BookID); err == nil {
		d.Book = &dom.BookSummary{ID: bk.ID, Title: bk.Title, Author: bk.Author}
	}
	return d
}
