package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KevinDwiRizky/library-backend/internal/app"
	"github.com/KevinDwiRizky/library-backend/internal/dto"
	"github.com/KevinDwiRizky/library-backend/internal/handlers"
	"github.com/KevinDwiRizky/library-backend/internal/repo"
	"github.com/KevinDwiRizky/library-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	members := repo.NewMemoryMemberRepo()
	books := repo.NewMemoryBookRepo()
	borrowings := repo.NewMemoryBorrowingRepo(members, books)

	r := gin.New()
	app.RegisterAPIRoutes(r.Group("/api/v1"),
		handlers.NewMemberHandler(service.NewMemberService(members)),
		handlers.NewBookHandler(service.NewBookService(books)),
		handlers.NewBorrowingHandler(service.NewBorrowingService(borrowings, members, books)),
	)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, w)["message"]
}

func TestBorrowReturnEndToEnd(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/book",
		gin.H{"code": "B1", "title": "Sapiens", "author": "Harari", "stock": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	book := decode[dto.BookResponse](t, w)

	w = doJSON(t, r, http.MethodPost, "/api/v1/member", gin.H{"code": "M1", "name": "Kevin"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	member := decode[dto.MemberResponse](t, w)

	// Borrow the only copy.
	w = doJSON(t, r, http.MethodPost, "/api/v1/borrowing",
		gin.H{"memberId": member.ID, "bookId": book.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	borrowing := decode[dto.BorrowingResponse](t, w)
	assert.False(t, borrowing.Returned)
	require.NotNil(t, borrowing.Member)
	assert.Equal(t, "Kevin", borrowing.Member.Name)
	require.NotNil(t, borrowing.Book)
	assert.Equal(t, "Sapiens", borrowing.Book.Title)
	assert.True(t, borrowing.FinalReturnDate.Equal(borrowing.BorrowedAt.Add(7*24*time.Hour)))

	w = doJSON(t, r, http.MethodGet, "/api/v1/book", nil)
	require.Equal(t, http.StatusOK, w.Code)
	books := decode[[]dto.BookResponse](t, w)
	require.Len(t, books, 1)
	assert.Equal(t, 0, books[0].Stock)

	// Second borrow has to fail: no copies left.
	w = doJSON(t, r, http.MethodPost, "/api/v1/borrowing",
		gin.H{"memberId": member.ID, "bookId": book.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Book is not available for borrowing", message(t, w))

	// Return ten days after borrowing: three days late.
	returnDate := borrowing.BorrowedAt.Add(10 * 24 * time.Hour)
	w = doJSON(t, r, http.MethodPut, "/api/v1/borrowing/return/"+borrowing.ID,
		gin.H{"returnDate": returnDate.Format(time.RFC3339Nano)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	returned := decode[dto.ReturnResponse](t, w)
	assert.True(t, returned.Borrowing.Returned)
	assert.True(t, returned.Borrowing.ReturnDate.Equal(returnDate))
	require.NotNil(t, returned.UpdatedMember)
	require.NotNil(t, returned.UpdatedMember.PenaltyEndDate)
	assert.True(t, returned.UpdatedMember.PenaltyEndDate.Equal(returnDate.Add(3*24*time.Hour)))

	w = doJSON(t, r, http.MethodGet, "/api/v1/book", nil)
	books = decode[[]dto.BookResponse](t, w)
	require.Len(t, books, 1)
	assert.Equal(t, 1, books[0].Stock)

	// The penalty now blocks further borrowing.
	w = doJSON(t, r, http.MethodPost, "/api/v1/borrowing",
		gin.H{"memberId": member.ID, "bookId": book.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Member is under penalty. Cannot borrow books", message(t, w))

	// And a second return of the same record is rejected.
	w = doJSON(t, r, http.MethodPut, "/api/v1/borrowing/return/"+borrowing.ID,
		gin.H{"returnDate": returnDate.Format(time.RFC3339Nano)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Book has already been returned", message(t, w))
}

func TestBorrowValidation(t *testing.T) {
	r := newTestRouter()

	t.Run("missing body fields", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/borrowing", gin.H{"memberId": "abc"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed ids", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/borrowing",
			gin.H{"memberId": "not-hex", "bookId": "also-not-hex"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid memberId", message(t, w))
	})

	t.Run("unknown member is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/borrowing",
			gin.H{"memberId": primitive.NewObjectID().Hex(), "bookId": primitive.NewObjectID().Hex()})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Member not found", message(t, w))
	})
}

func TestBorrowingListing(t *testing.T) {
	r := newTestRouter()

	create := func(t *testing.T, path string, body gin.H) string {
		t.Helper()
		w := doJSON(t, r, http.MethodPost, path, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decode[map[string]any](t, w)["id"].(string)
	}

	m1 := create(t, "/api/v1/member", gin.H{"code": "M1", "name": "Kevin"})
	m2 := create(t, "/api/v1/member", gin.H{"code": "M2", "name": "Dwi"})
	b1 := create(t, "/api/v1/book", gin.H{"code": "B1", "title": "T1", "author": "A1", "stock": 5})
	b2 := create(t, "/api/v1/book", gin.H{"code": "B2", "title": "T2", "author": "A2", "stock": 5})

	loan1 := create(t, "/api/v1/borrowing", gin.H{"memberId": m1, "bookId": b1})
	create(t, "/api/v1/borrowing", gin.H{"memberId": m1, "bookId": b2})
	create(t, "/api/v1/borrowing", gin.H{"memberId": m2, "bookId": b1})

	t.Run("list all", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/borrowing", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]dto.BorrowingResponse](t, w), 3)
	})

	t.Run("search by member and book", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/borrowing/search?memberId=%s&bookId=%s", m1, b1)
		w := doJSON(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[[]dto.BorrowingResponse](t, w)
		require.Len(t, list, 1)
		assert.Equal(t, loan1, list[0].ID)
	})

	t.Run("search with no filters returns all", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/borrowing/search", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]dto.BorrowingResponse](t, w), 3)
	})

	t.Run("search with malformed filter", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/borrowing/search?memberId=zzz", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid memberId", message(t, w))
	})

	t.Run("get one", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/borrowing/"+loan1, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[dto.BorrowingResponse](t, w)
		assert.Equal(t, loan1, got.ID)
		require.NotNil(t, got.Member)
		assert.Equal(t, "M1", got.Member.Code)
	})

	t.Run("get unknown id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/borrowing/"+primitive.NewObjectID().Hex(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Borrowed book not found", message(t, w))
	})

	t.Run("get malformed id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/borrowing/xyz", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id", message(t, w))
	})
}

func TestCatalogEndpoints(t *testing.T) {
	r := newTestRouter()

	t.Run("book create requires all fields", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/book", gin.H{"code": "B1", "title": "T"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("book create rejects negative stock", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/book",
			gin.H{"code": "B1", "title": "T", "author": "A", "stock": -2})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate book code", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/book",
			gin.H{"code": "DUP", "title": "T", "author": "A", "stock": 1})
		require.Equal(t, http.StatusCreated, w.Code)
		w = doJSON(t, r, http.MethodPost, "/api/v1/book",
			gin.H{"code": "DUP", "title": "T2", "author": "A2", "stock": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Book code is already in use", message(t, w))
	})

	t.Run("member create returns a penalty gate in the past", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/member", gin.H{"code": "M1", "name": "Kevin"})
		require.Equal(t, http.StatusCreated, w.Code)
		m := decode[dto.MemberResponse](t, w)
		require.NotNil(t, m.PenaltyEndDate)
		assert.True(t, m.PenaltyEndDate.Before(time.Now()))
	})

	t.Run("member update and delete", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/member", gin.H{"code": "M2", "name": "Dwi"})
		require.Equal(t, http.StatusCreated, w.Code)
		m := decode[dto.MemberResponse](t, w)

		w = doJSON(t, r, http.MethodPut, "/api/v1/member/"+m.ID, gin.H{"name": "Dwi R"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Dwi R", decode[dto.MemberResponse](t, w).Name)

		w = doJSON(t, r, http.MethodDelete, "/api/v1/member/"+m.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Member deleted successfully", message(t, w))
	})

	t.Run("member update of unknown id is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/v1/member/"+primitive.NewObjectID().Hex(),
			gin.H{"name": "Nobody"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("book delete", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/book",
			gin.H{"code": "DEL", "title": "T", "author": "A", "stock": 1})
		require.Equal(t, http.StatusCreated, w.Code)
		b := decode[dto.BookResponse](t, w)

		w = doJSON(t, r, http.MethodDelete, "/api/v1/book/"+b.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Book deleted successfully", message(t, w))
	})
}
