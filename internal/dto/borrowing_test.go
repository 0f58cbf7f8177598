package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/KevinDwiRizky/library-backend/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnDateParsing(t *testing.T) {
	parse := func(t *testing.T, body string) (dto.ReturnRequest, error) {
		t.Helper()
		var req dto.ReturnRequest
		err := json.Unmarshal([]byte(body), &req)
		return req, err
	}

	t.Run("date only becomes start of day UTC", func(t *testing.T) {
		req, err := parse(t, `{"returnDate":"2024-03-15"}`)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), req.ReturnDate.Time())
	})

	t.Run("RFC3339", func(t *testing.T) {
		req, err := parse(t, `{"returnDate":"2024-03-15T10:30:00Z"}`)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), req.ReturnDate.Time().UTC())
	})

	t.Run("RFC3339 with offset", func(t *testing.T) {
		req, err := parse(t, `{"returnDate":"2024-03-15T10:30:00+07:00"}`)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 3, 30, 0, 0, time.UTC), req.ReturnDate.Time().UTC())
	})

	t.Run("empty string is zero", func(t *testing.T) {
		req, err := parse(t, `{"returnDate":""}`)
		require.NoError(t, err)
		assert.True(t, req.ReturnDate.Time().IsZero())
	})

	t.Run("null is zero", func(t *testing.T) {
		req, err := parse(t, `{"returnDate":null}`)
		require.NoError(t, err)
		assert.True(t, req.ReturnDate.Time().IsZero())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := parse(t, `{"returnDate":"next tuesday"}`)
		assert.Error(t, err)
	})
}
