package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 9.6, Round2(9.5976))
	assert.Equal(t, 135.56, Round2(135.5576))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 1.0, Round2(0.995))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 4.7, Round1(4.666))
	assert.Equal(t, 3.3, Round1(3.25))
	assert.Equal(t, 5.0, Round1(5))
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(12)
	assert.Len(t, s, 12)
	for _, r := range s {
		assert.Contains(t, string(letterRunes), string(r))
	}
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, 404, "Product not found")

	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"Product not found"}`, rec.Body.String())
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, 200, M{"page": 1, "pages": 3})

	assert.Equal(t, 200, rec.Code)
	require.JSONEq(t, `{"page":1,"pages":3}`, rec.Body.String())
}
