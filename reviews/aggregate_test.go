package reviews_test

import (
	"testing"

	"vestra/models"
	"vestra/reviews"

	"github.com/stretchr/testify/assert"
)

func ratings(values ...int) []models.Review {
	out := make([]models.Review, 0, len(values))
	for i, v := range values {
		out = append(out, models.Review{UserID: string(rune('a' + i)), Rating: v})
	}
	return out
}

func TestRecompute_EmptyIsZero(t *testing.T) {
	rating, count := reviews.Recompute(nil)
	assert.Zero(t, rating)
	assert.Zero(t, count)
}

func TestRecompute_Mean(t *testing.T) {
	rating, count := reviews.Recompute(ratings(4, 5, 3))
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 3, count)
}

func TestRecompute_RoundsToOneDecimal(t *testing.T) {
	// (5+4) / 2 = 4.5, (5+5+4) / 3 = 4.666... -> 4.7
	rating, _ := reviews.Recompute(ratings(5, 4))
	assert.Equal(t, 4.5, rating)

	rating, _ = reviews.Recompute(ratings(5, 5, 4))
	assert.Equal(t, 4.7, rating)
}

func TestRecompute_AppendShiftsMean(t *testing.T) {
	existing := ratings(4, 4, 4)
	before, beforeCount := reviews.Recompute(existing)
	assert.Equal(t, 4.0, before)

	after, afterCount := reviews.Recompute(append(existing, models.Review{UserID: "z", Rating: 1}))
	assert.Equal(t, beforeCount+1, afterCount)
	assert.Equal(t, 3.3, after) // (4+4+4+1)/4 = 3.25, half rounds up
}

func TestHasReviewed(t *testing.T) {
	list := []models.Review{{UserID: "u1"}, {UserID: "u2"}}
	assert.True(t, reviews.HasReviewed(list, "u1"))
	assert.False(t, reviews.HasReviewed(list, "u3"))
	assert.False(t, reviews.HasReviewed(nil, "u1"))
}
