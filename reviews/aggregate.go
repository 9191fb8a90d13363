// Package reviews appends customer reviews to products and keeps the derived
// rating fields consistent.
package reviews

import (
	"vestra/models"
	"vestra/utils"
)

// Recompute derives the aggregate rating and count from a review list: the
// arithmetic mean rounded to one decimal place, both zero when empty.
func Recompute(reviews []models.Review) (rating float64, count int) {
	if len(reviews) == 0 {
		return 0, 0
	}

	var sum int
	for _, review := range reviews {
		sum += review.Rating
	}
	return utils.Round1(float64(sum) / float64(len(reviews))), len(reviews)
}

// HasReviewed reports whether userID already has a review in the list.
func HasReviewed(reviews []models.Review, userID string) bool {
	for _, review := range reviews {
		if review.UserID == userID {
			return true
		}
	}
	return false
}
