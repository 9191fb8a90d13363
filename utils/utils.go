package utils

import (
	"math"
	rndm "math/rand"
	"net/http"

	"vestra/globals"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Currency ---

// Round2 rounds to two decimal places. Applied consistently wherever a
// monetary value crosses a persistence or display boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place, used for the aggregate rating.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// --- Request Context ---

// GetUserIDFromRequest returns the authenticated user id, or "" when the
// request carried no valid token.
func GetUserIDFromRequest(r *http.Request) string {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	return userID
}

func IsAdminRequest(r *http.Request) bool {
	isAdmin, _ := r.Context().Value(globals.IsAdminKey).(bool)
	return isAdmin
}
