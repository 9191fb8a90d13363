package globals

import (
	"context"
	"os"
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const IsAdminKey ContextKey = "isAdmin"

// JwtSecret signs and verifies access tokens. Set JWT_SECRET in production.
var JwtSecret = func() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("vestra_dev_secret")
}()

var Ctx = context.Background()
