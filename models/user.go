package models

import "time"

// User is an account document. Password holds the bcrypt hash and is never
// serialized to JSON. Wishlist has set semantics: membership is checked
// before insert, removal of an absent entry is a no-op.
type User struct {
	UserID        string    `json:"userId" bson:"userid"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	IsAdmin       bool      `json:"isAdmin" bson:"isAdmin"`
	Wishlist      []string  `json:"wishlist" bson:"wishlist"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	LastLogin     time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
}

// UserSummary is the trimmed account shape returned by auth and admin
// endpoints so hashes and token state never leave the server.
type UserSummary struct {
	UserID  string `json:"userId" bson:"userid"`
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	IsAdmin bool   `json:"isAdmin" bson:"isAdmin"`
}

func (u User) Summary() UserSummary {
	return UserSummary{UserID: u.UserID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}
