package models

// User is the credential snapshot returned by the auth endpoint on login or
// registration. Token is an opaque bearer token attached to authenticated
// API calls.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}
