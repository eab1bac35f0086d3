package dto

import "time"

// RegisterRequest payload for self-serve registration. Any role field a
// client sends is ignored; registration always creates a USER.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login. Portal names the entry point used
// ("ADMIN" or "USER") and only affects the denial message.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Portal   string `json:"portal"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
