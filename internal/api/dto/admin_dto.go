package dto

// InviteAdminRequest payload for the admin invitation form.
type InviteAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
