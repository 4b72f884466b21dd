package handler

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// editUserRequest: an empty password means "keep the current one"; email and
// role are applied as given, zero values included.
type editUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role"  validate:"omitempty,oneof=USER ADMIN"`
}

// deleteUserRequest selects the account to remove by id or by username.
type deleteUserRequest struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
