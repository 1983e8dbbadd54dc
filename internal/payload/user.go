package payload

// CreateUserRequest is the body of POST /users. The password confirmation is
// checked by the usecase so a mismatch surfaces as INVALID_PASSWORD rather
// than a validation error.
type CreateUserRequest struct {
	Name            string `json:"name"             validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
type UpdateUserRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest is the body of POST /users/{id}/change-password and
// its piggybank equivalent.
type ChangePasswordRequest struct {
	PasswordOld     string `json:"password_old"     validate:"required"`
	PasswordNew     string `json:"password_new"     validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// PagedResponse is the envelope of a paginated listing.
type PagedResponse struct {
	PageNumber      int   `json:"page_number"`
	PageSize        int   `json:"page_size"`
	Count           int64 `json:"count"`
	TotalPages      int   `json:"total_pages"`
	HasPreviousPage bool  `json:"has_previous_page"`
	HasNextPage     bool  `json:"has_next_page"`
	Data            any   `json:"data"`
}
