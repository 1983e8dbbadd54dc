package payload

// CreatePiggybankRequest is the body of POST /piggybanks.
type CreatePiggybankRequest struct {
	Name            string  `json:"name"             validate:"required"`
	Email           string  `json:"email"            validate:"required,email"`
	Password        string  `json:"password"         validate:"required"`
	PasswordConfirm string  `json:"password_confirm" validate:"required"`
	Balance         float64 `json:"balance"          validate:"gte=0"`
	KTP             string  `json:"ktp"              validate:"required"`
}

// UpdatePiggybankRequest is the body of PUT /piggybanks/{id}.
type UpdatePiggybankRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	KTP   string `json:"ktp"   validate:"required"`
}

// KTPLookupRequest is the body of POST /piggybanks/ktp.
type KTPLookupRequest struct {
	Email string `json:"email" validate:"required,email"`
}
