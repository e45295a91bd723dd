package session

// Wire shapes of the auth endpoints. Pointer booleans make the flags required
// without rejecting false. Authenticated is optional; an explicit false
// overrides the identity fields.

type statusResponse struct {
	Authenticated *bool  `json:"authenticated"`
	Email         string `json:"email" validate:"required"`
	IsAdmin       *bool  `json:"is_admin" validate:"required"`
	EmailVerified *bool  `json:"email_verified" validate:"required"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message       string `json:"message"`
	Email         string `json:"email" validate:"required"`
	IsAdmin       *bool  `json:"is_admin" validate:"required"`
	EmailVerified *bool  `json:"email_verified" validate:"required"`
}

// RegisterResult is returned by a successful registration. The new account
// is not signed in.
type RegisterResult struct {
	Message       string `json:"message"`
	Email         string `json:"email" validate:"required"`
	EmailVerified bool   `json:"email_verified"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// Message is the body of endpoints that only acknowledge.
type Message struct {
	Message string `json:"message"`
}

// VerificationStatus reports whether an address has been confirmed.
type VerificationStatus struct {
	Email         string `json:"email" validate:"required"`
	EmailVerified *bool  `json:"email_verified" validate:"required"`
}

// Verified reports the flag, treating absence as unverified.
func (v VerificationStatus) Verified() bool {
	return v.EmailVerified != nil && *v.EmailVerified
}

func deref(b *bool) bool {
	return b != nil && *b
}
