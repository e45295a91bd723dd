package session

// Status is the resolver's view of whether a session exists.
type Status int

const (
	// StatusUnknown means no resolution has completed yet.
	StatusUnknown Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is a snapshot of the resolved identity. Email, EmailVerified and
// IsAdmin are zero unless Status is StatusAuthenticated.
type State struct {
	Status        Status `json:"-"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	IsAdmin       bool   `json:"is_admin"`
}

// Authenticated reports whether the state carries an identity.
func (s State) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// Resolved reports whether the state is no longer unknown.
func (s State) Resolved() bool {
	return s.Status != StatusUnknown
}

// SameIdentity reports whether s and o describe the same user with the same
// privileges. Unknown and anonymous states carry no identity and match each
// other. The verification flag is ignored.
func (s State) SameIdentity(o State) bool {
	return s.Authenticated() == o.Authenticated() &&
		s.Email == o.Email &&
		s.IsAdmin == o.IsAdmin
}

// Anonymous is the state after a failed check or a logout.
func Anonymous() State {
	return State{Status: StatusAnonymous}
}

func authenticated(email string, verified, admin bool) State {
	return State{
		Status:        StatusAuthenticated,
		Email:         email,
		EmailVerified: verified,
		IsAdmin:       admin,
	}
}
