// internal/models/user.go
package models

// User is the session-cached snapshot of a user owned by the remote
// user/admin API. Only the admin flag is interpreted locally.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// AuthState is the explicit session state derived from the remote API.
type AuthState string

const (
	AuthStateUnauthenticated AuthState = "unauthenticated"
	AuthStateAuthenticated   AuthState = "authenticated"
	AuthStateAdmin           AuthState = "admin"
)

// StateFor classifies a fetched user snapshot.
func StateFor(u *User) AuthState {
	switch {
	case u == nil:
		return AuthStateUnauthenticated
	case u.Admin:
		return AuthStateAdmin
	default:
		return AuthStateAuthenticated
	}
}
