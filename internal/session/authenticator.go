// Package session implements the login gate in front of the case files. The
// credential table is fixed; there is no real authentication.
package session

import (
	"errors"

	"github.com/mycelian/casefiles/internal/model"
)

var (
	// ErrInvalidCredentials is returned when a username/password pair is not in the table.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is returned when an operation needs a logged-in identity.
	ErrNotAuthenticated = errors.New("not authenticated")
)

type credential struct {
	password string
	user     model.User
}

var credentials = map[string]credential{
	"admin": {password: "admin", user: model.User{ID: "1", Username: "Administrator", Role: model.RoleAdmin}},
	"agent": {password: "agent", user: model.User{ID: "2", Username: "Agent 47", Role: model.RoleAgent}},
}

// Authenticate resolves an exact username/password pair to its identity.
func Authenticate(username, password string) (model.User, error) {
	c, ok := credentials[username]
	if !ok || c.password != password {
		return model.User{}, ErrInvalidCredentials
	}
	return c.user, nil
}
