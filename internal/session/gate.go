package session

import (
	"sync"

	"github.com/mycelian/casefiles/internal/model"
)

// State is whether a Gate holds an identity.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Gate is the two-state session machine. The zero value is Anonymous.
type Gate struct {
	mu   sync.RWMutex
	user *model.User
}

// Login authenticates and moves the gate to Authenticated. A failed login
// leaves the gate unchanged.
func (g *Gate) Login(username, password string) error {
	u, err := Authenticate(username, password)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.user = &u
	g.mu.Unlock()
	return nil
}

// Logout returns the gate to Anonymous. Logging out while anonymous is a no-op.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.user = nil
	g.mu.Unlock()
}

func (g *Gate) User() (model.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.user == nil {
		return model.User{}, false
	}
	return *g.user, true
}

func (g *Gate) State() State {
	if _, ok := g.User(); ok {
		return Authenticated
	}
	return Anonymous
}

// Require returns the identity or ErrNotAuthenticated.
func (g *Gate) Require() (model.User, error) {
	u, ok := g.User()
	if !ok {
		return model.User{}, ErrNotAuthenticated
	}
	return u, nil
}
