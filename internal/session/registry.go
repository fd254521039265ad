package session

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mycelian/casefiles/internal/model"
)

// Registry maps opaque bearer tokens to authenticated gates so HTTP callers
// can hold a session across requests. Tokens do not expire.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Gate
	newToken func() string
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Gate), newToken: uuid.NewString}
}

// Login authenticates and issues a new token.
func (r *Registry) Login(username, password string) (string, model.User, error) {
	g := &Gate{}
	if err := g.Login(username, password); err != nil {
		return "", model.User{}, err
	}
	u, _ := g.User()
	token := r.newToken()

	r.mu.Lock()
	r.sessions[token] = g
	r.mu.Unlock()
	return token, u, nil
}

// Resolve returns the identity behind token.
func (r *Registry) Resolve(token string) (model.User, error) {
	r.mu.RLock()
	g, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return model.User{}, ErrNotAuthenticated
	}
	return g.Require()
}

// Logout discards token. Unknown tokens are ignored.
func (r *Registry) Logout(token string) {
	r.mu.Lock()
	g, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()
	if ok {
		g.Logout()
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ExtractToken extracts the bearer token from the Authorization header.
func ExtractToken(req *http.Request) (string, error) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("missing Authorization header")
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <token>'")
	}
	return parts[1], nil
}
