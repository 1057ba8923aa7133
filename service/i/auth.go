package i

import (
	"github.com/beka-birhanu/mindmaze-api/identity"
)

// Authenticator registers players and signs them in.
type Authenticator interface {
	Register(username, password string) error
	SignIn(username, password string) (*identity.Player, string, error)
}
