package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/mindmaze-api/identity"
	"github.com/beka-birhanu/mindmaze-api/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

// Auth implements registration and sign-in over a player repository and
// a tokenizer.
type Auth struct {
	playerRepo i.PlayerRepo
	tokenizer  i.Tokenizer
}

// NewAuthService creates an Auth service.
func NewAuthService(repo i.PlayerRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if repo == nil || tokenizer == nil {
		return nil, errors.New("auth service requires a repository and a tokenizer")
	}
	return &Auth{
		playerRepo: repo,
		tokenizer:  tokenizer,
	}, nil
}

// Register creates a new player account.
func (a *Auth) Register(username, password string) error {
	player, err := identity.NewPlayer(identity.PlayerConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	return a.playerRepo.Save(player)
}

// SignIn verifies the credentials and returns the player with a fresh
// bearer token.
func (a *Auth) SignIn(username, password string) (*identity.Player, string, error) {
	player, err := a.playerRepo.ByUsername(username)
	if err != nil {
		return nil, "", errors.New("invalid username or password")
	}

	if !player.VerifyPassword(password) {
		return nil, "", errors.New("invalid username or password")
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"playerID": player.ID.String(),
		"username": player.Username,
	}, tokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return player, token, nil
}
