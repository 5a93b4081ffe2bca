// Package session consumes the identity the auth collaborator issued and
// owns the logout teardown sequence.
package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"resto-notify/internal/model"
)

var ErrMissingClaims = errors.New("session: token missing identity claims")

// FromToken extracts the session identity from the auth token's claims.
// Signature verification is the backend's job; this layer only reads the
// identifiers it needs to scope the live channel.
func FromToken(token string) (model.Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return model.Session{}, fmt.Errorf("parsing session token: %w", err)
	}

	sess := model.Session{Token: token}
	if sub, err := claims.GetSubject(); err == nil {
		sess.UserID = sub
	}
	if sess.UserID == "" {
		if v, ok := claims["user_id"].(string); ok {
			sess.UserID = v
		}
	}
	if v, ok := claims["restaurant_id"].(string); ok {
		sess.RestaurantID = v
	}

	if !sess.Ready() {
		return model.Session{}, ErrMissingClaims
	}
	return sess, nil
}
