package session

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestFromToken(t *testing.T) {
	t.Run("reads subject and restaurant claims", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":           "user-1",
			"restaurant_id": "rest-9",
		})

		sess, err := FromToken(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess.UserID != "user-1" {
			t.Errorf("expected user-1, got %q", sess.UserID)
		}
		if sess.RestaurantID != "rest-9" {
			t.Errorf("expected rest-9, got %q", sess.RestaurantID)
		}
		if sess.Token != token {
			t.Error("session must carry the raw token")
		}
	})

	t.Run("falls back to user_id claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id":       "user-2",
			"restaurant_id": "rest-9",
		})

		sess, err := FromToken(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess.UserID != "user-2" {
			t.Errorf("expected user-2, got %q", sess.UserID)
		}
	})

	t.Run("missing restaurant claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "user-1"})

		_, err := FromToken(token)
		if !errors.Is(err, ErrMissingClaims) {
			t.Errorf("expected ErrMissingClaims, got %v", err)
		}
	})

	t.Run("not a jwt", func(t *testing.T) {
		if _, err := FromToken("garbage"); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestHolder(t *testing.T) {
	h := NewHolder()
	if h.Token() != "" {
		t.Error("fresh holder must be empty")
	}

	token := signToken(t, jwt.MapClaims{"sub": "u", "restaurant_id": "r"})
	sess, err := FromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h.Set(sess)
	if h.Token() != token {
		t.Error("holder must return the stored token")
	}
	if got := h.Current(); got.UserID != "u" || got.RestaurantID != "r" {
		t.Errorf("unexpected session: %+v", got)
	}

	h.Clear()
	if h.Token() != "" {
		t.Error("cleared holder must be empty")
	}
}
