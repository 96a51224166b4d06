// Package session keeps shopper sessions behind opaque tokens.
package session

import (
	"context"
	"errors"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	// Create starts an anonymous session and returns its token.
	Create(ctx context.Context) (string, *shop.Session, error)
	Get(ctx context.Context, token string) (*shop.Session, error)
	Save(ctx context.Context, token string, s *shop.Session) error
	Delete(ctx context.Context, token string) error
}

func newToken() string { return uuid.NewString() }
