package users

import (
	"context"
	"time"
)

// Cache holds the last full user list. It is invalidated on every mutation,
// so a warm entry always matches the store.
type Cache interface {
	GetList(ctx context.Context) ([]*User, bool, error)
	SetList(ctx context.Context, users []*User, ttl time.Duration) error
	DeleteList(ctx context.Context) error
}
