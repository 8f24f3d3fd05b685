package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Load resolves the settings for a store scope, merging the defaults
	// with any per-store overrides.
	Load(ctx context.Context, storeID int64) (Settings, error)
	// Overrides reports which fields the store scope carries itself.
	Overrides(ctx context.Context, storeID int64) (Overrides, error)
	// Save writes settings for a store scope. For a non-default scope only
	// the flagged fields are stored; unflagged fields fall back to defaults.
	Save(ctx context.Context, storeID int64, settings Settings, overrides Overrides) error
}

var (
	ErrInvalidStore = errors.New("invalid_store")
)
