package ports

import "go.trai.ch/cmakekit/internal/core/domain"

// StateStore defines the interface for persisting per-project state.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Get retrieves the state stored under root.
	// Returns nil, nil if not found.
	Get(root string) (*domain.State, error)

	// Put stores the state under root.
	Put(root string, state domain.State) error
}
