package repository

import (
	"context"

	"github.com/google/uuid"
)

// Entity is anything stored by identifier.
type Entity interface {
	GetID() uuid.UUID
}

// Store is the key-value contract shared by every entity repository.
// Get returns nil without error when no entity has the given id.
type Store[T Entity] interface {
	Add(ctx context.Context, item *T) error
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	All(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
