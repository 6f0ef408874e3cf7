package ports

import (
	"context"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

// EventPublisher receives domain events after a write has been committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}
