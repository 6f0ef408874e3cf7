package domain

import "time"

// Event is the base interface for all domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// ListingCreated is raised when a pet is listed for adoption.
type ListingCreated struct {
	BaseEvent
	PetID   int64
	OwnerID int64
}

// EventName returns the event type identifier.
func (e ListingCreated) EventName() string {
	return "pets.listing.created"
}

// ListingAdopted is raised when a pet leaves the searchable universe.
type ListingAdopted struct {
	BaseEvent
	PetID int64
}

// EventName returns the event type identifier.
func (e ListingAdopted) EventName() string {
	return "pets.listing.adopted"
}
