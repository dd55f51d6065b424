// Package catalog holds the room and add-on service data the reservation
// engine consumes. Catalog lookups happen before the engine runs; the engine
// itself only ever sees resolved values.
package catalog

import (
	"context"
	"errors"

	"unahotel/internal/domain/shared/money"
)

var (
	ErrRoomNotFound    = errors.New("catalog: room not found")
	ErrServiceNotFound = errors.New("catalog: service not found")
)

type RoomID string

// Room describes one bookable room with its occupancy limit and nightly rate.
type Room struct {
	ID          RoomID
	Type        string
	Capacity    int
	NightlyRate money.Money
}

type ServiceID string

// Service is an add-on (breakfast, spa, transfer) priced per stay.
type Service struct {
	ID    ServiceID
	Name  string
	Price money.Money
}

// RoomRepository resolves rooms before the rule engine is invoked.
type RoomRepository interface {
	ByIDs(ctx context.Context, ids []RoomID) ([]Room, error)
	// Available lists rooms bookable for the requested stay; used by the
	// aggregator's room-suitability check.
	Available(ctx context.Context, checkIn, checkOut string) ([]Room, error)
}

// ServiceRepository resolves add-on services by ID.
type ServiceRepository interface {
	ByIDs(ctx context.Context, ids []ServiceID) ([]Service, error)
	List(ctx context.Context) ([]Service, error)
}

// TotalCapacity sums the occupancy limits of the given rooms.
func TotalCapacity(rooms []Room) int {
	total := 0
	for _, r := range rooms {
		total += r.Capacity
	}
	return total
}

// TotalNightlyRate sums the nightly rates of the given rooms. All catalog
// entries for one property share a currency, so plain addition is safe.
func TotalNightlyRate(rooms []Room, currency string) money.Money {
	total := money.Zero(currency)
	for _, r := range rooms {
		if sum, err := total.Add(r.NightlyRate); err == nil {
			total = sum
		}
	}
	return total
}
