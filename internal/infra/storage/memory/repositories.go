package memory

import (
	"context"
	"sort"
	"sync"

	"unahotel/internal/domain/catalog"
	domainreservation "unahotel/internal/domain/reservation"
)

// RoomRepository is an in-memory catalog used for demos and tests.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[catalog.RoomID]catalog.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[catalog.RoomID]catalog.Room)}
}

func (r *RoomRepository) Put(room catalog.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[room.ID] = room
}

func (r *RoomRepository) ByIDs(ctx context.Context, ids []catalog.RoomID) ([]catalog.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Room, 0, len(ids))
	for _, id := range ids {
		room, ok := r.items[id]
		if !ok {
			return nil, catalog.ErrRoomNotFound
		}
		out = append(out, room)
	}
	return out, nil
}

// Available returns the whole catalog: the in-memory variant carries no
// occupancy calendar, so every room is considered bookable.
func (r *RoomRepository) Available(ctx context.Context, checkIn, checkOut string) ([]catalog.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Room, 0, len(r.items))
	for _, room := range r.items {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ServiceRepository is the in-memory add-on service catalog.
type ServiceRepository struct {
	mu    sync.RWMutex
	items map[catalog.ServiceID]catalog.Service
}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{items: make(map[catalog.ServiceID]catalog.Service)}
}

func (r *ServiceRepository) Put(svc catalog.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[svc.ID] = svc
}

func (r *ServiceRepository) ByIDs(ctx context.Context, ids []catalog.ServiceID) ([]catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := r.items[id]
		if !ok {
			return nil, catalog.ErrServiceNotFound
		}
		out = append(out, svc)
	}
	return out, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Service, 0, len(r.items))
	for _, svc := range r.items {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ReservationRepository stores reservations in a map guarded by a RWMutex.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[domainreservation.ID]*domainreservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[domainreservation.ID]*domainreservation.Reservation)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res.Version++
	clone := *res
	r.items[res.ID] = &clone
	return nil
}

func (r *ReservationRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainreservation.Reservation
	for _, res := range r.items {
		if res.GuestID == guestID {
			clone := *res
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

var (
	_ catalog.RoomRepository       = (*RoomRepository)(nil)
	_ catalog.ServiceRepository    = (*ServiceRepository)(nil)
	_ domainreservation.Repository = (*ReservationRepository)(nil)
)
