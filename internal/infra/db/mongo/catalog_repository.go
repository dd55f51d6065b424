package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unahotel/internal/domain/catalog"
	"unahotel/internal/domain/shared/money"
)

type CatalogRepository struct {
	rooms        *mongo.Collection
	services     *mongo.Collection
	reservations *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		rooms:        db.Collection("cat_room"),
		services:     db.Collection("cat_service"),
		reservations: db.Collection("agg_reservation"),
	}
}

func (r *CatalogRepository) ByIDs(ctx context.Context, ids []catalog.RoomID) ([]catalog.Room, error) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}
	cursor, err := r.rooms.Find(ctx, bson.M{"_id": bson.M{"$in": raw}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byID := make(map[catalog.RoomID]catalog.Room, len(ids))
	for cursor.Next(ctx) {
		var doc roomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		room := doc.toRoom()
		byID[room.ID] = room
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	// Preserve the caller's order and fail on any miss.
	out := make([]catalog.Room, 0, len(ids))
	for _, id := range ids {
		room, ok := byID[id]
		if !ok {
			return nil, catalog.ErrRoomNotFound
		}
		out = append(out, room)
	}
	return out, nil
}

// Available lists rooms with no active reservation overlapping the range.
// ISO date strings compare lexicographically, so the overlap test runs
// directly on the stored fields.
func (r *CatalogRepository) Available(ctx context.Context, checkIn, checkOut string) ([]catalog.Room, error) {
	busy := map[string]struct{}{}
	if checkIn != "" && checkOut != "" {
		filter := bson.M{
			"state":          bson.M{"$in": []string{"PENDING", "CONFIRMED", "CHECKED_IN"}},
			"check_in_date":  bson.M{"$lt": checkOut},
			"check_out_date": bson.M{"$gt": checkIn},
		}
		cursor, err := r.reservations.Find(ctx, filter, options.Find().SetProjection(bson.M{"room_ids": 1}))
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)
		for cursor.Next(ctx) {
			var doc struct {
				RoomIDs []string `bson:"room_ids"`
			}
			if err := cursor.Decode(&doc); err != nil {
				return nil, err
			}
			for _, id := range doc.RoomIDs {
				busy[id] = struct{}{}
			}
		}
		if err := cursor.Err(); err != nil {
			return nil, err
		}
	}

	cursor, err := r.rooms.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []catalog.Room
	for cursor.Next(ctx) {
		var doc roomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		if _, taken := busy[doc.ID]; taken {
			continue
		}
		out = append(out, doc.toRoom())
	}
	return out, cursor.Err()
}

func (r *CatalogRepository) ServiceByIDs(ctx context.Context, ids []catalog.ServiceID) ([]catalog.Service, error) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}
	cursor, err := r.services.Find(ctx, bson.M{"_id": bson.M{"$in": raw}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byID := make(map[catalog.ServiceID]catalog.Service, len(ids))
	for cursor.Next(ctx) {
		var doc serviceDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		svc := doc.toService()
		byID[svc.ID] = svc
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	out := make([]catalog.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, catalog.ErrServiceNotFound
		}
		out = append(out, svc)
	}
	return out, nil
}

func (r *CatalogRepository) List(ctx context.Context) ([]catalog.Service, error) {
	cursor, err := r.services.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []catalog.Service
	for cursor.Next(ctx) {
		var doc serviceDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toService())
	}
	return out, cursor.Err()
}

type roomDocument struct {
	ID          string `bson:"_id"`
	Type        string `bson:"type"`
	Capacity    int    `bson:"capacity"`
	NightlyRate int64  `bson:"nightly_rate"`
	Currency    string `bson:"currency"`
}

func (d roomDocument) toRoom() catalog.Room {
	return catalog.Room{
		ID:          catalog.RoomID(d.ID),
		Type:        d.Type,
		Capacity:    d.Capacity,
		NightlyRate: money.Money{Amount: d.NightlyRate, Currency: d.Currency},
	}
}

type serviceDocument struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Price    int64  `bson:"price"`
	Currency string `bson:"currency"`
}

func (d serviceDocument) toService() catalog.Service {
	return catalog.Service{
		ID:    catalog.ServiceID(d.ID),
		Name:  d.Name,
		Price: money.Money{Amount: d.Price, Currency: d.Currency},
	}
}

// serviceCatalog narrows CatalogRepository to the service repository
// interface; its ByIDs shadows the promoted room lookup.
type serviceCatalog struct{ *CatalogRepository }

func (sc serviceCatalog) ByIDs(ctx context.Context, ids []catalog.ServiceID) ([]catalog.Service, error) {
	return sc.ServiceByIDs(ctx, ids)
}

// Rooms exposes the room repository view.
func (r *CatalogRepository) Rooms() catalog.RoomRepository {
	return r
}

// Services exposes the service repository view.
func (r *CatalogRepository) Services() catalog.ServiceRepository {
	return serviceCatalog{r}
}

var (
	_ catalog.RoomRepository    = (*CatalogRepository)(nil)
	_ catalog.ServiceRepository = serviceCatalog{}
)
