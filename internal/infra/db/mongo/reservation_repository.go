package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unahotel/internal/domain/catalog"
	domainpricing "unahotel/internal/domain/pricing"
	domainreservation "unahotel/internal/domain/reservation"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("agg_reservation")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// Save upserts with a version filter: a concurrent writer that bumped the
// version first wins and this write reports ErrConcurrentUpdate.
func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

func (r *ReservationRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainreservation.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"guest_id": guestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type reservationDocument struct {
	ID                 string               `bson:"_id"`
	ConfirmationNumber string               `bson:"confirmation_number"`
	GuestID            string               `bson:"guest_id"`
	CheckInDate        string               `bson:"check_in_date"`
	CheckOutDate       string               `bson:"check_out_date"`
	Adults             int                  `bson:"adults"`
	Children           int                  `bson:"children"`
	Infants            int                  `bson:"infants"`
	RoomIDs            []string             `bson:"room_ids"`
	ServiceIDs         []string             `bson:"service_ids"`
	Price              domainpricing.Result `bson:"price"`
	State              string               `bson:"state"`
	SpecialRequests    string               `bson:"special_requests"`
	CancellationNote   string               `bson:"cancellation_note"`
	CreatedAt          int64                `bson:"created_at"`
	UpdatedAt          int64                `bson:"updated_at"`
	Version            int64                `bson:"version"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	doc := reservationDocument{
		ID:                 string(res.ID),
		ConfirmationNumber: res.ConfirmationNumber,
		GuestID:            res.GuestID,
		CheckInDate:        res.CheckInDate,
		CheckOutDate:       res.CheckOutDate,
		Adults:             res.Adults,
		Children:           res.Children,
		Infants:            res.Infants,
		Price:              res.Price,
		State:              string(res.State),
		SpecialRequests:    res.SpecialRequests,
		CancellationNote:   res.CancellationNote,
		CreatedAt:          res.CreatedAt.UnixMilli(),
		UpdatedAt:          res.UpdatedAt.UnixMilli(),
		Version:            res.Version,
	}
	for _, id := range res.RoomIDs {
		doc.RoomIDs = append(doc.RoomIDs, string(id))
	}
	for _, id := range res.ServiceIDs {
		doc.ServiceIDs = append(doc.ServiceIDs, string(id))
	}
	return doc
}

func (d reservationDocument) toAggregate() *domainreservation.Reservation {
	agg := &domainreservation.Reservation{
		ID:                 domainreservation.ID(d.ID),
		ConfirmationNumber: d.ConfirmationNumber,
		GuestID:            d.GuestID,
		CheckInDate:        d.CheckInDate,
		CheckOutDate:       d.CheckOutDate,
		Adults:             d.Adults,
		Children:           d.Children,
		Infants:            d.Infants,
		Price:              d.Price,
		State:              domainreservation.State(d.State),
		SpecialRequests:    d.SpecialRequests,
		CancellationNote:   d.CancellationNote,
		CreatedAt:          timestampToTime(d.CreatedAt),
		UpdatedAt:          timestampToTime(d.UpdatedAt),
		Version:            d.Version,
	}
	for _, id := range d.RoomIDs {
		agg.RoomIDs = append(agg.RoomIDs, catalog.RoomID(id))
	}
	for _, id := range d.ServiceIDs {
		agg.ServiceIDs = append(agg.ServiceIDs, catalog.ServiceID(id))
	}
	return agg
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
