package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appoutbox "unahotel/internal/app/outbox"
)

const (
	statusPending = "pending"
	statusSending = "sending"
	statusSent    = "sent"
)

// OutboxStore persists staged events alongside the aggregates. A worker
// claims one document at a time by flipping pending->sending with a
// compare-and-set, so multiple workers never publish the same event.
type OutboxStore struct {
	col *mongo.Collection
}

func NewOutboxStore(db *mongo.Database) *OutboxStore {
	return &OutboxStore{col: db.Collection("outbox_event")}
}

type eventDocument struct {
	ID         string            `bson:"_id"`
	Name       string            `bson:"name"`
	Payload    []byte            `bson:"payload"`
	OccurredAt time.Time         `bson:"occurred_at"`
	Aggregate  string            `bson:"aggregate"`
	Headers    map[string]string `bson:"headers"`
	Status     string            `bson:"status"`
	Attempts   int               `bson:"attempts"`
	RetryAt    time.Time         `bson:"retry_at"`
	WorkerID   string            `bson:"worker_id,omitempty"`
	LastError  string            `bson:"last_error,omitempty"`
}

func (s *OutboxStore) Add(ctx context.Context, record appoutbox.EventRecord) error {
	doc := eventDocument{
		ID:         record.ID,
		Name:       record.Name,
		Payload:    record.Payload,
		OccurredAt: record.OccurredAt,
		Aggregate:  record.Aggregate,
		Headers:    record.Headers,
		Status:     statusPending,
	}
	_, err := s.col.InsertOne(ctx, doc)
	return err
}

// Flush is a no-op: the worker drains the collection asynchronously.
func (s *OutboxStore) Flush(ctx context.Context) error {
	return nil
}

func (s *OutboxStore) Claim(ctx context.Context, workerID string) (*appoutbox.EventRecord, error) {
	filter := bson.M{
		"status":   statusPending,
		"retry_at": bson.M{"$lte": time.Now()},
	}
	update := bson.M{"$set": bson.M{"status": statusSending, "worker_id": workerID}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "occurred_at", Value: 1}}).
		SetReturnDocument(options.After)

	var doc eventDocument
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &appoutbox.EventRecord{
		ID:         doc.ID,
		Name:       doc.Name,
		Payload:    doc.Payload,
		OccurredAt: doc.OccurredAt,
		Aggregate:  doc.Aggregate,
		Headers:    doc.Headers,
	}, nil
}

func (s *OutboxStore) MarkSent(ctx context.Context, id string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": statusSent, "last_error": ""},
	})
	return err
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": statusPending, "retry_at": retryAt, "last_error": reason},
		"$inc": bson.M{"attempts": 1},
	})
	return err
}

func (s *OutboxStore) Attempts(ctx context.Context, id string) (int, error) {
	var doc eventDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return 0, err
	}
	return doc.Attempts, nil
}

var _ appoutbox.Outbox = (*OutboxStore)(nil)
