// Package mongo keeps an audit trail of every published domain event.
package mongo

import (
	"context"
	"encoding/json"
	"time"

	"roadside/internal/core/domain/model/outbox"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuditCollection receives one document per domain event.
const AuditCollection = "audit_logs"

type AuditLog struct {
	ID          string    `bson:"_id"`
	Action      string    `bson:"action"`
	AggregateID string    `bson:"aggregate_id"`
	Timestamp   time.Time `bson:"timestamp"`
	Data        bson.M    `bson:"data"`
}

// AuditSink is an EventPublisher writing to Mongo. The event id is the
// document id, so a message relayed twice is stored once.
type AuditSink struct {
	coll *mongo.Collection
}

func NewAuditSink(db *mongo.Database) *AuditSink {
	return &AuditSink{coll: db.Collection(AuditCollection)}
}

func (s *AuditSink) Publish(ctx context.Context, message *outbox.Message) error {
	log, err := toAuditLog(message)
	if err != nil {
		return err
	}

	_, err = s.coll.InsertOne(ctx, log)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func toAuditLog(message *outbox.Message) (AuditLog, error) {
	data := bson.M{}
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &data); err != nil {
			return AuditLog{}, err
		}
	}

	return AuditLog{
		ID:          message.ID.String(),
		Action:      message.Name,
		AggregateID: message.AggregateID.String(),
		Timestamp:   message.OccurredAt,
		Data:        data,
	}, nil
}
