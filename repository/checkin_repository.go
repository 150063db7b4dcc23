package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hackathon-portal/config"
	"hackathon-portal/models"
)

// ErrDuplicateCheckin is returned when the unique (user_id, event_id) index
// rejects a second check-in. Callers map it to the same "already checked in"
// outcome as the pre-insert existence check, so a lost race between two
// scanners degrades gracefully instead of surfacing a database error.
var ErrDuplicateCheckin = errors.New("user already checked in for this event")

type CheckinRepository interface {
	CheckinExists(ctx context.Context, userID, eventID primitive.ObjectID) (bool, error)
	CreateCheckinWithAttempt(ctx context.Context, record *models.CheckinRecord, attempt *models.ScanAttempt) error
	RecordAttempt(ctx context.Context, attempt *models.ScanAttempt) error
	ListHistory(ctx context.Context, limit int64) ([]models.ScanHistoryEntry, error)
}

type checkinRepository struct {
	client            *mongo.Client
	checkinCollection *mongo.Collection
	attemptCollection *mongo.Collection
}

func NewCheckinRepository() CheckinRepository {
	return &checkinRepository{
		client:            config.MongoConn,
		checkinCollection: config.GetCollection(config.CheckinCollection),
		attemptCollection: config.GetCollection(config.ScanAttemptCollection),
	}
}

func (r *checkinRepository) CheckinExists(ctx context.Context, userID, eventID primitive.ObjectID) (bool, error) {
	filter := bson.M{"user_id": userID, "event_id": eventID}

	count, err := r.checkinCollection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check existing check-in: %w", err)
	}
	return count > 0, nil
}

// CreateCheckinWithAttempt inserts the ledger record and its successful
// audit attempt in one transaction. A crash between the two writes must not
// leave a checked-in user without an audit trail, or the other way around.
func (r *checkinRepository) CreateCheckinWithAttempt(ctx context.Context, record *models.CheckinRecord, attempt *models.ScanAttempt) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.checkinCollection.InsertOne(sc, record); err != nil {
			return nil, err
		}
		if _, err := r.attemptCollection.InsertOne(sc, attempt); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCheckin
		}
		return fmt.Errorf("failed to record check-in: %w", err)
	}
	return nil
}

func (r *checkinRepository) RecordAttempt(ctx context.Context, attempt *models.ScanAttempt) error {
	_, err := r.attemptCollection.InsertOne(ctx, attempt)
	if err != nil {
		return fmt.Errorf("failed to record scan attempt: %w", err)
	}
	return nil
}

// ListHistory returns recent scan attempts, most recent first, joined with
// user and event names. Unwinds preserve empty lookups so attempts whose
// code never resolved to a user still show up, as "Unknown".
func (r *checkinRepository) ListHistory(ctx context.Context, limit int64) ([]models.ScanHistoryEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userDetails"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$userDetails"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.EventCollection},
			{Key: "localField", Value: "event_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "eventDetails"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$eventDetails"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "successful", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "event_name", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{"$eventDetails.name", "Unknown"}},
			}},
			{Key: "display_name", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$userDetails", false}}},
					bson.D{{Key: "$ifNull", Value: bson.A{
						bson.D{{Key: "$concat", Value: bson.A{
							"$userDetails.registration.first_name",
							" ",
							"$userDetails.registration.last_name",
						}}},
						"Participant",
					}}},
					"Unknown",
				}},
			}},
		}}},
	}

	cursor, err := r.attemptCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scan history: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.ScanHistoryEntry
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode scan history: %w", err)
	}

	if len(results) == 0 {
		return []models.ScanHistoryEntry{}, nil
	}
	return results, nil
}
