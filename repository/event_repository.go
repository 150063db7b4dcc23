package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hackathon-portal/config"
	"hackathon-portal/models"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	ListSelector(ctx context.Context) ([]models.EventSelectorItem, error)
	Update(ctx context.Context, id primitive.ObjectID, payload *models.EventUpdatePayload) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type eventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository() EventRepository {
	return &eventRepository{
		collection: config.GetCollection(config.EventCollection),
	}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find event by ID: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	if len(events) == 0 {
		return []models.Event{}, nil
	}
	return events, nil
}

func (r *eventRepository) ListSelector(ctx context.Context) ([]models.EventSelectorItem, error) {
	findOptions := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1}).
		SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for selector: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.EventSelectorItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode event selector items: %w", err)
	}

	if len(items) == 0 {
		return []models.EventSelectorItem{}, nil
	}
	return items, nil
}

func (r *eventRepository) Update(ctx context.Context, id primitive.ObjectID, payload *models.EventUpdatePayload) (*mongo.UpdateResult, error) {
	update := bson.M{"$set": bson.M{}}
	if payload.Name != "" {
		update["$set"].(bson.M)["name"] = payload.Name
	}
	if payload.Description != "" {
		update["$set"].(bson.M)["description"] = payload.Description
	}
	if payload.Location != "" {
		update["$set"].(bson.M)["location"] = payload.Location
	}
	if payload.Date != "" {
		update["$set"].(bson.M)["date"] = payload.Date
	}
	if payload.StartTime != "" {
		update["$set"].(bson.M)["start_time"] = payload.StartTime
	}
	if payload.EndTime != "" {
		update["$set"].(bson.M)["end_time"] = payload.EndTime
	}
	if payload.RecurrenceRule != "" {
		update["$set"].(bson.M)["recurrence_rule"] = payload.RecurrenceRule
	}
	update["$set"].(bson.M)["updated_at"] = time.Now()

	res, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return res, nil
}

func (r *eventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}
