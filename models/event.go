package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name,omitempty"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	Location       string             `json:"location,omitempty" bson:"location,omitempty"`
	Date           string             `json:"date" bson:"date,omitempty"` // start date for recurring events
	StartTime      string             `json:"start_time" bson:"start_time,omitempty"`
	EndTime        string             `json:"end_time" bson:"end_time,omitempty"`
	RecurrenceRule string             `json:"recurrence_rule,omitempty" bson:"recurrence_rule,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type EventCreatePayload struct {
	Name           string `json:"name" validate:"required,min=3,max=100"`
	Description    string `json:"description" validate:"omitempty,max=500"`
	Location       string `json:"location" validate:"omitempty,max=100"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string `json:"end_time" validate:"required,datetime=15:04"`
	RecurrenceRule string `json:"recurrence_rule,omitempty"`
}

type EventUpdatePayload struct {
	Name           string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description    string `json:"description,omitempty" validate:"omitempty,max=500"`
	Location       string `json:"location,omitempty" validate:"omitempty,max=100"`
	Date           string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime      string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime        string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	RecurrenceRule string `json:"recurrence_rule,omitempty"`
}

// EventSelectorItem is the shape the scanner client uses to populate its
// event dropdown.
type EventSelectorItem struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}
