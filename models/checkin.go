package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckinRecord proves a participant attended an event. At most one record
// exists per (user_id, event_id) pair; the collection carries a unique
// compound index on those fields. Records are never updated or deleted.
type CheckinRecord struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	EventID   primitive.ObjectID `json:"event_id" bson:"event_id"`
	AdminID   primitive.ObjectID `json:"admin_id" bson:"admin_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// ScanAttempt is one row of the append-only scan audit log. Every scan that
// reaches participant resolution produces exactly one attempt, successful or
// not. ScannedCode keeps the raw code so attempts that never resolved to a
// user remain attributable; UserID stays zero in that case.
type ScanAttempt struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id,omitempty" bson:"user_id,omitempty"`
	ScannedCode string             `json:"scanned_code" bson:"scanned_code"`
	AdminID     primitive.ObjectID `json:"admin_id" bson:"admin_id"`
	EventID     primitive.ObjectID `json:"event_id" bson:"event_id"`
	Successful  bool               `json:"successful" bson:"successful"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

type ScanPayload struct {
	ScannedCode string `json:"scanned_code" validate:"required"`
	EventID     string `json:"event_id" validate:"required"`
}

type ChaperoneInfo struct {
	ChaperoneName  string `json:"chaperoneName"`
	ChaperoneEmail string `json:"chaperoneEmail"`
	ChaperonePhone string `json:"chaperonePhone"`
}

// ScanHistoryEntry is one row of the scanner's rolling history view,
// produced by the aggregation joining attempts with users and events.
type ScanHistoryEntry struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	DisplayName string             `json:"display_name" bson:"display_name"`
	EventName   string             `json:"event_name" bson:"event_name"`
	Successful  bool               `json:"successful" bson:"successful"`
	Timestamp   time.Time          `json:"timestamp" bson:"created_at"`
}
