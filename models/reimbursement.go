package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Reimbursement struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"user_id" bson:"user_id,omitempty"`
	Origin        string             `json:"origin" bson:"origin,omitempty"`
	Amount        float64            `json:"amount" bson:"amount,omitempty"`
	Reason        string             `json:"reason" bson:"reason,omitempty"`
	Status        string             `json:"status" bson:"status,omitempty"`
	Note          string             `json:"note,omitempty" bson:"note,omitempty"`
	ReceiptFileID primitive.ObjectID `json:"receipt_file_id,omitempty" bson:"receipt_file_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type ReimbursementCreatePayload struct {
	Origin string  `json:"origin" validate:"required,min=2,max=100"`
	Amount float64 `json:"amount" validate:"required,min=0"`
	Reason string  `json:"reason" validate:"required,min=10,max=500"`
}

type ReimbursementUpdatePayload struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
	Note   string `json:"note,omitempty"`
}
