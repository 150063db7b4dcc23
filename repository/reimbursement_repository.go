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

type ReimbursementRepository interface {
	Create(ctx context.Context, request *models.Reimbursement) (*mongo.InsertOneResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reimbursement, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Reimbursement, error)
	FindAll(ctx context.Context) ([]models.Reimbursement, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status, note string) (*mongo.UpdateResult, error)
	UpdateReceiptFileID(ctx context.Context, id primitive.ObjectID, fileID primitive.ObjectID) (*mongo.UpdateResult, error)
}

type reimbursementRepository struct {
	collection *mongo.Collection
}

func NewReimbursementRepository() ReimbursementRepository {
	return &reimbursementRepository{
		collection: config.GetCollection(config.ReimbursementCollection),
	}
}

func (r *reimbursementRepository) Create(ctx context.Context, request *models.Reimbursement) (*mongo.InsertOneResult, error) {
	res, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create reimbursement request: %w", err)
	}
	return res, nil
}

func (r *reimbursementRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reimbursement, error) {
	var request models.Reimbursement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find reimbursement request: %w", err)
	}
	return &request, nil
}

func (r *reimbursementRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Reimbursement, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to find user reimbursements: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Reimbursement
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode user reimbursements: %w", err)
	}

	if len(results) == 0 {
		return []models.Reimbursement{}, nil
	}
	return results, nil
}

func (r *reimbursementRepository) FindAll(ctx context.Context) ([]models.Reimbursement, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find reimbursements: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Reimbursement
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode reimbursements: %w", err)
	}

	if len(results) == 0 {
		return []models.Reimbursement{}, nil
	}
	return results, nil
}

func (r *reimbursementRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status, note string) (*mongo.UpdateResult, error) {
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"note":       note,
			"updated_at": time.Now(),
		},
	}
	res, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update reimbursement status: %w", err)
	}
	return res, nil
}

func (r *reimbursementRepository) UpdateReceiptFileID(ctx context.Context, id primitive.ObjectID, fileID primitive.ObjectID) (*mongo.UpdateResult, error) {
	update := bson.M{
		"$set": bson.M{
			"receipt_file_id": fileID,
			"updated_at":      time.Now(),
		},
	}
	res, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to save receipt file reference: %w", err)
	}
	return res, nil
}
