package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hackathon-portal/config"
	"hackathon-portal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*mongo.InsertOneResult, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindUserByCheckinCode(ctx context.Context, code string) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error)
	UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
	GetAllUsers(ctx context.Context, filter bson.M, page, limit int64) ([]models.User, int64, error)
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type userRepository struct {
	collection              *mongo.Collection
	eventCollection         *mongo.Collection
	checkinCollection       *mongo.Collection
	reimbursementCollection *mongo.Collection
}

func NewUserRepository() UserRepository {
	return &userRepository{
		collection:              config.GetCollection(config.UserCollection),
		eventCollection:         config.GetCollection(config.EventCollection),
		checkinCollection:       config.GetCollection(config.CheckinCollection),
		reimbursementCollection: config.GetCollection(config.ReimbursementCollection),
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*mongo.InsertOneResult, error) {
	user.ID = primitive.NewObjectID()
	// Opaque scan code; the validator only ever looks it up by equality.
	user.CheckinCode = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	user.IsFirstLogin = true

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return result, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": email}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindUserByCheckinCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	filter := bson.M{"check_in_code": code}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by check-in code: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*mongo.UpdateResult, error) {
	updateData["updated_at"] = time.Now()
	filter := bson.M{"_id": id}
	update := bson.M{"$set": updateData}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return result, nil
}

func (r *userRepository) UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	update := bson.M{
		"$set": bson.M{
			"password":   hashedPassword,
			"updated_at": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}
	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	filter := bson.M{"_id": id}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return result, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context, filter bson.M, page, limit int64) ([]models.User, int64, error) {
	findOptions := options.Find()
	findOptions.SetSkip((page - 1) * limit)
	findOptions.SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User

	if err = cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}

func (r *userRepository) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {

	totalUsers, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totalHackers, err := r.collection.CountDocuments(ctx, bson.M{"role": "hacker"})
	if err != nil {
		return nil, fmt.Errorf("failed to count hackers: %w", err)
	}

	totalMinors, err := r.collection.CountDocuments(ctx, bson.M{"registration.is_high_school_student": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count minors: %w", err)
	}

	totalEvents, err := r.eventCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	totalCheckins, err := r.checkinCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count check-ins: %w", err)
	}

	pendingReimbursements, err := r.reimbursementCollection.CountDocuments(ctx, bson.M{"status": "pending"})
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reimbursements: %w", err)
	}

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$role",
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate role distribution: %w", err)
	}
	defer cursor.Close(ctx)

	var roleCounts []models.RoleCount
	if err = cursor.All(ctx, &roleCounts); err != nil {
		return nil, fmt.Errorf("failed to decode role distribution: %w", err)
	}

	latestActivities := []string{
		"Hackathon portal started.",
		"Admin logged in to the dashboard.",
	}

	stats := &models.DashboardStats{
		TotalUsers:            totalUsers,
		TotalHackers:          totalHackers,
		TotalMinors:           totalMinors,
		TotalEvents:           totalEvents,
		TotalCheckins:         totalCheckins,
		PendingReimbursements: pendingReimbursements,
		RoleDistribution:      roleCounts,
		RecentActivity:        latestActivities,
	}

	return stats, nil
}
