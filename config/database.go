package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoConn *mongo.Client

var DBName string = "hackathon-portal-db"
var UserCollection string = "users"
var EventCollection string = "events"
var CheckinCollection string = "checkins"
var ScanAttemptCollection string = "scan_attempts"
var ReimbursementCollection string = "reimbursements"

func MongoConnect() {

	mongoURI := os.Getenv("MONGOSTRING")

	if mongoURI == "" {
		log.Fatal("MONGOSTRING is not set in the environment. Set it first")
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB!")
	MongoConn = client
}

// InitDatabase creates the indexes the application relies on. The compound
// unique index on checkins is the backstop for concurrent duplicate scans:
// only one check-in can ever exist per (user_id, event_id) pair.
func InitDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := GetCollection(UserCollection)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "check_in_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}

	checkins := GetCollection(CheckinCollection)
	_, err = checkins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("Failed to create checkin index: %v", err)
	}

	attempts := GetCollection(ScanAttemptCollection)
	_, err = attempts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		log.Fatalf("Failed to create scan attempt index: %v", err)
	}

	log.Println("Database indexes ready")
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		log.Fatal("MongoDB client is not initialized. Call MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

// GetGridFSBucket returns the bucket used for reimbursement receipts.
func GetGridFSBucket() (*gridfs.Bucket, error) {
	if MongoConn == nil {
		log.Fatal("MongoDB client is not initialized. Call MongoConnect() first")
	}
	return gridfs.NewBucket(MongoConn.Database(DBName))
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnect from MongoDB")
	}
}
