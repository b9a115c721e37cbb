package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrAlreadyLiked    = errors.New("post already liked by user")
	ErrNotLiked        = errors.New("post not liked by user")
	ErrCommentNotFound = errors.New("comment not found")
)

// NewMongoDB establishes a new connection to the MongoDB server.
func NewMongoDB(ctx context.Context, uri string, logger *zap.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	logger.Info("Successfully connected to the database!")
	return client, nil
}

// EnsureIndexes creates the indexes the application relies on. Safe to
// run on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	logger.Info("Database indexes ensured")
	return nil
}
