package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/side105/devconnector/internal/models"
)

const postsCollection = "posts"

// PostRepository persists post documents. The like and comment
// operations are single atomic updates on the server side, so two
// concurrent interactions on the same post cannot lose each other's
// change.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) (*models.Post, error)
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (*models.Post, error)
}

type postRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewPostRepository(db *mongo.Database, logger *zap.Logger) PostRepository {
	return &postRepository{coll: db.Collection(postsCollection), logger: logger}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	res, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return err
	}

	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *postRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddLike appends a like for the user unless one is already present.
// The filter excludes posts already liked by the user, so the check and
// the append happen in one update.
func (r *postRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	filter := bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"likes": models.Like{User: userID}}}

	post, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, ErrNotFound) {
		// No match: either the post is gone or the like exists.
		if _, ferr := r.FindByID(ctx, postID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrAlreadyLiked
	}
	return post, err
}

// RemoveLike removes the user's like. Only the liking user's own like
// can be removed.
func (r *postRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	filter := bson.M{"_id": postID, "likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}

	post, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, ErrNotFound) {
		if _, ferr := r.FindByID(ctx, postID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrNotLiked
	}
	return post, err
}

// AddComment prepends the comment so the newest comment comes first.
func (r *postRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) (*models.Post, error) {
	filter := bson.M{"_id": postID}
	update := bson.M{"$push": bson.M{"comments": bson.M{"$each": bson.A{comment}, "$position": 0}}}

	return r.findOneAndUpdate(ctx, filter, update)
}

// RemoveComment removes the comment with the given id from the post.
func (r *postRepository) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (*models.Post, error) {
	filter := bson.M{"_id": postID, "comments._id": commentID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}

	post, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, ErrNotFound) {
		if _, ferr := r.FindByID(ctx, postID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrCommentNotFound
	}
	return post, err
}

func (r *postRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}
