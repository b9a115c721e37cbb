package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/side105/devconnector/internal/models"
	"github.com/side105/devconnector/internal/repository"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostOwner    = errors.New("user not authorized")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post not yet liked")
	ErrCommentNotFound = errors.New("comment does not exist")
)

// PostService applies post mutations with the idempotency and ownership
// rules: one like per user, owner-only deletion, newest-first comments.
type PostService interface {
	Create(ctx context.Context, user *models.User, text, name, avatar string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, user *models.User, id string) error
	Like(ctx context.Context, user *models.User, id string) (*models.Post, error)
	Unlike(ctx context.Context, user *models.User, id string) (*models.Post, error)
	Comment(ctx context.Context, user *models.User, id, text, name, avatar string) (*models.Post, error)
	Uncomment(ctx context.Context, user *models.User, id, commentID string) (*models.Post, error)
}

type postService struct {
	posts  repository.PostRepository
	logger *zap.Logger
}

func NewPostService(posts repository.PostRepository, logger *zap.Logger) PostService {
	return &postService{posts: posts, logger: logger}
}

func (s *postService) Create(ctx context.Context, user *models.User, text, name, avatar string) (*models.Post, error) {
	post := &models.Post{
		Text:     text,
		Name:     name,
		Avatar:   avatar,
		User:     user.ID,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     time.Now(),
	}

	if err := s.posts.Create(ctx, post); err != nil {
		s.logger.Error("Failed to create post", zap.Error(err))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list posts", zap.Error(err))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	postID, err := parsePostID(id)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, s.mapPostError(err)
	}
	return post, nil
}

// Delete removes a post. Only the owning user may delete it.
func (s *postService) Delete(ctx context.Context, user *models.User, id string) error {
	postID, err := parsePostID(id)
	if err != nil {
		return err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return s.mapPostError(err)
	}
	if post.User != user.ID {
		return ErrNotPostOwner
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return s.mapPostError(err)
	}
	return nil
}

// Like records the user's like. Liking a post twice fails without
// changing the like count.
func (s *postService) Like(ctx context.Context, user *models.User, id string) (*models.Post, error) {
	postID, err := parsePostID(id)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.AddLike(ctx, postID, user.ID)
	if err != nil {
		return nil, s.mapPostError(err)
	}
	return post, nil
}

// Unlike removes the user's own like, if present.
func (s *postService) Unlike(ctx context.Context, user *models.User, id string) (*models.Post, error) {
	postID, err := parsePostID(id)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.RemoveLike(ctx, postID, user.ID)
	if err != nil {
		return nil, s.mapPostError(err)
	}
	return post, nil
}

// Comment prepends a new comment with a freshly generated id.
func (s *postService) Comment(ctx context.Context, user *models.User, id, text, name, avatar string) (*models.Post, error) {
	postID, err := parsePostID(id)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:     primitive.NewObjectID(),
		Text:   text,
		Name:   name,
		Avatar: avatar,
		User:   user.ID,
		Date:   time.Now(),
	}

	post, err := s.posts.AddComment(ctx, postID, comment)
	if err != nil {
		return nil, s.mapPostError(err)
	}
	return post, nil
}

// Uncomment removes a comment by id. Removal is not restricted to the
// comment's author.
func (s *postService) Uncomment(ctx context.Context, user *models.User, id, commentID string) (*models.Post, error) {
	postID, err := parsePostID(id)
	if err != nil {
		return nil, err
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, ErrCommentNotFound
	}

	post, err := s.posts.RemoveComment(ctx, postID, cid)
	if err != nil {
		return nil, s.mapPostError(err)
	}
	return post, nil
}

// parsePostID treats a malformed id the same as an unknown one.
func parsePostID(id string) (primitive.ObjectID, error) {
	postID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrPostNotFound
	}
	return postID, nil
}

func (s *postService) mapPostError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrPostNotFound
	case errors.Is(err, repository.ErrAlreadyLiked):
		return ErrAlreadyLiked
	case errors.Is(err, repository.ErrNotLiked):
		return ErrNotLiked
	case errors.Is(err, repository.ErrCommentNotFound):
		return ErrCommentNotFound
	default:
		s.logger.Error("Post storage failure", zap.Error(err))
		return fmt.Errorf("post storage failure: %w", err)
	}
}
