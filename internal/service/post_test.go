package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/side105/devconnector/internal/models"
	"github.com/side105/devconnector/internal/repository"
)

// fakePostRepo mirrors the atomic update semantics of the mongo
// repository: each interaction checks and mutates in one step and
// reports the same sentinel errors.
type fakePostRepo struct {
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*models.Post{}}
}

func (f *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakePostRepo) FindAll(_ context.Context) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) AddLike(_ context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.LikedBy(userID) {
		return nil, repository.ErrAlreadyLiked
	}
	p.Likes = append(p.Likes, models.Like{User: userID})
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for i, like := range p.Likes {
		if like.User == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotLiked
}

func (f *fakePostRepo) AddComment(_ context.Context, postID primitive.ObjectID, comment *models.Comment) (*models.Post, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Comments = append([]models.Comment{*comment}, p.Comments...)
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) RemoveComment(_ context.Context, postID, commentID primitive.ObjectID) (*models.Post, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for i, c := range p.Comments {
		if c.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrCommentNotFound
}

func testUser() *models.User {
	return &models.User{ID: primitive.NewObjectID(), Name: "Alice", Avatar: "https://example.com/a.png"}
}

func newPostService(repo *fakePostRepo) PostService {
	return NewPostService(repo, zap.NewNop())
}

func createPost(t *testing.T, svc PostService, owner *models.User) *models.Post {
	t.Helper()
	post, err := svc.Create(context.Background(), owner, "a post about nothing", owner.Name, owner.Avatar)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	return post
}

func TestLikeTwice(t *testing.T) {
	repo := newFakePostRepo()
	svc := newPostService(repo)
	owner := testUser()
	liker := testUser()
	post := createPost(t, svc, owner)

	liked, err := svc.Like(context.Background(), liker, post.ID.Hex())
	if err != nil {
		t.Fatalf("first like error: %v", err)
	}
	if len(liked.Likes) != 1 {
		t.Fatalf("expected 1 like, got %d", len(liked.Likes))
	}

	if _, err := svc.Like(context.Background(), liker, post.ID.Hex()); !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}
	if n := len(repo.posts[post.ID].Likes); n != 1 {
		t.Fatalf("like count changed on duplicate like: %d", n)
	}
}

func TestUnlikeNotLiked(t *testing.T) {
	svc := newPostService(newFakePostRepo())
	owner := testUser()
	post := createPost(t, svc, owner)

	if _, err := svc.Unlike(context.Background(), testUser(), post.ID.Hex()); !errors.Is(err, ErrNotLiked) {
		t.Fatalf("expected ErrNotLiked, got %v", err)
	}
}

func TestLikeThenUnlike(t *testing.T) {
	svc := newPostService(newFakePostRepo())
	owner := testUser()
	liker := testUser()
	post := createPost(t, svc, owner)

	if _, err := svc.Like(context.Background(), liker, post.ID.Hex()); err != nil {
		t.Fatalf("like error: %v", err)
	}
	unliked, err := svc.Unlike(context.Background(), liker, post.ID.Hex())
	if err != nil {
		t.Fatalf("unlike error: %v", err)
	}
	if len(unliked.Likes) != 0 {
		t.Fatalf("expected 0 likes after unlike, got %d", len(unliked.Likes))
	}
}

func TestUnlikeOnlyRemovesOwnLike(t *testing.T) {
	svc := newPostService(newFakePostRepo())
	owner := testUser()
	first := testUser()
	second := testUser()
	post := createPost(t, svc, owner)

	if _, err := svc.Like(context.Background(), first, post.ID.Hex()); err != nil {
		t.Fatalf("like error: %v", err)
	}
	if _, err := svc.Like(context.Background(), second, post.ID.Hex()); err != nil {
		t.Fatalf("like error: %v", err)
	}

	after, err := svc.Unlike(context.Background(), first, post.ID.Hex())
	if err != nil {
		t.Fatalf("unlike error: %v", err)
	}
	if len(after.Likes) != 1 || after.Likes[0].User != second.ID {
		t.Fatalf("expected only the second user's like to remain: %+v", after.Likes)
	}
}

func TestCommentsNewestFirst(t *testing.T) {
	svc := newPostService(newFakePostRepo())
	owner := testUser()
	post := createPost(t, svc, owner)

	if _, err := svc.Comment(context.Background(), owner, post.ID.Hex(), "the first comment", owner.Name, owner.Avatar); err != nil {
		t.Fatalf("comment error: %v", err)
	}
	after, err := svc.Comment(context.Background(), owner, post.ID.Hex(), "the second comment", owner.Name, owner.Avatar)
	if err != nil {
		t.Fatalf("comment error: %v", err)
	}

	if len(after.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(after.Comments))
	}
	if after.Comments[0].Text != "the second comment" {
		t.Fatalf("expected newest comment first, got %q", after.Comments[0].Text)
	}
}

func TestUncomment(t *testing.T) {
	svc := newPostService(newFakePostRepo())
	owner := testUser()
	post := createPost(t, svc, owner)

	after, err := svc.Comment(context.Background(), owner, post.ID.Hex(), "a comment to remove", owner.Name, owner.Avatar)
	if err != nil {
		t.Fatalf("comment error: %v", err)
	}

	removed, err := svc.Uncomment(context.Background(), owner, post.ID.Hex(), after.Comments[0].ID.Hex())
	if err != nil {
		t.Fatalf("uncomment error: %v", err)
	}
	if len(removed.Comments) != 0 {
		t.Fatalf("expected 0 comments after removal, got %d", len(removed.Comments))
	}

	if _, err := svc.Uncomment(context.Background(), owner, post.ID.Hex(), primitive.NewObjectID().Hex()); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestDeleteOwnership(t *testing.T) {
	svc := newPostService(newFakePostRepo())
	owner := testUser()
	other := testUser()
	post := createPost(t, svc, owner)

	if err := svc.Delete(context.Background(), other, post.ID.Hex()); !errors.Is(err, ErrNotPostOwner) {
		t.Fatalf("expected ErrNotPostOwner, got %v", err)
	}

	if err := svc.Delete(context.Background(), owner, post.ID.Hex()); err != nil {
		t.Fatalf("owner delete error: %v", err)
	}
	if _, err := svc.Get(context.Background(), post.ID.Hex()); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected the post to be gone, got %v", err)
	}
}

func TestGetMalformedID(t *testing.T) {
	svc := newPostService(newFakePostRepo())

	if _, err := svc.Get(context.Background(), "not-a-hex-id"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for malformed id, got %v", err)
	}
}
