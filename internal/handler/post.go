package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/side105/devconnector/internal/middleware"
	"github.com/side105/devconnector/internal/service"
	"github.com/side105/devconnector/internal/validation"
)

type PostHandler interface {
	Test(c *gin.Context)
	GetPosts(c *gin.Context)
	GetPost(c *gin.Context)
	CreatePost(c *gin.Context)
	DeletePost(c *gin.Context)
	LikePost(c *gin.Context)
	UnlikePost(c *gin.Context)
	CommentPost(c *gin.Context)
	UncommentPost(c *gin.Context)
}

type postHandler struct {
	postService service.PostService
	logger      *zap.Logger
}

func NewPostHandler(postService service.PostService, logger *zap.Logger) PostHandler {
	return &postHandler{postService: postService, logger: logger}
}

type postRequest struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Test handles GET /posts/test
func (h *postHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Posts Works"})
}

// GetPosts handles GET /posts
func (h *postHandler) GetPosts(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost handles GET /posts/:id
func (h *postHandler) GetPost(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"postnotfound": "Post not found"})
			return
		}
		h.logger.Error("Failed to get post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost handles POST /posts
func (h *postHandler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := validation.PostInput(req.Text, req.Name, req.Avatar); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), middleware.CurrentUser(c), req.Text, req.Name, req.Avatar)
	if err != nil {
		h.logger.Error("Failed to create post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /posts/:id
func (h *postHandler) DeletePost(c *gin.Context) {
	err := h.postService.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotPostOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"notauthorized": "User not authorized"})
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"postnotfound": "Post not found"})
		default:
			h.logger.Error("Failed to delete post", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LikePost handles POST /posts/like/:id
func (h *postHandler) LikePost(c *gin.Context) {
	post, err := h.postService.Like(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyLiked):
			c.JSON(http.StatusBadRequest, gin.H{"alreadyliked": "User has already liked this post"})
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"postnotfound": "Post not found"})
		default:
			h.logger.Error("Failed to like post", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "post liked", "post": post})
}

// UnlikePost handles POST /posts/unlike/:id
func (h *postHandler) UnlikePost(c *gin.Context) {
	post, err := h.postService.Unlike(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotLiked):
			c.JSON(http.StatusBadRequest, gin.H{"notliked": "User has not yet liked this post"})
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"postnotfound": "Post not found"})
		default:
			h.logger.Error("Failed to unlike post", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "post unliked", "post": post})
}

// CommentPost handles POST /posts/comment/:id
func (h *postHandler) CommentPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := validation.PostInput(req.Text, req.Name, req.Avatar); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	post, err := h.postService.Comment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Text, req.Name, req.Avatar)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"postnotfound": "Post not found"})
			return
		}
		h.logger.Error("Failed to comment on post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "comment added", "post": post})
}

// UncommentPost handles DELETE /posts/comment/:id/:comment_id
func (h *postHandler) UncommentPost(c *gin.Context) {
	post, err := h.postService.Uncomment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"commentnotexists": "Comment does not exist"})
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"postnotfound": "Post not found"})
		default:
			h.logger.Error("Failed to remove comment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove comment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "comment removed", "post": post})
}
