package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/side105/devconnector/internal/service"
	"github.com/side105/devconnector/internal/validation"
)

type UserHandler interface {
	Test(c *gin.Context)
	Register(c *gin.Context)
	Login(c *gin.Context)
}

type userHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewUserHandler(authService service.AuthService, logger *zap.Logger) UserHandler {
	return &userHandler{authService: authService, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Test handles GET /users/test
func (h *userHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "User Works"})
}

// Register handles POST /users/register
func (h *userHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := validation.Register(req.Name, req.Email, req.Password); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"email": "Email already exists"})
			return
		}
		h.logger.Error("Failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login handles POST /users/login
func (h *userHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := validation.Login(req.Email, req.Password); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	tokenString, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"email": "User not found"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"password": "Password incorrect"})
		default:
			h.logger.Error("Failed to login user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": tokenString})
}
