package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/side105/devconnector/internal/config"
	"github.com/side105/devconnector/internal/handler"
	"github.com/side105/devconnector/internal/middleware"
	"github.com/side105/devconnector/internal/repository"
	"github.com/side105/devconnector/internal/service"
	"github.com/side105/devconnector/internal/token"
)

type Server struct {
	router *gin.Engine
	db     *mongo.Database
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *mongo.Database, cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logrus.New()))

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	users := repository.NewUserRepository(s.db, s.logger)
	posts := repository.NewPostRepository(s.db, s.logger)

	tokens := token.NewService(s.cfg.Auth.Secret, time.Duration(s.cfg.Auth.TokenTTL)*time.Second)
	authService := service.NewAuthService(users, tokens, s.cfg.Auth.BcryptCost, s.logger)
	postService := service.NewPostService(posts, s.logger)

	userHandler := handler.NewUserHandler(authService, s.logger)
	postHandler := handler.NewPostHandler(postService, s.logger)

	// Public user routes
	userGroup := s.router.Group("/users")
	userGroup.GET("/test", userHandler.Test)
	userGroup.POST("/register", userHandler.Register)
	userGroup.POST("/login", userHandler.Login)

	// Public post routes
	postGroup := s.router.Group("/posts")
	postGroup.GET("/test", postHandler.Test)
	postGroup.GET("", postHandler.GetPosts)
	postGroup.GET("/:id", postHandler.GetPost)

	// Authenticated post routes
	authRequired := postGroup.Group("")
	authRequired.Use(middleware.Auth(tokens, users, s.logger))
	{
		authRequired.POST("", postHandler.CreatePost)
		authRequired.DELETE("/:id", postHandler.DeletePost)
		authRequired.POST("/like/:id", postHandler.LikePost)
		authRequired.POST("/unlike/:id", postHandler.UnlikePost)
		authRequired.POST("/comment/:id", postHandler.CommentPost)
		authRequired.DELETE("/comment/:id/:comment_id", postHandler.UncommentPost)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
