package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"blogify-backend/internal/config"
	infraCache "blogify-backend/internal/infrastructure/cache"
	"blogify-backend/internal/infrastructure/database"
	"blogify-backend/internal/infrastructure/email"
	"blogify-backend/pkg/cache"
	"blogify-backend/pkg/jwt"

	"blogify-backend/internal/domains/blog"
	blogHandler "blogify-backend/internal/domains/blog/handler"
	blogRepo "blogify-backend/internal/domains/blog/repository"
	blogService "blogify-backend/internal/domains/blog/service"
	"blogify-backend/internal/domains/comment"
	commentHandler "blogify-backend/internal/domains/comment/handler"
	commentRepo "blogify-backend/internal/domains/comment/repository"
	commentService "blogify-backend/internal/domains/comment/service"
	"blogify-backend/internal/domains/user"
	userHandler "blogify-backend/internal/domains/user/handler"
	userRepo "blogify-backend/internal/domains/user/repository"
	userService "blogify-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order.
type Container struct {
	// Infrastructure
	Config       *config.Config
	DB           *database.PostgresDB
	Cache        cache.Cache
	JWTManager   *jwt.Manager
	AsynqClient  *asynq.Client
	EmailService email.EmailService

	// Repositories
	UserRepo            user.Repository
	BlogRepo            blog.Repository
	CommentRepo         comment.Repository
	NotificationLogRepo blog.NotificationLogRepository

	// Services
	UserService    user.Service
	BlogService    blog.Service
	CommentService comment.Service

	// HTTP handlers
	UserHandler    *userHandler.UserHandler
	BlogHandler    *blogHandler.BlogHandler
	CommentHandler *commentHandler.CommentHandler
}

// NewContainer builds the whole dependency graph:
// config -> infrastructure -> repositories -> services -> handlers.
func NewContainer() (*Container, error) {
	log.Println("[Container] Initializing...")

	c := &Container{}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] ✓ Config loaded (environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("[Container] ✓ Database connected")

	// ========================================
	// STEP 3: CACHE
	// ========================================
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		// Redis is required: the digest lock and the task queue live there.
		if err := rc.Connect(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}
	c.Cache = redisCache
	log.Println("[Container] ✓ Redis connected")

	// ========================================
	// STEP 4: SHARED COMPONENTS
	// ========================================
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.EmailService = email.NewSMTPEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.From,
	)

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.BlogRepo = blogRepo.NewPostgresRepository(db.Pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(db.Pool)
	c.NotificationLogRepo = blogRepo.NewNotificationLogRepository(db.Pool)

	// ========================================
	// STEP 6: SERVICES
	// ========================================
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.AsynqClient)
	c.BlogService = blogService.NewBlogService(c.BlogRepo, c.CommentRepo)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.BlogRepo, c.AsynqClient)

	// ========================================
	// STEP 7: HANDLERS
	// ========================================
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService, c.CommentService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)

	log.Println("[Container] ✓ Ready")
	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	log.Println("[Container] Cleaning up...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[Container] Failed to close asynq client: %v", err)
		}
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[Container] Failed to close redis: %v", err)
		}
	}
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}

	log.Println("[Container] ✓ Done")
}
