// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"devlink/internal/cache"
	"devlink/internal/config"
	"devlink/internal/database"
	"devlink/internal/github"
	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers. The database handle
// and Redis cache are created at startup and passed explicitly; nothing here
// is package-level mutable state.
type Server struct {
	config *config.Config
	db     *gorm.DB
	cache  *cache.Cache
	app    *fiber.App
	prom   *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	githubAPI   *github.Client

	profileService *service.ProfileService
	postService    *service.PostService
	commentService *service.CommentService
}

// NewServer creates a new server instance, connecting the database and Redis.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	s := NewServerWithDeps(cfg, db, cache.New(cfg.RedisURL))
	// Registers collectors in the default registry; done once per process.
	s.prom = fiberprometheus.New("devlink-api")
	return s, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap code that seeds before serving.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, c *cache.Cache) *Server {
	s := &Server{
		config: cfg,
		db:     db,
		cache:  c,
	}
	s.userRepo = repository.NewUserRepository(db, c)
	s.profileRepo = repository.NewProfileRepository(db, c)
	s.postRepo = repository.NewPostRepository(db, c)
	s.githubAPI = github.NewClient(cfg.GithubAPIURL, cfg.GithubClientID, cfg.GithubSecret)

	s.profileService = service.NewProfileService(s.profileRepo, s.userRepo)
	s.postService = service.NewPostService(s.postRepo, s.userRepo)
	s.commentService = service.NewCommentService(s.postRepo, s.userRepo)
	return s
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.prom != nil {
		app.Use(s.prom.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Tracing spans per request
	app.Use(middleware.TracingMiddleware())

	// CORS before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Fixed-window rate limit on API routes: 100 requests per hour per IP,
	// answered with a plain-text message when exceeded.
	app.Use("/api", limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Hour,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).
				SendString("Too many requests from this IP, please try again in an hour")
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.cache.Client(), 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.cache.Client(), 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/getMe", s.AuthRequired(), s.GetMe)

	// Profile routes: public browse, protected mutation
	profile := api.Group("/profile")
	profile.Get("/", s.GetProfiles)
	profile.Post("/", s.AuthRequired(), s.UpsertProfile)
	profile.Get("/me", s.AuthRequired(), s.GetMyProfile)
	profile.Put("/experience", s.AuthRequired(), s.AddExperience)
	profile.Delete("/experience/:exp_id", s.AuthRequired(), s.RemoveExperience)
	profile.Post("/education", s.AuthRequired(), s.AddEducation)
	profile.Delete("/education/:edu_id", s.AuthRequired(), s.RemoveEducation)
	profile.Get("/github/:username", s.AuthRequired(), s.GetGithubRepos)
	// Generic /user/:user_id routes last
	profile.Get("/user/:user_id", s.GetProfileByUserID)
	profile.Delete("/user/:user_id", s.AuthRequired(), s.DeleteAccount)

	// Post routes, all protected
	posts := api.Group("/posts", s.AuthRequired())
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.CreatePost)
	posts.Put("/like/:id", s.LikePost)
	posts.Put("/unlike/:id", s.UnlikePost)
	posts.Post("/comment/:id", s.CreateComment)
	posts.Delete("/comment/:id/:comment_id", s.DeleteComment)
	// Generic /:id routes must be last
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if rdb := s.cache.Client(); rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional; the API degrades to uncached reads without it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. The token signature is
// always verified against the configured secret; a decoded-but-unverified
// token is never trusted.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// The account may have been deleted since the token was issued.
		if _, lookupErr := s.userRepo.GetByID(c.Context(), uint(userID)); lookupErr != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals("userID", uint(userID))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "DevLink API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
				return models.RespondWithError(c, fe.Code,
					models.NewValidationError(fe.Message))
			}
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server, then closes the database and
// Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}
	if err := database.Close(s.db); err != nil {
		log.Printf("error closing sql DB: %v", err)
	}
	if err := s.cache.Close(); err != nil {
		log.Printf("error closing redis: %v", err)
	}
	log.Println("Server shutdown complete")
	return nil
}
