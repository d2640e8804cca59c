package handler

import (
	"net/http"
	"strings"

	"github.com/flatwalay/backend/internal/auth"
	"github.com/flatwalay/backend/internal/config"
	"github.com/flatwalay/backend/internal/repository"
	"github.com/flatwalay/backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler wires the HTTP routes to the repository and services
type Handler struct {
	cfg       *config.Config
	log       *zap.Logger
	repo      *repository.PostgresRepository
	jwt       *auth.JWTService
	hasher    *auth.PasswordHasher
	extractor *service.Extractor
	scorer    *service.Scorer
	conflicts *service.ConflictDetector
	hunter    *service.RoomHunter
	explainer *service.Explainer

	version   string
	buildTime string
	gitCommit string
}

// New creates the HTTP handler
func New(
	cfg *config.Config,
	log *zap.Logger,
	repo *repository.PostgresRepository,
	jwt *auth.JWTService,
	hasher *auth.PasswordHasher,
	extractor *service.Extractor,
	scorer *service.Scorer,
	conflicts *service.ConflictDetector,
	hunter *service.RoomHunter,
	explainer *service.Explainer,
	version, buildTime, gitCommit string,
) *Handler {
	return &Handler{
		cfg:       cfg,
		log:       log,
		repo:      repo,
		jwt:       jwt,
		hasher:    hasher,
		extractor: extractor,
		scorer:    scorer,
		conflicts: conflicts,
		hunter:    hunter,
		explainer: explainer,
		version:   version,
		buildTime: buildTime,
		gitCommit: gitCommit,
	}
}

// Router builds the gin engine with all routes registered
func (h *Handler) Router() *gin.Engine {
	gin.SetMode(h.cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.requestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(h.cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/health", h.health)
	r.GET("/version", h.versionInfo)

	users := r.Group("/users")
	{
		users.POST("/register", h.register)
		users.POST("/login", h.login)
		users.POST("/logout", h.AuthRequired(), h.logout)
		users.GET("/me", h.AuthRequired(), h.currentUser)
		users.GET("/all", h.AuthRequired(), h.listUsers)
		users.PATCH("/:id", h.AuthRequired(), h.updateUser)
		users.DELETE("/:id", h.AuthRequired(), h.deleteUser)
	}

	profiles := r.Group("/profiles", h.AuthRequired())
	{
		profiles.POST("", h.createProfile)
		profiles.GET("", h.listProfiles)
		profiles.GET("/:id", h.getProfile)
		profiles.PATCH("/:id", h.updateProfile)
		profiles.DELETE("/:id", h.deleteProfile)
	}

	housing := r.Group("/housing", h.AuthRequired())
	{
		housing.POST("", h.createListing)
		housing.GET("", h.listListings)
		housing.GET("/:id", h.getListing)
		housing.PATCH("/:id", h.updateListing)
		housing.DELETE("/:id", h.deleteListing)
	}

	ai := r.Group("/ai", h.AuthRequired())
	{
		ai.POST("/parse-profile", h.parseProfile)
		ai.POST("/score-match", h.scoreMatch)
		ai.GET("/best-matches", h.bestMatches)
		ai.POST("/detect-conflicts", h.detectConflicts)
		ai.POST("/top-housing-matches", h.topHousingMatches)
		ai.POST("/generate-explanation", h.generateExplanation)
	}

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) versionInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.version,
		"build_time": h.buildTime,
		"git_commit": h.gitCommit,
	})
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		h.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

func errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
