package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealmind/internal/auth"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterOptions configure the HTTP surface around a Handler.
type RouterOptions struct {
	AllowOrigins []string
	Validator    auth.TokenValidator
	// Limiter is optional; without it generation is not rate limited.
	Limiter  RateLimiter
	Database Pinger
	Logger   *zap.Logger
}

// NewRouter wires the middleware chain and every route.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	r := gin.New()
	r.Use(requestid.New())
	r.Use(Logger(logger))
	r.Use(Recovery(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", Health(opts.Database))
	r.Static(ImagesRoute, h.Images.Dir)

	generation := []gin.HandlerFunc{}
	if opts.Limiter != nil {
		generation = append(generation, RateLimit(opts.Limiter, logger))
	}

	public := r.Group("/api")
	public.POST("/generate-recipe", h.RelayGenerate)

	private := r.Group("/api", auth.Middleware(opts.Validator))
	private.GET("/recipes", h.ListRecipes)
	private.POST("/recipes/generate", append(generation, h.GenerateRecipes)...)
	private.GET("/recipes/:id", h.GetRecipe)
	private.POST("/recipes/:id/cook", h.CookRecipe)
	private.POST("/recipes/:id/photo", h.UploadPhoto)
	private.POST("/meal-plan", append(generation, h.MealPlan)...)

	private.GET("/pantry", h.ListPantry)
	private.POST("/pantry", h.AddPantryItem)
	private.DELETE("/pantry/:id", h.RemovePantryItem)

	private.GET("/shopping-list", h.ListShoppingList)
	private.POST("/shopping-list", h.AddShoppingItem)
	private.DELETE("/shopping-list/:id", h.RemoveShoppingItem)

	private.GET("/profile", h.GetProfile)
	private.PUT("/profile", h.UpdateProfile)

	return r
}

// Health reports liveness and, when a database is given, its reachability.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
	}
}
