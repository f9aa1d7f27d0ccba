package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ecofinds/internal/metrics"
	"ecofinds/internal/service"
	"ecofinds/internal/storage"
)

const (
	// DefaultMaxUploadBytes bounds product image uploads when no limit is configured.
	DefaultMaxUploadBytes = 5 << 20
	defaultImageKeyPrefix = "product-images"
)

// Services groups the domain services the API exposes.
type Services struct {
	Users     service.UserService
	Identity  service.IdentityResolver
	Products  service.ProductService
	Cart      service.CartService
	Checkout  service.CheckoutService
	Purchases service.PurchaseService
}

// Options tunes the HTTP layer. Zero values select defaults.
type Options struct {
	Storage        storage.Service
	ImageKeyPrefix string
	MaxUploadBytes int64
	// StaticDir is served under /static when set.
	StaticDir      string
	RequestTimeout time.Duration
	Metrics        metrics.Recorder
	MetricsHandler http.Handler
	Logger         *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	svc            Services
	storage        storage.Service
	imageKeyPrefix string
	maxUploadBytes int64
	staticDir      string
	requestTimeout time.Duration
	metrics        metrics.Recorder
	metricsHandler http.Handler
	logger         *logrus.Logger
}

func NewHandler(svc Services, opts Options) *Handler {
	h := &Handler{
		svc:            svc,
		storage:        opts.Storage,
		imageKeyPrefix: opts.ImageKeyPrefix,
		maxUploadBytes: opts.MaxUploadBytes,
		staticDir:      opts.StaticDir,
		requestTimeout: opts.RequestTimeout,
		metrics:        opts.Metrics,
		metricsHandler: opts.MetricsHandler,
		logger:         opts.Logger,
	}
	if h.imageKeyPrefix == "" {
		h.imageKeyPrefix = defaultImageKeyPrefix
	}
	if h.maxUploadBytes <= 0 {
		h.maxUploadBytes = DefaultMaxUploadBytes
	}
	if h.metrics == nil {
		h.metrics = metrics.Nop{}
	}
	if h.logger == nil {
		h.logger = logrus.StandardLogger()
	}
	return h
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), corsMiddleware())
	if h.requestTimeout > 0 {
		router.Use(requestTimeout(h.requestTimeout))
	}

	authed := h.requireAuth()

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/profile", authed, h.getProfile)
		auth.PUT("/profile", authed, h.updateProfile)
	}

	products := router.Group("/products")
	{
		products.GET("/", h.listProducts)
		products.GET("/mine", authed, h.listMyProducts)
		products.GET("/:id", h.getProduct)
		products.POST("/", authed, h.createProduct)
		products.PUT("/:id", authed, h.updateProduct)
		products.DELETE("/:id", authed, h.deleteProduct)
		products.POST("/upload-image/", h.uploadImage)
	}

	cart := router.Group("/cart", authed)
	{
		cart.POST("/", h.addToCart)
		cart.GET("/", h.listCart)
		cart.DELETE("/:id", h.removeFromCart)
		cart.POST("/checkout", h.checkout)
	}

	router.GET("/purchases/", authed, h.listPurchases)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(h.metricsHandler))
	}
	if h.staticDir != "" {
		router.Static("/static", h.staticDir)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "WWW-Authenticate")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, detailBody("Invalid "+name))
		return 0, false
	}
	return id, true
}
