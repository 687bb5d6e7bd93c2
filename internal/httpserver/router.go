package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"
	ordersvc "storefront/internal/service/order"
)

type orderService interface {
	Submit(ctx context.Context, in ordersvc.SubmitInput) (*domain.Order, error)
}

type catalogService interface {
	Add(ctx context.Context, in catalogsvc.AddInput) (*domain.CatalogItem, error)
	Update(ctx context.Context, in catalogsvc.UpdateInput) (*domain.CatalogItem, error)
	Delete(ctx context.Context, in catalogsvc.DeleteInput) (*catalogsvc.DeleteResult, error)
	List(ctx context.Context, storeID string) ([]domain.CatalogItem, error)
}

// Deps are the services the handlers call into.
type Deps struct {
	OrderSvc   orderService
	CatalogSvc catalogService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db Pinger, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.OrderSvc == nil || deps.CatalogSvc == nil {
		return nil, errors.New("httpserver: order and catalog services are required")
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(opts.CORSAllowOrigins)))
	if opts.MaxBodyBytes > 0 {
		router.Use(bodyLimit(opts.MaxBodyBytes))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{logger: logger, orders: deps.OrderSvc, catalog: deps.CatalogSvc}
	api := router.Group("/api")
	api.POST("/submit-order", h.submitOrder)
	api.POST("/add-item", h.addItem)
	api.PUT("/update-item", h.updateItem)
	api.DELETE("/delete-item", h.deleteItems)
	api.GET("/view-items", h.viewItems)
	api.GET("/export-items", h.exportItems)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// bodyLimit caps request bodies; inline base64 images make them large.
func bodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
