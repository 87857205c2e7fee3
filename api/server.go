package api

import (
	"context"
	"net/http"
	"warehouse-inventory/inventory"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	svc    *inventory.Service
	health Pinger
}

func NewServer(svc *inventory.Service, health Pinger) *Server {
	return &Server{svc: svc, health: health}
}

// Router returns the HTTP handler serving the inventory API.
func (s *Server) Router(production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(requestID(), requestLogger(), recovery())

	r.GET("/healthz", s.healthz)

	warehouses := r.Group("/warehouses")
	warehouses.GET("", s.listWarehouses)
	warehouses.POST("", s.createWarehouse)
	warehouses.GET("/:id", s.getWarehouse)
	warehouses.DELETE("/:id", s.deleteWarehouse)
	warehouses.GET("/:id/address", s.getAddress)

	products := r.Group("/products")
	products.GET("", s.listProducts)
	products.POST("", s.createProduct)
	products.GET("/:id", s.getProduct)
	products.DELETE("/:id", s.deleteProduct)
	products.POST("/:id/tags", s.addProductTag)
	products.DELETE("/:id/tags", s.clearProductTags)
	products.DELETE("/:id/tags/:tagId", s.removeProductTag)

	tags := r.Group("/tags")
	tags.GET("", s.listTags)
	tags.POST("", s.createTag)
	tags.GET("/:id", s.getTag)
	tags.DELETE("/:id", s.deleteTag)

	stockItems := r.Group("/stockitems")
	stockItems.GET("", s.listStockItems)
	stockItems.POST("", s.createStockItem)
	stockItems.GET("/:id", s.getStockItem)
	stockItems.DELETE("/:id", s.deleteStockItem)

	return r
}

func (s *Server) healthz(c *gin.Context) {
	if s.health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})

		return
	}

	if err := s.health.Ping(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		writeError(c, &ServiceError{
			Status:  http.StatusServiceUnavailable,
			Message: "Database unavailable",
			Inner:   err,
		})

		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// deleted is the body of every successful delete.
func deleted(c *gin.Context, key string) {
	c.JSON(http.StatusOK, gin.H{"deleted": key})
}
