package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type createStockItemRequest struct {
	StockItemID string `form:"stockItemId" json:"stockItemId"`
	Warehouse   string `form:"warehouse"   json:"warehouse"`
	Product     string `form:"product"     json:"product"`
	Quantity    int64  `form:"quantity"    json:"quantity"`
}

func (s *Server) listStockItems(c *gin.Context) {
	items, err := s.svc.ListStockItems(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stock items")
		writeError(c, wrapServiceError(err, "listing stock items"))

		return
	}

	c.JSON(http.StatusOK, mapViews(items, newStockItemView))
}

func (s *Server) getStockItem(c *gin.Context) {
	key := c.Param("id")

	item, err := s.svc.GetStockItem(c.Request.Context(), key)
	if err != nil {
		writeError(c, wrapServiceError(err, "stock item "+key))

		return
	}

	c.JSON(http.StatusOK, newStockItemView(item))
}

func (s *Server) createStockItem(c *gin.Context) {
	var req createStockItemRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, newBindError(err))

		return
	}

	log.Info().
		Str("stockItem", req.StockItemID).
		Str("warehouse", req.Warehouse).
		Str("product", req.Product).
		Int64("quantity", req.Quantity).
		Msg("Stock item creation requested")

	item, err := s.svc.CreateStockItem(
		c.Request.Context(),
		req.StockItemID,
		req.Warehouse,
		req.Product,
		req.Quantity,
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create stock item")
		writeError(c, wrapServiceError(err, "creating stock item"))

		return
	}

	c.JSON(http.StatusOK, newStockItemView(item))
}

func (s *Server) deleteStockItem(c *gin.Context) {
	key := c.Param("id")
	log.Info().Str("stockItem", key).Msg("Stock item deletion requested")

	if err := s.svc.DeleteStockItem(c.Request.Context(), key); err != nil {
		log.Error().Err(err).Msg("Failed to delete stock item")
		writeError(c, wrapServiceError(err, "deleting stock item"))

		return
	}

	deleted(c, key)
}
