package api

import (
	"net/http"
	"warehouse-inventory/orm"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type createWarehouseRequest struct {
	WarehouseID   string `form:"warehouseId"   json:"warehouseId"`
	Name          string `form:"name"          json:"name"`
	StreetAddress string `form:"streetAddress" json:"streetAddress"`
	City          string `form:"city"          json:"city"`
	State         string `form:"state"         json:"state"`
	Zipcode       int    `form:"zipcode"       json:"zipcode"`
}

func (s *Server) listWarehouses(c *gin.Context) {
	warehouses, err := s.svc.ListWarehouses(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list warehouses")
		writeError(c, wrapServiceError(err, "listing warehouses"))

		return
	}

	c.JSON(http.StatusOK, mapViews(warehouses, newWarehouseView))
}

func (s *Server) getWarehouse(c *gin.Context) {
	key := c.Param("id")

	w, err := s.svc.GetWarehouse(c.Request.Context(), key)
	if err != nil {
		writeError(c, wrapServiceError(err, "warehouse "+key))

		return
	}

	c.JSON(http.StatusOK, newWarehouseView(w))
}

func (s *Server) getAddress(c *gin.Context) {
	key := c.Param("id")

	a, err := s.svc.GetAddress(c.Request.Context(), key)
	if err != nil {
		writeError(c, wrapServiceError(err, "address of warehouse "+key))

		return
	}

	c.JSON(http.StatusOK, newAddressView(a))
}

func (s *Server) createWarehouse(c *gin.Context) {
	var req createWarehouseRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, newBindError(err))

		return
	}

	log.Info().
		Str("warehouse", req.WarehouseID).
		Str("name", req.Name).
		Msg("Warehouse creation requested")

	w, err := s.svc.CreateWarehouse(
		c.Request.Context(),
		orm.NewWarehouse(req.WarehouseID, req.Name),
		orm.NewAddress(req.StreetAddress, req.City, req.State, req.Zipcode),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create warehouse")
		writeError(c, wrapServiceError(err, "creating warehouse"))

		return
	}

	c.JSON(http.StatusOK, newWarehouseView(w))
}

func (s *Server) deleteWarehouse(c *gin.Context) {
	key := c.Param("id")
	log.Info().Str("warehouse", key).Msg("Warehouse deletion requested")

	if err := s.svc.DeleteWarehouse(c.Request.Context(), key); err != nil {
		log.Error().Err(err).Msg("Failed to delete warehouse")
		writeError(c, wrapServiceError(err, "deleting warehouse"))

		return
	}

	deleted(c, key)
}
