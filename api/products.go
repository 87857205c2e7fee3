package api

import (
	"net/http"
	"warehouse-inventory/orm"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type createProductRequest struct {
	ProductID   string   `form:"productId"   json:"productId"`
	Name        string   `form:"name"        json:"name"`
	Description string   `form:"description" json:"description"`
	Tags        []string `form:"tags"        json:"tags"`
}

type tagRequest struct {
	TagID string `form:"tagId" json:"tagId"`
}

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.svc.ListProducts(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		writeError(c, wrapServiceError(err, "listing products"))

		return
	}

	c.JSON(http.StatusOK, mapViews(products, newProductView))
}

func (s *Server) getProduct(c *gin.Context) {
	key := c.Param("id")

	p, err := s.svc.GetProduct(c.Request.Context(), key)
	if err != nil {
		writeError(c, wrapServiceError(err, "product "+key))

		return
	}

	c.JSON(http.StatusOK, newProductView(p))
}

func (s *Server) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, newBindError(err))

		return
	}

	log.Info().
		Str("product", req.ProductID).
		Strs("tags", req.Tags).
		Msg("Product creation requested")

	p, err := s.svc.CreateProduct(
		c.Request.Context(),
		orm.NewProduct(req.ProductID, req.Name, req.Description),
		req.Tags...,
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create product")
		writeError(c, wrapServiceError(err, "creating product"))

		return
	}

	c.JSON(http.StatusOK, newProductView(p))
}

func (s *Server) deleteProduct(c *gin.Context) {
	key := c.Param("id")
	log.Info().Str("product", key).Msg("Product deletion requested")

	if err := s.svc.DeleteProduct(c.Request.Context(), key); err != nil {
		log.Error().Err(err).Msg("Failed to delete product")
		writeError(c, wrapServiceError(err, "deleting product"))

		return
	}

	deleted(c, key)
}

func (s *Server) addProductTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, newBindError(err))

		return
	}

	key := c.Param("id")
	log.Info().Str("product", key).Str("tag", req.TagID).Msg("Tag addition requested")

	p, err := s.svc.AddProductTag(c.Request.Context(), key, req.TagID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to add tag")
		writeError(c, wrapServiceError(err, "adding tag"))

		return
	}

	c.JSON(http.StatusOK, newProductView(p))
}

func (s *Server) removeProductTag(c *gin.Context) {
	key, tag := c.Param("id"), c.Param("tagId")
	log.Info().Str("product", key).Str("tag", tag).Msg("Tag removal requested")

	p, err := s.svc.RemoveProductTag(c.Request.Context(), key, tag)
	if err != nil {
		log.Error().Err(err).Msg("Failed to remove tag")
		writeError(c, wrapServiceError(err, "removing tag"))

		return
	}

	c.JSON(http.StatusOK, newProductView(p))
}

func (s *Server) clearProductTags(c *gin.Context) {
	key := c.Param("id")
	log.Info().Str("product", key).Msg("Tag clearing requested")

	p, err := s.svc.ClearProductTags(c.Request.Context(), key)
	if err != nil {
		log.Error().Err(err).Msg("Failed to clear tags")
		writeError(c, wrapServiceError(err, "clearing tags"))

		return
	}

	c.JSON(http.StatusOK, newProductView(p))
}
