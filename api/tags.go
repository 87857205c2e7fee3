package api

import (
	"net/http"
	"warehouse-inventory/orm"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (s *Server) listTags(c *gin.Context) {
	tags, err := s.svc.ListTags(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tags")
		writeError(c, wrapServiceError(err, "listing tags"))

		return
	}

	c.JSON(http.StatusOK, mapViews(tags, newTagView))
}

func (s *Server) getTag(c *gin.Context) {
	key := c.Param("id")

	t, err := s.svc.GetTag(c.Request.Context(), key)
	if err != nil {
		writeError(c, wrapServiceError(err, "tag "+key))

		return
	}

	c.JSON(http.StatusOK, newTagView(t))
}

func (s *Server) createTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, newBindError(err))

		return
	}

	log.Info().Str("tag", req.TagID).Msg("Tag creation requested")

	t, err := s.svc.CreateTag(c.Request.Context(), orm.NewTag(req.TagID))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create tag")
		writeError(c, wrapServiceError(err, "creating tag"))

		return
	}

	c.JSON(http.StatusOK, newTagView(t))
}

func (s *Server) deleteTag(c *gin.Context) {
	key := c.Param("id")
	log.Info().Str("tag", key).Msg("Tag deletion requested")

	if err := s.svc.DeleteTag(c.Request.Context(), key); err != nil {
		log.Error().Err(err).Msg("Failed to delete tag")
		writeError(c, wrapServiceError(err, "deleting tag"))

		return
	}

	deleted(c, key)
}
