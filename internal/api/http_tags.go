package api

import (
	"context"
	"net/http"
	"time"

	"moodlog/internal/entity"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) ListTags(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, entity.TagListResponse{Tags: []entity.Tag{}})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tags, err := h.journalService.ListTags(ctx)
	if err != nil {
		h.renderServiceError(c, err, "failed to load tags")
		return
	}

	c.JSON(http.StatusOK, entity.TagListResponse{Tags: tags})
}
