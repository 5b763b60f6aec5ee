package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"moodlog/internal/entity"
	"moodlog/internal/sentiment"
	"moodlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func (h *HTTPHandler) CreateEntry(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "entry repository not available")
		return
	}

	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	item, err := h.journalService.CreateEntry(ctx, requestUser.ID, req.Text, req.Tags)
	if err != nil {
		h.renderServiceError(c, err, "failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, entity.EntryDetailResponse{Entry: *item})
}

func (h *HTTPHandler) ListEntries(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, entity.EntryListResponse{Entries: []entity.EntryItem{}, Meta: &entity.Meta{Page: 1}})
		return
	}

	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var params entity.EntryQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	response, err := h.journalService.QueryEntries(ctx, requestUser.ID, params)
	if err != nil {
		h.renderServiceError(c, err, "failed to load entries")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *HTTPHandler) GetEntry(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "entry repository not available")
		return
	}

	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry, err := h.repo.GetEntry(ctx, requestUser.ID, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeEntryNotFound, "entry not found")
			return
		}
		logrus.WithError(err).WithField("id", entryID).Error("failed to load entry")
		InternalError(c, "failed to load entry")
		return
	}

	tags := make([]string, 0, len(entry.Tags))
	for _, tag := range entry.Tags {
		tags = append(tags, tag.Name)
	}
	c.JSON(http.StatusOK, entity.EntryDetailResponse{Entry: entity.EntryItem{
		ID:        entry.ID,
		Date:      entry.CreatedAt,
		Text:      entry.Text,
		Sentiment: entry.Sentiment,
		Glyph:     sentiment.GlyphFor(entry.Sentiment),
		Tags:      tags,
	}})
}

func (h *HTTPHandler) DeleteEntry(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "entry repository not available")
		return
	}

	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteEntry(ctx, requestUser.ID, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeEntryNotFound, "entry not found")
			return
		}
		logrus.WithError(err).WithField("id", entryID).Error("failed to delete entry")
		InternalError(c, "failed to delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	rawID := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid entry id")
		return 0, false
	}
	return uint(id), true
}

// renderServiceError 将服务层错误映射为统一响应
func (h *HTTPHandler) renderServiceError(c *gin.Context, err error, fallback string) {
	if ve, ok := service.AsValidation(err); ok {
		ValidationFailed(c, ve.Field, ve.Message)
		return
	}
	if service.IsStorage(err) {
		logrus.WithError(err).Error(fallback)
		StorageUnavailable(c, fallback)
		return
	}
	logrus.WithError(err).Error(fallback)
	InternalError(c, fallback)
}
