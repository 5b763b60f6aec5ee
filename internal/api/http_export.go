package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"moodlog/internal/archive"
	"moodlog/internal/entity"
	"moodlog/internal/export"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *HTTPHandler) ExportCSV(c *gin.Context) {
	h.exportEntries(c, "csv", "text/csv; charset=utf-8", export.WriteCSV)
}

func (h *HTTPHandler) ExportPDF(c *gin.Context) {
	h.exportEntries(c, "pdf", "application/pdf", export.WritePDF)
}

func (h *HTTPHandler) exportEntries(c *gin.Context, extension, contentType string, write func(w io.Writer, rows []entity.EntryItem) error) {
	if h.repo == nil {
		ServiceUnavailable(c, "entry repository not available")
		return
	}

	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	rows, err := h.journalService.ExportRows(ctx, requestUser.ID)
	if err != nil {
		h.renderServiceError(c, err, "failed to load entries for export")
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, rows); err != nil {
		logrus.WithError(err).WithField("format", extension).Error("failed to render export")
		InternalError(c, "failed to render export")
		return
	}

	h.archiveExport(ctx, requestUser, extension, buf.Bytes())

	filename := fmt.Sprintf("moodlog_entries.%s", extension)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// archiveExport 导出归档失败不影响下载，仅记录日志。
func (h *HTTPHandler) archiveExport(ctx context.Context, requestUser *RequestUser, extension string, data []byte) {
	if h.store == nil || !h.cfg.ArchiveExports {
		return
	}

	location, err := h.store.Save(ctx, data, archive.SaveOptions{
		Kind:      "entries",
		Extension: extension,
		BaseName:  fmt.Sprintf("user_%d", requestUser.ID),
	})
	if err != nil {
		entry := logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": requestUser.ID,
			"format":  extension,
		})
		if archive.IsAccessDenied(err) {
			entry.Warn("archive credentials rejected, skipping export archive")
		} else {
			entry.Error("failed to archive export")
		}
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  requestUser.ID,
		"format":   extension,
		"location": location,
	}).Info("export archived")
}
