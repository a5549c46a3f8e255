package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/service"
	"github.com/mpadjest/bingeplan-web/internal/session"
)

type exportService interface {
	Render(ctx context.Context, sess *models.Session, format string) (*service.Export, error)
}

// ExportHandler serves schedule downloads.
type ExportHandler struct {
	exports  exportService
	sessions *session.Store
}

// NewExportHandler creates a new handler.
func NewExportHandler(exports exportService, sessions *session.Store) *ExportHandler {
	return &ExportHandler{exports: exports, sessions: sessions}
}

// Download renders the schedule in the requested format. The default is
// an iCalendar file.
func (h *ExportHandler) Download(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "ics")
	export, err := h.exports.Render(c.Request.Context(), sess, format)
	if err != nil {
		failPage(c, h.sessions, err, "/")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(200, export.ContentType, export.Data)
}
