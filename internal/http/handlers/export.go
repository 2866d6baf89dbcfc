package handlers

import (
	"fmt"
	"mime"
	"net/http"
	"time"

	"go.uber.org/zap"

	"rapv/site/internal/content"
	"rapv/site/internal/export"
	"rapv/site/internal/httpctx"
	"rapv/site/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	Site *content.Site
	Now  func() time.Time
	Log  *zap.Logger
}

func (h ExportHandler) Results(w http.ResponseWriter, r *http.Request) {
	lang := httpctx.LanguageFromContext(r.Context())
	snap := h.Site.Snapshot()
	wb, err := export.NewResultsWorkbook(snap.Results, lang)
	if err != nil {
		writeContentError(w, h.Log, fmt.Errorf("build results workbook: %w", err))
		return
	}
	defer wb.Close()

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	name := export.ResultsFilename(models.Resolve(snap.Config.SchoolName, lang, lang.Other()), now())
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if _, err := wb.WriteTo(w); err != nil && h.Log != nil {
		h.Log.Warn("write results workbook", zap.Error(err))
	}
}
