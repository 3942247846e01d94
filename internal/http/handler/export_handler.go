package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/abtweb/studio-api/internal/service"
	"go.uber.org/zap"
)

type ExportHandler struct {
	exportService *service.ExportService
	logger        *zap.Logger
}

func NewExportHandler(exportService *service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{exportService: exportService, logger: logger}
}

// Quotes streams the quote export. Format query parameter selects csv
// (default) or xlsx.
func (h *ExportHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "quotes_export", h.exportService.QuotesCSV, h.exportService.QuotesXLSX)
}

// Customers streams the customer export.
func (h *ExportHandler) Customers(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "customers_export", h.exportService.CustomersCSV, h.exportService.CustomersXLSX)
}

func (h *ExportHandler) export(
	w http.ResponseWriter,
	r *http.Request,
	basename string,
	csvFn, xlsxFn func(context.Context) ([]byte, error),
) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var data []byte
	var err error
	var contentType, filename string

	switch format {
	case "csv":
		data, err = csvFn(r.Context())
		contentType = "text/csv; charset=utf-8"
		filename = basename + ".csv"
	case "xlsx":
		data, err = xlsxFn(r.Context())
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("%s_%s.xlsx", basename, time.Now().Format("20060102"))
	default:
		respondWithError(w, http.StatusBadRequest, "Format must be csv or xlsx")
		return
	}
	if err != nil {
		h.logger.Error("export failed", zap.String("file", filename), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
