package http

import (
	"net/http"

	"ilas-backend/internal/service"
)

type ReportHandler struct {
	reports service.ReportService
	audit   service.AuditService
}

func NewReportHandler(reports service.ReportService, audit service.AuditService) *ReportHandler {
	return &ReportHandler{reports: reports, audit: audit}
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	page := parseInt32(r.URL.Query().Get("page"), 1)
	pageSize := parseInt32(r.URL.Query().Get("page_size"), 20)

	records, total, err := h.audit.ListRecords(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"total":   total,
	})
}
