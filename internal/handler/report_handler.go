package handler

import (
	"net/http"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler handles reviews and the management dashboards.
type ReportHandler struct {
	reports service.ReportService
	reviews service.ReviewService
	auth    auth.Authorizer
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports service.ReportService, reviews service.ReviewService, authorizer auth.Authorizer, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		reviews: reviews,
		auth:    authorizer,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// SalesStatistics handles GET /sales/statistics requests.
func (h *ReportHandler) SalesStatistics(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin, model.RoleWaiter) == nil {
		return
	}

	report, err := h.reports.SalesStatistics(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// CreateReview handles POST /reviews requests.
func (h *ReportHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	id, err := h.reviews.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreatedResponse{ReviewID: &id})
}

// ReviewStatistics handles GET /reviews/statistics requests.
func (h *ReportHandler) ReviewStatistics(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin, model.RoleWaiter) == nil {
		return
	}

	report, err := h.reviews.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
