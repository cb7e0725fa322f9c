package adaptor

import (
	"bytes"
	"fmt"
	"net/http"

	"cineacme/internal/usecase"
	"cineacme/pkg/export"
	"cineacme/pkg/utils"

	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// ByMovieAndCinema handles GET /api/screenings/report/movie-cinema?cinema_id&movie_id
func (h *ReportHandler) ByMovieAndCinema(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("cinema_id") == "" || query.Get("movie_id") == "" {
		utils.ResponseBadRequest(w, "cinema_id and movie_id query parameters are required", nil)
		return
	}

	screenings, err := h.service.ByMovieAndCinema(r.Context(), query.Get("movie_id"), query.Get("cinema_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "list screenings by movie and cinema")
		return
	}

	utils.ResponseSuccess(w, "success", screenings)
}

// ByCinemaAndDate handles GET /api/screenings/report/date-cinema?cinema_id&date
func (h *ReportHandler) ByCinemaAndDate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("cinema_id") == "" {
		utils.ResponseBadRequest(w, "cinema_id query parameter is required", nil)
		return
	}

	screenings, err := h.service.ByCinemaAndDate(r.Context(), query.Get("cinema_id"), query.Get("date"))
	if err != nil {
		handleServiceError(w, h.log, err, "list screenings by cinema and date")
		return
	}

	utils.ResponseSuccess(w, "success", screenings)
}

// ByDateRange handles GET /api/screenings/report/date-range?start_date&end_date
func (h *ReportHandler) ByDateRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	groups, err := h.service.ByDateRange(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		handleServiceError(w, h.log, err, "list screenings by date range")
		return
	}

	utils.ResponseSuccess(w, "success", groups)
}

// ExportDateRange handles GET /api/screenings/report/date-range/export
func (h *ReportHandler) ExportDateRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end := query.Get("start_date"), query.Get("end_date")

	// buffered so a failure can still become a JSON error
	var buf bytes.Buffer
	if err := h.service.ExportDateRange(r.Context(), start, end, &buf); err != nil {
		handleServiceError(w, h.log, err, "export screenings")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="screenings_%s_%s.xlsx"`, start, end))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn("Failed to stream export", zap.Error(err))
	}
}
