package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/biz-atlas/pkg/adapters"
	"github.com/de-tools/biz-atlas/pkg/models/api"
	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/services/report"
	"github.com/de-tools/biz-atlas/pkg/store/sqlstore"
)

type Handler struct {
	dispatcher report.Dispatcher
	store      sqlstore.Executor
}

func NewHandler(dispatcher report.Dispatcher, store sqlstore.Executor) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		store:      store,
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports := h.dispatcher.SupportedReports()
	names := make([]string, 0, len(reports))
	for _, rt := range reports {
		names = append(names, string(rt))
	}
	writeResponse(r.Context(), w, http.StatusOK, api.Response{
		Success: true,
		Data:    api.ReportTypeList{Reports: names},
	})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reportType := domain.ReportType(chi.URLParam(r, "report"))
	filters := report.NormalizeFilters(r.URL.Query())

	merged, err := h.dispatcher.Run(ctx, reportType, filters)
	if err != nil {
		if errors.Is(err, report.ErrUnknownReport) {
			writeResponse(ctx, w, http.StatusNotFound, api.Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		writeResponse(ctx, w, http.StatusInternalServerError, api.Response{
			Success: false,
			Error:   "report generation failed",
		})
		return
	}

	payload, err := adapters.MapReportDomainToAPI(merged)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report", string(reportType)).Msg("failed to shape report")
		writeResponse(ctx, w, http.StatusInternalServerError, api.Response{
			Success: false,
			Error:   "report generation failed",
		})
		return
	}

	writeResponse(ctx, w, http.StatusOK, api.Response{
		Success: true,
		Data:    payload,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := h.store.TestConnection(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("store probe failed")
		writeResponse(ctx, w, http.StatusServiceUnavailable, api.Response{
			Success: false,
			Error:   "store unreachable",
		})
		return
	}

	writeResponse(ctx, w, http.StatusOK, api.Response{
		Success: true,
		Data:    api.Health{Status: "ok", Server: identity},
	})
}

func writeResponse(ctx context.Context, w http.ResponseWriter, status int, body api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
