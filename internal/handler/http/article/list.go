package article

import (
	"log/slog"
	"net/http"
	"time"

	"newspulse/internal/common/pagination"
	"newspulse/internal/handler/http/respond"
	"newspulse/internal/observability/logging"
	"newspulse/internal/observability/metrics"
	artUC "newspulse/internal/usecase/article"
)

// ListHandler serves GET /articles with pagination.
type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters",
			slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.ListWithSourcePaginated(ctx, params)
	if err != nil {
		logger.Error("failed to list articles",
			slog.String("error", err.Error()),
			slog.Int("page", params.Page),
			slog.Int("limit", params.Limit))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, item := range result.Data {
		dtos = append(dtos, toDTO(item.Article, item.SourceName))
	}

	response := pagination.NewResponse(dtos, result.Pagination)

	duration := time.Since(startTime)
	metrics.RecordOperationDuration("list_articles", duration)

	logger.Info("paginated article list served",
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", len(dtos)),
		slog.Int64("total", result.Pagination.Total),
		slog.Int64("duration_ms", duration.Milliseconds()))

	respond.JSON(w, http.StatusOK, response)
}
