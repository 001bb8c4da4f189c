package article

import (
	"log/slog"
	"net/http"

	"newspulse/internal/common/pagination"
	artUC "newspulse/internal/usecase/article"
)

// Register wires the article routes onto the mux.
func Register(mux *http.ServeMux, svc *artUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /articles", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /articles/", GetHandler{Svc: svc})
}
