// Package news provides the on-demand headline endpoint. A request fetches
// one page of headlines, returns it immediately, and hands the batch to the
// background ingestion queue.
package news

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"newspulse/internal/handler/http/respond"
	"newspulse/internal/observability/logging"
	"newspulse/internal/usecase/feed"
	"newspulse/internal/usecase/ingest"
)

// SourceDTO mirrors the upstream provider's source object.
type SourceDTO struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// ArticleDTO mirrors the upstream provider's article object so clients see
// the same shape whether the feed came from the network or the built-in
// samples.
type ArticleDTO struct {
	Source      SourceDTO `json:"source"`
	Author      string    `json:"author,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage,omitempty"`
	PublishedAt *string   `json:"publishedAt"`
	Content     string    `json:"content,omitempty"`
}

// ResponseDTO is the JSON body for GET /news.
type ResponseDTO struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []ArticleDTO `json:"articles"`
}

// FetchHandler serves GET /news?category=&page=.
type FetchHandler struct {
	Svc    *feed.Service
	Logger *slog.Logger
}

func (h FetchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	category := r.URL.Query().Get("category")

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respond.SafeError(w, http.StatusBadRequest, errPageInvalid)
			return
		}
		page = parsed
	}

	result, err := h.Svc.HandleFetch(ctx, category, page)
	if err != nil {
		logger.Error("headline fetch failed",
			slog.String("category", category),
			slog.Int("page", page),
			slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusBadGateway, err)
		return
	}

	logger.Info("headline fetch served",
		slog.String("category", category),
		slog.Int("page", page),
		slog.Int("articles", len(result.Articles)))

	respond.JSON(w, http.StatusOK, toResponseDTO(result))
}

var errPageInvalid = errors.New("page must be a positive integer")

func toResponseDTO(result *feed.Result) ResponseDTO {
	articles := make([]ArticleDTO, 0, len(result.Articles))
	for _, a := range result.Articles {
		articles = append(articles, toArticleDTO(a))
	}
	return ResponseDTO{
		Status:       result.Status,
		TotalResults: result.TotalResults,
		Articles:     articles,
	}
}

func toArticleDTO(a ingest.RawArticle) ArticleDTO {
	var publishedAt *string
	if !a.PublishedAt.IsZero() {
		s := a.PublishedAt.UTC().Format(time.RFC3339)
		publishedAt = &s
	}
	return ArticleDTO{
		Source:      SourceDTO{Name: a.SourceName},
		Author:      a.Author,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		URLToImage:  a.ImageURL,
		PublishedAt: publishedAt,
		Content:     a.Content,
	}
}

// Register wires the news route onto the mux.
func Register(mux *http.ServeMux, svc *feed.Service, logger *slog.Logger) {
	mux.Handle("GET /news", FetchHandler{Svc: svc, Logger: logger})
}
