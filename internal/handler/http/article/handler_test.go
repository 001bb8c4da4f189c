package article_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newspulse/internal/common/pagination"
	"newspulse/internal/domain/entity"
	"newspulse/internal/handler/http/article"
	"newspulse/internal/repository"
	artUC "newspulse/internal/usecase/article"
)

/* ───────── モック実装 ───────── */

type mockArticleRepo struct {
	articles []repository.ArticleWithSource
	getErr   error
	listErr  error
	countErr error
}

func (m *mockArticleRepo) Create(ctx context.Context, a *entity.Article) error { return nil }

func (m *mockArticleRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	return false, nil
}

func (m *mockArticleRepo) ExistsByURLBatch(ctx context.Context, urls []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (m *mockArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, item := range m.articles {
		if item.Article.ID == id {
			return item.Article, nil
		}
	}
	return nil, nil
}

func (m *mockArticleRepo) ListWithSourcePaginated(ctx context.Context, offset, limit int) ([]repository.ArticleWithSource, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if offset >= len(m.articles) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.articles) {
		end = len(m.articles)
	}
	return m.articles[offset:end], nil
}

func (m *mockArticleRepo) CountArticles(ctx context.Context) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.articles)), nil
}

func (m *mockArticleRepo) AttachCategory(ctx context.Context, articleID, categoryID int64) error {
	return nil
}

func sampleArticles(n int) []repository.ArticleWithSource {
	sourceID := int64(1)
	out := make([]repository.ArticleWithSource, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, repository.ArticleWithSource{
			Article: &entity.Article{
				ID:          int64(i + 1),
				SourceID:    &sourceID,
				Title:       "Article " + string(rune('A'+i%26)),
				URL:         "https://example.com/articles/" + string(rune('a'+i%26)),
				Sentiment:   entity.SentimentNeutral,
				PublishedAt: time.Date(2024, 3, 1+i%27, 9, 0, 0, 0, time.UTC),
				CreatedAt:   time.Date(2024, 3, 1+i%27, 10, 0, 0, 0, time.UTC),
			},
			SourceName: "NewsPulse Samples",
		})
	}
	return out
}

func newListHandler(repo *mockArticleRepo) article.ListHandler {
	return article.ListHandler{
		Svc:           &artUC.Service{Repo: repo},
		PaginationCfg: pagination.DefaultConfig(),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

/* ───────── テスト ───────── */

func TestListHandler_Success(t *testing.T) {
	repo := &mockArticleRepo{articles: sampleArticles(3)}
	w := httptest.NewRecorder()

	newListHandler(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body pagination.Response[article.DTO]
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(body.Data) != 3 {
		t.Errorf("returned %d articles, want 3", len(body.Data))
	}
	if body.Pagination.Total != 3 {
		t.Errorf("total = %d, want 3", body.Pagination.Total)
	}
	if body.Data[0].SourceName != "NewsPulse Samples" {
		t.Errorf("source name = %q, want %q", body.Data[0].SourceName, "NewsPulse Samples")
	}
}

func TestListHandler_SecondPage(t *testing.T) {
	repo := &mockArticleRepo{articles: sampleArticles(25)}
	w := httptest.NewRecorder()

	newListHandler(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles?page=2&limit=20", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body pagination.Response[article.DTO]
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(body.Data) != 5 {
		t.Errorf("returned %d articles, want 5", len(body.Data))
	}
	if body.Pagination.Page != 2 {
		t.Errorf("page = %d, want 2", body.Pagination.Page)
	}
	if body.Pagination.TotalPages != 2 {
		t.Errorf("total_pages = %d, want 2", body.Pagination.TotalPages)
	}
}

func TestListHandler_InvalidPage(t *testing.T) {
	repo := &mockArticleRepo{articles: sampleArticles(3)}
	w := httptest.NewRecorder()

	newListHandler(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles?page=abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestListHandler_RepositoryError(t *testing.T) {
	repo := &mockArticleRepo{countErr: errors.New("pq: connection refused")}
	w := httptest.NewRecorder()

	newListHandler(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	// 内部エラーの詳細をクライアントに漏らさない
	if body["error"] != "internal server error" {
		t.Errorf("error = %q, want masked message", body["error"])
	}
}

func TestGetHandler_Success(t *testing.T) {
	repo := &mockArticleRepo{articles: sampleArticles(3)}
	handler := article.GetHandler{Svc: &artUC.Service{Repo: repo}}
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles/2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body article.DTO
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.ID != 2 {
		t.Errorf("id = %d, want 2", body.ID)
	}
	if body.Sentiment != string(entity.SentimentNeutral) {
		t.Errorf("sentiment = %q, want %q", body.Sentiment, entity.SentimentNeutral)
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	repo := &mockArticleRepo{articles: sampleArticles(3)}
	handler := article.GetHandler{Svc: &artUC.Service{Repo: repo}}
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles/999", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetHandler_InvalidID(t *testing.T) {
	repo := &mockArticleRepo{articles: sampleArticles(3)}
	handler := article.GetHandler{Svc: &artUC.Service{Repo: repo}}

	for _, path := range []string{"/articles/abc", "/articles/0", "/articles/-1", "/articles/"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("path %q: status = %d, want %d", path, w.Code, http.StatusBadRequest)
		}
	}
}

func TestGetHandler_RepositoryError(t *testing.T) {
	repo := &mockArticleRepo{getErr: errors.New("pq: connection refused")}
	handler := article.GetHandler{Svc: &artUC.Service{Repo: repo}}
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles/1", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
