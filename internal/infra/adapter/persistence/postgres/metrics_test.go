package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"

	pg "newspulse/internal/infra/adapter/persistence/postgres"
)

// dbQuerySamples はdb_query_duration_secondsの指定operationの記録件数を返す
func dbQuerySamples(t *testing.T, operation string) uint64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather err=%v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "db_query_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "operation" && label.GetValue() == operation {
					return m.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}

func TestArticleRepo_RecordsQueryDuration(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	before := dbQuerySamples(t, "exists_article_url")

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("https://example.com/m").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	repo := pg.NewArticleRepo(db)
	if _, err := repo.ExistsByURL(context.Background(), "https://example.com/m"); err != nil {
		t.Fatalf("ExistsByURL err=%v", err)
	}

	if after := dbQuerySamples(t, "exists_article_url"); after != before+1 {
		t.Errorf("exists_article_url samples = %d, want %d", after, before+1)
	}
}

func TestCategoryRepo_RecordsQueryDuration(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	before := dbQuerySamples(t, "upsert_category")

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("science").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(int64(1), "science", now, now))

	repo := pg.NewCategoryRepo(db)
	if _, err := repo.FindOrCreate(context.Background(), "science"); err != nil {
		t.Fatalf("FindOrCreate err=%v", err)
	}

	if after := dbQuerySamples(t, "upsert_category"); after != before+1 {
		t.Errorf("upsert_category samples = %d, want %d", after, before+1)
	}
}
