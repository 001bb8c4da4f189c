package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"newspulse/internal/domain/entity"
	pg "newspulse/internal/infra/adapter/persistence/postgres"
)

/* ─────────────────────────── ヘルパ ─────────────────────────── */

var sourceCols = []string{
	"id", "name", "description", "url", "category",
	"language", "country", "created_at", "updated_at",
}

func srcRow(s *entity.Source) *sqlmock.Rows {
	return sqlmock.NewRows(sourceCols).AddRow(
		s.ID, s.Name, s.Description, s.URL, s.Category,
		s.Language, s.Country, s.CreatedAt, s.UpdatedAt,
	)
}

/* ─────────────────────────── 1. GetByName ─────────────────────────── */

func TestSourceRepo_GetByName(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	want := &entity.Source{
		ID: 1, Name: "Reuters", URL: "https://reuters.com",
		Category: "general", Language: "en", Country: "us",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("FROM sources").
		WithArgs("Reuters").
		WillReturnRows(srcRow(want))

	repo := pg.NewSourceRepo(db)
	got, err := repo.GetByName(context.Background(), "Reuters")
	if err != nil {
		t.Fatalf("GetByName err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceRepo_GetByName_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM sources").
		WithArgs("Nobody").
		WillReturnRows(sqlmock.NewRows(sourceCols))

	repo := pg.NewSourceRepo(db)
	_, err := repo.GetByName(context.Background(), "Nobody")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

/* ─────────────────────────── 2. FindOrCreate ─────────────────────────── */

func TestSourceRepo_FindOrCreate_Inserts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	in := &entity.Source{Name: "BBC News", Language: "en", Country: "us"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sources")).
		WithArgs("BBC News", "", "", "", "en", "us").
		WillReturnRows(sqlmock.NewRows(sourceCols).
			AddRow(int64(7), "BBC News", "", "", "", "en", "us", now, now))

	repo := pg.NewSourceRepo(db)
	got, err := repo.FindOrCreate(context.Background(), in)
	if err != nil {
		t.Fatalf("FindOrCreate err=%v", err)
	}
	if got.ID != 7 {
		t.Fatalf("ID = %d, want 7", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// ON CONFLICT DO NOTHING は行を返さないため、既存行の再取得にフォールバックする
func TestSourceRepo_FindOrCreate_ExistingFallsBackToSelect(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	in := &entity.Source{Name: "BBC News", Language: "en", Country: "us"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sources")).
		WithArgs("BBC News", "", "", "", "en", "us").
		WillReturnRows(sqlmock.NewRows(sourceCols)) // conflict: no row returned
	mock.ExpectQuery("FROM sources").
		WithArgs("BBC News").
		WillReturnRows(sqlmock.NewRows(sourceCols).
			AddRow(int64(3), "BBC News", "", "", "", "en", "us", now, now))

	repo := pg.NewSourceRepo(db)
	got, err := repo.FindOrCreate(context.Background(), in)
	if err != nil {
		t.Fatalf("FindOrCreate err=%v", err)
	}
	if got.ID != 3 {
		t.Fatalf("ID = %d, want existing row 3", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 3. List ─────────────────────────── */

func TestSourceRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM sources").
		WillReturnRows(sqlmock.NewRows(sourceCols).
			AddRow(int64(1), "Reuters", "", "", "general", "en", "us", now, now).
			AddRow(int64(2), "BBC News", "", "", "general", "en", "gb", now, now))

	repo := pg.NewSourceRepo(db)
	got, err := repo.List(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
}

/* ─────────────────────────── 4. CountSources ─────────────────────────── */

func TestSourceRepo_CountSources(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sources")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	repo := pg.NewSourceRepo(db)
	n, err := repo.CountSources(context.Background())
	if err != nil || n != 5 {
		t.Fatalf("CountSources n=%d err=%v", n, err)
	}
}
