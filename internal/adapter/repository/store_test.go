package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cv-portfolio/internal/domain"
	"cv-portfolio/internal/infrastructure/migration"
	"cv-portfolio/internal/storage"
	infra "cv-portfolio/pkg/infrastructure"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	db, err := infra.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(db.Close)
	if err := migration.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db, storage.NewLocator("media", ""))
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func newProfile(id string, active bool) *domain.Profile {
	return &domain.Profile{
		FirstNames:      "Ana",
		LastNames:       "Pérez " + id,
		NationalID:      id,
		BirthDate:       *date("1990-05-01"),
		Active:          active,
		PrintingAllowed: true,
		Photo:           domain.Resource{Name: "perfiles/ana.jpg"},
	}
}

func countActive(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow(context.Background(), `SELECT COUNT(*) FROM profiles WHERE active`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestStoreSQLite(t *testing.T) {
	t.Run("single active profile", func(t *testing.T) { testSingleActive(t, newSQLiteStore(t)) })
	t.Run("entry ordering", func(t *testing.T) { testEntryOrdering(t, newSQLiteStore(t)) })
	t.Run("entries and garage", func(t *testing.T) { testEntriesAndGarage(t, newSQLiteStore(t)) })
	t.Run("transact", func(t *testing.T) { testTransact(t, newSQLiteStore(t)) })
}

// Postgres runs only when CV_PG_TEST_DSN points at a disposable database.
func TestStorePostgres(t *testing.T) {
	dsn := os.Getenv("CV_PG_TEST_DSN")
	if dsn == "" {
		t.Skip("CV_PG_TEST_DSN not set")
	}
	ctx := context.Background()
	db, err := infra.NewPostgres(ctx, dsn, 4, 5*time.Second)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()
	if err := migration.RunMigrations(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	reset := func() {
		if err := db.Exec(ctx, `TRUNCATE profiles, section_entries, garage_items RESTART IDENTITY CASCADE`); err != nil {
			t.Fatalf("truncate: %v", err)
		}
	}
	s := NewStore(db, storage.NewLocator("media", ""))
	for name, fn := range map[string]func(*testing.T, *Store){
		"single active profile": testSingleActive,
		"entry ordering":        testEntryOrdering,
		"entries and garage":    testEntriesAndGarage,
		"transact":              testTransact,
	} {
		reset()
		t.Run(name, func(t *testing.T) { fn(t, s) })
	}
}

func testSingleActive(t *testing.T, s *Store) {
	ctx := context.Background()

	if p, err := s.FindActiveProfile(ctx); err != nil || p != nil {
		t.Fatalf("empty store: got %v, %v", p, err)
	}

	a := newProfile("1000000001", true)
	b := newProfile("1000000002", true)
	c := newProfile("1000000003", false)
	for _, p := range []*domain.Profile{a, b, c} {
		if err := s.SaveProfile(ctx, p); err != nil {
			t.Fatalf("save %s: %v", p.NationalID, err)
		}
	}
	if n := countActive(t, s); n != 1 {
		t.Fatalf("expected exactly one active profile, got %d", n)
	}
	active, err := s.FindActiveProfile(ctx)
	if err != nil || active == nil || active.ID != b.ID {
		t.Fatalf("expected %d active, got %+v (%v)", b.ID, active, err)
	}
	if active.Photo.Path != filepath.Join("media", "perfiles", "ana.jpg") {
		t.Fatalf("photo not resolved: %+v", active.Photo)
	}

	a.Active = true
	a.Summary = "Actualizado"
	if err := s.SaveProfile(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := countActive(t, s); n != 1 {
		t.Fatalf("expected exactly one active profile after update, got %d", n)
	}
	got, err := s.GetProfile(ctx, a.ID)
	if err != nil || !got.Active || got.Summary != "Actualizado" || got.UpdatedAt == nil {
		t.Fatalf("unexpected profile %+v (%v)", got, err)
	}
	if got.BirthDate.Format("2006-01-02") != "1990-05-01" {
		t.Fatalf("birth date round trip: %v", got.BirthDate)
	}

	if _, err := s.GetProfile(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	missing := newProfile("1000000009", false)
	missing.ID = 999
	if err := s.SaveProfile(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update of missing profile, got %v", err)
	}
}

func testEntryOrdering(t *testing.T, s *Store) {
	ctx := context.Background()
	p := newProfile("1000000010", true)
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatal(err)
	}

	add := func(title string, start, end *time.Time) {
		e := &domain.Entry{ProfileID: p.ID, Section: domain.SectionCourses, Title: title, StartDate: start, EndDate: end, Visible: true}
		if err := s.SaveEntry(ctx, e); err != nil {
			t.Fatalf("save %s: %v", title, err)
		}
	}
	add("sin fechas", nil, nil)
	add("2023", date("2022-09-01"), date("2023-01-01"))
	add("2024-enero", date("2024-01-01"), date("2024-06-01"))
	add("2024-febrero", date("2024-02-01"), date("2024-06-01"))

	got, err := s.ListEntries(ctx, p.ID, domain.SectionCourses, true)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-febrero", "2024-enero", "2023", "sin fechas"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries", len(got))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Title, want[i])
		}
	}
}

func testEntriesAndGarage(t *testing.T, s *Store) {
	ctx := context.Background()
	p := newProfile("1000000020", true)
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatal(err)
	}

	visible := &domain.Entry{
		ProfileID: p.ID, Section: domain.SectionRecognitions, Title: "Mejor tesis", Category: "ACADEMICO",
		Visible: true, CertificatePDF: domain.Resource{Name: "certificados/tesis.pdf"},
	}
	hidden := &domain.Entry{ProfileID: p.ID, Section: domain.SectionRecognitions, Title: "Oculto"}
	for _, e := range []*domain.Entry{visible, hidden} {
		if err := s.SaveEntry(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.ListEntries(ctx, p.ID, domain.SectionRecognitions, false)
	if err != nil || len(all) != 2 {
		t.Fatalf("all entries: %d (%v)", len(all), err)
	}
	shown, err := s.ListEntries(ctx, p.ID, domain.SectionRecognitions, true)
	if err != nil || len(shown) != 1 || shown[0].Title != "Mejor tesis" {
		t.Fatalf("visible entries: %+v (%v)", shown, err)
	}

	got, err := s.GetEntry(ctx, domain.SectionRecognitions, visible.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CertificatePDF.Path != filepath.Join("media", "certificados", "tesis.pdf") || !got.CertificateImage.IsZero() {
		t.Fatalf("certificate not resolved: %+v", got)
	}
	if _, err := s.GetEntry(ctx, domain.SectionCourses, visible.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("entry looked up under the wrong section: %v", err)
	}

	hidden.Visible = true
	hidden.Title = "Ya no oculto"
	if err := s.SaveEntry(ctx, hidden); err != nil {
		t.Fatal(err)
	}

	item := &domain.GarageItem{ProfileID: p.ID, Name: "Bicicleta", Condition: "BUENO", PriceCents: 12050, Date: *date("2025-01-01"), Visible: true}
	if err := s.SaveGarageItem(ctx, item); err != nil {
		t.Fatal(err)
	}
	items, err := s.ListGarageItems(ctx, p.ID, true)
	if err != nil || len(items) != 1 || items[0].PriceCents != 12050 {
		t.Fatalf("garage items: %+v (%v)", items, err)
	}

	counts, err := s.CountVisible(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if counts["reconoc"] != 2 || counts["venta"] != 1 || counts["cursos"] != 0 {
		t.Fatalf("counts: %v", counts)
	}

	if err := s.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, p.ID); err != nil {
		t.Fatal(err)
	}
	left, err := s.ListEntries(ctx, p.ID, domain.SectionRecognitions, false)
	if err != nil || len(left) != 0 {
		t.Fatalf("entries should cascade with the profile, got %d (%v)", len(left), err)
	}
}

func testTransact(t *testing.T, s *Store) {
	ctx := context.Background()
	boom := errors.New("garage save failed")

	err := s.Transact(ctx, func(ctx context.Context) error {
		p := newProfile("1000000030", true)
		if err := s.SaveProfile(ctx, p); err != nil {
			return err
		}
		e := &domain.Entry{ProfileID: p.ID, Section: domain.SectionCourses, Title: "Go", Visible: true}
		if err := s.SaveEntry(ctx, e); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("rolled back transaction left %d profiles", n)
	}

	var saved *domain.Profile
	err = s.Transact(ctx, func(ctx context.Context) error {
		saved = newProfile("1000000031", true)
		return s.SaveProfile(ctx, saved)
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.FindActiveProfile(ctx)
	if err != nil || got == nil || got.ID != saved.ID {
		t.Fatalf("committed profile not found: %+v (%v)", got, err)
	}
}
