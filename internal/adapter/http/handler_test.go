package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"cv-portfolio/internal/domain"
	"cv-portfolio/internal/usecase"
)

type stubStore struct {
	profile *domain.Profile
	entries map[domain.Section][]domain.Entry
}

func (s *stubStore) FindActiveProfile(context.Context) (*domain.Profile, error) { return s.profile, nil }

func (s *stubStore) ListEntries(_ context.Context, _ int64, sec domain.Section, _ bool) ([]domain.Entry, error) {
	return append([]domain.Entry(nil), s.entries[sec]...), nil
}

func (s *stubStore) GetEntry(_ context.Context, sec domain.Section, id int64) (*domain.Entry, error) {
	for _, e := range s.entries[sec] {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubStore) ListGarageItems(context.Context, int64, bool) ([]domain.GarageItem, error) {
	return []domain.GarageItem{{ID: 1, Name: "Bicicleta", PriceCents: 8000}}, nil
}

func (s *stubStore) CountVisible(context.Context, int64) (map[string]int, error) {
	return map[string]int{"cursos": len(s.entries[domain.SectionCourses]), "venta": 1}, nil
}

type stubExporter struct {
	err   error
	flags []string
}

func (x *stubExporter) Export(_ context.Context, flags []string) (*usecase.ExportResult, error) {
	x.flags = flags
	if x.err != nil {
		return nil, x.err
	}
	return &usecase.ExportResult{ID: "abc", PDF: []byte("%PDF-1.4 test")}, nil
}

func newTestApp(t *testing.T, store *stubStore, x *stubExporter, ready func(context.Context) error) *fiber.App {
	t.Helper()
	h := NewHandler(usecase.NewPortfolio(store), x, ready)
	return NewApp(AppConfig{Quiet: true}, h)
}

func do(t *testing.T, app *fiber.App, path string) (int, string, map[string]string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	headers := map[string]string{}
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}
	return resp.StatusCode, string(body), headers
}

func TestPrint(t *testing.T) {
	x := &stubExporter{}
	app := newTestApp(t, &stubStore{}, x, nil)

	status, body, headers := do(t, app, "/imprimir?cursos&exp")
	if status != fiber.StatusOK || body != "%PDF-1.4 test" {
		t.Fatalf("got %d %q", status, body)
	}
	if headers["Content-Type"] != "application/pdf" {
		t.Errorf("content type %q", headers["Content-Type"])
	}
	if headers["Content-Disposition"] != `inline; filename="hoja_de_vida.pdf"` {
		t.Errorf("disposition %q", headers["Content-Disposition"])
	}
	sort.Strings(x.flags)
	if strings.Join(x.flags, ",") != "cursos,exp" {
		t.Errorf("flags %v", x.flags)
	}

	do(t, app, "/imprimir")
	if len(x.flags) != 0 {
		t.Errorf("no query should mean no flags, got %v", x.flags)
	}
}

func TestPrintErrors(t *testing.T) {
	cases := map[error]int{
		domain.ErrNoActiveProfile:    fiber.StatusNotFound,
		domain.ErrPrintingNotAllowed: fiber.StatusForbidden,
		errors.New("db down"):        fiber.StatusInternalServerError,
	}
	for err, want := range cases {
		app := newTestApp(t, &stubStore{}, &stubExporter{err: err}, nil)
		if status, _, headers := do(t, app, "/imprimir"); status != want || headers["Content-Type"] == "application/pdf" {
			t.Errorf("%v: got %d", err, status)
		}
	}
}

func TestCertificate(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "curso.pdf")
	if err := os.WriteFile(local, []byte("%PDF-local"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := &stubStore{
		profile: &domain.Profile{ID: 1, Active: true},
		entries: map[domain.Section][]domain.Entry{
			domain.SectionCourses: {
				{ID: 1, CertificatePDF: domain.Resource{Name: "curso.pdf", Path: local}},
				{ID: 2, CertificatePDF: domain.Resource{Name: "remoto.pdf", URL: "https://media.example.com/remoto.pdf"}},
				{ID: 3},
				{ID: 4, CertificatePDF: domain.Resource{Name: "borrado.pdf", Path: filepath.Join(dir, "borrado.pdf")}},
			},
		},
	}
	app := newTestApp(t, store, &stubExporter{}, nil)

	status, body, _ := do(t, app, "/ver-certificado/curso/1")
	if status != fiber.StatusOK || body != "%PDF-local" {
		t.Fatalf("local: %d %q", status, body)
	}
	status, _, headers := do(t, app, "/ver-certificado/curso/2")
	if status != fiber.StatusFound || headers["Location"] != "https://media.example.com/remoto.pdf" {
		t.Fatalf("remote: %d %v", status, headers)
	}
	for _, path := range []string{
		"/ver-certificado/curso/3",
		"/ver-certificado/curso/4",
		"/ver-certificado/curso/99",
		"/ver-certificado/curso/abc",
		"/ver-certificado/pelicula/1",
		"/ver-certificado/experiencia/1",
	} {
		if status, _, _ := do(t, app, path); status != fiber.StatusNotFound {
			t.Errorf("%s: got %d", path, status)
		}
	}
}

func TestPages(t *testing.T) {
	store := &stubStore{
		profile: &domain.Profile{ID: 1, FirstNames: "Ana", Active: true, PrintingAllowed: true},
		entries: map[domain.Section][]domain.Entry{
			domain.SectionCourses: {{ID: 1, Title: "Go"}, {ID: 2, Title: "Rust"}},
		},
	}
	app := newTestApp(t, store, &stubExporter{}, nil)

	status, body, _ := do(t, app, "/")
	var home struct {
		PrintingAllowed bool           `json:"printing_allowed"`
		Counts          map[string]int `json:"counts"`
	}
	if err := json.Unmarshal([]byte(body), &home); err != nil || status != 200 {
		t.Fatalf("home: %d %s", status, body)
	}
	if !home.PrintingAllowed || home.Counts["cursos"] != 2 {
		t.Fatalf("home: %+v", home)
	}

	status, body, _ = do(t, app, "/cursos")
	var page struct {
		Title string         `json:"title"`
		Items []domain.Entry `json:"items"`
	}
	if err := json.Unmarshal([]byte(body), &page); err != nil || status != 200 {
		t.Fatalf("cursos: %d %s", status, body)
	}
	if page.Title != "Cursos y capacitaciones" || len(page.Items) != 2 || page.Items[0].Title != "Rust" {
		t.Fatalf("cursos: %+v", page)
	}

	if status, _, _ := do(t, app, "/venta-garage"); status != 200 {
		t.Fatalf("garage: %d", status)
	}
	if status, _, _ := do(t, app, "/datos-personales"); status != 200 {
		t.Fatalf("datos personales: %d", status)
	}

	empty := newTestApp(t, &stubStore{}, &stubExporter{}, nil)
	if status, _, _ := do(t, empty, "/datos-personales"); status != fiber.StatusNotFound {
		t.Fatalf("datos personales without profile: %d", status)
	}
}

func TestHealthAndReady(t *testing.T) {
	app := newTestApp(t, &stubStore{}, &stubExporter{}, func(context.Context) error { return errors.New("down") })
	if status, _, _ := do(t, app, "/healthz"); status != 200 {
		t.Fatalf("healthz: %d", status)
	}
	if status, _, _ := do(t, app, "/readyz"); status != fiber.StatusServiceUnavailable {
		t.Fatalf("readyz: %d", status)
	}
}
