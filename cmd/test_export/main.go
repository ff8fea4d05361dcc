// Command test_export runs a full export against an in-memory store and a
// local certificate server, and writes the result to hoja_de_vida.pdf.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"cv-portfolio/internal/app"
	"cv-portfolio/internal/config"
	"cv-portfolio/internal/domain"
	"cv-portfolio/pkg/document"
)

func certificatePDF(title string) []byte {
	pdf := fpdf.New("L", "pt", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 28)
	pdf.Text(80, 200, tr("Certificado"))
	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(80, 240, tr(title))
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// startMockMedia serves two valid certificates, one corrupt file and 404s.
func startMockMedia() (string, *http.Server, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/certificados/go.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(certificatePDF("Programación concurrente en Go"))
	})
	mux.HandleFunc("/certificados/backend.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(certificatePDF("Desarrollador backend"))
	})
	mux.HandleFunc("/certificados/roto.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>error</html>"))
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.Serve(ln) }()
	return "http://" + ln.Addr().String(), srv, nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if err := run(context.Background()); err != nil {
		slog.Error("test export failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	baseURL, srv, err := startMockMedia()
	if err != nil {
		return err
	}
	defer srv.Close()

	cfg := &config.Config{
		Database: config.DatabaseConfig{SQLitePath: ":memory:", AutoMigrate: true},
		Media:    config.MediaConfig{Root: "media", BaseURL: baseURL},
		Render: config.RenderConfig{
			Engine:       os.Getenv("RENDER_ENGINE"),
			FontDir:      os.Getenv("FONT_DIR"),
			FontFamilies: []string{"DejaVuSans", "LiberationSans"},
			ChromePath:   os.Getenv("CHROME_PATH"),
			Timeout:      time.Minute,
		},
		Fetch: config.FetchConfig{Parallelism: 4},
	}
	if cfg.Render.Engine == "" {
		cfg.Render.Engine = config.EngineCanvas
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := seed(ctx, a); err != nil {
		return err
	}

	res, err := a.Exporter.Export(ctx, nil)
	if err != nil {
		return err
	}
	pages, err := document.NewMerger().PageCount(res.PDF)
	if err != nil {
		return err
	}
	if err := os.WriteFile(document.ExportFilename, res.PDF, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %d pages, %d attachments merged, %d skipped (export %s)\n",
		document.ExportFilename, pages, res.Attached, res.Skipped, res.ID)
	return nil
}

func date(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func seed(ctx context.Context, a *app.App) error {
	p := &domain.Profile{
		FirstNames:      "María José",
		LastNames:       "Andrade Cedeño",
		Summary:         "Ingeniera de software enfocada en servicios de pagos y plataformas de datos.",
		NationalID:      "1312345678",
		BirthDate:       *date("1994-03-12"),
		BirthPlace:      "Manta",
		Nationality:     "Ecuatoriana",
		MaritalStatus:   "SOLTERO",
		DriverLicense:   "B",
		Phone:           "+593 99 123 4567",
		HomeAddress:     "Av. Flavio Reyes y calle 20",
		Website:         "https://www.github.com/mjandrade",
		Active:          true,
		PrintingAllowed: true,
	}
	if err := a.Store.SaveProfile(ctx, p); err != nil {
		return err
	}

	entries := []*domain.Entry{
		{Section: domain.SectionExperience, Title: "Desarrolladora backend", Organization: "Cooperativa Andina",
			StartDate: date("2021-02-01"), EndDate: date("2024-08-31"),
			Description: "Servicios de cobranzas y conciliación bancaria en Go y PostgreSQL.",
			CertificatePDF: domain.Resource{Name: "certificados/backend.pdf"}},
		{Section: domain.SectionCourses, Title: "Programación concurrente en Go", Organization: "Instituto Tecnológico", Hours: 40,
			StartDate: date("2024-01-15"), EndDate: date("2024-03-15"),
			CertificatePDF: domain.Resource{Name: "certificados/go.pdf"}},
		{Section: domain.SectionCourses, Title: "Docker para desarrolladores", Hours: 20,
			StartDate: date("2023-05-01"), EndDate: date("2023-05-31"),
			CertificatePDF: domain.Resource{Name: "certificados/no-existe.pdf"}},
		{Section: domain.SectionRecognitions, Title: "Mejor proyecto de titulación", Category: "ACADEMICO",
			StartDate: date("2019-07-01"), EndDate: date("2019-07-01"),
			CertificatePDF: domain.Resource{Name: "certificados/roto.pdf"}},
		{Section: domain.SectionAcademic, Title: "Detección de fraude con grafos", Category: "TESIS",
			Description: "Tesis de grado sobre detección de anillos de fraude en transferencias."},
	}
	for _, e := range entries {
		e.ProfileID = p.ID
		e.Visible = true
		if err := a.Store.SaveEntry(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
