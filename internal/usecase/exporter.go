package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"cv-portfolio/internal/domain"
	"cv-portfolio/pkg/document"
	infra "cv-portfolio/pkg/infrastructure"
)

const instrumentationName = "cv-portfolio/internal/usecase"

// ProfileStore is the read side the export needs.
type ProfileStore interface {
	FindActiveProfile(ctx context.Context) (*domain.Profile, error)
	ListEntries(ctx context.Context, profileID int64, section domain.Section, visibleOnly bool) ([]domain.Entry, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, r domain.Resource, kind infra.Kind) ([]byte, bool)
}

type Merger interface {
	Merge(base []byte, attachments [][]byte) ([]byte, int, error)
}

// ExportResult is a finished export.
type ExportResult struct {
	ID       string
	PDF      []byte
	Attached int
	Skipped  int
}

// Exporter produces the downloadable résumé: the rendered document followed
// by the certificate PDFs of the exported sections.
type Exporter struct {
	store       ProfileStore
	renderer    document.Renderer
	fetcher     Fetcher
	merger      Merger
	parallelism int

	tracer  trace.Tracer
	fetched metric.Int64Counter
	skipped metric.Int64Counter
	exports metric.Int64Counter
}

func NewExporter(store ProfileStore, r document.Renderer, f Fetcher, m Merger, parallelism int) *Exporter {
	if parallelism < 1 {
		parallelism = 1
	}
	meter := otel.Meter(instrumentationName)
	x := &Exporter{
		store:       store,
		renderer:    r,
		fetcher:     f,
		merger:      m,
		parallelism: parallelism,
		tracer:      otel.Tracer(instrumentationName),
	}
	var err error
	if x.fetched, err = meter.Int64Counter("cv.export.attachments.fetched",
		metric.WithDescription("Certificate PDFs fetched for exports")); err != nil {
		slog.Warn("could not create counter", "error", err)
	}
	if x.skipped, err = meter.Int64Counter("cv.export.attachments.skipped",
		metric.WithDescription("Certificate PDFs left out because they could not be fetched or parsed")); err != nil {
		slog.Warn("could not create counter", "error", err)
	}
	if x.exports, err = meter.Int64Counter("cv.export.requests",
		metric.WithDescription("Export requests by outcome")); err != nil {
		slog.Warn("could not create counter", "error", err)
	}
	return x
}

func (x *Exporter) add(ctx context.Context, c metric.Int64Counter, n int64, attrs ...attribute.KeyValue) {
	if c == nil || n == 0 {
		return
	}
	c.Add(ctx, n, metric.WithAttributes(attrs...))
}

// Export runs the pipeline for the active profile. flags name the sections to
// include; none means all. Broken attachments and photos are left out, never
// fatal. The only errors callers need to tell apart are
// domain.ErrNoActiveProfile and domain.ErrPrintingNotAllowed.
func (x *Exporter) Export(ctx context.Context, flags []string) (*ExportResult, error) {
	id := uuid.NewString()
	start := time.Now()
	ctx, span := x.tracer.Start(ctx, "export", trace.WithAttributes(attribute.String("export.id", id)))
	defer span.End()

	res, err := x.export(ctx, id, flags)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	x.add(ctx, x.exports, 1, attribute.String("outcome", outcome))
	slog.InfoContext(ctx, "export finished", "export_id", id, "outcome", outcome, "duration", time.Since(start), "error", err)
	return res, err
}

func (x *Exporter) export(ctx context.Context, id string, flags []string) (*ExportResult, error) {
	profile, err := x.store.FindActiveProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve active profile: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrNoActiveProfile
	}
	if !profile.PrintingAllowed {
		return nil, domain.ErrPrintingNotAllowed
	}

	vis := SelectSections(flags)
	enabled := vis.Enabled()
	entries := make(map[domain.Section][]domain.Entry, len(enabled))
	for _, sec := range enabled {
		list, err := x.store.ListEntries(ctx, profile.ID, sec, true)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", sec, err)
		}
		SortEntries(list)
		entries[sec] = list
	}

	var refs []domain.Resource
	for _, sec := range enabled {
		for _, e := range entries[sec] {
			if !e.CertificatePDF.IsZero() {
				refs = append(refs, e.CertificatePDF)
			}
		}
	}
	slog.DebugContext(ctx, "export plan", "export_id", id, "profile_id", profile.ID, "sections", enabled, "attachments", len(refs))

	photo, attachments := x.fetchAll(ctx, profile.Photo, refs)
	fetchFailed := len(refs) - len(attachments)

	base, err := x.renderer.Render(ctx, BuildResume(profile, entries, photo))
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	result := &ExportResult{ID: id, PDF: base, Skipped: fetchFailed}
	x.add(ctx, x.fetched, int64(len(attachments)))
	if len(attachments) == 0 {
		x.add(ctx, x.skipped, int64(fetchFailed), attribute.String("reason", "fetch"))
		return result, nil
	}

	merged, parseFailed, err := x.merger.Merge(base, attachments)
	if err != nil {
		slog.ErrorContext(ctx, "merge failed, returning the document without attachments", "export_id", id, "error", err)
		result.Skipped += len(attachments)
		x.add(ctx, x.skipped, int64(fetchFailed), attribute.String("reason", "fetch"))
		x.add(ctx, x.skipped, int64(len(attachments)), attribute.String("reason", "merge"))
		return result, nil
	}
	result.PDF = merged
	result.Attached = len(attachments) - parseFailed
	result.Skipped += parseFailed
	x.add(ctx, x.skipped, int64(fetchFailed), attribute.String("reason", "fetch"))
	x.add(ctx, x.skipped, int64(parseFailed), attribute.String("reason", "parse"))
	return result, nil
}

// fetchAll fetches the photo and every attachment concurrently, then returns
// the attachments that arrived in their original order.
func (x *Exporter) fetchAll(ctx context.Context, photoRef domain.Resource, refs []domain.Resource) ([]byte, [][]byte) {
	ctx, span := x.tracer.Start(ctx, "fetch attachments", trace.WithAttributes(attribute.Int("attachments", len(refs))))
	defer span.End()

	var (
		g     errgroup.Group
		photo []byte
	)
	g.SetLimit(x.parallelism)
	results := make([][]byte, len(refs))

	if !photoRef.IsZero() {
		g.Go(func() error {
			if b, ok := x.fetcher.Fetch(ctx, photoRef, infra.KindImage); ok {
				photo = b
			}
			return nil
		})
	}
	for i, ref := range refs {
		g.Go(func() error {
			if b, ok := x.fetcher.Fetch(ctx, ref, infra.KindPDF); ok {
				results[i] = b
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([][]byte, 0, len(results))
	for _, b := range results {
		if b != nil {
			out = append(out, b)
		}
	}
	return photo, out
}
