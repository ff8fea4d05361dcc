package usecase

import (
	"context"
	"errors"
	"testing"

	"cv-portfolio/internal/domain"
)

func TestPortfolioCertificate(t *testing.T) {
	store := &fakeStore{
		profile: activeProfile(true),
		entries: map[domain.Section][]domain.Entry{
			domain.SectionCourses:      {{ID: 7, ProfileID: 1, Title: "go", CertificatePDF: cert("go.pdf")}},
			domain.SectionRecognitions: {{ID: 8, ProfileID: 1, Title: "premio"}},
		},
	}
	p := NewPortfolio(store)
	ctx := context.Background()

	r, err := p.Certificate(ctx, "curso", 7)
	if err != nil || r.Name != "go.pdf" {
		t.Fatalf("got %+v, %v", r, err)
	}
	for _, tc := range []struct {
		kind string
		id   int64
	}{{"pelicula", 7}, {"experiencia", 7}, {"reconocimiento", 8}, {"curso", 99}} {
		if _, err := p.Certificate(ctx, tc.kind, tc.id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("%s/%d: expected ErrNotFound, got %v", tc.kind, tc.id, err)
		}
	}
}

func TestPortfolioWithoutActiveProfile(t *testing.T) {
	p := NewPortfolio(&fakeStore{})
	ctx := context.Background()

	h, err := p.Home(ctx)
	if err != nil || h.Profile != nil || h.PrintingAllowed || h.Counts["cursos"] != 0 {
		t.Fatalf("home: %+v, %v", h, err)
	}
	if _, err := p.ActiveProfile(ctx); !errors.Is(err, domain.ErrNoActiveProfile) {
		t.Fatalf("expected ErrNoActiveProfile, got %v", err)
	}
	_, items, err := p.Section(ctx, domain.SectionCourses)
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("section: %v, %v", items, err)
	}
}
