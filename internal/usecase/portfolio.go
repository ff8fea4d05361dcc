package usecase

import (
	"context"
	"fmt"

	"cv-portfolio/internal/domain"
)

// PortfolioStore is what the public pages read.
type PortfolioStore interface {
	ProfileStore
	GetEntry(ctx context.Context, section domain.Section, id int64) (*domain.Entry, error)
	ListGarageItems(ctx context.Context, profileID int64, visibleOnly bool) ([]domain.GarageItem, error)
	CountVisible(ctx context.Context, profileID int64) (map[string]int, error)
}

// Portfolio serves the read-only web pages of the active profile.
type Portfolio struct {
	store PortfolioStore
}

func NewPortfolio(store PortfolioStore) *Portfolio {
	return &Portfolio{store: store}
}

// Home is the landing page summary. Profile is nil when none is active.
type Home struct {
	Profile         *domain.Profile `json:"profile"`
	PrintingAllowed bool            `json:"printing_allowed"`
	Counts          map[string]int  `json:"counts"`
}

func (p *Portfolio) Home(ctx context.Context) (*Home, error) {
	profile, err := p.store.FindActiveProfile(ctx)
	if err != nil {
		return nil, err
	}
	h := &Home{Profile: profile, Counts: map[string]int{"venta": 0}}
	for _, s := range domain.Sections {
		h.Counts[string(s)] = 0
	}
	if profile == nil {
		return h, nil
	}
	h.PrintingAllowed = profile.PrintingAllowed
	if h.Counts, err = p.store.CountVisible(ctx, profile.ID); err != nil {
		return nil, err
	}
	return h, nil
}

// ActiveProfile returns the active profile or domain.ErrNoActiveProfile.
func (p *Portfolio) ActiveProfile(ctx context.Context) (*domain.Profile, error) {
	profile, err := p.store.FindActiveProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNoActiveProfile
	}
	return profile, nil
}

// Section lists the visible entries of one section in display order. With
// no active profile the list is empty.
func (p *Portfolio) Section(ctx context.Context, s domain.Section) (*domain.Profile, []domain.Entry, error) {
	profile, err := p.store.FindActiveProfile(ctx)
	if err != nil || profile == nil {
		return nil, []domain.Entry{}, err
	}
	list, err := p.store.ListEntries(ctx, profile.ID, s, true)
	if err != nil {
		return nil, nil, err
	}
	SortEntries(list)
	if list == nil {
		list = []domain.Entry{}
	}
	return profile, list, nil
}

func (p *Portfolio) Garage(ctx context.Context) (*domain.Profile, []domain.GarageItem, error) {
	profile, err := p.store.FindActiveProfile(ctx)
	if err != nil || profile == nil {
		return nil, []domain.GarageItem{}, err
	}
	items, err := p.store.ListGarageItems(ctx, profile.ID, true)
	if err != nil {
		return nil, nil, err
	}
	if items == nil {
		items = []domain.GarageItem{}
	}
	return profile, items, nil
}

// Certificate resolves the stored certificate PDF of one entry. kind is the
// viewer's type segment (curso, experiencia, reconocimiento, prod_acad,
// prod_lab).
func (p *Portfolio) Certificate(ctx context.Context, kind string, id int64) (domain.Resource, error) {
	section, ok := domain.SectionForCertificateKind(kind)
	if !ok {
		return domain.Resource{}, fmt.Errorf("certificate type %q: %w", kind, domain.ErrNotFound)
	}
	e, err := p.store.GetEntry(ctx, section, id)
	if err != nil {
		return domain.Resource{}, err
	}
	if e.CertificatePDF.IsZero() {
		return domain.Resource{}, fmt.Errorf("%s %d has no certificate: %w", kind, id, domain.ErrNotFound)
	}
	return e.CertificatePDF, nil
}
