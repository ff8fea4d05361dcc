package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cv-portfolio/internal/domain"
	"cv-portfolio/internal/model"
)

// ImportStore is the write side used by imports.
type ImportStore interface {
	SaveProfile(ctx context.Context, p *domain.Profile) error
	SaveEntry(ctx context.Context, e *domain.Entry) error
	SaveGarageItem(ctx context.Context, it *domain.GarageItem) error
	// Transact runs fn in one transaction; saves made with fn's context
	// commit or roll back together.
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImportSummary counts what an import wrote.
type ImportSummary struct {
	ProfileID   int64
	Entries     int
	GarageItems int
}

// Import validates every record of doc against the write-time rules and then
// saves them in one transaction. Nothing is written if any record is invalid
// or any save fails.
func Import(ctx context.Context, store ImportStore, doc *model.ImportDocument, today time.Time) (*ImportSummary, error) {
	profile, err := doc.Profile.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if err := model.ValidateProfile(profile, today); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}

	entries := make([]*domain.Entry, 0, len(doc.Entries))
	for i, d := range doc.Entries {
		e, err := d.ToDomain(0)
		if err == nil {
			err = model.ValidateEntry(profile, e, today)
		}
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, d.Title, err)
		}
		entries = append(entries, e)
	}
	items := make([]*domain.GarageItem, 0, len(doc.GarageItems))
	for i, d := range doc.GarageItems {
		it, err := d.ToDomain(0)
		if err == nil {
			err = model.ValidateGarageItem(it, today)
		}
		if err != nil {
			return nil, fmt.Errorf("garage item %d (%s): %w", i, d.Name, err)
		}
		items = append(items, it)
	}

	err = store.Transact(ctx, func(ctx context.Context) error {
		if err := store.SaveProfile(ctx, profile); err != nil {
			return err
		}
		for _, e := range entries {
			e.ProfileID = profile.ID
			if err := store.SaveEntry(ctx, e); err != nil {
				return err
			}
		}
		for _, it := range items {
			it.ProfileID = profile.ID
			if err := store.SaveGarageItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	slog.InfoContext(ctx, "import finished", "profile_id", profile.ID, "entries", len(entries), "garage_items", len(items))
	return &ImportSummary{ProfileID: profile.ID, Entries: len(entries), GarageItems: len(items)}, nil
}
