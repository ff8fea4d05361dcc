package repository

import (
	"context"
	"fmt"

	"cv-portfolio/internal/domain"
)

const garageColumns = `id, profile_id, name, item_condition, COALESCE(description, ''), price_cents,
	item_date, visible, COALESCE(photo, ''), created_at`

func (s *Store) ListGarageItems(ctx context.Context, profileID int64, visibleOnly bool) ([]domain.GarageItem, error) {
	q := `SELECT ` + garageColumns + ` FROM garage_items WHERE profile_id = $1`
	if visibleOnly {
		q += ` AND visible`
	}
	rows, err := s.conn(ctx).Query(ctx, q+` ORDER BY item_date DESC, id DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list garage items: %w", err)
	}
	defer rows.Close()

	var out []domain.GarageItem
	for rows.Next() {
		var (
			it    domain.GarageItem
			photo string
		)
		if err := rows.Scan(&it.ID, &it.ProfileID, &it.Name, &it.Condition, &it.Description,
			&it.PriceCents, &it.Date, &it.Visible, &photo, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan garage item: %w", err)
		}
		it.Photo = s.locate(photo)
		out = append(out, it)
	}
	return out, rows.Err()
}

// SaveGarageItem inserts a new listing.
func (s *Store) SaveGarageItem(ctx context.Context, it *domain.GarageItem) error {
	now := s.now().UTC()
	err := s.conn(ctx).QueryRow(ctx, `
		INSERT INTO garage_items (profile_id, name, item_condition, description, price_cents,
			item_date, visible, photo, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`,
		it.ProfileID, it.Name, it.Condition, it.Description, it.PriceCents,
		it.Date, it.Visible, it.Photo.Name, now).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert garage item: %w", err)
	}
	it.CreatedAt = now
	return nil
}
