package repository

import (
	"context"
	"fmt"

	"cv-portfolio/internal/domain"
	infra "cv-portfolio/pkg/infrastructure"
)

const entryColumns = `id, profile_id, section, title, COALESCE(organization, ''), COALESCE(location, ''),
	COALESCE(description, ''), COALESCE(category, ''), hours, start_date, end_date, visible,
	COALESCE(certificate_pdf, ''), COALESCE(certificate_image, ''), created_at`

// entryOrder puts the most recent end date first, then the most recent
// start date, then the most recently created. Undated entries go last.
const entryOrder = `ORDER BY end_date IS NULL, end_date DESC, start_date IS NULL, start_date DESC, created_at DESC, id DESC`

func (s *Store) scanEntry(row infra.Row) (*domain.Entry, error) {
	var (
		e        domain.Entry
		section  string
		pdf, img string
	)
	err := row.Scan(&e.ID, &e.ProfileID, &section, &e.Title, &e.Organization, &e.Location,
		&e.Description, &e.Category, &e.Hours, &e.StartDate, &e.EndDate, &e.Visible,
		&pdf, &img, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Section = domain.Section(section)
	e.CertificatePDF = s.locate(pdf)
	e.CertificateImage = s.locate(img)
	return &e, nil
}

// ListEntries returns the entries of one section of a profile in display
// order.
func (s *Store) ListEntries(ctx context.Context, profileID int64, section domain.Section, visibleOnly bool) ([]domain.Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM section_entries WHERE profile_id = $1 AND section = $2`
	if visibleOnly {
		q += ` AND visible`
	}
	rows, err := s.conn(ctx).Query(ctx, q+" "+entryOrder, profileID, string(section))
	if err != nil {
		return nil, fmt.Errorf("list %s entries: %w", section, err)
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		e, err := s.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) GetEntry(ctx context.Context, section domain.Section, id int64) (*domain.Entry, error) {
	e, err := s.scanEntry(s.conn(ctx).QueryRow(ctx,
		`SELECT `+entryColumns+` FROM section_entries WHERE section = $1 AND id = $2`, string(section), id))
	if infra.IsNoRows(err) {
		return nil, fmt.Errorf("%s entry %d: %w", section, id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// SaveEntry inserts e when its ID is zero and updates it otherwise.
func (s *Store) SaveEntry(ctx context.Context, e *domain.Entry) error {
	args := []interface{}{
		e.ProfileID, string(e.Section), e.Title, e.Organization, e.Location,
		e.Description, e.Category, e.Hours, e.StartDate, e.EndDate, e.Visible,
		e.CertificatePDF.Name, e.CertificateImage.Name,
	}
	if e.ID == 0 {
		now := s.now().UTC()
		err := s.conn(ctx).QueryRow(ctx, `
			INSERT INTO section_entries (profile_id, section, title, organization, location,
				description, category, hours, start_date, end_date, visible,
				certificate_pdf, certificate_image, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			RETURNING id`, append(args, now)...).Scan(&e.ID)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		e.CreatedAt = now
		return nil
	}

	var id int64
	err := s.conn(ctx).QueryRow(ctx, `
		UPDATE section_entries SET profile_id = $1, section = $2, title = $3, organization = $4,
			location = $5, description = $6, category = $7, hours = $8, start_date = $9,
			end_date = $10, visible = $11, certificate_pdf = $12, certificate_image = $13
		WHERE id = $14
		RETURNING id`, append(args, e.ID)...).Scan(&id)
	if infra.IsNoRows(err) {
		return fmt.Errorf("entry %d: %w", e.ID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}
