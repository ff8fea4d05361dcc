package repository

import (
	"context"
	"fmt"

	"cv-portfolio/internal/domain"
	infra "cv-portfolio/pkg/infrastructure"
)

const profileColumns = `id, COALESCE(summary, ''), COALESCE(photo, ''), active, printing_allowed,
	last_names, first_names, COALESCE(nationality, ''), COALESCE(birth_place, ''), birth_date,
	national_id, COALESCE(sex, ''), COALESCE(marital_status, ''), COALESCE(driver_license, ''),
	COALESCE(phone, ''), COALESCE(landline, ''), COALESCE(work_address, ''),
	COALESCE(home_address, ''), COALESCE(website, ''), created_at, updated_at`

func (s *Store) scanProfile(row infra.Row) (*domain.Profile, error) {
	var (
		p     domain.Profile
		photo string
	)
	err := row.Scan(&p.ID, &p.Summary, &photo, &p.Active, &p.PrintingAllowed,
		&p.LastNames, &p.FirstNames, &p.Nationality, &p.BirthPlace, &p.BirthDate,
		&p.NationalID, &p.Sex, &p.MaritalStatus, &p.DriverLicense,
		&p.Phone, &p.Landline, &p.WorkAddress,
		&p.HomeAddress, &p.Website, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Photo = s.locate(photo)
	return &p, nil
}

// FindActiveProfile returns the most recently created active profile, or nil
// when no profile is active.
func (s *Store) FindActiveProfile(ctx context.Context) (*domain.Profile, error) {
	p, err := s.scanProfile(s.conn(ctx).QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE active ORDER BY id DESC LIMIT 1`))
	if infra.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active profile: %w", err)
	}
	return p, nil
}

func (s *Store) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	p, err := s.scanProfile(s.conn(ctx).QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if infra.IsNoRows(err) {
		return nil, fmt.Errorf("profile %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// SaveProfile inserts p when its ID is zero and updates it otherwise. Saving
// an active profile clears the flag on every other profile in the same
// transaction.
func (s *Store) SaveProfile(ctx context.Context, p *domain.Profile) error {
	now := s.now().UTC()
	return s.conn(ctx).InTx(ctx, func(tx infra.DB) error {
		if p.Active {
			if err := tx.Exec(ctx,
				`UPDATE profiles SET active = FALSE WHERE active AND id <> $1`, p.ID); err != nil {
				return fmt.Errorf("clear active profiles: %w", err)
			}
		}

		args := []interface{}{
			p.Summary, p.Photo.Name, p.Active, p.PrintingAllowed,
			p.LastNames, p.FirstNames, p.Nationality, p.BirthPlace, p.BirthDate,
			p.NationalID, p.Sex, p.MaritalStatus, p.DriverLicense,
			p.Phone, p.Landline, p.WorkAddress, p.HomeAddress, p.Website,
		}

		if p.ID == 0 {
			err := tx.QueryRow(ctx, `
				INSERT INTO profiles (summary, photo, active, printing_allowed,
					last_names, first_names, nationality, birth_place, birth_date,
					national_id, sex, marital_status, driver_license,
					phone, landline, work_address, home_address, website, created_at)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
				RETURNING id`, append(args, now)...).Scan(&p.ID)
			if err != nil {
				return fmt.Errorf("insert profile: %w", err)
			}
			p.CreatedAt = now
			return nil
		}

		var id int64
		err := tx.QueryRow(ctx, `
			UPDATE profiles SET summary = $1, photo = $2, active = $3, printing_allowed = $4,
				last_names = $5, first_names = $6, nationality = $7, birth_place = $8, birth_date = $9,
				national_id = $10, sex = $11, marital_status = $12, driver_license = $13,
				phone = $14, landline = $15, work_address = $16, home_address = $17, website = $18,
				updated_at = $19
			WHERE id = $20
			RETURNING id`, append(args, now, p.ID)...).Scan(&id)
		if infra.IsNoRows(err) {
			return fmt.Errorf("profile %d: %w", p.ID, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		p.UpdatedAt = &now
		return nil
	})
}
